package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [text...]",
	Short: "Identify the language of each text",
	Long: `Analyze identifies the language of each argument. With no arguments,
or with --file, every non empty input line is one text.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringP("file", "f", "", "read texts from file, one per line (- for stdin)")
	f.String("format", formatPretty, "output format (pretty|json|jsonl)")
	f.Bool("detailed", false, "include signature, timings and cache state in json output")
	f.IntP("jobs", "j", 0, "concurrent analyses, 0 means GOMAXPROCS")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	detailed, _ := cmd.Flags().GetBool("detailed")
	jobs, _ := cmd.Flags().GetInt("jobs")
	file, _ := cmd.Flags().GetString("file")

	switch format {
	case formatPretty, formatJSON, formatJSONL:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	texts := args
	if file != "" || len(args) == 0 {
		in := cmd.InOrStdin()
		if file != "" && file != "-" {
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer func() { _ = fh.Close() }()
			in = fh
		}
		lines, err := readLines(in)
		if err != nil {
			return err
		}
		texts = append(texts, lines...)
	}
	if len(texts) == 0 {
		return fmt.Errorf("nothing to analyze")
	}

	ctx := cmd.Context()
	eng, err := openEngine(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeEngine(ctx, eng)

	results, err := eng.Service().AnalyzeBatch(ctx, texts, jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatPretty:
		for i, r := range results {
			writeResult(out, texts[i], r)
		}
	case formatJSON:
		if detailed {
			return encode(out, format, results)
		}
		ds := make([]any, len(results))
		for i, r := range results {
			ds[i] = r.Decision
		}
		return encode(out, format, ds)
	case formatJSONL:
		for _, r := range results {
			var v any = r.Decision
			if detailed {
				v = r
			}
			if err := encode(out, format, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
