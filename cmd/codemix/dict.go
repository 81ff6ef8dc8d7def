package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codemix/internal/core/dictionary"

	"github.com/spf13/cobra"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Validate and convert romanized dictionaries",
}

var dictValidateCmd = &cobra.Command{
	Use:   "validate file...",
	Short: "Check dictionary documents without loading them into the engine",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDictValidate,
}

var dictConvertCmd = &cobra.Command{
	Use:   "convert in out",
	Short: "Rewrite a dictionary between JSON and YAML",
	Long: `Convert validates the input and writes it in the format of the output
extension (.json, .yaml, .yml) unless --to is given. Use - as out for stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: runDictConvert,
}

func init() {
	dictConvertCmd.Flags().String("to", "", "output format (json|yaml), default from the out extension")
	dictCmd.AddCommand(dictValidateCmd, dictConvertCmd)
}

// errInvalid is returned when any validated file fails
var errInvalid = errors.New("invalid dictionaries")

func runDictValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bad := 0
	for _, p := range args {
		d, err := readDictionary(p)
		if err != nil {
			bad++
			fmt.Fprintf(out, "%s %s\n  %v\n", errorColor.Sprint("FAIL"), p, err)
			continue
		}
		fmt.Fprintf(out, "%s %s  %s %s  %d entries, %d categories\n",
			okColor.Sprint("ok  "), p, langColor.Sprint(d.ISOCode), d.Script, d.Len(), len(d.Categories()))
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, bad, len(args))
	}
	return nil
}

func runDictConvert(cmd *cobra.Command, args []string) error {
	in, dst := args[0], args[1]

	d, err := readDictionary(in)
	if err != nil {
		return err
	}

	to, _ := cmd.Flags().GetString("to")
	f := dictionary.Format(to)
	switch {
	case to == "" && dst == "-":
		f = dictionary.FormatYAML
		if dictionary.FormatOf(in) == dictionary.FormatYAML {
			f = dictionary.FormatJSON
		}
	case to == "":
		f = dictionary.FormatOf(dst)
	case f != dictionary.FormatJSON && f != dictionary.FormatYAML:
		return fmt.Errorf("unknown format %q", to)
	}

	if dst == "-" {
		return dictionary.Encode(cmd.OutOrStdout(), d, f)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	fh, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := dictionary.Encode(fh, d, f); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s → %s (%s)\n", okColor.Sprint("wrote"), in, dst, f)
	return nil
}

func readDictionary(p string) (*dictionary.Dictionary, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return dictionary.Parse(data, dictionary.FormatOf(p))
}
