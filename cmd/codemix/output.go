package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	adomain "codemix/internal/services/analyze/domain"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	langColor  = color.New(color.FgCyan, color.Bold)
	mixColor   = color.New(color.FgMagenta)
	dimColor   = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
)

// Output formats shared by commands
const (
	formatPretty = "pretty"
	formatJSON   = "json"
	formatJSONL  = "jsonl"
	formatYAML   = "yaml"
)

func confidenceColor(c float64) *color.Color {
	switch {
	case c >= 0.8:
		return okColor
	case c >= 0.5:
		return warnColor
	default:
		return errorColor
	}
}

// writeResult prints one analysis in the pretty layout
func writeResult(w io.Writer, text string, r adomain.Result) {
	lang := langColor.Sprint(r.Language)
	if len(r.Languages) > 1 {
		lang = langColor.Sprint(strings.Join(r.Languages, "+"))
	}
	conf := confidenceColor(r.Confidence).Sprintf("%.2f", r.Confidence)

	fmt.Fprintf(w, "%s  %s  %s  %s", lang, conf, r.Method, dimColor.Sprint(r.Script))
	if r.IsCodeMixed {
		fmt.Fprintf(w, "  %s", mixColor.Sprintf("mixed %.2f", r.CodeMixingScore))
	}
	if r.CacheHit {
		fmt.Fprintf(w, "  %s", dimColor.Sprint("cached"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", text)
	if r.NeedsConversion && r.Converted != "" {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("→"), r.Converted)
	}
	if r.OracleError != "" {
		fmt.Fprintf(w, "  %s %s\n", warnColor.Sprint("oracle:"), r.OracleError)
	}
}

func writeStats(w io.Writer, st adomain.Statistics) {
	row := func(k string, v any) { fmt.Fprintf(w, "%-22s %v\n", dimColor.Sprint(k), v) }

	row("oracle", st.Oracle)
	row("dictionaries", strings.Join(st.Dictionaries, " "))
	row("dictionary version", st.DictionaryVersion)
	row("patterns", fmt.Sprintf("%d (%d promoted)", st.TotalPatterns, st.PromotedPatterns))
	row("requests", st.TotalRequests)
	row("cache hit rate", confidenceColor(st.CacheHitRate).Sprintf("%.1f%%", st.CacheHitRate*100))
	row("corrections", st.TotalCorrections)
	row("failures", st.TotalFailures)
	if st.EventsDropped > 0 {
		row("events dropped", warnColor.Sprint(st.EventsDropped))
	}

	if len(st.TopDetectedLanguages) > 0 {
		fmt.Fprintln(w, dimColor.Sprint("top languages"))
		for _, lc := range st.TopDetectedLanguages {
			fmt.Fprintf(w, "  %-8s %d\n", langColor.Sprint(lc.Language), lc.Count)
		}
	}
	if len(st.DetectionMethods) > 0 {
		fmt.Fprintln(w, dimColor.Sprint("methods"))
		methods := make([]string, 0, len(st.DetectionMethods))
		for m := range st.DetectionMethods {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			fmt.Fprintf(w, "  %-16s %d\n", m, st.DetectionMethods[m])
		}
	}
	if len(st.CommonMisdetections) > 0 {
		fmt.Fprintln(w, dimColor.Sprint("misdetections"))
		for _, md := range st.CommonMisdetections {
			fmt.Fprintf(w, "  %s → %s  %d\n", md.Detected, md.Expected, md.Count)
		}
	}
}

// encode writes v as json, jsonl or yaml
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case formatJSONL:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case formatYAML:
		// round trip through json so yaml keys follow the json tags
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
