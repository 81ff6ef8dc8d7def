package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"WARN":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		" bogus  ": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "codemix-api")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "4")

	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || o.Service != "codemix-api" {
		t.Fatalf("options = %+v", o)
	}
	if !o.WithCaller || o.SampleEvery != 4 {
		t.Fatalf("options = %+v", o)
	}
}

// The root logger is process wide, so everything that depends on Init lives in one test
func TestRootAndContextLoggers(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "codemix",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})
	Init(Options{Level: "error"}) // ignored

	Get().Debug().Msg("root line")
	Named("oracle").Info().Msg("named line")

	ctx := Into(context.Background(), "request_id", "req-9", "subject", "")
	C(ctx).Info().Msg("request line")
	C(context.Background()).Info().Msg("bare line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, `"service":"codemix"`) || !strings.Contains(l, `"build":"test"`) {
			t.Fatalf("static fields missing: %s", l)
		}
	}
	if !strings.Contains(lines[1], `"component":"oracle"`) {
		t.Fatalf("component missing: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"request_id":"req-9"`) || strings.Contains(lines[2], "subject") {
		t.Fatalf("context fields wrong: %s", lines[2])
	}
	if strings.Contains(lines[3], "request_id") {
		t.Fatalf("bare context picked up fields: %s", lines[3])
	}
}
