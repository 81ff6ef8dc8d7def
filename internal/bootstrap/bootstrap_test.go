package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"codemix/internal/platform/config"
	analyzemod "codemix/internal/services/analyze/module"
	learnmod "codemix/internal/services/learning/module"
	lrepo "codemix/internal/services/learning/repo"
)

func TestStoreConfig(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		backend      string
		events       bool
		pg, ch, lite bool
		litePath     string
	}{
		{name: "file cache, nothing set", backend: lrepo.BackendFile, events: true},
		{
			name:    "pg url opens pg",
			env:     map[string]string{"SERVICE_PGSQL_DBURL": "postgres://x"},
			backend: lrepo.BackendFile, pg: true,
		},
		{
			name:    "ch only with events",
			env:     map[string]string{"SERVICE_CLICKHOUSE_DBURL": "clickhouse://x"},
			backend: lrepo.BackendMemory, events: true, ch: true,
		},
		{
			name:    "ch skipped without events",
			env:     map[string]string{"SERVICE_CLICKHOUSE_DBURL": "clickhouse://x"},
			backend: lrepo.BackendMemory,
		},
		{
			name:    "sqlite cache",
			env:     map[string]string{"SERVICE_SQLITE_PATH": "/tmp/c.db"},
			backend: lrepo.BackendSQLite, lite: true, litePath: "/tmp/c.db",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"SERVICE_PGSQL_DBURL", "SERVICE_CLICKHOUSE_DBURL", "SERVICE_SQLITE_PATH"} {
				t.Setenv(k, tc.env[k])
			}
			cfg := StoreConfig(config.New(), learnmod.Options{Backend: tc.backend}, tc.events)
			if cfg.PG.Enabled != tc.pg || cfg.CH.Enabled != tc.ch || cfg.Lite.Enabled != tc.lite {
				t.Fatalf("enabled pg=%v ch=%v lite=%v", cfg.PG.Enabled, cfg.CH.Enabled, cfg.Lite.Enabled)
			}
			if tc.litePath != "" && cfg.Lite.Path != tc.litePath {
				t.Fatalf("lite path = %q", cfg.Lite.Path)
			}
			if cfg.AppName != "codemix" {
				t.Fatalf("app name = %q", cfg.AppName)
			}
		})
	}
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CORE_LEARNING_BACKEND", lrepo.BackendSQLite)
	t.Setenv("SERVICE_SQLITE_PATH", filepath.Join(dir, "codemix.db"))
	t.Setenv("CORE_ORACLE_KIND", "none")
	t.Setenv("SERVICE_PGSQL_DBURL", "")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")

	ctx := context.Background()
	text := "mai aaj bahut khush hai"

	e, err := Open(ctx, config.New(), Overrides{NoEvents: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if e.Store.Lite == nil || e.Store.CH != nil {
		t.Fatalf("stores: lite=%v ch=%v", e.Store.Lite != nil, e.Store.CH != nil)
	}
	for i := 0; i < 3; i++ {
		if d := e.Service().Analyze(ctx, text); d.Language != "hin" {
			t.Fatalf("analyze %d = %+v", i, d)
		}
	}
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again, err := Open(ctx, config.New(), Overrides{NoEvents: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = again.Close(ctx) }()
	if st := again.Service().Statistics(ctx); st.TotalPatterns != 1 || st.TotalRequests != 3 {
		t.Fatalf("restored stats = %+v", st.Stats)
	}
	r := again.Service().AnalyzeDetailed(ctx, text)
	if en, ok := again.Learning.Service().Entry(r.Signature); !ok || en.UseCount != 4 {
		t.Fatalf("restored entry = %+v %v", en, ok)
	}
}

func TestOpen_BadTuning(t *testing.T) {
	t.Setenv("CORE_LEARNING_BACKEND", lrepo.BackendMemory)
	if _, err := Open(context.Background(), config.New(), Overrides{
		Analyze: analyzemod.Options{TuningFile: filepath.Join(t.TempDir(), "missing.toml")},
	}); err == nil {
		t.Fatalf("expected tuning error")
	}
}
