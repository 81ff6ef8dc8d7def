package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codemix/internal/core/fusion"
	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
	"codemix/internal/platform/store"
	"codemix/internal/services/learning/domain"
)

func sampleSnapshot() *domain.Snapshot {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Snapshot{
		Version: domain.SnapshotVersion,
		SavedAt: now,
		Patterns: map[string]domain.Entry{
			"short_5_Latn_1a2b3c4d": {
				Decision: fusion.Decision{
					Language:    "hin",
					Languages:   []string{"hin"},
					Script:      script.Latin,
					Confidence:  0.9,
					Method:      fusion.MethodOracleHigh,
					Composition: script.Composition{LatinPct: 100, Scriptable: 19, DominantScript: script.Latin},
				},
				UseCount:   3,
				Confidence: 0.9,
				LastUsed:   now,
				FirstSeen:  now,
				Promoted:   true,
				Tick:       7,
			},
		},
		Overrides:   map[string]string{"short_3_Latn_deadbeef": "mar"},
		Corrections: []domain.Correction{{ID: "c1", Text: "kasa aahes", CorrectLanguage: "mar", Timestamp: now}},
		Counters:    domain.Counters{Requests: 10, Hits: 4, Misses: 6, Languages: map[string]int64{"hin": 10}},
	}
}

func checkSnapshot(t *testing.T, got *domain.Snapshot) {
	t.Helper()
	if got == nil {
		t.Fatalf("snapshot is nil")
	}
	e, ok := got.Patterns["short_5_Latn_1a2b3c4d"]
	if !ok || e.Decision.Language != "hin" || !e.Promoted || e.UseCount != 3 || e.Tick != 7 {
		t.Fatalf("entry = %+v", e)
	}
	if !e.LastUsed.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("last used = %v", e.LastUsed)
	}
	if got.Overrides["short_3_Latn_deadbeef"] != "mar" || len(got.Corrections) != 1 {
		t.Fatalf("overrides/corrections lost: %+v", got)
	}
	if got.Counters.Requests != 10 || got.Counters.Languages["hin"] != 10 {
		t.Fatalf("counters = %+v", got.Counters)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	for _, name := range []string{"cache.json", "cache.mp"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			f := NewFile(filepath.Join(t.TempDir(), "sub", name))

			got, err := f.Load(ctx)
			if err != nil || got != nil {
				t.Fatalf("missing file should load empty, got %v %v", got, err)
			}
			if err := f.Save(ctx, sampleSnapshot()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err = f.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			checkSnapshot(t, got)
		})
	}
}

func TestFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFile(path).Load(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("corrupt file err = %v", err)
	}
}

func TestCodec_VersionMismatch(t *testing.T) {
	s := sampleSnapshot()
	s.Version = 99
	b, err := CodecJSON.Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CodecJSON.Decode(b); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestCodecOf(t *testing.T) {
	cases := map[string]Codec{
		"a.json":    CodecJSON,
		"a.mp":      CodecMsgpack,
		"a.MSGPACK": CodecMsgpack,
		"noext":     CodecJSON,
	}
	for in, want := range cases {
		if got := CodecOf(in); got != want {
			t.Fatalf("CodecOf(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if got, err := m.Load(ctx); got != nil || err != nil {
		t.Fatalf("empty memory = %v %v", got, err)
	}
	if err := m.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	got, err := m.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	checkSnapshot(t, got)
	if m.Saves() != 1 {
		t.Fatalf("saves = %d", m.Saves())
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		Lite: store.LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "learning.db")},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close(ctx)

	s, err := Open(BackendSQLite, "", "test", Seams{Lite: st.Lite})
	if err != nil {
		t.Fatal(err)
	}
	sq := s.(*SQL)
	if err := sq.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if got, err := sq.Load(ctx); got != nil || err != nil {
		t.Fatalf("empty table = %v %v", got, err)
	}

	snap := sampleSnapshot()
	if err := sq.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	snap.Counters.Requests = 10 // upsert keeps one row
	if err := sq.Save(ctx, snap); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := sq.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkSnapshot(t, got)

	at, ok, err := sq.SavedAt(ctx)
	if err != nil || !ok || !at.Equal(snap.SavedAt) {
		t.Fatalf("SavedAt = %v %v %v", at, ok, err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		path    string
		ok      bool
		kind    string
	}{
		{"", "x.json", true, "file:json"},
		{"file", "x.mp", true, "file:msgpack"},
		{"memory", "", true, "memory"},
		{"file", "", false, ""},
		{"sqlite", "", false, ""},
		{"pg", "", false, ""},
		{"redis", "", false, ""},
	}
	for _, tc := range tests {
		s, err := Open(tc.backend, tc.path, "", Seams{})
		if (err == nil) != tc.ok {
			t.Fatalf("Open(%q) err = %v", tc.backend, err)
		}
		if tc.ok && s.Kind() != tc.kind {
			t.Fatalf("Open(%q).Kind() = %s", tc.backend, s.Kind())
		}
		if !tc.ok && !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("Open(%q) code = %v", tc.backend, perr.CodeOf(err))
		}
	}
}
