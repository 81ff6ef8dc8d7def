package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"codemix/internal/core/fusion"
	"codemix/internal/modkit/httpkit"
	perr "codemix/internal/platform/errors"
	phttp "codemix/internal/platform/net/http"
	adomain "codemix/internal/services/analyze/domain"
	ldomain "codemix/internal/services/learning/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	batchJobs  int
	correction adomain.CorrectionInput
	loadedCode string
	loadedBody string
	reloaded   string
	loadErr    error
}

func (f *fakeEngine) Analyze(_ context.Context, text string) fusion.Decision {
	return fusion.Decision{Language: "hin", Method: fusion.MethodHeuristic, Confidence: 0.5, Converted: text}
}

func (f *fakeEngine) AnalyzeDetailed(ctx context.Context, text string) adomain.Result {
	return adomain.Result{Decision: f.Analyze(ctx, text), Signature: "short_1_Latn_00000000"}
}

func (f *fakeEngine) AnalyzeBatch(ctx context.Context, texts []string, jobs int) ([]adomain.Result, error) {
	f.batchJobs = jobs
	out := make([]adomain.Result, len(texts))
	for i, t := range texts {
		out[i] = f.AnalyzeDetailed(ctx, t)
	}
	return out, nil
}

func (f *fakeEngine) SubmitCorrection(_ context.Context, in adomain.CorrectionInput) (adomain.Receipt, error) {
	f.correction = in
	if in.CorrectLanguage == "und" {
		return adomain.Receipt{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "unknown language"), "correct_language")
	}
	return adomain.Receipt{ID: "c1", Signature: in.Signature, Language: in.CorrectLanguage}, nil
}

func (f *fakeEngine) Suggestions(string) []ldomain.Suggestion {
	return []ldomain.Suggestion{{Language: "mar", Count: 2}}
}

func (f *fakeEngine) Statistics(context.Context) adomain.Statistics {
	return adomain.Statistics{DictionaryVersion: "v1", Dictionaries: []string{"hin", "kan"}, Oracle: "none"}
}

func (f *fakeEngine) LoadDictionary(code string, r io.Reader) error {
	b, _ := io.ReadAll(r)
	f.loadedCode, f.loadedBody = code, string(b)
	return f.loadErr
}

func (f *fakeEngine) ReloadDictionary(path string) error {
	f.reloaded = path
	return nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func serve(t *testing.T, f *fakeEngine, dir string) stdhttp.Handler {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), Deps{
		Analyzer: f, Feedback: f, Stats: f, Dictionaries: f,
		DictionaryDir: dir, BatchJobs: 3,
	})
	return mux
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestAnalyze(t *testing.T) {
	h := serve(t, &fakeEngine{}, "")

	code, env := do(t, h, stdhttp.MethodPost, "/analyze", `{"text":"mai aaj"}`)
	require.Equal(t, stdhttp.StatusOK, code)
	var d fusion.Decision
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "hin", d.Language)

	code, env = do(t, h, stdhttp.MethodPost, "/analyze", `{"text":"mai aaj","detailed":true}`)
	require.Equal(t, stdhttp.StatusOK, code)
	var r adomain.Result
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.Equal(t, "short_1_Latn_00000000", r.Signature)

	code, _ = do(t, h, stdhttp.MethodPost, "/analyze", `{"text":""}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)

	code, _ = do(t, h, stdhttp.MethodPost, "/analyze", `{"text":`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)
}

func TestBatch(t *testing.T) {
	f := &fakeEngine{}
	h := serve(t, f, "")

	code, env := do(t, h, stdhttp.MethodPost, "/analyze/batch", `{"texts":["a","b"]}`)
	require.Equal(t, stdhttp.StatusOK, code)
	var rs []adomain.Result
	require.NoError(t, json.Unmarshal(env.Data, &rs))
	assert.Len(t, rs, 2)
	assert.Equal(t, "b", rs[1].Converted)
	assert.Equal(t, 3, f.batchJobs)

	code, _ = do(t, h, stdhttp.MethodPost, "/analyze/batch", `{"texts":[]}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)
}

func TestCorrections(t *testing.T) {
	f := &fakeEngine{}
	h := serve(t, f, "")

	code, env := do(t, h, stdhttp.MethodPost, "/corrections",
		`{"text":"mi ghari jato","detected_language":"hin","correct_language":"mr","annotator_id":"a1"}`)
	require.Equal(t, stdhttp.StatusOK, code)
	assert.Equal(t, "hin", f.correction.Detected)
	assert.Equal(t, "a1", f.correction.AnnotatorID)
	var rc adomain.Receipt
	require.NoError(t, json.Unmarshal(env.Data, &rc))
	assert.Equal(t, "c1", rc.ID)

	code, env = do(t, h, stdhttp.MethodPost, "/corrections", `{"text":"x","correct_language":"und"}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)
	assert.Equal(t, perr.ErrorCodeValidation, env.Code)

	code, _ = do(t, h, stdhttp.MethodPost, "/corrections", `{"text":"x"}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)
}

func TestSuggestionsAndStats(t *testing.T) {
	h := serve(t, &fakeEngine{}, "")

	code, env := do(t, h, stdhttp.MethodPost, "/suggestions", `{"text":"mi ghari jato"}`)
	require.Equal(t, stdhttp.StatusOK, code)
	var ss []ldomain.Suggestion
	require.NoError(t, json.Unmarshal(env.Data, &ss))
	assert.Equal(t, []ldomain.Suggestion{{Language: "mar", Count: 2}}, ss)

	code, env = do(t, h, stdhttp.MethodGet, "/stats", "")
	require.Equal(t, stdhttp.StatusOK, code)
	var st adomain.Statistics
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "none", st.Oracle)
}

func TestDictionaries(t *testing.T) {
	f := &fakeEngine{}
	dir := t.TempDir()
	h := serve(t, f, dir)

	code, env := do(t, h, stdhttp.MethodPost, "/dictionaries/kan",
		`{"language":"kannada","script":"Knda","iso_code":"kan","categories":{"pronouns":{"naanu":"ನಾನು"}}}`)
	require.Equal(t, stdhttp.StatusOK, code)
	assert.Equal(t, "kan", f.loadedCode)
	assert.Contains(t, f.loadedBody, `"naanu":"ನಾನು"`)
	var dl struct {
		Languages []string `json:"languages"`
		Version   string   `json:"version"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dl))
	assert.Equal(t, "v1", dl.Version)

	f.loadErr = perr.New(perr.ErrorCodeValidation, "iso mismatch")
	code, _ = do(t, h, stdhttp.MethodPost, "/dictionaries/tam", `{"iso_code":"kan"}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)

	code, _ = do(t, h, stdhttp.MethodPost, "/dictionaries/reload", `{"file":"odia.yaml"}`)
	require.Equal(t, stdhttp.StatusOK, code)
	assert.Equal(t, filepath.Join(dir, "odia.yaml"), f.reloaded)

	code, _ = do(t, h, stdhttp.MethodPost, "/dictionaries/reload", `{"file":"../etc/passwd"}`)
	assert.Equal(t, stdhttp.StatusBadRequest, code)
}

func TestReloadWithoutDir(t *testing.T) {
	code, env := do(t, serve(t, &fakeEngine{}, ""), stdhttp.MethodPost, "/dictionaries/reload", `{"file":"x.json"}`)
	assert.Equal(t, stdhttp.StatusServiceUnavailable, code)
	assert.Equal(t, perr.ErrorCodeUnavailable, env.Code)
}

func TestWritesNeedToken(t *testing.T) {
	f := &fakeEngine{}
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), Deps{
		Analyzer: f, Feedback: f, Stats: f, Dictionaries: f,
		Auth: httpkit.StaticToken("s3cret", "ops"),
	})

	post := func(path, body, token string) int {
		req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	body := `{"text":"mi ghari jato","correct_language":"mar"}`
	assert.Equal(t, stdhttp.StatusUnauthorized, post("/corrections", body, ""))
	assert.Equal(t, stdhttp.StatusUnauthorized, post("/corrections", body, "wrong"))
	assert.Equal(t, stdhttp.StatusOK, post("/corrections", body, "s3cret"))
	assert.Equal(t, "ops", f.correction.AnnotatorID)

	// reads stay open
	assert.Equal(t, stdhttp.StatusOK, post("/analyze", `{"text":"naan"}`, ""))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name, dir, file, want string
		bad                   bool
	}{
		{name: "whole dir", dir: "/d", file: "", want: "/d"},
		{name: "file", dir: "/d", file: "hindi.json", want: "/d/hindi.json"},
		{name: "nested", dir: "/d", file: "extra/./odia.yaml", want: "/d/extra/odia.yaml"},
		{name: "inner dotdot", dir: "/d", file: "extra/../hindi.json", want: "/d/hindi.json"},
		{name: "escape", dir: "/d", file: "../x.json", bad: true},
		{name: "parent", dir: "/d", file: "..", bad: true},
		{name: "absolute", dir: "/d", file: "/etc/passwd", bad: true},
		{name: "unset", dir: "", file: "x.json", bad: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolve(tc.dir, tc.file)
			if tc.bad {
				if err == nil {
					t.Fatalf("resolve(%q, %q) = %q, want error", tc.dir, tc.file, got)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("resolve(%q, %q) = %q, %v; want %q", tc.dir, tc.file, got, err, tc.want)
			}
		})
	}
	_, err := resolve("/d", "../x")
	if e, ok := perr.As(err); !ok || e.Field() != "file" {
		t.Fatalf("want field error, got %v", err)
	}
}
