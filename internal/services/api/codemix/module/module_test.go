package module

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codemix/internal/core/fusion"
	modkit "codemix/internal/modkit"
	phttp "codemix/internal/platform/net/http"
	adomain "codemix/internal/services/analyze/domain"
	ldomain "codemix/internal/services/learning/domain"

	"github.com/go-chi/chi/v5"
)

type engine struct{}

func (engine) Analyze(context.Context, string) fusion.Decision {
	return fusion.Decision{Language: "tam"}
}
func (e engine) AnalyzeDetailed(ctx context.Context, t string) adomain.Result {
	return adomain.Result{Decision: e.Analyze(ctx, t)}
}
func (engine) AnalyzeBatch(context.Context, []string, int) ([]adomain.Result, error) { return nil, nil }
func (engine) SubmitCorrection(context.Context, adomain.CorrectionInput) (adomain.Receipt, error) {
	return adomain.Receipt{}, nil
}
func (engine) Suggestions(string) []ldomain.Suggestion       { return nil }
func (engine) Statistics(context.Context) adomain.Statistics { return adomain.Statistics{} }
func (engine) LoadDictionary(string, io.Reader) error        { return nil }
func (engine) ReloadDictionary(string) error                 { return nil }

func ports() Ports {
	return Ports{Analyzer: engine{}, Feedback: engine{}, Stats: engine{}, Dictionaries: engine{}}
}

func TestModule_MountsUnderPrefix(t *testing.T) {
	var hit bool
	m := New(modkit.Deps{}, Options{},
		modkit.WithPorts(ports()),
		modkit.WithMiddlewares(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hit = true
				next.ServeHTTP(w, r)
			})
		}),
	)
	if m.Name() != "codemix" || m.(*Module).Prefix() != "/codemix" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := m.Ports().(Ports); !ok {
		t.Fatalf("ports = %T", m.Ports())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/codemix/analyze", strings.NewReader(`{"text":"naan"}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"language":"tam"`) {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if !hit {
		t.Fatalf("module middleware not applied")
	}
}

func TestModule_PanicsWithoutPorts(t *testing.T) {
	tests := []struct {
		name string
		opts []modkit.Option
	}{
		{name: "none"},
		{name: "partial", opts: []modkit.Option{modkit.WithPorts(Ports{Analyzer: engine{}})}},
		{name: "wrong type", opts: []modkit.Option{modkit.WithPorts("x")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			New(modkit.Deps{}, Options{}, tc.opts...)
		})
	}
}
