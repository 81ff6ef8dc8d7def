// Package http provides http transport for the codemix engine
package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"path/filepath"
	"strings"

	"codemix/internal/core/dictionary"
	"codemix/internal/modkit/httpkit"
	perr "codemix/internal/platform/errors"
	adomain "codemix/internal/services/analyze/domain"
	"codemix/internal/services/api/codemix/domain"
)

// Deps are the engine ports the handlers call
type Deps struct {
	Analyzer     adomain.AnalyzerPort
	Feedback     adomain.FeedbackPort
	Stats        adomain.StatsPort
	Dictionaries adomain.DictionaryPort

	// Auth guards corrections and dictionary changes, nil leaves them open
	Auth httpkit.AuthPort

	// DictionaryDir bounds reload requests; empty disables reload
	DictionaryDir string
	// BatchJobs caps concurrent analyses of one batch request
	BatchJobs int
}

// Register mounts codemix endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
	httpkit.PostJSON[domain.BatchInput](r, "/analyze/batch", h.batch)
	httpkit.PostJSON[domain.SuggestionsInput](r, "/suggestions", h.suggestions)
	httpkit.Get(r, "/stats", h.stats)

	// writes
	httpkit.Protected(r, d.Auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.CorrectionInput](pr, "/corrections", h.correct)
		httpkit.PostJSON[domain.ReloadInput](pr, "/dictionaries/reload", h.reload)
		httpkit.PostJSON[dictionary.Document](pr, "/dictionaries/{code}", h.upload)
	})
}

type handlers struct{ deps Deps }

// swagger:route POST /codemix/analyze Codemix codemixAnalyze
// @Summary Identify the language of a text
// @Tags Codemix
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Text"
// @Success 200 {object} fusion.Decision "decision, or analyze/domain.Result when detailed"
// @Router /codemix/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	if in.Detailed {
		return h.deps.Analyzer.AnalyzeDetailed(r.Context(), in.Text), nil
	}
	return h.deps.Analyzer.Analyze(r.Context(), in.Text), nil
}

// swagger:route POST /codemix/analyze/batch Codemix codemixBatch
// @Summary Identify the languages of many texts
// @Tags Codemix
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Texts"
// @Success 200 {array} adomain.Result "ok"
// @Router /codemix/analyze/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.deps.Analyzer.AnalyzeBatch(r.Context(), in.Texts, h.deps.BatchJobs)
}

// swagger:route POST /codemix/corrections Codemix codemixCorrect
// @Summary Submit the correct language for a text
// @Tags Codemix
// @Accept json
// @Produce json
// @Param payload body domain.CorrectionInput true "Correction"
// @Success 200 {object} adomain.Receipt "ok"
// @Security BearerAuth
// @Router /codemix/corrections [post]
func (h *handlers) correct(r *stdhttp.Request, in domain.CorrectionInput) (any, error) {
	if in.AnnotatorID == "" {
		in.AnnotatorID, _ = httpkit.User(r)
	}
	return h.deps.Feedback.SubmitCorrection(r.Context(), adomain.CorrectionInput{
		Text:            in.Text,
		Signature:       in.Signature,
		Detected:        in.DetectedLanguage,
		CorrectLanguage: in.CorrectLanguage,
		AnnotatorID:     in.AnnotatorID,
		Comment:         in.Comment,
	})
}

// swagger:route POST /codemix/suggestions Codemix codemixSuggestions
// @Summary Languages users proposed for texts shaped like this one
// @Tags Codemix
// @Accept json
// @Produce json
// @Param payload body domain.SuggestionsInput true "Text"
// @Success 200 {array} ldomain.Suggestion "ok"
// @Router /codemix/suggestions [post]
func (h *handlers) suggestions(_ *stdhttp.Request, in domain.SuggestionsInput) (any, error) {
	return h.deps.Feedback.Suggestions(in.Text), nil
}

// swagger:route GET /codemix/stats Codemix codemixStats
// @Summary Cache and engine statistics
// @Tags Codemix
// @Produce json
// @Success 200 {object} adomain.Statistics "ok"
// @Router /codemix/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.deps.Stats.Statistics(r.Context()), nil
}

// swagger:route POST /codemix/dictionaries/{code} Codemix codemixUpload
// @Summary Install or replace one romanized dictionary
// @Tags Codemix
// @Accept json
// @Produce json
// @Param code path string true "ISO 639-3 code"
// @Param payload body dictionary.Document true "Dictionary"
// @Success 200 {object} domain.DictionaryLoaded "ok"
// @Security BearerAuth
// @Router /codemix/dictionaries/{code} [post]
func (h *handlers) upload(r *stdhttp.Request, doc dictionary.Document) (any, error) {
	code := httpkit.Param(r, "code")
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode dictionary")
	}
	if err := h.deps.Dictionaries.LoadDictionary(code, bytes.NewReader(body)); err != nil {
		return nil, err
	}
	return h.loaded(r), nil
}

// swagger:route POST /codemix/dictionaries/reload Codemix codemixReload
// @Summary Reload dictionaries from the server's dictionary directory
// @Tags Codemix
// @Accept json
// @Produce json
// @Param payload body domain.ReloadInput true "File"
// @Success 200 {object} domain.DictionaryLoaded "ok"
// @Security BearerAuth
// @Router /codemix/dictionaries/reload [post]
func (h *handlers) reload(r *stdhttp.Request, in domain.ReloadInput) (any, error) {
	p, err := resolve(h.deps.DictionaryDir, in.File)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Dictionaries.ReloadDictionary(p); err != nil {
		return nil, err
	}
	return h.loaded(r), nil
}

func (h *handlers) loaded(r *stdhttp.Request) domain.DictionaryLoaded {
	st := h.deps.Stats.Statistics(r.Context())
	return domain.DictionaryLoaded{Languages: st.Dictionaries, Version: st.DictionaryVersion}
}

// resolve keeps reload requests inside dir
func resolve(dir, file string) (string, error) {
	if dir == "" {
		return "", perr.New(perr.ErrorCodeUnavailable, "dictionary reload is not configured")
	}
	if file == "" {
		return dir, nil
	}
	clean := filepath.Clean(file)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", perr.WithField(perr.New(perr.ErrorCodeValidation, "file must stay inside the dictionary directory"), "file")
	}
	return filepath.Join(dir, clean), nil
}
