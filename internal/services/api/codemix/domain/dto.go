// Package domain holds DTOs for the codemix http contracts
package domain

// AnalyzeInput is the body of POST /codemix/analyze
type AnalyzeInput struct {
	Text     string `json:"text" validate:"required,max=10000" example:"yaar this movie is bahut accha"`
	Detailed bool   `json:"detailed,omitempty" example:"false"`
}

// BatchInput is the body of POST /codemix/analyze/batch
type BatchInput struct {
	Texts []string `json:"texts" validate:"required,min=1,max=256,dive,max=10000"`
}

// CorrectionInput is the body of POST /codemix/corrections
type CorrectionInput struct {
	Text             string `json:"text" validate:"required,max=10000" example:"mai aaj bahut khush hai"`
	Signature        string `json:"signature,omitempty" validate:"omitempty,max=128"`
	DetectedLanguage string `json:"detected_language,omitempty" validate:"omitempty,max=16" example:"hin"`
	CorrectLanguage  string `json:"correct_language" validate:"required,max=16" example:"mar"`
	AnnotatorID      string `json:"annotator_id,omitempty" validate:"omitempty,max=128"`
	Comment          string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// SuggestionsInput is the body of POST /codemix/suggestions
type SuggestionsInput struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// ReloadInput is the body of POST /codemix/dictionaries/reload. File is
// relative to the configured dictionary directory; empty reloads all of it.
type ReloadInput struct {
	File string `json:"file,omitempty" validate:"omitempty,max=255" example:"hindi.json"`
}

// DictionaryLoaded acknowledges a dictionary change
type DictionaryLoaded struct {
	Languages []string `json:"languages"`
	Version   string   `json:"version"`
}
