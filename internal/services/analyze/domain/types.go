// Package domain defines the types and ports of the analyze service
package domain

import (
	"time"

	"codemix/internal/core/fusion"
	"codemix/internal/core/normalize"
	ldomain "codemix/internal/services/learning/domain"
)

type (
	// CorrectionInput is a user supplied label; Signature may be left empty
	// and is then derived from Text
	CorrectionInput = ldomain.CorrectionInput

	// Receipt acknowledges a stored correction
	Receipt = ldomain.Receipt
)

// Timings of one analysis
type Timings struct {
	Total  time.Duration `json:"total_ns"`
	Oracle time.Duration `json:"oracle_ns"`
}

// Result is a decision plus the per call facts around it
type Result struct {
	fusion.Decision

	Signature         string           `json:"signature"`
	CacheHit          bool             `json:"cache_hit"`
	Bucket            normalize.Bucket `json:"bucket"`
	DictionaryVersion string           `json:"dictionary_version"`
	OracleError       string           `json:"oracle_error,omitempty"`
	Timings           Timings          `json:"timings"`
}

// Event is one served decision as shipped to the analytics sink
type Event struct {
	At                time.Time
	Signature         string
	Language          string
	Languages         []string
	Script            string
	Method            string
	Confidence        float64
	IsCodeMixed       bool
	CodeMixingScore   float64
	NeedsConversion   bool
	CacheHit          bool
	Bucket            string
	RuneLen           int
	DictionaryVersion string
	Duration          time.Duration
}

// Statistics is the cache read model plus engine facts
type Statistics struct {
	ldomain.Stats

	DictionaryVersion string   `json:"dictionary_version"`
	Dictionaries      []string `json:"dictionaries"`
	Oracle            string   `json:"oracle"`
	EventsDropped     int64    `json:"events_dropped"`
}
