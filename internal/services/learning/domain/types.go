// Package domain defines the types and ports of the learning service
package domain

import (
	"time"

	"codemix/internal/core/fusion"
)

// SnapshotVersion is bumped when the persisted layout changes
const SnapshotVersion = 1

// Failure reasons
const (
	ReasonLowConfidence       = "low_confidence"
	ReasonContradictsPromoted = "correction_contradicts_promoted"
)

// Entry is the cached state of one pattern signature
type Entry struct {
	Decision   fusion.Decision `json:"decision" msgpack:"decision"`
	UseCount   int             `json:"use_count" msgpack:"use_count"`
	Confidence float64         `json:"confidence" msgpack:"confidence"` // running mean
	LastUsed   time.Time       `json:"last_used" msgpack:"last_used"`
	Promoted   bool            `json:"promoted" msgpack:"promoted"`
	FirstSeen  time.Time       `json:"first_seen" msgpack:"first_seen"`
	Example    string          `json:"example,omitempty" msgpack:"example,omitempty"`
	Tick       uint64          `json:"tick" msgpack:"tick"` // recency order for eviction
}

// Clone deep copies the entry
func (e Entry) Clone() Entry {
	c := e
	c.Decision = e.Decision.Clone()
	return c
}

// Correction is a user supplied label for a text
type Correction struct {
	ID              string           `json:"id" msgpack:"id"`
	Text            string           `json:"text" msgpack:"text"`
	Signature       string           `json:"signature" msgpack:"signature"`
	Detected        string           `json:"detected_language" msgpack:"detected_language"`
	SystemDecision  *fusion.Decision `json:"system_decision,omitempty" msgpack:"system_decision,omitempty"`
	CorrectLanguage string           `json:"correct_language" msgpack:"correct_language"`
	AnnotatorID     string           `json:"annotator_id,omitempty" msgpack:"annotator_id,omitempty"`
	Comment         string           `json:"comment,omitempty" msgpack:"comment,omitempty"`
	Timestamp       time.Time        `json:"timestamp" msgpack:"timestamp"`
}

// Failure records a decision the engine should learn from
type Failure struct {
	ID               string    `json:"id" msgpack:"id"`
	Signature        string    `json:"signature" msgpack:"signature"`
	Reason           string    `json:"reason" msgpack:"reason"`
	DetectedLanguage string    `json:"detected_language" msgpack:"detected_language"`
	ExpectedLanguage string    `json:"expected_language,omitempty" msgpack:"expected_language,omitempty"`
	Confidence       float64   `json:"confidence" msgpack:"confidence"`
	Method           string    `json:"method" msgpack:"method"`
	Timestamp        time.Time `json:"timestamp" msgpack:"timestamp"`
}

// Counters are the persisted request statistics
type Counters struct {
	Requests  int64            `json:"total_requests" msgpack:"total_requests"`
	Hits      int64            `json:"cache_hits" msgpack:"cache_hits"`
	Misses    int64            `json:"cache_misses" msgpack:"cache_misses"`
	Languages map[string]int64 `json:"languages,omitempty" msgpack:"languages,omitempty"`
	Methods   map[string]int64 `json:"methods,omitempty" msgpack:"methods,omitempty"`
}

// Snapshot is everything the store persists
type Snapshot struct {
	Version     int               `json:"version" msgpack:"version"`
	SavedAt     time.Time         `json:"saved_at" msgpack:"saved_at"`
	Patterns    map[string]Entry  `json:"patterns" msgpack:"patterns"`
	Overrides   map[string]string `json:"overrides,omitempty" msgpack:"overrides,omitempty"`
	Corrections []Correction      `json:"corrections,omitempty" msgpack:"corrections,omitempty"`
	Failures    []Failure         `json:"failures,omitempty" msgpack:"failures,omitempty"`
	Counters    Counters          `json:"stats" msgpack:"stats"`
}

// CorrectionInput is what a caller submits
type CorrectionInput struct {
	Text            string
	Signature       string
	Detected        string
	CorrectLanguage string
	AnnotatorID     string
	Comment         string
}

// Receipt acknowledges a stored correction
type Receipt struct {
	ID        string    `json:"correction_id"`
	Signature string    `json:"signature"`
	Language  string    `json:"correct_language"`
	Demoted   bool      `json:"demoted"`
	Timestamp time.Time `json:"timestamp"`
}

// LanguageCount is one row of a ranking
type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

// Misdetection counts corrections from one language to another
type Misdetection struct {
	Detected string `json:"detected"`
	Expected string `json:"expected"`
	Count    int    `json:"count"`
}

// Suggestion is a language users proposed for a signature
type Suggestion struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Stats is the read model of the cache
type Stats struct {
	TotalPatterns        int              `json:"total_patterns"`
	PromotedPatterns     int              `json:"promoted_patterns"`
	TotalRequests        int64            `json:"total_requests"`
	CacheHits            int64            `json:"cache_hits"`
	CacheMisses          int64            `json:"cache_misses"`
	CacheHitRate         float64          `json:"cache_hit_rate"`
	TotalCorrections     int              `json:"total_corrections"`
	TotalFailures        int              `json:"total_failures"`
	TopDetectedLanguages []LanguageCount  `json:"top_detected_languages"`
	DetectionMethods     map[string]int64 `json:"detection_methods"`
	FailureReasons       map[string]int   `json:"failure_reasons,omitempty"`
	CommonMisdetections  []Misdetection   `json:"common_misdetections,omitempty"`
}
