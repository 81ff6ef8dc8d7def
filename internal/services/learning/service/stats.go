package service

import (
	"sort"

	"codemix/internal/services/learning/domain"
)

const topN = 5

// Stats summarizes the cache
func (s *Service) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.Stats{
		TotalPatterns:    len(s.patterns),
		TotalRequests:    s.counters.Requests,
		CacheHits:        s.counters.Hits,
		CacheMisses:      s.counters.Misses,
		TotalCorrections: len(s.corrections),
		TotalFailures:    len(s.failures),
		DetectionMethods: make(map[string]int64, len(s.counters.Methods)),
		FailureReasons:   map[string]int{},
	}
	for _, e := range s.patterns {
		if e.Promoted {
			st.PromotedPatterns++
		}
	}
	if n := st.CacheHits + st.CacheMisses; n > 0 {
		st.CacheHitRate = round4(float64(st.CacheHits) / float64(n))
	}
	for m, n := range s.counters.Methods {
		st.DetectionMethods[m] = n
	}

	langs := make([]domain.LanguageCount, 0, len(s.counters.Languages))
	for l, n := range s.counters.Languages {
		langs = append(langs, domain.LanguageCount{Language: l, Count: n})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].Count != langs[j].Count {
			return langs[i].Count > langs[j].Count
		}
		return langs[i].Language < langs[j].Language
	})
	if len(langs) > topN {
		langs = langs[:topN]
	}
	st.TopDetectedLanguages = langs

	for _, f := range s.failures {
		st.FailureReasons[f.Reason]++
	}

	type pair struct{ detected, expected string }
	mis := map[pair]int{}
	for _, c := range s.corrections {
		if c.Detected != "" && c.Detected != c.CorrectLanguage {
			mis[pair{c.Detected, c.CorrectLanguage}]++
		}
	}
	for p, n := range mis {
		st.CommonMisdetections = append(st.CommonMisdetections, domain.Misdetection{Detected: p.detected, Expected: p.expected, Count: n})
	}
	sort.Slice(st.CommonMisdetections, func(i, j int) bool {
		a, b := st.CommonMisdetections[i], st.CommonMisdetections[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Detected != b.Detected {
			return a.Detected < b.Detected
		}
		return a.Expected < b.Expected
	})
	if len(st.CommonMisdetections) > topN {
		st.CommonMisdetections = st.CommonMisdetections[:topN]
	}
	return st
}
