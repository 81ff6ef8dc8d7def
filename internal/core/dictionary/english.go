package dictionary

// englishCore are function words that stay English even when some romanized
// Indic dictionary happens to share the spelling
var englishCore = wordSet(
	"the", "a", "an", "and", "or", "but", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "do", "does", "did", "will",
	"would", "could", "should", "may", "might", "must", "can", "i", "you",
	"he", "she", "it", "we", "they", "me", "him", "her", "us", "them", "my",
	"your", "his", "its", "our", "their", "this", "that", "these", "those",
	"to", "of", "in", "on", "at", "for", "with", "from", "by", "so", "not",
	"no", "yes", "if", "what", "when", "where", "who", "why", "how",
)

// englishCommon is the wider everyday vocabulary used for lexical overlap
var englishCommon = wordSet(
	"about", "after", "again", "all", "also", "always", "am", "any", "anyway",
	"ask", "away", "back", "bad", "because", "before", "best", "better",
	"big", "bit", "boring", "bro", "busy", "buy", "call", "come", "cool",
	"day", "dear", "done", "dont", "down", "each", "early", "eat", "else",
	"end", "ending", "enough", "even", "ever", "every", "everyone", "feel",
	"few", "finally", "find", "fine", "first", "friend", "friends", "fun",
	"funny", "get", "give", "go", "going", "gone", "good", "got", "great",
	"guys", "happy", "hard", "hate", "hello", "help", "here", "hey", "hi",
	"home", "hope", "how", "idea", "im", "into", "just", "keep", "kind",
	"know", "last", "late", "later", "let", "lets", "life", "like", "little",
	"live", "long", "look", "lot", "love", "make", "man", "many", "maybe",
	"more", "morning", "most", "much", "need", "never", "new", "next",
	"nice", "night", "nothing", "now", "okay", "ok", "old", "one", "only",
	"other", "out", "over", "people", "please", "plan", "pretty", "problem",
	"quite", "ready", "really", "right", "said", "same", "say", "see",
	"seriously", "some", "something", "soon", "still", "stop", "such",
	"sure", "take", "talk", "tell", "than", "thank", "then", "there", "thing",
	"things", "think", "today", "tomorrow", "tonight", "too", "totally",
	"true", "try", "two", "up", "very", "wait", "want", "watch", "way",
	"weekend", "well", "went", "work", "working", "worry", "wow", "yeah",
	"year", "yesterday", "yet", "phone", "time", "office", "meeting",
	"traffic", "party", "movie", "sorry", "thanks",
)

func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// IsEnglishCore reports whether w is an English function word
func IsEnglishCore(w string) bool {
	_, ok := englishCore[w]
	return ok
}
