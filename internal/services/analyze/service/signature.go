package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"codemix/internal/core/normalize"
	"codemix/internal/core/script"
)

// salientWords feed the signature hash
const salientWords = 3

// Signature groups texts of the same shape: length bucket, word count,
// dominant script and the first few lower cased words.
func Signature(s normalize.Sample, comp script.Composition) string {
	words := strings.Fields(strings.ToLower(s.Text))
	if len(words) > salientWords {
		words = words[:salientWords]
	}
	sum := sha256.Sum256([]byte(strings.Join(words, " ")))

	var b strings.Builder
	b.WriteString(string(s.Bucket))
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(s.WordCount))
	b.WriteByte('_')
	b.WriteString(string(comp.DominantScript))
	b.WriteByte('_')
	b.WriteString(hex.EncodeToString(sum[:4]))
	return b.String()
}
