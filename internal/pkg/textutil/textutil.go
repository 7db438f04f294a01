// Package textutil provides text processing helpers for the retrieval pipeline.
package textutil

import (
	"errors"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidChunking indicates a chunk size/overlap combination that can
// never terminate or produce useful chunks.
var ErrInvalidChunking = errors.New("textutil: chunk overlap must be non-negative and smaller than chunk size")

// SplitIntoChunks splits text into overlapping chunks of chunkSize Unicode
// characters, each consecutive pair sharing overlap characters. The final
// chunk may be shorter. Splitting is deterministic: the same input always
// yields the same chunks.
func SplitIntoChunks(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidChunking
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	if len(runes) <= chunkSize {
		return []string{text}, nil
	}

	var chunks []string
	step := chunkSize - overlap

	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

// CosineSimilarity computes the cosine similarity of two vectors.
// The result is in [-1, 1]; mismatched or empty vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeCosineSimilarity maps a cosine similarity from [-1, 1] to [0, 1].
func NormalizeCosineSimilarity(similarity float64) float64 {
	return (similarity + 1) / 2
}

// TruncateString truncates a string to at most maxLen Unicode characters.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}

// Tokenize lowercases s, splits it on non-alphanumeric runes and returns
// tokens longer than minLen characters.
func Tokenize(s string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var tokens []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
