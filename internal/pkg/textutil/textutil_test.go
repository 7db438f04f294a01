package textutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
)

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "short text returns single chunk",
			text:      "hello world",
			chunkSize: 100,
			overlap:   20,
			want:      []string{"hello world"},
		},
		{
			name:      "text equal to chunk size returns single chunk",
			text:      strings.Repeat("a", 50),
			chunkSize: 50,
			overlap:   10,
			want:      []string{strings.Repeat("a", 50)},
		},
		{
			name:      "empty text returns no chunks",
			text:      "",
			chunkSize: 10,
			overlap:   2,
			want:      nil,
		},
		{
			name:      "overlapping chunks",
			text:      "abcdefghij",
			chunkSize: 4,
			overlap:   2,
			want:      []string{"abcd", "cdef", "efgh", "ghij"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textutil.SplitIntoChunks(tt.text, tt.chunkSize, tt.overlap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitIntoChunksBoundaries(t *testing.T) {
	// 2500 characters at size 1000 / overlap 150 must produce exactly the
	// windows [0:1000], [850:1850], [1700:2500].
	var sb strings.Builder
	for i := 0; i < 2500; i++ {
		sb.WriteByte(byte('a' + i%26))
	}
	text := sb.String()

	chunks, err := textutil.SplitIntoChunks(text, 1000, 150)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, text[0:1000], chunks[0])
	assert.Equal(t, text[850:1850], chunks[1])
	assert.Equal(t, text[1700:2500], chunks[2])
}

func TestSplitIntoChunksDeterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 200)

	first, err := textutil.SplitIntoChunks(text, 300, 50)
	require.NoError(t, err)
	second, err := textutil.SplitIntoChunks(text, 300, 50)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitIntoChunksInvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{name: "zero chunk size", chunkSize: 0, overlap: 0},
		{name: "negative overlap", chunkSize: 10, overlap: -1},
		{name: "overlap equals chunk size", chunkSize: 10, overlap: 10},
		{name: "overlap exceeds chunk size", chunkSize: 10, overlap: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := textutil.SplitIntoChunks("some text", tt.chunkSize, tt.overlap)
			assert.ErrorIs(t, err, textutil.ErrInvalidChunking)
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical vectors", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "mismatched lengths", a: []float32{1, 2}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizeCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, textutil.NormalizeCosineSimilarity(1), 1e-9)
	assert.InDelta(t, 0.5, textutil.NormalizeCosineSimilarity(0), 1e-9)
	assert.InDelta(t, 0.0, textutil.NormalizeCosineSimilarity(-1), 1e-9)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", textutil.TruncateString("hello", 10))
	assert.Equal(t, "hel", textutil.TruncateString("hello", 3))
	assert.Equal(t, "你好", textutil.TruncateString("你好世界", 2))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		minLen int
		want   []string
	}{
		{
			name:   "drops short tokens and punctuation",
			input:  "Tell me about Go projects!",
			minLen: 2,
			want:   []string{"tell", "about", "projects"},
		},
		{
			name:   "lowercases tokens",
			input:  "Kubernetes AND Docker",
			minLen: 2,
			want:   []string{"kubernetes", "and", "docker"},
		},
		{
			name:   "empty input",
			input:  "   ",
			minLen: 2,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.Tokenize(tt.input, tt.minLen))
		})
	}
}
