package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("same bytes"))
	b := ContentHash([]byte("same bytes"))
	c := ContentHash([]byte("different bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestPromptFingerprint(t *testing.T) {
	base := PromptFingerprint("a cat in the style of Turner")

	tests := []struct {
		name   string
		prompt string
		same   bool
	}{
		{"identical", "a cat in the style of Turner", true},
		{"case folded", "A Cat In The Style Of TURNER", true},
		{"leading and trailing space", "  a cat in the style of Turner  ", true},
		{"collapsed interior whitespace", "a  cat\tin the\n style of Turner", true},
		{"different wording", "a dog in the style of Turner", false},
		{"punctuation matters", "a cat, in the style of Turner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptFingerprint(tt.prompt)
			if tt.same {
				assert.Equal(t, base, got)
			} else {
				assert.NotEqual(t, base, got)
			}
		})
	}
}
