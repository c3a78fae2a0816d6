package contenthash

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "whitespace only hashes like empty",
			input:    " \t\n ",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "ascii text",
			input:    "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "surrounding whitespace is ignored",
			input:    "  abc\n",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Hash(tt.input))
		})
	}
}

// TestHash_Normalization verifies padded and bare content collide.
func TestHash_Normalization(t *testing.T) {
	assert.Equal(t, Hash("Hello"), Hash(" Hello "))
	assert.NotEqual(t, Hash("Hello"), Hash("hello"), "case is significant")
	assert.NotEqual(t, Hash("Hello world"), Hash("Hello  world"), "inner whitespace is significant")
}

func TestHash_Format(t *testing.T) {
	for _, input := range []string{"", "Life is short.", "“引用”", "multi\nline"} {
		assert.Regexp(t, hexDigest, Hash(input))
	}
}
