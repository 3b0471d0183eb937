package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{"plain", "Hello World", "Hello World", nil},
		{"safe controls kept", "Line1\nLine2\tTabbed\r", "Line1\nLine2\tTabbed\r", nil},
		{"escape dropped", "\x1b[31mRed\x1b[0m", "[31mRed[0m", nil},
		{"null and bell dropped", "Null\x00Byte\x07", "NullByte", nil},
		{"at limit", strings.Repeat("a", DefaultMaxInputSize), strings.Repeat("a", DefaultMaxInputSize), nil},
		{"over limit", strings.Repeat("a", DefaultMaxInputSize+1), "", ErrInputTooLarge},
		{"invalid utf8", "\xbd\xb2\x3d\xbc", "", ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		numeric bool
		input   string
		want    string
		err     error
	}{
		{"text is cleaned", false, "4\a2", "42", nil},
		{"digits pass", true, "42", "42", nil},
		{"numeric keeps control chars", true, "4\a2", "4\a2", nil},
		{"numeric keeps markup", true, "1<b>2</b>", "1<b>2</b>", nil},
		{"numeric still size checked", true, strings.Repeat("1", DefaultMaxInputSize+1), "", ErrInputTooLarge},
		{"numeric still utf8 checked", true, "\xff", "", ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeAnswer(tt.numeric, tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxInputSize_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")
	assert.Equal(t, 10, MaxInputSize())

	_, err := SanitizeInput("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)
	_, err = SanitizeInput("12345")
	assert.NoError(t, err)

	t.Setenv(EnvMaxInputSize, "nope")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}
