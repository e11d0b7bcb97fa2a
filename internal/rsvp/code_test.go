package rsvp

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		code, err := GenerateConfirmationCode()
		require.NoError(t, err)
		require.Regexp(t, codePattern, code)
		require.True(t, ValidCode(code))
		seen[code] = struct{}{}
	}
	// 36^8 possibilities; 500 draws colliding would point at a broken source.
	assert.Len(t, seen, 500)
}

func TestValidCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ABCD1234", true},
		{"abcd1234", false},
		{"ABCD123", false},
		{"ABCD12345", false},
		{"ABCD-234", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidCode(tt.code), tt.code)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD1234", NormalizeCode("  abcd1234 "))
}
