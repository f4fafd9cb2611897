package domain_test

import (
	"strings"
	"testing"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsAccountPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"letters digits symbol", "abc12345!", true},
		{"exactly 8", "Ab1!Ab1!", true},
		{"exactly 16", "Abcdefgh1234567!", true},
		{"backslash counts as symbol", `abcdef1\`, true},
		{"bracket counts as symbol", "abcdef1[", true},
		{"quote counts as symbol", `abcdef1"`, true},
		{"astral characters count twice", "a1!😀😀ab", true},
		{"15 code units", "a1!" + strings.Repeat("😀", 6), true},

		{"empty", "", false},
		{"7 chars", "Ab1!Ab1", false},
		{"17 chars", strings.Repeat("a", 15) + "1!", false},
		{"no digit", "abcdefgh!", false},
		{"no letter", "12345678!", false},
		{"no symbol", "abcd12345", false},
		{"contains space", "abc 1234!", false},
		{"contains tab", "abc\t1234!", false},
		{"contains byte order mark", "Passw0rd!\uFEFF", false},
		{"contains no-break space", "Pass\u00A0w0rd!", false},
		{"17 code units", "a1!" + strings.Repeat("😀", 7), false},
		{"non-ascii letter only", "ñññññ12!", false},
		{"symbol outside set", "abcd1234*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, domain.IsAccountPassword(tt.password))
		})
	}
}
