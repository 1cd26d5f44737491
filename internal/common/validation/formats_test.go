package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailFormatChecker(t *testing.T) {
	tests := []struct {
		input interface{}
		want  bool
	}{
		{"alice@example.com", true},
		{"alice.smith+cards@mail.example.ca", true},
		{"Alice <alice@example.com>", false},
		{"alice@localhost", false},
		{`"alice smith"@example.com`, false},
		{"alice@", false},
		{"alice.example.com", false},
		{"", false},
		{42, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EmailFormatChecker{}.IsFormat(tt.input), "input %v", tt.input)
	}
}

func TestSchema_Validate_RejectsLooseEmails(t *testing.T) {
	s := newTestSchema(t)

	for _, email := range []string{"Alice <alice@example.com>", "alice@localhost", `"alice smith"@example.com`} {
		t.Run(email, func(t *testing.T) {
			d := validDoc()
			d["email"] = email

			vs, err := s.Validate(d)
			require.NoError(t, err)
			require.Len(t, vs, 1)
			assert.Equal(t, CodeFormat, vs[0].Code)
			assert.Equal(t, `"email" must be a valid email`, vs[0].Message)
		})
	}
}
