package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

var tagValidate = validator.New()

func init() {
	gojsonschema.FormatCheckers.Add("email", EmailFormatChecker{})
}

// EmailFormatChecker replaces gojsonschema's net/mail based "email" check, which accepts
// display names, quoted local parts and hosts without a top-level domain.
type EmailFormatChecker struct{}

// IsFormat reports whether input is a bare addr-spec with a dotted domain. Non-strings pass;
// the type keyword reports them.
func (EmailFormatChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	if strings.ContainsAny(s, "\" \t<>") {
		return false
	}
	return tagValidate.Var(s, "email") == nil
}
