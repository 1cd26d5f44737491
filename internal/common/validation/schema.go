package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Kind is the JSON type a field must carry. KindAny leaves the type unconstrained.
type Kind string

const (
	KindAny    Kind = ""
	KindString Kind = "string"
	KindNumber Kind = "number"
)

// FieldRule declares the constraints on one top-level payload field.
type FieldRule struct {
	Name       string
	Kind       Kind
	Required   bool
	AllowEmpty bool // strings only; "" passes every other string constraint
	MinLength  int
	Pattern    string
	Enum       []interface{}
	Minimum    *float64
	Maximum    *float64
	Format     string // gojsonschema format name, e.g. "email"

	// Messages overrides the default templates per code. Templates may use
	// {field}, {limit}, {value}, {allowed}, {type}, {pattern} and {format}.
	Messages map[Code]string
}

// Float returns a pointer for Minimum/Maximum literals.
func Float(f float64) *float64 { return &f }

var defaultMessages = map[Code]string{
	CodeRequired:    `"{field}" is required`,
	CodeInvalidType: `"{field}" must be a {type}`,
	CodeEmpty:       `"{field}" is not allowed to be empty`,
	CodeMinLength:   `"{field}" length must be at least {limit} characters long`,
	CodePattern:     `"{field}" with value "{value}" fails to match the required pattern: {pattern}`,
	CodeEnum:        `"{field}" must be one of [{allowed}]`,
	CodeMinimum:     `"{field}" must be greater than or equal to {limit}`,
	CodeMaximum:     `"{field}" must be less than or equal to {limit}`,
	CodeFormat:      `"{field}" must be a valid {format}`,
	CodeExtraField:  `"{field}" is not allowed`,
	CodeInvalid:     `"{field}" is invalid`,
}

// SchemaOptions tunes schema compilation.
type SchemaOptions struct {
	// AllowUnknown accepts keys that no rule names.
	AllowUnknown bool
}

// Schema is a compiled, immutable rule table. Safe for concurrent use.
type Schema struct {
	rules    map[string]FieldRule
	order    []string
	compiled *gojsonschema.Schema
}

// NewSchema compiles rules into a JSON Schema document and loads it with gojsonschema.
func NewSchema(rules []FieldRule, opts SchemaOptions) (*Schema, error) {
	s := &Schema{
		rules: make(map[string]FieldRule, len(rules)),
		order: make([]string, 0, len(rules)),
	}

	properties := make(map[string]interface{}, len(rules))
	required := []interface{}{}
	for _, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("field rule without a name")
		}
		if _, dup := s.rules[r.Name]; dup {
			return nil, fmt.Errorf("duplicate field rule %q", r.Name)
		}
		s.rules[r.Name] = r
		s.order = append(s.order, r.Name)
		properties[r.Name] = r.jsonSchema()
		if r.Required {
			required = append(required, r.Name)
		}
	}

	doc := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": opts.AllowUnknown,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	s.compiled = compiled
	return s, nil
}

// MustNewSchema is NewSchema for package-level rule tables.
func MustNewSchema(rules []FieldRule, opts SchemaOptions) *Schema {
	s, err := NewSchema(rules, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Order returns the field names in declaration order.
func (s *Schema) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Rule returns the rule declared for field.
func (s *Schema) Rule(field string) (FieldRule, bool) {
	r, ok := s.rules[field]
	return r, ok
}

func (r FieldRule) jsonSchema() map[string]interface{} {
	p := map[string]interface{}{}
	if r.Kind != KindAny {
		p["type"] = string(r.Kind)
	}

	if r.Kind == KindString {
		if !r.AllowEmpty {
			p["minLength"] = max(r.MinLength, 1)
		}
		if r.Pattern != "" {
			if r.AllowEmpty {
				p["pattern"] = "^$|(?:" + r.Pattern + ")"
			} else {
				p["pattern"] = r.Pattern
			}
		}
		if r.Format != "" {
			p["format"] = r.Format
		}
	}

	if len(r.Enum) > 0 {
		enum := make([]interface{}, 0, len(r.Enum)+1)
		enum = append(enum, r.Enum...)
		if r.AllowEmpty {
			enum = append(enum, "")
		}
		p["enum"] = enum
	}
	if r.Minimum != nil {
		p["minimum"] = *r.Minimum
	}
	if r.Maximum != nil {
		p["maximum"] = *r.Maximum
	}
	return p
}

// Validate checks doc against the schema and returns the translated violations, sorted by
// declaration order. An error means the document itself could not be loaded.
func (s *Schema) Validate(doc map[string]interface{}) (Violations, error) {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	var out Violations
	for _, re := range result.Errors() {
		out = append(out, s.translate(re, doc))
	}
	out = suppressAfterEmpty(out)
	out.Sort(s.order)
	return out, nil
}

func (s *Schema) translate(re gojsonschema.ResultError, doc map[string]interface{}) Violation {
	details := re.Details()
	field := re.Field()
	var code Code

	switch re.Type() {
	case "required":
		field = detailString(details, "property", field)
		code = CodeRequired
	case "additional_property_not_allowed":
		field = detailString(details, "property", field)
		code = CodeExtraField
	case "invalid_type":
		code = CodeInvalidType
	case "string_gte":
		code = CodeMinLength
		if v, ok := doc[field].(string); ok && v == "" {
			code = CodeEmpty
		}
	case "pattern":
		code = CodePattern
	case "enum":
		code = CodeEnum
	case "number_gte":
		code = CodeMinimum
	case "number_lte":
		code = CodeMaximum
	case "format":
		code = CodeFormat
	default:
		code = CodeInvalid
	}

	return Violation{
		Field:   field,
		Code:    code,
		Message: s.render(field, code, doc[field]),
	}
}

func (s *Schema) render(field string, code Code, value interface{}) string {
	rule := s.rules[field]
	template, ok := rule.Messages[code]
	if !ok {
		template = defaultMessages[code]
	}

	var limit string
	switch code {
	case CodeMinLength:
		limit = strconv.Itoa(rule.MinLength)
	case CodeMinimum:
		if rule.Minimum != nil {
			limit = formatNumber(*rule.Minimum)
		}
	case CodeMaximum:
		if rule.Maximum != nil {
			limit = formatNumber(*rule.Maximum)
		}
	}

	allowed := make([]string, len(rule.Enum))
	for i, e := range rule.Enum {
		allowed[i] = fmt.Sprint(e)
	}

	typeName := string(rule.Kind)
	if typeName == "" {
		typeName = "value"
	}

	return strings.NewReplacer(
		"{field}", field,
		"{limit}", limit,
		"{value}", fmt.Sprint(value),
		"{allowed}", strings.Join(allowed, ", "),
		"{type}", typeName,
		"{pattern}", rule.Pattern,
		"{format}", rule.Format,
	).Replace(template)
}

// suppressAfterEmpty drops the follow-on violations of a field already reported as empty.
func suppressAfterEmpty(vs Violations) Violations {
	empty := map[string]bool{}
	for _, v := range vs {
		if v.Code == CodeEmpty {
			empty[v.Field] = true
		}
	}
	if len(empty) == 0 {
		return vs
	}
	out := vs[:0]
	for _, v := range vs {
		if empty[v.Field] && v.Code != CodeEmpty {
			continue
		}
		out = append(out, v)
	}
	return out
}

func detailString(details gojsonschema.ErrorDetails, key, fallback string) string {
	if v, ok := details[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
