package validation

import "fmt"

// ConditionalRule makes the Then rules apply only when the discriminant Field holds one of In.
// The discriminant is compared as a string; a missing or non-string value never matches.
type ConditionalRule struct {
	Field string
	In    []string
	Then  []FieldRule
}

type compiledCondition struct {
	field  string
	values map[string]bool
	schema *Schema
}

// Conditions is a compiled, ordered table of conditional rules.
type Conditions struct {
	rules []compiledCondition
}

// NewConditions compiles each rule's dependent fields into their own schema. Dependent
// schemas accept unknown keys; the base schema owns that check.
func NewConditions(rules []ConditionalRule) (*Conditions, error) {
	c := &Conditions{rules: make([]compiledCondition, 0, len(rules))}
	for _, r := range rules {
		if r.Field == "" || len(r.In) == 0 {
			return nil, fmt.Errorf("conditional rule needs a discriminant field and values")
		}
		schema, err := NewSchema(r.Then, SchemaOptions{AllowUnknown: true})
		if err != nil {
			return nil, fmt.Errorf("conditional rule on %q: %w", r.Field, err)
		}
		values := make(map[string]bool, len(r.In))
		for _, v := range r.In {
			values[v] = true
		}
		c.rules = append(c.rules, compiledCondition{field: r.Field, values: values, schema: schema})
	}
	return c, nil
}

// MustNewConditions is NewConditions for package-level tables.
func MustNewConditions(rules []ConditionalRule) *Conditions {
	c, err := NewConditions(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Active returns the discriminant fields whose condition currently holds for doc.
func (c *Conditions) Active(doc map[string]interface{}) []string {
	var out []string
	for _, r := range c.rules {
		if r.matches(doc) {
			out = append(out, r.field)
		}
	}
	return out
}

// Validate enforces the dependent rules of every condition that holds for doc.
func (c *Conditions) Validate(doc map[string]interface{}) (Violations, error) {
	var out Violations
	for _, r := range c.rules {
		if !r.matches(doc) {
			continue
		}
		vs, err := r.schema.Validate(doc)
		if err != nil {
			return out, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

func (r compiledCondition) matches(doc map[string]interface{}) bool {
	v, ok := doc[r.field].(string)
	return ok && r.values[v]
}
