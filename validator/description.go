package validator

// Shape identifies how a description was declared.
type Shape int

const (
	// ShapeNone is the zero description: no rules.
	ShapeNone Shape = iota

	// ShapeRule is a single-rule (object shaped) description.
	ShapeRule

	// ShapeRules is a rule-list (array shaped) description.
	ShapeRules
)

// Description is an opaque validator description attached to a field:
// either one Rule or an ordered list of Rules. The zero value carries
// no rules.
type Description struct {
	rule  *Rule
	rules []Rule
}

// DescribeRule builds a single-rule description.
func DescribeRule(r Rule) Description {
	return Description{rule: &r}
}

// DescribeRules builds a rule-list description.
func DescribeRules(rules ...Rule) Description {
	return Description{rules: rules}
}

// Shape returns how the description was declared.
func (d Description) Shape() Shape {
	switch {
	case d.rule != nil:
		return ShapeRule
	case d.rules != nil:
		return ShapeRules
	default:
		return ShapeNone
	}
}

// IsZero reports whether the description carries no rules.
func (d Description) IsZero() bool {
	return d.rule == nil && d.rules == nil
}

// Rules returns the parsed rule list: one element for a single-rule
// description, the list itself for a rule-list description.
func (d Description) Rules() []Rule {
	switch {
	case d.rule != nil:
		return []Rule{*d.rule}
	case d.rules != nil:
		return d.rules
	default:
		return nil
	}
}

// Required reports whether any rule declares required: true.
func (d Description) Required() bool {
	for _, r := range d.Rules() {
		if r.Required != nil && *r.Required {
			return true
		}
	}
	return false
}

// WithRequired returns a copy of the description with the required flag
// applied. For a single-rule description the flag is set on the rule.
// For a rule-list description it is toggled on every rule that already
// carries the required key; if none does, a new required-only rule is
// appended. A zero description becomes a single required rule.
func (d Description) WithRequired(required bool) Description {
	req := required

	switch d.Shape() {
	case ShapeRule:
		r := *d.rule
		r.Required = &req
		return Description{rule: &r}

	case ShapeRules:
		carried := false
		for i := range d.rules {
			if d.rules[i].Required != nil {
				carried = true
				break
			}
		}
		rules := make([]Rule, len(d.rules))
		copy(rules, d.rules)
		if carried {
			for i := range rules {
				if rules[i].Required != nil {
					rules[i].Required = &req
				}
			}
			return Description{rules: rules}
		}
		return Description{rules: append(rules, Rule{Required: &req})}

	default:
		return Description{rule: &Rule{Required: &req}}
	}
}
