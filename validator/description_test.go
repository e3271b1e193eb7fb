package validator

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestDescription_Shape(t *testing.T) {
	tests := []struct {
		name string
		desc Description
		want Shape
	}{
		{"zero", Description{}, ShapeNone},
		{"rule", DescribeRule(Rule{}), ShapeRule},
		{"rules", DescribeRules(Rule{}, Rule{}), ShapeRules},
	}

	for _, tt := range tests {
		if got := tt.desc.Shape(); got != tt.want {
			t.Errorf("%s: Shape() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDescription_Rules(t *testing.T) {
	if got := (Description{}).Rules(); got != nil {
		t.Errorf("zero description Rules() = %v, want nil", got)
	}
	if got := DescribeRule(Rule{Pattern: "^a"}).Rules(); len(got) != 1 || got[0].Pattern != "^a" {
		t.Errorf("single-rule Rules() = %v", got)
	}
	if got := DescribeRules(Rule{}, Rule{}).Rules(); len(got) != 2 {
		t.Errorf("rule-list Rules() returned %d rules, want 2", len(got))
	}
}

func TestDescription_WithRequired_Rule(t *testing.T) {
	desc := DescribeRule(Rule{Pattern: "^a"})

	req := desc.WithRequired(true)
	if !req.Required() {
		t.Error("Required() = false after WithRequired(true)")
	}
	if req.Rules()[0].Pattern != "^a" {
		t.Error("WithRequired dropped the existing rule content")
	}

	// Original description is unchanged.
	if desc.Required() {
		t.Error("WithRequired mutated the original description")
	}

	off := req.WithRequired(false)
	if off.Required() {
		t.Error("Required() = true after WithRequired(false)")
	}
}

func TestDescription_WithRequired_Rules(t *testing.T) {
	// No element carries the required key: a new entry is appended.
	desc := DescribeRules(Rule{Pattern: "^a"})
	req := desc.WithRequired(true)
	if got := len(req.Rules()); got != 2 {
		t.Fatalf("rule count = %d after WithRequired on keyless list, want 2", got)
	}
	if !req.Required() {
		t.Error("Required() = false after WithRequired(true)")
	}

	// Elements carrying the key are toggled in place, nothing appended.
	desc = DescribeRules(Rule{Required: boolPtr(true)}, Rule{Pattern: "^a"})
	off := desc.WithRequired(false)
	if got := len(off.Rules()); got != 2 {
		t.Fatalf("rule count = %d after toggle, want 2", got)
	}
	if off.Required() {
		t.Error("Required() = true after WithRequired(false)")
	}
}

func TestDescription_WithRequired_Zero(t *testing.T) {
	desc := Description{}.WithRequired(true)
	if desc.Shape() != ShapeRule {
		t.Errorf("Shape() = %v, want ShapeRule", desc.Shape())
	}
	if !desc.Required() {
		t.Error("Required() = false")
	}
}
