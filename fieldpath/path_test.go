package fieldpath

import (
	"reflect"
	"testing"
)

func TestPath_Segments(t *testing.T) {
	tests := []struct {
		path Path
		want []string
	}{
		{"", nil},
		{"user", []string{"user"}},
		{"user.name", []string{"user", "name"}},
		{"items.0.price", []string{"items", "0", "price"}},
	}

	for _, tt := range tests {
		if got := tt.path.Segments(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q.Segments() = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPath_Parent(t *testing.T) {
	tests := []struct {
		path Path
		want Path
	}{
		{"items.0.price", "items.0"},
		{"items.0", "items"},
		{"items", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := tt.path.Parent(); got != tt.want {
			t.Errorf("%q.Parent() = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPath_Concat(t *testing.T) {
	tests := []struct {
		path    Path
		segment string
		want    Path
	}{
		{"user", "name", "user.name"},
		{"", "user", "user"},
		{"items.0", "price", "items.0.price"},
	}

	for _, tt := range tests {
		if got := tt.path.Concat(tt.segment); got != tt.want {
			t.Errorf("%q.Concat(%q) = %q, want %q", tt.path, tt.segment, got, tt.want)
		}
	}
}

func TestPath_Base(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{"items.0.price", "price"},
		{"items", "items"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := tt.path.Base(); got != tt.want {
			t.Errorf("%q.Base() = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPath_Index(t *testing.T) {
	tests := []struct {
		path   Path
		want   int
		wantOK bool
	}{
		{"items.1", 1, true},
		{"items.2.price", 2, true},
		{"items.1.rows.3", 3, true},
		{"user.name", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.path.Index()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%q.Index() = (%d, %v), want (%d, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPath_WithIndex(t *testing.T) {
	tests := []struct {
		path   Path
		n      int
		want   Path
		wantOK bool
	}{
		{"items.1", 2, "items.2", true},
		{"items.1.price", 0, "items.0.price", true},
		{"items.1.rows.3", 5, "items.1.rows.5", true},
		{"user.name", 2, "user.name", false},
	}

	for _, tt := range tests {
		got, ok := tt.path.WithIndex(tt.n)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%q.WithIndex(%d) = (%q, %v), want (%q, %v)", tt.path, tt.n, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPath_HasPrefix(t *testing.T) {
	tests := []struct {
		path   Path
		prefix Path
		want   bool
	}{
		{"user.name", "user", true},
		{"user.name", "user.name", true},
		{"user.name", "", true},
		{"username", "user", false},
		{"user", "user.name", false},
	}

	for _, tt := range tests {
		if got := tt.path.HasPrefix(tt.prefix); got != tt.want {
			t.Errorf("%q.HasPrefix(%q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestPath_Matches(t *testing.T) {
	tests := []struct {
		path    Path
		pattern Path
		want    bool
	}{
		{"items.0.price", "items.*.price", true},
		{"items.0.price", "items.**", true},
		{"items.0.price", "**", true},
		{"items", "items.**", true},
		{"user.name", "items.*", false},
		{"items.0.price", "items.*", false},
		{"user.name", "user.name", true},
	}

	for _, tt := range tests {
		if got := tt.path.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
		}
	}
}

func TestPath_IsValid(t *testing.T) {
	tests := []struct {
		path Path
		want bool
	}{
		{"user.name", true},
		{"items.0", true},
		{"", false},
		{".user", false},
		{"user.", false},
		{"user..name", false},
	}

	for _, tt := range tests {
		if got := tt.path.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.path, got, tt.want)
		}
	}
}
