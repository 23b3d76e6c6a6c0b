package tablenorm

import (
	"testing"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

func TestCoerceNull(t *testing.T) {
	if got := Coerce("anything", true, table.Textual); got != "" {
		t.Errorf("Coerce(null) = %q, want empty", got)
	}
}

func TestCoerceNumericRounding(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"3.0", "3"},
		{"3.6", "4"},
		{"3.4", "3"},
		{"-2.5", "-2"},
		{"2.5", "2"},
		{"3.5", "4"},
	}
	for _, c := range cases {
		got := Coerce(c.raw, false, table.Numeric)
		if got != c.want {
			t.Errorf("Coerce(%q, Numeric) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestCoerceNumericUnparseable(t *testing.T) {
	if got := Coerce("not-a-number", false, table.Numeric); got != "not-a-number" {
		t.Errorf("Coerce(unparseable) = %q, want passthrough", got)
	}
}

func TestCoerceTextualPassthrough(t *testing.T) {
	if got := Coerce("Hello World", false, table.Textual); got != "Hello World" {
		t.Errorf("Coerce(textual) = %q, want unchanged", got)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("") {
		t.Error("IsEmpty(\"\") should be true")
	}
	if IsEmpty("x") {
		t.Error("IsEmpty(\"x\") should be false")
	}
}
