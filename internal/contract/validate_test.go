package contract

import (
	"errors"
	"strings"
	"testing"
)

type item struct {
	key   string
	value float64
}

var bounds = Bounds{Min: 0, Max: 3}

func validate(items []item, expected int, universe []string) ValidationResult {
	return Validate("test", expected, items,
		func(i item) string { return i.key },
		func(i item) float64 { return i.value },
		universe, bounds)
}

func TestValidatePasses(t *testing.T) {
	items := []item{{"a", 1.0}, {"b", 2.5}, {"c", 0.0}}
	res := validate(items, 3, []string{"a", "b", "c"})
	if !res.Passed {
		t.Fatalf("expected pass, got errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.Err("test") != nil {
		t.Error("Err on a passed result must be nil")
	}
}

func TestValidateCardinalityDelta(t *testing.T) {
	items := []item{{"a", 1.0}, {"b", 2.0}}
	res := validate(items, 3, []string{"a", "b"})
	if res.Passed {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Errors[0], "delta -1") {
		t.Errorf("cardinality error must report the delta, got %q", res.Errors[0])
	}
}

func TestValidateCoverageItemized(t *testing.T) {
	items := []item{{"a", 1.0}, {"a", 1.5}, {"x", 2.0}}
	res := validate(items, 3, []string{"a", "b", "c"})
	if res.Passed {
		t.Fatal("expected failure")
	}
	joined := strings.Join(res.Errors, " | ")
	for _, want := range []string{"missing keys: [b c]", "duplicate keys: [a (x2)]", "outside universe: [x]"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors %q missing %q", joined, want)
		}
	}
}

func TestValidateBoundsSeverity(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		passed   bool
		warnings int
	}{
		{"in bounds", 2.9, true, 0},
		{"mild overshoot clamping", 3.4, true, 1},
		{"negative is severe", -0.1, false, 0},
		{"beyond twice the bound is severe", 6.5, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validate([]item{{"a", tt.value}}, 1, []string{"a"})
			if res.Passed != tt.passed {
				t.Errorf("passed = %v, want %v (errors %v)", res.Passed, tt.passed, res.Errors)
			}
			if len(res.Warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", res.Warnings, tt.warnings)
			}
			if !tt.passed && res.Kind() != KindBounds {
				t.Errorf("kind = %v, want %v", res.Kind(), KindBounds)
			}
		})
	}
}

func TestErrCarriesKindAndDetails(t *testing.T) {
	res := validate([]item{{"a", 1.0}}, 2, []string{"a", "b"})
	err := res.Err("area")

	var tagged *Error
	if !errors.As(err, &tagged) {
		t.Fatalf("expected *contract.Error, got %T", err)
	}
	if tagged.Kind != KindCardinality || tagged.Tier != "area" {
		t.Errorf("unexpected tag: %+v", tagged)
	}
	if len(tagged.Details) == 0 {
		t.Error("fatal error must carry the itemized details, never a bare failure")
	}
	if !strings.Contains(err.Error(), "missing keys") {
		t.Errorf("error text %q does not itemize the violation", err.Error())
	}
}
