package routine

import (
	"errors"
	"strings"
	"testing"
)

func TestGeneratePlanSelectsOneProductPerCategory(t *testing.T) {
	skinTypes := []string{"oily", "dry", "combination", "sensitive", "normal"}
	for _, st := range skinTypes {
		t.Run(st, func(t *testing.T) {
			plan, err := GeneratePlan(st, nil, "7:00", "22:00")
			if err != nil {
				t.Fatalf("GeneratePlan(%q) error: %v", st, err)
			}
			for _, c := range []Category{CategoryCleanser, CategoryToner, CategoryMoisturizer, CategorySunscreen} {
				if plan.Product(c) == "" {
					t.Errorf("no product selected for category %s", c)
				}
			}
		})
	}
}

func TestGeneratePlanUnknownSkinType(t *testing.T) {
	_, err := GeneratePlan("reptilian", nil, "7:00", "22:00")
	if err == nil {
		t.Fatal("expected error for unknown skin type, got nil")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
	if cfgErr.Value != "reptilian" {
		t.Errorf("ConfigurationError.Value = %q, want %q", cfgErr.Value, "reptilian")
	}
}

func TestGeneratePlanSerums(t *testing.T) {
	tests := []struct {
		name     string
		concerns []string
		want     int
	}{
		{"single concern", []string{"acne"}, 1},
		{"repeated tags deduplicated", []string{"acne", "acne", "acne"}, 1},
		{"unknown tags silently ignored", []string{"acne", "telepathy", "aging"}, 2},
		{"no concerns", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := GeneratePlan("normal", tt.concerns, "7:00", "22:00")
			if err != nil {
				t.Fatalf("GeneratePlan() error: %v", err)
			}
			if len(plan.Serums) != tt.want {
				t.Errorf("got %d serums %v, want %d", len(plan.Serums), plan.Serums, tt.want)
			}
			seen := make(map[string]bool)
			for _, s := range plan.Serums {
				if seen[s] {
					t.Errorf("duplicate serum entry %q", s)
				}
				seen[s] = true
			}
		})
	}
}

func TestGeneratePlanTipsOrdering(t *testing.T) {
	plan, err := GeneratePlan("dry", []string{"aging"}, "7:00", "22:00")
	if err != nil {
		t.Fatalf("GeneratePlan() error: %v", err)
	}
	wantLen := len(skinTypeTips[SkinTypeDry]) + len(concernTips[ConcernAging])
	if len(plan.Tips) != wantLen {
		t.Fatalf("got %d tips, want %d", len(plan.Tips), wantLen)
	}
	// Skin-type tips come first, concern tips after.
	for i, tip := range skinTypeTips[SkinTypeDry] {
		if plan.Tips[i] != tip {
			t.Errorf("tip %d = %q, want skin-type tip %q", i, plan.Tips[i], tip)
		}
	}
	for i, tip := range concernTips[ConcernAging] {
		got := plan.Tips[len(skinTypeTips[SkinTypeDry])+i]
		if got != tip {
			t.Errorf("concern tip %d = %q, want %q", i, got, tip)
		}
	}
}

func TestGeneratePlanOilyAcneScenario(t *testing.T) {
	plan, err := GeneratePlan("oily", []string{"acne"}, "7:30", "21:30")
	if err != nil {
		t.Fatalf("GeneratePlan() error: %v", err)
	}

	if len(plan.Serums) != 1 || plan.Serums[0] != serumCatalog[ConcernAcne] {
		t.Errorf("serums = %v, want exactly the acne serum", plan.Serums)
	}
	oily := productCatalog[SkinTypeOily]
	if plan.Cleanser != oily[CategoryCleanser] || plan.Toner != oily[CategoryToner] ||
		plan.Moisturizer != oily[CategoryMoisturizer] || plan.Sunscreen != oily[CategorySunscreen] {
		t.Errorf("products not all from the oily bucket: %+v", plan)
	}

	// Wednesday (index 2) and Saturday (index 5) evenings carry the acne override.
	for _, idx := range []int{2, 5} {
		if !strings.Contains(plan.Week[idx].Evening, "acne treatment") {
			t.Errorf("%s evening = %q, want acne treatment override", plan.Week[idx].Day, plan.Week[idx].Evening)
		}
	}
	if strings.Contains(plan.Week[0].Evening, "acne treatment") {
		t.Errorf("Monday evening unexpectedly carries the acne override: %q", plan.Week[0].Evening)
	}
}

func TestGeneratePlanOverridePrecedence(t *testing.T) {
	// Sensitive overrides apply first; a concern override on the same field wins.
	plan, err := GeneratePlan("sensitive", []string{"pigmentation"}, "7:00", "22:00")
	if err != nil {
		t.Fatalf("GeneratePlan() error: %v", err)
	}
	if !strings.Contains(plan.Week[6].Evening, "brightening focus") {
		t.Errorf("Sunday evening = %q, want pigmentation override to win over sensitive rest", plan.Week[6].Evening)
	}
	// Wednesday has no pigmentation override, so the sensitive rest survives.
	if !strings.Contains(plan.Week[2].Evening, "barrier rest") {
		t.Errorf("Wednesday evening = %q, want sensitive barrier rest", plan.Week[2].Evening)
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	a, err := GeneratePlan("combination", []string{"dullness", "redness"}, "8:00", "23:00")
	if err != nil {
		t.Fatalf("GeneratePlan() error: %v", err)
	}
	b, err := GeneratePlan("combination", []string{"dullness", "redness"}, "8:00", "23:00")
	if err != nil {
		t.Fatalf("GeneratePlan() error: %v", err)
	}
	if len(a.Serums) != len(b.Serums) || a.Week != b.Week || len(a.Tips) != len(b.Tips) {
		t.Error("identical inputs produced different plans")
	}
	for i := range a.Serums {
		if a.Serums[i] != b.Serums[i] {
			t.Errorf("serum %d differs between runs: %q vs %q", i, a.Serums[i], b.Serums[i])
		}
	}
}
