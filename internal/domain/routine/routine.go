// internal/domain/routine/routine.go
package routine

import "fmt"

// SkinType is the fixed set of supported skin classifications.
type SkinType string

const (
	SkinTypeOily        SkinType = "oily"
	SkinTypeDry         SkinType = "dry"
	SkinTypeCombination SkinType = "combination"
	SkinTypeSensitive   SkinType = "sensitive"
	SkinTypeNormal      SkinType = "normal"
)

// Category is a required product slot in every plan.
type Category string

const (
	CategoryCleanser    Category = "cleanser"
	CategoryToner       Category = "toner"
	CategoryMoisturizer Category = "moisturizer"
	CategorySunscreen   Category = "sunscreen"
)

// Known concern tags. Unknown tags are ignored by GeneratePlan.
const (
	ConcernAcne         = "acne"
	ConcernPigmentation = "pigmentation"
	ConcernAging        = "aging"
	ConcernDryness      = "dryness"
	ConcernRedness      = "redness"
	ConcernDullness     = "dullness"
)

// ConfigurationError reports input that cannot map onto the catalog, such as
// an unknown skin type. It permanently fails the record it came from.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: unknown %s %q", e.Field, e.Value)
}

// DaySchedule is one day of the weekly routine.
type DaySchedule struct {
	Day     string
	Morning string
	Evening string
}

// Plan is a generated skincare routine for one recipient.
type Plan struct {
	SkinType    SkinType
	Cleanser    string
	Toner       string
	Moisturizer string
	Sunscreen   string
	Serums      []string
	Week        [7]DaySchedule
	Tips        []string
	MorningTime string
	EveningTime string
}

// Product returns the selected product for a category.
func (p *Plan) Product(c Category) string {
	switch c {
	case CategoryCleanser:
		return p.Cleanser
	case CategoryToner:
		return p.Toner
	case CategoryMoisturizer:
		return p.Moisturizer
	case CategorySunscreen:
		return p.Sunscreen
	}
	return ""
}

// GeneratePlan builds a personalized routine. It is pure and deterministic:
// the same inputs always yield the same plan. The only failure is an unknown
// skin type, returned as a *ConfigurationError.
func GeneratePlan(skinType string, concerns []string, morningTime, eveningTime string) (*Plan, error) {
	st := SkinType(skinType)
	products, ok := productCatalog[st]
	if !ok {
		return nil, &ConfigurationError{Field: "skin type", Value: skinType}
	}

	plan := &Plan{
		SkinType:    st,
		Cleanser:    products[CategoryCleanser],
		Toner:       products[CategoryToner],
		Moisturizer: products[CategoryMoisturizer],
		Sunscreen:   products[CategorySunscreen],
		Week:        baseWeek(),
		MorningTime: morningTime,
		EveningTime: eveningTime,
	}

	// Serums: one per known concern, deduplicated, unknown tags dropped.
	seen := make(map[string]bool)
	for _, c := range concerns {
		serum, ok := serumCatalog[c]
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		plan.Serums = append(plan.Serums, serum)
	}

	applyScheduleOverrides(plan, seen)

	// Tips: skin-type tips first, then concern tips in catalog tag order so
	// repeated tags cannot duplicate entries.
	plan.Tips = append(plan.Tips, skinTypeTips[st]...)
	for _, c := range []string{ConcernAcne, ConcernPigmentation, ConcernAging, ConcernDryness, ConcernRedness, ConcernDullness} {
		if seen[c] {
			plan.Tips = append(plan.Tips, concernTips[c]...)
		}
	}

	return plan, nil
}

// applyScheduleOverrides rewrites day fields of the weekly template. Overrides
// are additive and ordered: sensitive-skin rewrites apply first, then concern
// rewrites, so a concern override wins on any field both touch.
func applyScheduleOverrides(plan *Plan, concerns map[string]bool) {
	if plan.SkinType == SkinTypeSensitive {
		// Barrier rest mid-week and on Sunday: no actives in the evening.
		plan.Week[2].Evening = "Cleanser, Moisturizer (barrier rest, no actives)"
		plan.Week[6].Evening = "Cleanser, Moisturizer (barrier rest, no actives)"
	}

	if concerns[ConcernAcne] {
		// Dedicated treatment evenings on Wednesday and Saturday.
		plan.Week[2].Evening = "Cleanser, Toner, Salicylic Acid Serum, Moisturizer (acne treatment)"
		plan.Week[5].Evening = "Cleanser, Toner, Salicylic Acid Serum, Moisturizer (acne treatment)"
	}

	if concerns[ConcernPigmentation] {
		// Weekly brightening focus on Sunday evening.
		plan.Week[6].Evening = "Cleanser, Toner, Vitamin C Serum, Moisturizer (brightening focus)"
	}
}
