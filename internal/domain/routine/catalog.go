// internal/domain/routine/catalog.go
package routine

// Product selection tables. Every skin type must map a product for every
// category; a missing combination is a configuration bug, not user input.
var productCatalog = map[SkinType]map[Category]string{
	SkinTypeOily: {
		CategoryCleanser:    "Purifying Gel Cleanser",
		CategoryToner:       "Balancing Witch Hazel Toner",
		CategoryMoisturizer: "Oil-Free Gel Moisturizer",
		CategorySunscreen:   "Matte Finish Sunscreen SPF 50",
	},
	SkinTypeDry: {
		CategoryCleanser:    "Creamy Hydrating Cleanser",
		CategoryToner:       "Rose Water Hydrating Toner",
		CategoryMoisturizer: "Rich Ceramide Cream",
		CategorySunscreen:   "Moisturizing Sunscreen SPF 30",
	},
	SkinTypeCombination: {
		CategoryCleanser:    "Gentle Foaming Cleanser",
		CategoryToner:       "pH Balancing Toner",
		CategoryMoisturizer: "Lightweight Lotion",
		CategorySunscreen:   "Hybrid Sunscreen SPF 40",
	},
	SkinTypeSensitive: {
		CategoryCleanser:    "Fragrance-Free Milk Cleanser",
		CategoryToner:       "Soothing Centella Toner",
		CategoryMoisturizer: "Barrier Repair Cream",
		CategorySunscreen:   "Mineral Sunscreen SPF 30",
	},
	SkinTypeNormal: {
		CategoryCleanser:    "Daily Gel Cleanser",
		CategoryToner:       "Refreshing Green Tea Toner",
		CategoryMoisturizer: "Daily Moisture Lotion",
		CategorySunscreen:   "Everyday Sunscreen SPF 35",
	},
}

// Serum picks per concern tag. Tags without an entry are silently ignored.
var serumCatalog = map[string]string{
	ConcernAcne:         "2% Salicylic Acid Serum",
	ConcernPigmentation: "15% Vitamin C Brightening Serum",
	ConcernAging:        "Retinol 0.3% Night Serum",
	ConcernDryness:      "Hyaluronic Acid Hydration Serum",
	ConcernRedness:      "Azelaic Acid 10% Serum",
	ConcernDullness:     "Niacinamide 10% Serum",
}

var skinTypeTips = map[SkinType][]string{
	SkinTypeOily: {
		"Blot excess oil during the day instead of washing again; over-cleansing triggers more sebum.",
		"Pick non-comedogenic labels for every leave-on product.",
	},
	SkinTypeDry: {
		"Apply moisturizer on damp skin within a minute of cleansing.",
		"Keep showers lukewarm; hot water strips the lipid barrier.",
	},
	SkinTypeCombination: {
		"Treat the T-zone and cheeks as different skin: lighter layers in the middle, richer on the sides.",
	},
	SkinTypeSensitive: {
		"Patch test every new product on the inner forearm for 48 hours.",
		"Introduce at most one new active per two weeks.",
	},
	SkinTypeNormal: {
		"Consistency beats intensity: a simple routine done daily outperforms an elaborate one done sometimes.",
	},
}

var concernTips = map[string][]string{
	ConcernAcne: {
		"Never pick or squeeze; it converts a 5-day blemish into a 5-month mark.",
		"Change your pillowcase at least twice a week.",
	},
	ConcernPigmentation: {
		"Daily sunscreen is non-negotiable; UV undoes brightening actives in hours.",
	},
	ConcernAging: {
		"Use retinol at night only and always pair it with morning SPF.",
	},
	ConcernDryness: {
		"Layer the hydrating serum under, not instead of, your moisturizer.",
	},
	ConcernRedness: {
		"Skip physical exfoliants; they aggravate reactive skin.",
	},
	ConcernDullness: {
		"Gentle chemical exfoliation once a week restores radiance faster than scrubbing.",
	},
}

// baseWeek is the default 7-day schedule before overrides.
func baseWeek() [7]DaySchedule {
	const (
		morning = "Cleanser, Toner, Serum, Moisturizer, Sunscreen"
		evening = "Cleanser, Toner, Serum, Moisturizer"
	)
	days := [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	var week [7]DaySchedule
	for i, d := range days {
		week[i] = DaySchedule{Day: d, Morning: morning, Evening: evening}
	}
	return week
}
