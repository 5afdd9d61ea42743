// Package recommend maps a trip budget onto a hotel tier. The mapping is a
// pure function of the budget so two records with the same budget always
// resolve to the same tier.
package recommend

// Category names one of the five hotel tiers.
type Category string

const (
	Luxury   Category = "Luxury"
	Premium  Category = "Premium"
	Standard Category = "Standard"
	Budget   Category = "Budget"
	Economy  Category = "Economy"
)

// Budget thresholds in rupees. A budget equal to a threshold belongs to the
// higher tier.
const (
	LuxuryThreshold   = 100000
	PremiumThreshold  = 50000
	StandardThreshold = 25000
	BudgetThreshold   = 10000
)

// HotelRecommendation describes a tier with example properties for it.
type HotelRecommendation struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Star     int      `json:"star"`
}

var (
	luxury   = HotelRecommendation{Name: "Taj Palace / Luxury Resort", Category: Luxury, Star: 5}
	premium  = HotelRecommendation{Name: "Radisson Blu / Marriott", Category: Premium, Star: 4}
	standard = HotelRecommendation{Name: "Hotel Lake View / Ibis", Category: Standard, Star: 3}
	budget   = HotelRecommendation{Name: "OYO / Budget Inn", Category: Budget, Star: 2}
	economy  = HotelRecommendation{Name: "Hostel / Guest House", Category: Economy, Star: 1}
)

// Recommend returns the hotel tier for a total budget. Any input resolves to
// a tier: negative budgets and NaN fall through to Economy.
func Recommend(b float64) HotelRecommendation {
	if b >= LuxuryThreshold {
		return luxury
	}
	if b >= PremiumThreshold {
		return premium
	}
	if b >= StandardThreshold {
		return standard
	}
	if b >= BudgetThreshold {
		return budget
	}
	return economy
}

// Tier pairs a recommendation with the lowest budget that earns it.
type Tier struct {
	MinBudget float64             `json:"minBudget"`
	Hotel     HotelRecommendation `json:"hotel"`
}

// Tiers lists every tier from the most to the least expensive. Economy has
// no lower bound and reports a MinBudget of zero.
func Tiers() []Tier {
	return []Tier{
		{MinBudget: LuxuryThreshold, Hotel: luxury},
		{MinBudget: PremiumThreshold, Hotel: premium},
		{MinBudget: StandardThreshold, Hotel: standard},
		{MinBudget: BudgetThreshold, Hotel: budget},
		{MinBudget: 0, Hotel: economy},
	}
}
