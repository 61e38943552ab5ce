package tools

import (
	"fmt"
	"math"
	"strings"
)

// Calculator helpers behind the JSON tool endpoints. All pure.

// LTVCACResult is the unit-economics verdict for the LTV:CAC calculator.
type LTVCACResult struct {
	Ratio      float64 `json:"ratio"`
	Assessment string  `json:"assessment"`
}

// LTVCAC computes the lifetime-value to acquisition-cost ratio. A zero or
// negative CAC yields a zero ratio rather than an error.
func LTVCAC(ltv, cac float64) LTVCACResult {
	if cac <= 0 || ltv < 0 {
		return LTVCACResult{Ratio: 0, Assessment: "Enter a positive acquisition cost to get a ratio."}
	}
	ratio := math.Round(ltv/cac*100) / 100
	res := LTVCACResult{Ratio: ratio}
	switch {
	case ratio >= 3:
		res.Assessment = "Healthy unit economics. A ratio of 3 or more is the benchmark endorsing bodies expect."
	case ratio >= 1:
		res.Assessment = "Marginal unit economics. You recover acquisition cost but the margin is thin."
	default:
		res.Assessment = "You currently lose money on each customer. Revisit pricing or acquisition channels."
	}
	return res
}

// Runway returns whole months of runway. Zero burn means indefinite runway,
// reported as -1.
func Runway(cashGBP, monthlyBurnGBP float64) int {
	if monthlyBurnGBP <= 0 {
		return -1
	}
	if cashGBP <= 0 {
		return 0
	}
	return int(math.Floor(cashGBP / monthlyBurnGBP))
}

// BreakEvenUnits returns the unit sales needed to cover fixed costs, or -1
// when contribution margin is zero or negative.
func BreakEvenUnits(fixedCostsGBP, pricePerUnit, variableCostPerUnit float64) int {
	margin := pricePerUnit - variableCostPerUnit
	if margin <= 0 {
		return -1
	}
	return int(math.Ceil(fixedCostsGBP / margin))
}

// PaybackMonths returns whole months to recover CAC from monthly gross
// margin per customer, or -1 when margin is not positive.
func PaybackMonths(cac, monthlyGrossMarginPerCustomer float64) int {
	if monthlyGrossMarginPerCustomer <= 0 {
		return -1
	}
	if cac <= 0 {
		return 0
	}
	return int(math.Ceil(cac / monthlyGrossMarginPerCustomer))
}

// VisaCostInput drives the full application cost estimate.
type VisaCostInput struct {
	Dependants      int  `json:"dependants"`
	YearsOfStay     int  `json:"years_of_stay"`
	PriorityService bool `json:"priority_service"`
	IncludeEndorse  bool `json:"include_endorsement"`
}

// VisaCostBreakdown itemises the estimate.
type VisaCostBreakdown struct {
	EndorsementFee      int `json:"endorsement_fee"`
	ApplicationFees     int `json:"application_fees"`
	HealthcareSurcharge int `json:"healthcare_surcharge"`
	PriorityFee         int `json:"priority_fee"`
	Total               int `json:"total"`
}

// Published fee levels, reviewed against gov.uk when they change.
const (
	endorsementFeeGBP   = 1000
	applicationFeeGBP   = 1274 // per adult applicant
	healthSurchargeGBP  = 1035 // per person per year
	priorityServiceGBP  = 500
	minYearsOfStay      = 1
	defaultYearsOfStay  = 3
	maxSupportedPersons = 10
)

// VisaCost estimates the total cost of an Innovator Founder application.
func VisaCost(in VisaCostInput) VisaCostBreakdown {
	if in.Dependants < 0 {
		in.Dependants = 0
	}
	if in.Dependants > maxSupportedPersons {
		in.Dependants = maxSupportedPersons
	}
	years := in.YearsOfStay
	if years < minYearsOfStay {
		years = defaultYearsOfStay
	}
	persons := 1 + in.Dependants

	var b VisaCostBreakdown
	if in.IncludeEndorse {
		b.EndorsementFee = endorsementFeeGBP
	}
	b.ApplicationFees = applicationFeeGBP * persons
	b.HealthcareSurcharge = healthSurchargeGBP * persons * years
	if in.PriorityService {
		b.PriorityFee = priorityServiceGBP
	}
	b.Total = b.EndorsementFee + b.ApplicationFees + b.HealthcareSurcharge + b.PriorityFee
	return b
}

// ProjectRevenue produces a months-long projection from a starting monthly
// revenue and a month-on-month growth rate (0.1 = 10%), formatted as the
// comma-separated string the questionnaire's projections field expects.
func ProjectRevenue(startMonthly float64, monthlyGrowth float64, months int) string {
	if months <= 0 {
		months = 36
	}
	if months > 120 {
		months = 120
	}
	if startMonthly < 0 {
		startMonthly = 0
	}

	parts := make([]string, 0, months)
	current := startMonthly
	for i := 0; i < months; i++ {
		parts = append(parts, fmt.Sprintf("%d", int(math.Round(current))))
		current *= 1 + monthlyGrowth
		if current < 0 {
			current = 0
		}
	}
	return strings.Join(parts, ",")
}

// GrowthRate returns the month-on-month growth rate implied by two values a
// given number of months apart, as a fraction (0.1 = 10%). Returns 0 when the
// inputs cannot yield a rate.
func GrowthRate(earlier, later float64, monthsApart int) float64 {
	if earlier <= 0 || later < 0 || monthsApart <= 0 {
		return 0
	}
	rate := math.Pow(later/earlier, 1/float64(monthsApart)) - 1
	return math.Round(rate*10000) / 10000
}

// MaintenanceFunds returns the personal savings requirement for the main
// applicant plus dependants under the current Appendix Finance levels.
func MaintenanceFunds(dependants int) int {
	// Main applicant 1270; first dependant partner 285, child 315, further
	// children 200. Dependants beyond the first are treated as children.
	const (
		mainApplicant  = 1270
		partner        = 285
		furtherPersons = 200
	)
	if dependants <= 0 {
		return mainApplicant
	}
	total := mainApplicant + partner
	if dependants > 1 {
		total += furtherPersons * (dependants - 1)
	}
	return total
}
