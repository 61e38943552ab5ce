package scoring

import "regexp"

// Config bundles every static table the engine scores against. Tables are
// injected rather than read from module-level globals so tests can run the
// engine against trimmed fixtures. DefaultConfig returns the production set.
type Config struct {
	Rubric      RubricConfig
	Endorsers   []EndorserProfile
	Routes      []VisaRoute
	Rules       []HomeOfficeRule
	Comparables []ComparableVenture
	Skills      SkillConfig
	Traction    TractionConfig
}

// RubricConfig holds the point deltas for the three rubric dimensions. The
// values are product decisions with no documented derivation; they are kept
// configurable instead of hard-coded in the scorers.
type RubricConfig struct {
	Baseline int

	PatentBonus        int // patent filed or granted
	DeepTechBonus      int // technology narrative names deep-tech signals
	DifferentiationMin int // min uniqueness length for the bonus
	Differentiation    int
	ProblemDepthMin    int
	ProblemDepth       int

	UnitEconomicsRatio float64 // LTV:CAC ratio that earns the bonus
	UnitEconomics      int
	RecurringRevenue   int
	FundedBonusMin     int // GBP
	FundedBonus        int
	PaybackMonthsMax   int
	PaybackBonus       int
	EvidenceMin        int // min customer-interview length
	EvidenceBonus      int

	JobCreationMin     int
	JobCreationBonus   int
	ExpansionBonus     int
	ScalableModelBonus int
	VisionMin          int
	VisionBonus        int
}

// RiskTolerance is how much venture risk an endorsing body accepts.
type RiskTolerance string

const (
	ToleranceLow    RiskTolerance = "low"
	ToleranceMedium RiskTolerance = "medium"
	ToleranceHigh   RiskTolerance = "high"
)

// EndorserProfile is the compiled-in description of one endorsing body.
type EndorserProfile struct {
	ID            string
	Name          string
	RiskTolerance RiskTolerance
	// Sectors the endorser prefers; the single entry "Any" matches every
	// industry.
	Sectors []string
	// Rubric weights, summing loosely to 1.0.
	InnovationWeight  float64
	ViabilityWeight   float64
	ScalabilityWeight float64
}

// VisaRoute describes one UK visa route the comparator scores against.
type VisaRoute struct {
	ID                 string
	Name               string
	MinCapital         int // GBP; 0 means no capital threshold
	TractionRequired   TractionLevel
	SuccessProbability float64
	Requirements       []string
	Pros               []string
	Cons               []string
}

// ImpactLevel grades how strongly a Home Office rule affects applicants.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// HomeOfficeRule is one static immigration-rule record. Read-only reference
// data; there is no versioning or diffing.
type HomeOfficeRule struct {
	ID            string
	Category      string
	Title         string
	EffectiveDate string // ISO date, informational only
	Impact        ImpactLevel
	// Venture-type tags the rule applies to: "all", "pre-revenue",
	// "zero-funding", "data".
	AppliesTo []string
}

// ComparableVenture is one row of the traction benchmark table: revenue at
// months 1, 12, 24 and 36 for a venture in a named industry.
type ComparableVenture struct {
	Name     string
	Industry string
	Month1   float64
	Month12  float64
	Month24  float64
	Month36  float64
}

// SkillMatcher tags a founder bio when its pattern matches.
type SkillMatcher struct {
	Tag     string
	Pattern *regexp.Regexp
}

// SkillConfig drives the team gap assessor.
type SkillConfig struct {
	Matchers []SkillMatcher
	// Baseline required for every venture.
	BaselineRequired []string
	// HiringSuggestions maps a gap tag to a fixed suggestion; gaps without
	// an entry get a templated default.
	HiringSuggestions map[string]string
}

// TractionConfig holds the benchmarker's fallback tuple and extrapolation
// factors used when the projection string is short or malformed.
type TractionConfig struct {
	DefaultProjection Projection
	DefaultRange      ProjectionRange
	// Multiplier applied to month 1 to extrapolate months 12/24/36 when the
	// projection string has too few entries.
	ExtrapolateM12 float64
	ExtrapolateM24 float64
	ExtrapolateM36 float64
}

// DefaultConfig returns the production tables. Callers that need different
// thresholds construct their own Config; nothing in the engine mutates it.
func DefaultConfig() Config {
	return Config{
		Rubric: RubricConfig{
			Baseline: 50,

			PatentBonus:        15,
			DeepTechBonus:      10,
			DifferentiationMin: 120,
			Differentiation:    10,
			ProblemDepthMin:    80,
			ProblemDepth:       5,

			UnitEconomicsRatio: 3.0,
			UnitEconomics:      10,
			RecurringRevenue:   10,
			FundedBonusMin:     50000,
			FundedBonus:        10,
			PaybackMonthsMax:   12,
			PaybackBonus:       5,
			EvidenceMin:        100,
			EvidenceBonus:      10,

			JobCreationMin:     5,
			JobCreationBonus:   15,
			ExpansionBonus:     10,
			ScalableModelBonus: 10,
			VisionMin:          100,
			VisionBonus:        5,
		},
		Endorsers:   defaultEndorsers(),
		Routes:      defaultRoutes(),
		Rules:       defaultRules(),
		Comparables: defaultComparables(),
		Skills:      defaultSkills(),
		Traction: TractionConfig{
			DefaultProjection: Projection{Month1: 1000, Month12: 12000, Month24: 40000, Month36: 100000},
			DefaultRange: ProjectionRange{
				Month1:  Range{Min: 500, Max: 5000},
				Month12: Range{Min: 8000, Max: 45000},
				Month24: Range{Min: 25000, Max: 160000},
				Month36: Range{Min: 60000, Max: 450000},
			},
			ExtrapolateM12: 10,
			ExtrapolateM24: 25,
			ExtrapolateM36: 50,
		},
	}
}

func defaultEndorsers() []EndorserProfile {
	return []EndorserProfile{
		{
			ID:            "tech-nation",
			Name:          "Tech Nation Endorsement Services",
			RiskTolerance: ToleranceHigh,
			Sectors:       []string{"AI/ML", "FinTech", "SaaS", "DeepTech", "Cyber Security"},
			InnovationWeight:  0.50,
			ViabilityWeight:   0.25,
			ScalabilityWeight: 0.25,
		},
		{
			ID:            "innovator-international",
			Name:          "Innovator International",
			RiskTolerance: ToleranceMedium,
			Sectors:       []string{"Any"},
			InnovationWeight:  0.35,
			ViabilityWeight:   0.35,
			ScalabilityWeight: 0.30,
		},
		{
			ID:            "uk-endorsing-services",
			Name:          "UK Endorsing Services",
			RiskTolerance: ToleranceLow,
			Sectors:       []string{"Any"},
			InnovationWeight:  0.30,
			ViabilityWeight:   0.50,
			ScalabilityWeight: 0.20,
		},
		{
			ID:            "envestors",
			Name:          "Envestors Limited",
			RiskTolerance: ToleranceMedium,
			Sectors:       []string{"FinTech", "CleanTech", "HealthTech", "PropTech"},
			InnovationWeight:  0.30,
			ViabilityWeight:   0.40,
			ScalabilityWeight: 0.30,
		},
	}
}

func defaultRoutes() []VisaRoute {
	return []VisaRoute{
		{
			ID:                 "innovator-founder",
			Name:               "Innovator Founder",
			MinCapital:         50000,
			TractionRequired:   TractionMVP,
			SuccessProbability: 0.65,
			Requirements: []string{
				"Endorsement from an approved endorsing body",
				"Innovative, viable and scalable business plan",
				"At least £50,000 investment funds available",
				"Day-to-day involvement in the business",
			},
			Pros: []string{"Direct route to settlement after 3 years", "No minimum salary requirement"},
			Cons: []string{"Endorsement checkpoints at 12 and 24 months", "Business must be genuinely innovative"},
		},
		{
			ID:                 "start-up",
			Name:               "Start-up",
			MinCapital:         0,
			TractionRequired:   TractionNone,
			SuccessProbability: 0.75,
			Requirements: []string{
				"Endorsement from an approved endorsing body",
				"First-time founder of a UK business",
				"Innovative, viable and scalable business idea",
			},
			Pros: []string{"No investment funds required", "Good fit for first-time founders"},
			Cons: []string{"Two-year visa with no direct settlement", "Must switch to another route to stay"},
		},
		{
			ID:                 "global-talent",
			Name:               "Global Talent",
			MinCapital:         0,
			TractionRequired:   TractionRevenue,
			SuccessProbability: 0.55,
			Requirements: []string{
				"Exceptional talent or promise in digital technology",
				"Evidence of recognition outside your employer",
				"Track record of innovation or commercial traction",
			},
			Pros: []string{"No endorsing-body business checks", "Flexible work arrangements"},
			Cons: []string{"High evidential bar", "Long assessment of personal achievements"},
		},
		{
			ID:                 "skilled-worker",
			Name:               "Skilled Worker (sponsored)",
			MinCapital:         0,
			TractionRequired:   TractionNone,
			SuccessProbability: 0.85,
			Requirements: []string{
				"Job offer from a licensed UK sponsor",
				"Role at an eligible SOC code skill level",
				"Salary at or above the going rate for the SOC code",
			},
			Pros: []string{"Highest grant rate of the compared routes", "Employer handles sponsorship"},
			Cons: []string{"Tied to the sponsoring employer", "Not a founder route"},
		},
		{
			ID:                 "scale-up",
			Name:               "Scale-up Worker",
			MinCapital:         0,
			TractionRequired:   TractionRevenue,
			SuccessProbability: 0.70,
			Requirements: []string{
				"Job offer from a qualifying scale-up company",
				"Salary of at least £36,300",
				"Six months with the sponsor before flexibility begins",
			},
			Pros: []string{"Unsponsored flexibility after six months"},
			Cons: []string{"Sponsor must meet scale-up growth criteria"},
		},
	}
}

// routeHints maps a route id to extra narrative advice appended to its
// ranking. Fixed lookup, not derived from the plan.
var routeHints = map[string][]string{
	"innovator-founder": {
		"Secure an endorsing-body relationship before filing; contact points fail applications more often than funds do.",
	},
	"skilled-worker": {
		"Check the going-rate salary threshold for your SOC code; most refusals on this route are salary-threshold failures.",
	},
	"start-up": {
		"Plan the switch to Innovator Founder before the two-year visa expires.",
	},
}

func defaultRules() []HomeOfficeRule {
	return []HomeOfficeRule{
		{
			ID:            "rule-job-creation",
			Category:      "job-creation",
			Title:         "Job creation expectations at endorsement checkpoints",
			EffectiveDate: "2023-04-13",
			Impact:        ImpactHigh,
			AppliesTo:     []string{"all"},
		},
		{
			ID:            "rule-maintenance-funds",
			Category:      "maintenance-funds",
			Title:         "Personal maintenance funds requirement",
			EffectiveDate: "2023-04-13",
			Impact:        ImpactHigh,
			AppliesTo:     []string{"zero-funding", "pre-revenue"},
		},
		{
			ID:            "rule-endorsement-checkpoints",
			Category:      "endorsement",
			Title:         "Mandatory contact points with the endorsing body",
			EffectiveDate: "2023-04-13",
			Impact:        ImpactMedium,
			AppliesTo:     []string{"all"},
		},
		{
			ID:            "rule-data-protection",
			Category:      "data-protection",
			Title:         "UK GDPR registration for data-driven ventures",
			EffectiveDate: "2021-01-01",
			Impact:        ImpactHigh,
			AppliesTo:     []string{"data"},
		},
		{
			ID:            "rule-genuine-founder",
			Category:      "genuineness",
			Title:         "Genuine founder assessment for early-stage ventures",
			EffectiveDate: "2023-04-13",
			Impact:        ImpactMedium,
			AppliesTo:     []string{"pre-revenue"},
		},
	}
}

func defaultComparables() []ComparableVenture {
	return []ComparableVenture{
		{Name: "Ledgerly", Industry: "FinTech", Month1: 800, Month12: 22000, Month24: 95000, Month36: 260000},
		{Name: "Finlocker", Industry: "FinTech", Month1: 1500, Month12: 30000, Month24: 120000, Month36: 340000},
		{Name: "Cartloop", Industry: "E-commerce", Month1: 2500, Month12: 18000, Month24: 60000, Month36: 150000},
		{Name: "Medisight", Industry: "HealthTech", Month1: 0, Month12: 9000, Month24: 48000, Month36: 140000},
		{Name: "Gridwise", Industry: "CleanTech", Month1: 0, Month12: 12000, Month24: 70000, Month36: 210000},
		{Name: "Tutorloop", Industry: "EdTech", Month1: 600, Month12: 10000, Month24: 38000, Month36: 95000},
		{Name: "Stackline", Industry: "SaaS", Month1: 1200, Month12: 25000, Month24: 110000, Month36: 300000},
		{Name: "Parseon", Industry: "AI/ML", Month1: 500, Month12: 20000, Month24: 100000, Month36: 320000},
	}
}

func defaultSkills() SkillConfig {
	return SkillConfig{
		Matchers: []SkillMatcher{
			{Tag: "Technical", Pattern: regexp.MustCompile(`(?i)(software engineer|developer|cto|programmer|technical lead|built .{0,40}(platform|product|system))`)},
			{Tag: "Sales & Growth", Pattern: regexp.MustCompile(`(?i)(sales|marketing|growth|business development|partnership)`)},
			{Tag: "Finance", Pattern: regexp.MustCompile(`(?i)(finance|accounting|cfo|fundrais|investment bank|venture capital)`)},
			{Tag: "Operations", Pattern: regexp.MustCompile(`(?i)(operations|supply chain|logistics|project manage|programme manage)`)},
			{Tag: "Strategy & Leadership", Pattern: regexp.MustCompile(`(?i)(strategy|consultant|consulting|founder|ceo|managing director|mckinsey|bain|bcg|leadership)`)},
		},
		BaselineRequired: []string{"Strategy & Leadership", "Finance", "Operations"},
		HiringSuggestions: map[string]string{
			"Technical":      "Hire CTO or Senior Engineer",
			"Sales & Growth": "Hire a founding sales lead or Head of Growth",
			"Finance":        "Engage a fractional CFO until revenue supports a full-time hire",
			"Operations":     "Hire an Operations Manager once headcount passes five",
		},
	}
}
