package tools

// catalogue is the full tool list. Order within a category is display order.
var catalogue = []Tool{
	// Eligibility & Visa Fit
	{Slug: "visa-fit-checker", Name: "Visa Fit Checker", Category: "eligibility", Kind: KindCalculator, Description: "Score your business idea against the Innovator Founder rubric: innovation, viability and scalability."},
	{Slug: "route-comparator", Name: "Visa Route Comparator", Category: "eligibility", Kind: KindCalculator, Description: "Compare the Innovator Founder route against Skilled Worker, Global Talent, Scale-up and Expansion Worker for your profile."},
	{Slug: "eligibility-quiz", Name: "Eligibility Quiz", Category: "eligibility", Kind: KindChecklist, Description: "Ten questions that surface the most common eligibility blockers before you spend money on advice."},
	{Slug: "english-requirement-checker", Name: "English Requirement Checker", Category: "eligibility", Kind: KindGuide, Description: "Which qualifications satisfy the B2 English requirement and how to evidence them."},
	{Slug: "maintenance-funds-calculator", Name: "Maintenance Funds Calculator", Category: "eligibility", Kind: KindCalculator, Description: "Work out the personal savings you must show, including dependants, and the 28-day holding rule."},
	{Slug: "switching-eligibility", Name: "Switching From Another Visa", Category: "eligibility", Kind: KindGuide, Description: "Which UK visas allow in-country switching to Innovator Founder and which force an overseas application."},
	{Slug: "previous-refusal-assessor", Name: "Previous Refusal Assessor", Category: "eligibility", Kind: KindChecklist, Description: "How earlier refusals affect a new application and what to disclose."},
	{Slug: "dependants-planner", Name: "Dependants Planner", Category: "eligibility", Kind: KindCalculator, Description: "Fees, maintenance funds and timelines when bringing a partner and children."},
	{Slug: "settlement-timeline", Name: "Settlement Timeline", Category: "eligibility", Kind: KindGuide, Description: "The three-year path to settlement and the criteria checked at extension."},
	{Slug: "home-office-rule-tracker", Name: "Home Office Rule Tracker", Category: "eligibility", Kind: KindCalculator, Description: "Which current Home Office rule changes apply to your venture and what to do about each."},

	// Business Plan
	{Slug: "business-plan-builder", Name: "Business Plan Builder", Category: "business-plan", Kind: KindBuilder, Description: "The guided questionnaire that produces your full endorsement-ready business plan.", Premium: true},
	{Slug: "executive-summary-builder", Name: "Executive Summary Builder", Category: "business-plan", Kind: KindBuilder, Description: "Distil your plan into the one-page summary endorsing bodies read first."},
	{Slug: "problem-statement-workshop", Name: "Problem Statement Workshop", Category: "business-plan", Kind: KindBuilder, Description: "Sharpen the problem narrative assessors score for depth and specificity."},
	{Slug: "innovation-evidence-checklist", Name: "Innovation Evidence Checklist", Category: "business-plan", Kind: KindChecklist, Description: "The evidence types that support an innovation claim, from patents to technical architecture."},
	{Slug: "uniqueness-analyser", Name: "Uniqueness Analyser", Category: "business-plan", Kind: KindCalculator, Description: "Estimate how differentiated your offering reads against the rubric's innovation criteria."},
	{Slug: "vision-statement-builder", Name: "Vision Statement Builder", Category: "business-plan", Kind: KindBuilder, Description: "Write the long-term vision section assessors expect under scalability."},
	{Slug: "swot-builder", Name: "SWOT Builder", Category: "business-plan", Kind: KindBuilder, Description: "Structured strengths, weaknesses, opportunities and threats grid for your plan appendix."},
	{Slug: "competitor-matrix", Name: "Competitor Matrix", Category: "business-plan", Kind: KindBuilder, Description: "Feature-by-feature comparison table against named competitors."},
	{Slug: "milestone-roadmap", Name: "Milestone Roadmap", Category: "business-plan", Kind: KindBuilder, Description: "Quarter-by-quarter milestones for the three-year endorsement period."},
	{Slug: "plan-readability-checker", Name: "Plan Readability Checker", Category: "business-plan", Kind: KindCalculator, Description: "Flag jargon, overlong sentences and missing sections before submission."},
	{Slug: "pivot-narrative-guide", Name: "Pivot Narrative Guide", Category: "business-plan", Kind: KindGuide, Description: "How to present a pivot at contact-point meetings without undermining credibility."},

	// Financials
	{Slug: "ltv-cac-calculator", Name: "LTV:CAC Calculator", Category: "financials", Kind: KindCalculator, Description: "Lifetime value to acquisition cost ratio, the unit-economics signal the viability rubric rewards."},
	{Slug: "runway-calculator", Name: "Runway Calculator", Category: "financials", Kind: KindCalculator, Description: "Months of runway from cash at bank and monthly burn."},
	{Slug: "break-even-calculator", Name: "Break-even Calculator", Category: "financials", Kind: KindCalculator, Description: "Units or revenue needed to cover fixed and variable costs."},
	{Slug: "payback-period-calculator", Name: "Payback Period Calculator", Category: "financials", Kind: KindCalculator, Description: "Months to recover customer acquisition cost from gross margin."},
	{Slug: "revenue-projector", Name: "Revenue Projector", Category: "financials", Kind: KindCalculator, Description: "Project 36 months of revenue from a starting point and growth rate, in the CSV format the questionnaire expects."},
	{Slug: "visa-cost-calculator", Name: "Visa Cost Calculator", Category: "financials", Kind: KindCalculator, Description: "Total application cost: endorsement fee, application fee, healthcare surcharge, priority services and dependants."},
	{Slug: "funding-requirement-estimator", Name: "Funding Requirement Estimator", Category: "financials", Kind: KindCalculator, Description: "Bottom-up estimate of the capital your plan should state, from hiring and operating assumptions."},
	{Slug: "cash-flow-template", Name: "Cash Flow Template", Category: "financials", Kind: KindBuilder, Description: "Month-by-month cash flow grid exportable into your plan's financial appendix."},
	{Slug: "pricing-model-selector", Name: "Pricing Model Selector", Category: "financials", Kind: KindGuide, Description: "Pick between subscription, usage, licence and transaction pricing for your revenue model section."},
	{Slug: "gross-margin-calculator", Name: "Gross Margin Calculator", Category: "financials", Kind: KindCalculator, Description: "Gross margin per unit and blended margin across product lines."},
	{Slug: "equity-dilution-calculator", Name: "Equity Dilution Calculator", Category: "financials", Kind: KindCalculator, Description: "Founder ownership after each funding round."},
	{Slug: "rd-tax-credit-guide", Name: "R&D Tax Credit Guide", Category: "financials", Kind: KindGuide, Description: "Whether your development spend qualifies for UK R&D relief."},

	// Endorsement
	{Slug: "endorser-matcher", Name: "Endorsing Body Matcher", Category: "endorsement", Kind: KindCalculator, Description: "Score your plan against each endorsing body's weightings, sector focus and risk appetite."},
	{Slug: "endorsement-checklist", Name: "Endorsement Application Checklist", Category: "endorsement", Kind: KindChecklist, Description: "Everything an endorsing body asks for, in the order they ask for it."},
	{Slug: "contact-point-planner", Name: "Contact Point Meeting Planner", Category: "endorsement", Kind: KindGuide, Description: "What the mandatory checkpoint meetings cover and how to prepare evidence of progress."},
	{Slug: "pitch-deck-outline", Name: "Pitch Deck Outline", Category: "endorsement", Kind: KindBuilder, Description: "Slide-by-slide outline matched to what endorsing body panels ask."},
	{Slug: "interview-question-bank", Name: "Endorsement Interview Question Bank", Category: "endorsement", Kind: KindGuide, Description: "Real questions asked in endorsement interviews, grouped by rubric dimension."},
	{Slug: "innovation-pitch-refiner", Name: "Innovation Pitch Refiner", Category: "endorsement", Kind: KindBuilder, Description: "Tighten the two-minute innovation pitch for your panel interview.", Premium: true},
	{Slug: "rejection-recovery-planner", Name: "Rejection Recovery Planner", Category: "endorsement", Kind: KindGuide, Description: "Options after an endorsement refusal: reapply, switch body or switch route."},
	{Slug: "endorsement-fee-comparison", Name: "Endorsement Fee Comparison", Category: "endorsement", Kind: KindGuide, Description: "Current fees and payment stages across endorsing bodies."},

	// Application & Documents
	{Slug: "document-checklist", Name: "Document Checklist", Category: "application", Kind: KindChecklist, Description: "Every document the application asks for, with format and translation requirements."},
	{Slug: "evidence-vault", Name: "Evidence Vault", Category: "application", Kind: KindBuilder, Description: "Upload and organise supporting documents against your business plan.", Premium: true},
	{Slug: "cv-builder", Name: "Founder CV Builder", Category: "application", Kind: KindBuilder, Description: "A CV format that foregrounds the experience the team rubric scores."},
	{Slug: "cover-letter-builder", Name: "Cover Letter Builder", Category: "application", Kind: KindBuilder, Description: "Application cover letter template with the factual claims checkers verify."},
	{Slug: "tb-test-checker", Name: "TB Test Checker", Category: "application", Kind: KindGuide, Description: "Whether your country of residence requires a tuberculosis test certificate."},
	{Slug: "application-timeline", Name: "Application Timeline Planner", Category: "application", Kind: KindCalculator, Description: "Work backwards from your target start date through endorsement, biometrics and decision waits."},
	{Slug: "priority-service-guide", Name: "Priority Service Guide", Category: "application", Kind: KindGuide, Description: "When the priority and super-priority services are worth the extra fee."},
	{Slug: "document-translation-guide", Name: "Document Translation Guide", Category: "application", Kind: KindGuide, Description: "Certified translation requirements for non-English documents."},
	{Slug: "biometrics-guide", Name: "Biometrics Appointment Guide", Category: "application", Kind: KindGuide, Description: "Booking, attending and common problems with biometric appointments."},
	{Slug: "application-form-walkthrough", Name: "Application Form Walkthrough", Category: "application", Kind: KindGuide, Description: "Field-by-field notes for the online application form."},

	// Team & Hiring
	{Slug: "team-gap-analyser", Name: "Team Gap Analyser", Category: "team", Kind: KindCalculator, Description: "Extract your skill coverage from your work history and see the hires your industry expects."},
	{Slug: "job-creation-planner", Name: "Job Creation Planner", Category: "team", Kind: KindCalculator, Description: "Plan the UK hires that evidence scalability, with salary benchmarks by role."},
	{Slug: "cofounder-agreement-guide", Name: "Co-founder Agreement Guide", Category: "team", Kind: KindGuide, Description: "Equity splits, vesting and what happens to the visa if a co-founder leaves."},
	{Slug: "advisory-board-planner", Name: "Advisory Board Planner", Category: "team", Kind: KindBuilder, Description: "Which advisor profiles strengthen a team section and how to present them."},
	{Slug: "org-chart-builder", Name: "Org Chart Builder", Category: "team", Kind: KindBuilder, Description: "Current and year-three organisation charts for the scalability section."},
	{Slug: "salary-benchmark-tool", Name: "UK Salary Benchmark Tool", Category: "team", Kind: KindCalculator, Description: "Benchmark salaries for planned roles so projections survive scrutiny."},
	{Slug: "hiring-timeline-planner", Name: "Hiring Timeline Planner", Category: "team", Kind: KindBuilder, Description: "Sequence your hires against revenue milestones."},
	{Slug: "skills-transfer-narrative", Name: "Skills Transfer Narrative", Category: "team", Kind: KindBuilder, Description: "Present career changes so past experience reads as relevant to the venture."},

	// Market & Traction
	{Slug: "traction-benchmarker", Name: "Traction Benchmarker", Category: "market", Kind: KindCalculator, Description: "Compare your revenue projections against comparable UK ventures and flag over-optimism."},
	{Slug: "market-sizing-calculator", Name: "Market Sizing Calculator", Category: "market", Kind: KindCalculator, Description: "TAM, SAM and SOM from top-down and bottom-up inputs."},
	{Slug: "customer-interview-tracker", Name: "Customer Interview Tracker", Category: "market", Kind: KindBuilder, Description: "Log interviews into the validation evidence the risk assessment looks for."},
	{Slug: "early-adopter-finder", Name: "Early Adopter Finder", Category: "market", Kind: KindGuide, Description: "Channels for finding first UK customers before launch."},
	{Slug: "letter-of-intent-builder", Name: "Letter of Intent Builder", Category: "market", Kind: KindBuilder, Description: "LOI template that converts customer conversations into plan evidence."},
	{Slug: "go-to-market-planner", Name: "Go-to-Market Planner", Category: "market", Kind: KindBuilder, Description: "Channel, message and budget plan for the first twelve months."},
	{Slug: "growth-rate-calculator", Name: "Growth Rate Calculator", Category: "market", Kind: KindCalculator, Description: "Month-on-month and compound growth from any two data points."},
	{Slug: "pilot-programme-designer", Name: "Pilot Programme Designer", Category: "market", Kind: KindBuilder, Description: "Design a pilot that produces measurable traction by your first checkpoint."},

	// Arriving & Settling
	{Slug: "company-formation-guide", Name: "Company Formation Guide", Category: "settling", Kind: KindGuide, Description: "Registering a UK limited company: Companies House, SIC codes, registered office."},
	{Slug: "business-banking-guide", Name: "Business Banking Guide", Category: "settling", Kind: KindGuide, Description: "UK business accounts that accept newly arrived founders."},
	{Slug: "startup-cost-checklist", Name: "UK Startup Cost Checklist", Category: "settling", Kind: KindChecklist, Description: "One-off and recurring costs of operating a UK company in year one."},
	{Slug: "national-insurance-guide", Name: "National Insurance Guide", Category: "settling", Kind: KindGuide, Description: "NI numbers, classes and what founders pay themselves."},
	{Slug: "gdpr-checklist", Name: "GDPR Compliance Checklist", Category: "settling", Kind: KindChecklist, Description: "Baseline UK GDPR obligations for a new data-handling venture."},
	{Slug: "ir35-checker", Name: "IR35 Status Checker", Category: "settling", Kind: KindGuide, Description: "Whether contractor arrangements your company uses fall inside IR35."},
	{Slug: "vat-registration-guide", Name: "VAT Registration Guide", Category: "settling", Kind: KindGuide, Description: "When registration becomes mandatory and whether voluntary registration helps."},
	{Slug: "office-space-planner", Name: "Office Space Planner", Category: "settling", Kind: KindGuide, Description: "Registered office, co-working and lease options by city."},
	{Slug: "extension-preparation", Name: "Extension Preparation Checklist", Category: "settling", Kind: KindChecklist, Description: "Evidence to collect from day one for the three-year extension assessment."},
	{Slug: "settlement-criteria-tracker", Name: "Settlement Criteria Tracker", Category: "settling", Kind: KindChecklist, Description: "Track the settlement criteria (two of: investment, job creation, revenue, innovation) over time."},
}
