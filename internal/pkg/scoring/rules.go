package scoring

import (
	"fmt"
	"strings"
)

// RuleImpact is the canned impact/action output for one applicable rule.
type RuleImpact struct {
	Rule        HomeOfficeRule `json:"rule"`
	Impact      []string       `json:"impact"`
	ActionItems []string       `json:"action_items"`
}

// RuleEngineStatus summarizes the rule table for a profile.
type RuleEngineStatus struct {
	TotalRules      int `json:"total_rules"`
	ApplicableRules int `json:"applicable_rules"`
	HighImpact      int `json:"high_impact"`
}

// ApplicableRules filters the static rule table by the profile's venture
// tags.
func (e *Engine) ApplicableRules(profile BusinessProfile) []HomeOfficeRule {
	var applicable []HomeOfficeRule
	for _, rule := range e.cfg.Rules {
		if ruleApplies(rule, profile) {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

func ruleApplies(rule HomeOfficeRule, profile BusinessProfile) bool {
	for _, tag := range rule.AppliesTo {
		switch tag {
		case "all":
			return true
		case "pre-revenue":
			if profile.Stage == "pre-revenue" {
				return true
			}
		case "zero-funding":
			if profile.ZeroFunding {
				return true
			}
		case "data":
			if strings.Contains(strings.ToLower(profile.Industry), "data") {
				return true
			}
		}
	}
	return false
}

// AnalyzeRuleImpact emits the fixed per-category impact and action text for
// one rule against a profile.
func (e *Engine) AnalyzeRuleImpact(profile BusinessProfile, rule HomeOfficeRule) RuleImpact {
	impact := RuleImpact{Rule: rule}

	switch rule.Category {
	case "job-creation":
		if profile.JobCreation >= 5 {
			impact.Impact = append(impact.Impact, fmt.Sprintf("Your plan to create %d jobs meets the checkpoint expectation of 5.", profile.JobCreation))
			impact.ActionItems = append(impact.ActionItems, "Document each planned role with a SOC code and salary band.")
		} else {
			impact.Impact = append(impact.Impact, fmt.Sprintf("Planned job creation of %d falls short of the 5 roles endorsing bodies look for at checkpoints.", profile.JobCreation))
			impact.ActionItems = append(impact.ActionItems, "Raise the job creation target to at least 5 or justify the slower hiring curve.")
		}
	case "maintenance-funds":
		impact.Impact = append(impact.Impact, "You must show personal maintenance funds separate from business investment.")
		if profile.ZeroFunding {
			impact.ActionItems = append(impact.ActionItems, "Open a personal account holding the maintenance amount for 28 consecutive days before applying.")
		} else {
			impact.ActionItems = append(impact.ActionItems, "Keep maintenance funds clearly separated from the declared business funds.")
		}
	case "endorsement":
		impact.Impact = append(impact.Impact, "Endorsing bodies hold mandatory contact points at 12 and 24 months.")
		impact.ActionItems = append(impact.ActionItems, "Diarize checkpoint evidence: traction metrics, hiring progress, spend against plan.")
	case "data-protection":
		impact.Impact = append(impact.Impact, "Data-driven ventures must register with the ICO and evidence UK GDPR compliance.")
		impact.ActionItems = append(impact.ActionItems, "Register with the ICO before launch and record a lawful basis for each data use.")
	case "genuineness":
		impact.Impact = append(impact.Impact, "Early-stage ventures face a genuine-founder assessment at interview.")
		impact.ActionItems = append(impact.ActionItems, "Be ready to explain the plan's figures without notes; caseworkers test for coached answers.")
	default:
		impact.Impact = append(impact.Impact, fmt.Sprintf("%s may affect your application.", rule.Title))
		impact.ActionItems = append(impact.ActionItems, "Review the rule text with an adviser before submission.")
	}

	return impact
}

// Status summarizes the rule table against a profile.
func (e *Engine) Status(profile BusinessProfile) RuleEngineStatus {
	applicable := e.ApplicableRules(profile)
	high := 0
	for _, rule := range applicable {
		if rule.Impact == ImpactHigh {
			high++
		}
	}
	return RuleEngineStatus{
		TotalRules:      len(e.cfg.Rules),
		ApplicableRules: len(applicable),
		HighImpact:      high,
	}
}

// RuleDiff is a placeholder: rule change detection needs versioned rule
// records, which the table does not carry yet.
func (e *Engine) RuleDiff(oldRuleID, newRuleID string) string {
	return "Rule change detection is not available yet."
}
