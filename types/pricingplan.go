package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPricingPlan = errors.New("unknown pricing plan")

type PricingPlan string

const (
	PricingPlanBasic        PricingPlan = "Basic"
	PricingPlanLimitedBasic PricingPlan = "LimitedBasic"
	PricingPlanEnterprise   PricingPlan = "Enterprise"
)

// Billing feature labels as stored in currentBillingFeatures.
const (
	BillingLabelBasic        = "Basic"
	BillingLabelLimitedBasic = "Limited Basic"
	BillingLabelEnterprise   = "Application Insights Enterprise"
)

func (pricingPlan PricingPlan) IsValidPricingPlan() bool {
	switch pricingPlan {
	case PricingPlanBasic,
		PricingPlanLimitedBasic,
		PricingPlanEnterprise:
		return true
	default:
		return false
	}
}

// BillingLabel returns the label the billing features endpoint uses for the plan.
func (pricingPlan PricingPlan) BillingLabel() string {
	switch pricingPlan {
	case PricingPlanEnterprise:
		return BillingLabelEnterprise
	case PricingPlanLimitedBasic:
		return BillingLabelLimitedBasic
	default:
		return BillingLabelBasic
	}
}

// ParsePricingPlan classifies free text into a plan. Matching is case-insensitive
// and by substring, with "enterprise" checked before "limited" and "limited"
// before "basic", so "Enterprise Plan" and "limited-basic" are both accepted.
func ParsePricingPlan(planName string) (PricingPlan, error) {
	lowered := strings.ToLower(strings.TrimSpace(planName))
	switch {
	case strings.Contains(lowered, "enterprise"):
		return PricingPlanEnterprise, nil
	case strings.Contains(lowered, "limited"):
		return PricingPlanLimitedBasic, nil
	case strings.Contains(lowered, "basic"):
		return PricingPlanBasic, nil
	}
	return "", fmt.Errorf("%w: %q (expected one of %s, %s, %s)", ErrUnknownPricingPlan, planName, PricingPlanBasic, PricingPlanEnterprise, PricingPlanLimitedBasic)
}

// PricingPlanFromBillingLabel maps a currentBillingFeatures label back to its plan.
func PricingPlanFromBillingLabel(label string) (PricingPlan, bool) {
	switch label {
	case BillingLabelBasic:
		return PricingPlanBasic, true
	case BillingLabelLimitedBasic:
		return PricingPlanLimitedBasic, true
	case BillingLabelEnterprise:
		return PricingPlanEnterprise, true
	default:
		return "", false
	}
}
