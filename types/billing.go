package types

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/applicationinsights/armapplicationinsights"
)

// BillingFeatures is the record read from and written to the
// currentbillingfeatures endpoint of a component.
type BillingFeatures = armapplicationinsights.ComponentBillingFeatures

type DataVolumeCap = armapplicationinsights.ComponentDataVolumeCap

// PricingPlanRequest holds the requested changes. A nil field leaves the stored
// value untouched.
type PricingPlanRequest struct {
	PricingPlan            *PricingPlan
	DailyCapGB             *float32
	DisableCapNotification *bool
}

func (request PricingPlanRequest) IsEmpty() bool {
	return request.PricingPlan == nil && request.DailyCapGB == nil && request.DisableCapNotification == nil
}

// CurrentPricingPlan returns the plan named by the first billing label, if any.
func CurrentPricingPlan(features BillingFeatures) (PricingPlan, bool) {
	for _, label := range features.CurrentBillingFeatures {
		if label == nil {
			continue
		}
		return PricingPlanFromBillingLabel(*label)
	}
	return "", false
}

// BillingSummary flattens BillingFeatures for the output formats. A nil field
// was not returned by the server.
type BillingSummary struct {
	ResourceGroupName                    string
	ResourceName                         string
	PricingPlan                          PricingPlan
	BillingFeatures                      []string
	DailyCapGB                           *float32
	ResetTimeUTCHour                     *int32
	WarningThresholdPercent              *int32
	StopSendNotificationWhenHitCap       *bool
	StopSendNotificationWhenHitThreshold *bool
	MaxHistoryCapGB                      *float32
}

func SummarizeBillingFeatures(coordinate ResourceCoordinate, features BillingFeatures) BillingSummary {
	summary := BillingSummary{
		ResourceGroupName: coordinate.ResourceGroupName,
		ResourceName:      coordinate.ResourceName,
		BillingFeatures:   []string{},
	}
	summary.PricingPlan, _ = CurrentPricingPlan(features)

	for _, label := range features.CurrentBillingFeatures {
		if label != nil {
			summary.BillingFeatures = append(summary.BillingFeatures, *label)
		}
	}

	if dataVolumeCap := features.DataVolumeCap; dataVolumeCap != nil {
		summary.DailyCapGB = dataVolumeCap.Cap
		summary.ResetTimeUTCHour = dataVolumeCap.ResetTime
		summary.WarningThresholdPercent = dataVolumeCap.WarningThreshold
		summary.MaxHistoryCapGB = dataVolumeCap.MaxHistoryCap
		summary.StopSendNotificationWhenHitCap = dataVolumeCap.StopSendNotificationWhenHitCap
		summary.StopSendNotificationWhenHitThreshold = dataVolumeCap.StopSendNotificationWhenHitThreshold
	}

	return summary
}
