package pricing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/azure/appinsights-pricing/azure"
	"github.com/azure/appinsights-pricing/confirm"
	"github.com/azure/appinsights-pricing/types"
)

const UpdatePricingPlanAction = "Update Pricing Plan"

type PricingPlanUpdater struct {
	BillingFeaturesClient azure.IBillingFeaturesClient
	Confirmer             confirm.IConfirmer
	Logger                *logrus.Logger
}

func NewPricingPlanUpdater(billingFeaturesClient azure.IBillingFeaturesClient, confirmer confirm.IConfirmer, logger *logrus.Logger) *PricingPlanUpdater {
	return &PricingPlanUpdater{
		BillingFeaturesClient: billingFeaturesClient,
		Confirmer:             confirmer,
		Logger:                logger,
	}
}

// ResolveCoordinate picks the single populated selector and turns it into a
// coordinate. Supplying none or several is an error.
func ResolveCoordinate(input types.CoordinateInput) (types.ResourceCoordinate, error) {
	source, err := input.Source()
	if err != nil {
		return types.ResourceCoordinate{}, err
	}

	switch source {
	case types.CoordinateSourceByObject:
		component := input.Component
		if component.ID != "" {
			return types.ParseComponentResourceID(component.ID)
		}
		if component.ResourceGroupName == "" || component.Name == "" {
			return types.ResourceCoordinate{}, fmt.Errorf("%w: component object has no id and is missing a resource group or name", types.ErrMissingCoordinate)
		}
		return types.ResourceCoordinate{
			ResourceGroupName: component.ResourceGroupName,
			ResourceName:      component.Name,
		}, nil
	case types.CoordinateSourceByID:
		return types.ParseComponentResourceID(input.ResourceID)
	default:
		if input.ResourceGroupName == "" || input.ResourceName == "" {
			return types.ResourceCoordinate{}, fmt.Errorf("%w: both a resource group and a name are required", types.ErrMissingCoordinate)
		}
		return types.ResourceCoordinate{
			ResourceGroupName: input.ResourceGroupName,
			ResourceName:      input.ResourceName,
		}, nil
	}
}

func (updater *PricingPlanUpdater) FetchCurrentFeatures(ctx context.Context, coordinate types.ResourceCoordinate) (types.BillingFeatures, error) {
	updater.Logger.Infof("Reading billing features of %s", coordinate.ResourceName)
	return updater.BillingFeaturesClient.Get(ctx, coordinate.ResourceGroupName, coordinate.ResourceName)
}

// ApplyMutations returns a copy of features with the requested changes. Unset
// request fields leave the matching fields untouched, except that the result
// always carries exactly one billing label.
func ApplyMutations(features types.BillingFeatures, request types.PricingPlanRequest) types.BillingFeatures {
	if request.PricingPlan != nil {
		features.CurrentBillingFeatures = []*string{to.Ptr(request.PricingPlan.BillingLabel())}
	} else {
		features.CurrentBillingFeatures = []*string{to.Ptr(singleBillingLabel(features.CurrentBillingFeatures))}
	}

	if request.DailyCapGB == nil && request.DisableCapNotification == nil {
		return features
	}

	dataVolumeCap := types.DataVolumeCap{}
	if features.DataVolumeCap != nil {
		dataVolumeCap = *features.DataVolumeCap
	}
	if request.DailyCapGB != nil {
		dataVolumeCap.Cap = to.Ptr(*request.DailyCapGB)
	}
	if request.DisableCapNotification != nil {
		dataVolumeCap.StopSendNotificationWhenHitCap = to.Ptr(*request.DisableCapNotification)
	}
	features.DataVolumeCap = &dataVolumeCap

	return features
}

// singleBillingLabel picks the label to keep when no plan was requested: the
// first label naming a known plan, else the first label, else Basic.
func singleBillingLabel(labels []*string) string {
	var first *string
	for _, label := range labels {
		if label == nil {
			continue
		}
		if plan, ok := types.PricingPlanFromBillingLabel(*label); ok {
			return plan.BillingLabel()
		}
		if first == nil {
			first = label
		}
	}
	if first != nil {
		return *first
	}
	return types.BillingLabelBasic
}

// ConfirmAndSubmit writes features back once the confirmer agrees. It returns
// nil without calling the server when confirmation is declined.
func (updater *PricingPlanUpdater) ConfirmAndSubmit(ctx context.Context, coordinate types.ResourceCoordinate, features types.BillingFeatures) (*types.BillingFeatures, error) {
	confirmed, err := updater.Confirmer.Confirm(coordinate.ResourceName, UpdatePricingPlanAction)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		updater.Logger.Infof("Skipped updating the pricing plan of %s", coordinate.ResourceName)
		return nil, nil
	}

	updated, err := updater.BillingFeaturesClient.Update(ctx, coordinate.ResourceGroupName, coordinate.ResourceName, features)
	if err != nil {
		return nil, err
	}
	updater.Logger.Infof("Updated the pricing plan of %s", coordinate.ResourceName)
	return &updated, nil
}

func (updater *PricingPlanUpdater) Update(ctx context.Context, coordinate types.ResourceCoordinate, request types.PricingPlanRequest) (*types.BillingFeatures, error) {
	current, err := updater.FetchCurrentFeatures(ctx, coordinate)
	if err != nil {
		return nil, err
	}

	if request.IsEmpty() {
		updater.Logger.Warnf("No pricing plan changes were requested for %s, the current billing features will be written back unchanged", coordinate.ResourceName)
	}

	if request.PricingPlan == nil && len(current.CurrentBillingFeatures) != 1 {
		updater.Logger.Warnf("%s has %d billing labels, only %q will be written back", coordinate.ResourceName, len(current.CurrentBillingFeatures), singleBillingLabel(current.CurrentBillingFeatures))
	}

	mutated := ApplyMutations(current, request)
	return updater.ConfirmAndSubmit(ctx, coordinate, mutated)
}
