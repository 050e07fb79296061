package azure

import (
	"context"

	"github.com/azure/appinsights-pricing/types"

	"github.com/sirupsen/logrus"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/applicationinsights/armapplicationinsights"
)

type IBillingFeaturesClient interface {
	Get(ctx context.Context, resourceGroupName string, resourceName string) (types.BillingFeatures, error)
	Update(ctx context.Context, resourceGroupName string, resourceName string, features types.BillingFeatures) (types.BillingFeatures, error)
}

// BillingFeaturesClient reads and writes the currentbillingfeatures of
// components in a single subscription.
type BillingFeaturesClient struct {
	SubscriptionID string
	Client         *armapplicationinsights.ComponentCurrentBillingFeaturesClient
	Logger         *logrus.Logger
}

func NewBillingFeaturesClient(subscriptionID string, credential azcore.TokenCredential, options *arm.ClientOptions, logger *logrus.Logger) (*BillingFeaturesClient, error) {
	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, err
	}

	client, err := armapplicationinsights.NewComponentCurrentBillingFeaturesClient(subscriptionID, credential, options)
	if err != nil {
		return nil, err
	}

	return &BillingFeaturesClient{
		SubscriptionID: subscriptionID,
		Client:         client,
		Logger:         logger,
	}, nil
}

// Get and Update return SDK errors unchanged so callers can inspect
// *azcore.ResponseError.
func (billingClient *BillingFeaturesClient) Get(ctx context.Context, resourceGroupName string, resourceName string) (types.BillingFeatures, error) {
	billingClient.Logger.Debugf("Getting billing features for %s/%s in subscription %s", resourceGroupName, resourceName, billingClient.SubscriptionID)

	res, err := billingClient.Client.Get(ctx, resourceGroupName, resourceName, nil)
	if err != nil {
		return types.BillingFeatures{}, err
	}
	return res.ComponentBillingFeatures, nil
}

func (billingClient *BillingFeaturesClient) Update(ctx context.Context, resourceGroupName string, resourceName string, features types.BillingFeatures) (types.BillingFeatures, error) {
	billingClient.Logger.Debugf("Updating billing features for %s/%s in subscription %s", resourceGroupName, resourceName, billingClient.SubscriptionID)

	res, err := billingClient.Client.Update(ctx, resourceGroupName, resourceName, features, nil)
	if err != nil {
		return types.BillingFeatures{}, err
	}
	return res.ComponentBillingFeatures, nil
}
