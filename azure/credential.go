package azure

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	CloudAzurePublic       = "AzurePublic"
	CloudAzureUSGovernment = "AzureUSGovernment"
	CloudAzureChina        = "AzureChina"

	correlationRequestIDHeader = "x-ms-correlation-request-id"
	emptyGuid                  = "00000000-0000-0000-0000-000000000000"
)

var guidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func CloudConfiguration(cloudName string) (cloud.Configuration, error) {
	switch strings.ToLower(cloudName) {
	case "", strings.ToLower(CloudAzurePublic):
		return cloud.AzurePublic, nil
	case strings.ToLower(CloudAzureUSGovernment):
		return cloud.AzureGovernment, nil
	case strings.ToLower(CloudAzureChina):
		return cloud.AzureChina, nil
	default:
		return cloud.Configuration{}, fmt.Errorf("unsupported cloud %q, expected one of %s, %s, %s", cloudName, CloudAzurePublic, CloudAzureUSGovernment, CloudAzureChina)
	}
}

func ValidateSubscriptionID(subscriptionID string) error {
	if subscriptionID == emptyGuid || !guidRegex.MatchString(subscriptionID) {
		return fmt.Errorf("invalid Subscription ID: %s", subscriptionID)
	}
	return nil
}

// NewClientOptions builds the ARM client options shared by every client of one
// invocation. Each request carries correlationID so server-side logs can be
// matched to a single run.
func NewClientOptions(cloudConfiguration cloud.Configuration, correlationID string) *arm.ClientOptions {
	options := &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloudConfiguration,
		},
	}
	if correlationID != "" {
		options.PerCallPolicies = []policy.Policy{correlationPolicy{correlationID: correlationID}}
	}
	return options
}

func NewCredential(cloudConfiguration cloud.Configuration) (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloudConfiguration,
		},
	})
}

type correlationPolicy struct {
	correlationID string
}

func (p correlationPolicy) Do(req *policy.Request) (*http.Response, error) {
	req.Raw().Header.Set(correlationRequestIDHeader, p.correlationID)
	return req.Next()
}
