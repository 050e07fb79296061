package azure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/azure/appinsights-pricing/types"

	"github.com/sirupsen/logrus"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
)

var (
	ErrComponentNotFound  = errors.New("no Application Insights component matched")
	ErrAmbiguousComponent = errors.New("more than one Application Insights component matched")
)

const componentLookupQuery = `resources
| where type =~ 'microsoft.insights/components'
| where resourceGroup =~ '%s' and name =~ '%s'
| project id, name, resourceGroup, subscriptionId`

type IResourceGraphClient interface {
	FindComponent(ctx context.Context, resourceGroupName string, resourceName string) (types.ResourceCoordinate, error)
}

type ResourceGraphClient struct {
	Credential      azcore.TokenCredential
	Options         *arm.ClientOptions
	SubscriptionIDs []*string
	Logger          *logrus.Logger
}

func NewResourceGraphClient(credential azcore.TokenCredential, options *arm.ClientOptions, subscriptionIDs []string, logger *logrus.Logger) *ResourceGraphClient {
	subscriptionIDsPtr := make([]*string, len(subscriptionIDs))
	for i, id := range subscriptionIDs {
		subscriptionIDsPtr[i] = to.Ptr(id)
	}

	return &ResourceGraphClient{
		Credential:      credential,
		Options:         options,
		SubscriptionIDs: subscriptionIDsPtr,
		Logger:          logger,
	}
}

// FindComponent looks a component up by group and name across every
// subscription the caller can read, or across SubscriptionIDs when set.
func (graph *ResourceGraphClient) FindComponent(ctx context.Context, resourceGroupName string, resourceName string) (types.ResourceCoordinate, error) {
	for _, subscriptionID := range graph.SubscriptionIDs {
		if err := ValidateSubscriptionID(*subscriptionID); err != nil {
			return types.ResourceCoordinate{}, err
		}
	}

	resourcesClient, err := armresourcegraph.NewClient(graph.Credential, graph.Options)
	if err != nil {
		return types.ResourceCoordinate{}, err
	}

	query := fmt.Sprintf(componentLookupQuery, escapeQueryValue(resourceGroupName), escapeQueryValue(resourceName))
	queryRequest := armresourcegraph.QueryRequest{
		Query: to.Ptr(query),
		Options: &armresourcegraph.QueryRequestOptions{
			AuthorizationScopeFilter: to.Ptr(armresourcegraph.AuthorizationScopeFilterAtScopeAndBelow),
			ResultFormat:             to.Ptr(armresourcegraph.ResultFormatObjectArray),
		},
	}
	if len(graph.SubscriptionIDs) > 0 {
		queryRequest.Subscriptions = graph.SubscriptionIDs
	}

	graph.Logger.Infof("Looking up subscription for component %s in resource group %s", resourceName, resourceGroupName)
	graph.Logger.Tracef("Query: %s", query)

	res, err := resourcesClient.Resources(ctx, queryRequest, nil)
	if err != nil {
		return types.ResourceCoordinate{}, err
	}

	results, ok := res.Data.([]any)
	if !ok {
		return types.ResourceCoordinate{}, fmt.Errorf("unexpected Resource Graph result format %T", res.Data)
	}

	components := graph.componentsFromResults(results)
	switch len(components) {
	case 0:
		return types.ResourceCoordinate{}, fmt.Errorf("%w: %s/%s", ErrComponentNotFound, resourceGroupName, resourceName)
	case 1:
		graph.Logger.Debugf("Resolved component to %s", components[0].String())
		return components[0], nil
	default:
		subscriptionIDs := []string{}
		for _, component := range components {
			subscriptionIDs = append(subscriptionIDs, component.SubscriptionID)
		}
		return types.ResourceCoordinate{}, fmt.Errorf("%w: %s/%s exists in subscriptions %s, set subscriptionID to choose one", ErrAmbiguousComponent, resourceGroupName, resourceName, strings.Join(subscriptionIDs, ", "))
	}
}

// componentsFromResults converts query rows into coordinates, dropping
// duplicate IDs and rows that are not component resource IDs.
func (graph *ResourceGraphClient) componentsFromResults(results []any) []types.ResourceCoordinate {
	seen := map[string]bool{}
	components := []types.ResourceCoordinate{}

	for _, result := range results {
		resource, ok := result.(map[string]any)
		if !ok {
			continue
		}
		resourceID, _ := resource["id"].(string)
		key := strings.ToLower(resourceID)
		if seen[key] {
			graph.Logger.Tracef("Skipping duplicate Resource ID: %s", resourceID)
			continue
		}
		seen[key] = true

		coordinate, err := types.ParseComponentResourceID(resourceID)
		if err != nil {
			graph.Logger.Debugf("Ignoring Resource Graph row: %v", err)
			continue
		}
		graph.Logger.Tracef("Adding Resource ID: %s", resourceID)
		components = append(components, coordinate)
	}

	return components
}

func escapeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}
