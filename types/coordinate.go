package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

var (
	ErrAmbiguousCoordinate = errors.New("more than one resource selector was supplied")
	ErrMissingCoordinate   = errors.New("no resource selector was supplied")
	ErrInvalidResourceID   = errors.New("invalid Application Insights resource ID")
)

const ComponentResourceType = "Microsoft.Insights/components"

type ResourceCoordinate struct {
	SubscriptionID    string
	ResourceGroupName string
	ResourceName      string
}

func (coordinate ResourceCoordinate) String() string {
	if coordinate.SubscriptionID == "" {
		return fmt.Sprintf("%s/%s", coordinate.ResourceGroupName, coordinate.ResourceName)
	}
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/%s/%s", coordinate.SubscriptionID, coordinate.ResourceGroupName, ComponentResourceType, coordinate.ResourceName)
}

type CoordinateSource string

const (
	CoordinateSourceNone           CoordinateSource = ""
	CoordinateSourceByObject       CoordinateSource = "ByObject"
	CoordinateSourceByID           CoordinateSource = "ByID"
	CoordinateSourceByNameAndGroup CoordinateSource = "ByNameAndGroup"
)

// ComponentObject is the subset of a previously fetched component document
// needed to locate it again.
type ComponentObject struct {
	ID                string
	Name              string
	ResourceGroupName string
}

// CoordinateInput carries the three mutually exclusive ways of naming a component.
type CoordinateInput struct {
	Component         *ComponentObject
	ResourceID        string
	ResourceGroupName string
	ResourceName      string
}

// Source reports which selector is populated. Exactly one must be.
func (input CoordinateInput) Source() (CoordinateSource, error) {
	sources := []CoordinateSource{}
	if input.Component != nil {
		sources = append(sources, CoordinateSourceByObject)
	}
	if input.ResourceID != "" {
		sources = append(sources, CoordinateSourceByID)
	}
	if input.ResourceGroupName != "" || input.ResourceName != "" {
		sources = append(sources, CoordinateSourceByNameAndGroup)
	}

	switch len(sources) {
	case 0:
		return CoordinateSourceNone, ErrMissingCoordinate
	case 1:
		return sources[0], nil
	default:
		return CoordinateSourceNone, fmt.Errorf("%w: %v", ErrAmbiguousCoordinate, sources)
	}
}

// ParseComponentResourceID splits an ARM resource ID into a coordinate. The ID
// must point at a Microsoft.Insights/components resource.
func ParseComponentResourceID(resourceID string) (ResourceCoordinate, error) {
	parsed, err := arm.ParseResourceID(strings.TrimSpace(resourceID))
	if err != nil {
		return ResourceCoordinate{}, fmt.Errorf("%w: %s: %v", ErrInvalidResourceID, resourceID, err)
	}
	if !strings.EqualFold(parsed.ResourceType.String(), ComponentResourceType) {
		return ResourceCoordinate{}, fmt.Errorf("%w: %s has type %s", ErrInvalidResourceID, resourceID, parsed.ResourceType.String())
	}
	if parsed.ResourceGroupName == "" || parsed.Name == "" {
		return ResourceCoordinate{}, fmt.Errorf("%w: %s is missing a resource group or name", ErrInvalidResourceID, resourceID)
	}

	return ResourceCoordinate{
		SubscriptionID:    parsed.SubscriptionID,
		ResourceGroupName: parsed.ResourceGroupName,
		ResourceName:      parsed.Name,
	}, nil
}
