package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azure/appinsights-pricing/confirm"
	"github.com/azure/appinsights-pricing/json"
	"github.com/azure/appinsights-pricing/types"
)

func newTestSetCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "set"}
	addCoordinateFlags(cmd)
	addPricingPlanFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func Test_PricingPlanRequestFromFlags_Unset(t *testing.T) {
	request, err := pricingPlanRequestFromFlags(newTestSetCommand(t, "-g", "rg", "-n", "ai"))

	require.NoError(t, err)
	assert.True(t, request.IsEmpty())
}

func Test_PricingPlanRequestFromFlags_All(t *testing.T) {
	cmd := newTestSetCommand(t, "--pricing-plan", "limitedbasic", "--daily-cap-gb", "5.5", "--disable-notification-when-hit-cap")

	request, err := pricingPlanRequestFromFlags(cmd)

	require.NoError(t, err)
	assert.Equal(t, types.PricingPlanLimitedBasic, *request.PricingPlan)
	assert.Equal(t, float32(5.5), *request.DailyCapGB)
	assert.True(t, *request.DisableCapNotification)
}

func Test_PricingPlanRequestFromFlags_ReenableNotification(t *testing.T) {
	request, err := pricingPlanRequestFromFlags(newTestSetCommand(t, "--disable-notification-when-hit-cap=false"))

	require.NoError(t, err)
	require.NotNil(t, request.DisableCapNotification)
	assert.False(t, *request.DisableCapNotification)
	assert.Nil(t, request.PricingPlan)
	assert.Nil(t, request.DailyCapGB)
}

func Test_PricingPlanRequestFromFlags_UnknownPlan(t *testing.T) {
	_, err := pricingPlanRequestFromFlags(newTestSetCommand(t, "--pricing-plan", "Premium"))

	assert.ErrorIs(t, err, types.ErrUnknownPricingPlan)
}

func Test_CoordinateInputFromFlags_Component(t *testing.T) {
	componentPath := filepath.Join(t.TempDir(), "component.json")
	require.NoError(t, os.WriteFile(componentPath, []byte(`{"name": "ai-web", "resourceGroup": "rg-monitoring"}`), 0644))

	input, err := coordinateInputFromFlags(newTestSetCommand(t, "--component", componentPath), json.NewJsonClient(log))

	require.NoError(t, err)
	require.NotNil(t, input.Component)
	assert.Equal(t, "ai-web", input.Component.Name)
	assert.Equal(t, "rg-monitoring", input.Component.ResourceGroupName)
	assert.Empty(t, input.ResourceID)
}

func Test_CoordinateInputFromFlags_NameAndGroup(t *testing.T) {
	input, err := coordinateInputFromFlags(newTestSetCommand(t, "-g", "rg", "-n", "ai"), json.NewJsonClient(log))

	require.NoError(t, err)
	assert.Nil(t, input.Component)
	assert.Equal(t, "rg", input.ResourceGroupName)
	assert.Equal(t, "ai", input.ResourceName)
}

func Test_CoordinateFlagsAreMutuallyExclusive(t *testing.T) {
	cmd := newTestSetCommand(t, "--resource-id", "/subscriptions/x", "-g", "rg", "-n", "ai")

	assert.Error(t, cmd.ValidateFlagGroups())
}

func Test_ConfirmerFromFlags(t *testing.T) {
	assert.IsType(t, &confirm.WhatIfConfirmer{}, confirmerFromFlags(newTestSetCommand(t, "--what-if")))
	assert.IsType(t, &confirm.ForceConfirmer{}, confirmerFromFlags(newTestSetCommand(t, "--force")))
	assert.IsType(t, &confirm.PromptConfirmer{}, confirmerFromFlags(newTestSetCommand(t)))
	assert.Error(t, newTestSetCommand(t, "--force", "--what-if").ValidateFlagGroups())
}

func Test_LookupSubscriptionIDsFromFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("subscriptionIDs")
	require.NotNil(t, flag)
	t.Cleanup(func() {
		require.NoError(t, flag.Value.(pflag.SliceValue).Replace([]string{}))
		flag.Changed = false
	})

	require.NoError(t, rootCmd.PersistentFlags().Set("subscriptionIDs", "00000000-0000-0000-0000-000000000001,00000000-0000-0000-0000-000000000002"))

	assert.Equal(t, []string{"00000000-0000-0000-0000-000000000001", "00000000-0000-0000-0000-000000000002"}, lookupSubscriptionIDs())
}
