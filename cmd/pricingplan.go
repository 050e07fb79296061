/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

	"github.com/azure/appinsights-pricing/azure"
	"github.com/azure/appinsights-pricing/confirm"
	"github.com/azure/appinsights-pricing/filepathparser"
	"github.com/azure/appinsights-pricing/json"
	"github.com/azure/appinsights-pricing/output"
	"github.com/azure/appinsights-pricing/pricing"
	"github.com/azure/appinsights-pricing/types"
)

const (
	componentFlag                     = "component"
	resourceIDFlag                    = "resource-id"
	resourceGroupFlag                 = "resource-group"
	nameFlag                          = "name"
	pricingPlanFlag                   = "pricing-plan"
	dailyCapGBFlag                    = "daily-cap-gb"
	disableNotificationWhenHitCapFlag = "disable-notification-when-hit-cap"
	forceFlag                         = "force"
	whatIfFlag                        = "what-if"
)

var pricingPlanCmd = &cobra.Command{
	Use:   "pricing-plan",
	Short: "Show or update the pricing plan of an Application Insights component",
}

// pricingPlanSetCmd represents the pricing-plan set command
var pricingPlanSetCmd = &cobra.Command{
	Use:     "set",
	Aliases: []string{"update"},
	Short:   "Update the pricing plan, daily cap and cap notification of a component",
	Long: `The set command reads the current billing features of one Application
Insights component, applies the requested changes and writes them back after
confirmation.

Select the component with exactly one of --component, --resource-id or
--resource-group together with --name. Options that are not passed leave the
current value unchanged.

Examples:
  # Switch to the Enterprise plan with a 10 GB daily cap
  appinsights-pricing pricing-plan set -g rg-monitoring -n ai-web --pricing-plan Enterprise --daily-cap-gb 10

  # Stop cap notifications for a component exported with az cli, without prompting
  appinsights-pricing pricing-plan set --component ./ai-web.json --disable-notification-when-hit-cap --force

  # Show what would change
  appinsights-pricing pricing-plan set --resource-id /subscriptions/.../components/ai-web --daily-cap-gb 5 --what-if`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		request, err := pricingPlanRequestFromFlags(cmd)
		fatalOnError(err, "Invalid pricing plan options")

		invocation := newInvocation(cmd)
		defer invocation.cancel()

		coordinate := invocation.resolveCoordinate(cmd)

		billingFeaturesClient, err := azure.NewBillingFeaturesClient(coordinate.SubscriptionID, invocation.credential, invocation.clientOptions, log)
		fatalOnError(err, "Error creating billing features client")

		updater := pricing.NewPricingPlanUpdater(billingFeaturesClient, confirmerFromFlags(cmd), log)

		updated, err := updater.Update(invocation.ctx, coordinate, request)
		fatalOnError(err, "Error updating pricing plan")
		if updated == nil {
			return
		}

		err = invocation.printer.Print(coordinate, *updated)
		fatalOnError(err, "Error writing output")
	},
}

// pricingPlanShowCmd represents the pricing-plan show command
var pricingPlanShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"get"},
	Short:   "Show the current pricing plan, daily cap and cap notification of a component",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		invocation := newInvocation(cmd)
		defer invocation.cancel()

		coordinate := invocation.resolveCoordinate(cmd)

		billingFeaturesClient, err := azure.NewBillingFeaturesClient(coordinate.SubscriptionID, invocation.credential, invocation.clientOptions, log)
		fatalOnError(err, "Error creating billing features client")

		updater := pricing.NewPricingPlanUpdater(billingFeaturesClient, nil, log)
		features, err := updater.FetchCurrentFeatures(invocation.ctx, coordinate)
		fatalOnError(err, "Error reading pricing plan")

		err = invocation.printer.Print(coordinate, features)
		fatalOnError(err, "Error writing output")
	},
}

func init() {
	rootCmd.AddCommand(pricingPlanCmd)
	pricingPlanCmd.AddCommand(pricingPlanSetCmd)
	pricingPlanCmd.AddCommand(pricingPlanShowCmd)

	addCoordinateFlags(pricingPlanShowCmd)
	addCoordinateFlags(pricingPlanSetCmd)
	addPricingPlanFlags(pricingPlanSetCmd)
}

func addCoordinateFlags(cmd *cobra.Command) {
	cmd.Flags().String(componentFlag, "", "Path to a component JSON document (az monitor app-insights component show)")
	cmd.Flags().String(resourceIDFlag, "", "Resource ID of the component")
	cmd.Flags().StringP(resourceGroupFlag, "g", "", "Resource group of the component")
	cmd.Flags().StringP(nameFlag, "n", "", "Name of the component")

	cmd.MarkFlagsMutuallyExclusive(componentFlag, resourceIDFlag, resourceGroupFlag)
	cmd.MarkFlagsMutuallyExclusive(componentFlag, resourceIDFlag, nameFlag)
	cmd.MarkFlagsRequiredTogether(resourceGroupFlag, nameFlag)
	cmd.MarkFlagsOneRequired(componentFlag, resourceIDFlag, resourceGroupFlag)
}

func addPricingPlanFlags(cmd *cobra.Command) {
	cmd.Flags().String(pricingPlanFlag, "", "Pricing plan (Basic, Enterprise, LimitedBasic)")
	cmd.Flags().Float32(dailyCapGBFlag, 0, "Daily data volume cap in GB")
	cmd.Flags().Bool(disableNotificationWhenHitCapFlag, false, "Stop sending a notification when the daily cap is hit (pass =false to re-enable)")
	cmd.Flags().BoolP(forceFlag, "f", false, "Skip the confirmation prompt")
	cmd.Flags().Bool(whatIfFlag, false, "Show the operation without performing it")

	cmd.MarkFlagsMutuallyExclusive(forceFlag, whatIfFlag)
}

func coordinateInputFromFlags(cmd *cobra.Command, jsonClient json.IJsonClient) (types.CoordinateInput, error) {
	input := types.CoordinateInput{}
	input.ResourceID, _ = cmd.Flags().GetString(resourceIDFlag)
	input.ResourceGroupName, _ = cmd.Flags().GetString(resourceGroupFlag)
	input.ResourceName, _ = cmd.Flags().GetString(nameFlag)

	componentPath, _ := cmd.Flags().GetString(componentFlag)
	if componentPath != "" {
		componentFilePath, err := filepathparser.ParsePath(componentPath)
		if err != nil {
			return input, err
		}
		input.Component, err = jsonClient.ImportComponent(componentFilePath)
		if err != nil {
			return input, err
		}
	}

	return input, nil
}

// pricingPlanRequestFromFlags only sets the request fields whose flags were
// passed on the command line.
func pricingPlanRequestFromFlags(cmd *cobra.Command) (types.PricingPlanRequest, error) {
	request := types.PricingPlanRequest{}

	if cmd.Flags().Changed(pricingPlanFlag) {
		planName, _ := cmd.Flags().GetString(pricingPlanFlag)
		pricingPlan, err := types.ParsePricingPlan(planName)
		if err != nil {
			return request, err
		}
		request.PricingPlan = &pricingPlan
	}
	if cmd.Flags().Changed(dailyCapGBFlag) {
		dailyCapGB, _ := cmd.Flags().GetFloat32(dailyCapGBFlag)
		request.DailyCapGB = &dailyCapGB
	}
	if cmd.Flags().Changed(disableNotificationWhenHitCapFlag) {
		disable, _ := cmd.Flags().GetBool(disableNotificationWhenHitCapFlag)
		request.DisableCapNotification = &disable
	}

	return request, nil
}

func confirmerFromFlags(cmd *cobra.Command) confirm.IConfirmer {
	if whatIf, _ := cmd.Flags().GetBool(whatIfFlag); whatIf {
		return &confirm.WhatIfConfirmer{Logger: log}
	}
	if force, _ := cmd.Flags().GetBool(forceFlag); force {
		return &confirm.ForceConfirmer{Logger: log}
	}
	return confirm.NewPromptConfirmer(log)
}

type invocation struct {
	ctx           context.Context
	cancel        context.CancelFunc
	credential    azcore.TokenCredential
	clientOptions *arm.ClientOptions
	printer       *output.Printer
}

func newInvocation(cmd *cobra.Command) *invocation {
	format, err := output.ParseFormat(viper.GetString("output"))
	fatalOnError(err, "Invalid output format")

	cloudConfiguration, err := azure.CloudConfiguration(viper.GetString("cloud"))
	fatalOnError(err, "Invalid cloud")

	credential, err := azure.NewCredential(cloudConfiguration)
	fatalOnError(err, "Error creating Azure credential")

	correlationID := uuid.NewString()
	log.Debugf("Correlation ID: %s", correlationID)

	var ctx context.Context
	var cancel context.CancelFunc
	if timeout := commandTimeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(cmd.Context(), timeout)
	} else {
		ctx, cancel = context.WithCancel(cmd.Context())
	}

	return &invocation{
		ctx:           ctx,
		cancel:        cancel,
		credential:    credential,
		clientOptions: azure.NewClientOptions(cloudConfiguration, correlationID),
		printer:       output.NewPrinter(format, os.Stdout, log),
	}
}

// resolveCoordinate turns the selector flags into a coordinate that carries a
// subscription, asking Resource Graph when neither the selector nor the
// configuration names one.
func (invocation *invocation) resolveCoordinate(cmd *cobra.Command) types.ResourceCoordinate {
	input, err := coordinateInputFromFlags(cmd, json.NewJsonClient(log))
	fatalOnError(err, "Error reading component")

	coordinate, err := pricing.ResolveCoordinate(input)
	fatalOnError(err, "Invalid component selection")

	if coordinate.SubscriptionID != "" {
		return coordinate
	}
	if subscriptionID := viper.GetString("subscriptionID"); subscriptionID != "" {
		coordinate.SubscriptionID = subscriptionID
		return coordinate
	}

	resourceGraphClient := azure.NewResourceGraphClient(invocation.credential, invocation.clientOptions, lookupSubscriptionIDs(), log)
	coordinate, err = resourceGraphClient.FindComponent(invocation.ctx, coordinate.ResourceGroupName, coordinate.ResourceName)
	fatalOnError(err, "Error finding component subscription")
	return coordinate
}

func fatalOnError(err error, message string) {
	if err == nil {
		return
	}

	var responseError *azcore.ResponseError
	if errors.As(err, &responseError) {
		log.WithFields(logrus.Fields{
			"statusCode": responseError.StatusCode,
			"errorCode":  responseError.ErrorCode,
		}).Fatalf("%s: %v", message, err)
	}
	log.Fatalf("%s: %v", message, err)
}
