/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azure/appinsights-pricing/azure"
	"github.com/azure/appinsights-pricing/filepathparser"
)

var log = logrus.New()

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "appinsights-pricing",
	Short: "Manage the pricing plan and daily cap of Application Insights components",
	Long: `appinsights-pricing reads and updates the billing features of Azure
Application Insights components: the pricing plan, the daily data volume cap
and whether a notification is sent when the cap is hit.

Authentication uses the Azure default credential chain (environment, managed
identity, Azure CLI, ...).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.appinsights-pricing.yaml)")
	rootCmd.PersistentFlags().StringP("verbosity", "v", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().Bool("structuredLogs", false, "Write logs as JSON")
	viper.BindPFlag("structuredLogs", rootCmd.PersistentFlags().Lookup("structuredLogs"))
	rootCmd.PersistentFlags().String("cloud", azure.CloudAzurePublic, "Azure cloud (AzurePublic, AzureUSGovernment, AzureChina)")
	viper.BindPFlag("cloud", rootCmd.PersistentFlags().Lookup("cloud"))
	rootCmd.PersistentFlags().StringP("subscriptionID", "s", "", "Subscription ID to use when the component is selected by resource group and name")
	viper.BindPFlag("subscriptionID", rootCmd.PersistentFlags().Lookup("subscriptionID"))
	rootCmd.PersistentFlags().StringSlice("subscriptionIDs", []string{}, "Subscription IDs the Resource Graph lookup is limited to (default all accessible subscriptions)")
	viper.BindPFlag("subscriptionIDs", rootCmd.PersistentFlags().Lookup("subscriptionIDs"))
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml, csv, hcl)")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall timeout for the Azure calls, 0 for none")
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		configPath, err := filepathparser.ParsePath(cfgFile)
		cobra.CheckErr(err)
		viper.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".appinsights-pricing")
	}

	viper.SetEnvPrefix("APPINSIGHTS_PRICING")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		cobra.CheckErr(err)
	}
}

func configureLogging() {
	logVerbosity := viper.GetString("verbosity")
	logLevel, err := logrus.ParseLevel(logVerbosity)
	if err != nil {
		log.Fatalf("Invalid log level: %s", logVerbosity)
	}
	log.SetLevel(logLevel)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{})
	if viper.GetBool("structuredLogs") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	for key, value := range viper.GetViper().AllSettings() {
		log.Debugf("Command Flag: %s = %v", key, value)
	}
}

func commandTimeout() time.Duration {
	return viper.GetDuration("timeout")
}

func lookupSubscriptionIDs() []string {
	return viper.GetStringSlice("subscriptionIDs")
}
