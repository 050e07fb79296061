package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/azure/appinsights-pricing/csv"
	"github.com/azure/appinsights-pricing/hcl"
	"github.com/azure/appinsights-pricing/json"
	"github.com/azure/appinsights-pricing/types"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatHCL   Format = "hcl"
)

func (format Format) IsValidFormat() bool {
	switch format {
	case FormatTable,
		FormatJSON,
		FormatYAML,
		FormatCSV,
		FormatHCL:
		return true
	default:
		return false
	}
}

func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(value))
	if !format.IsValidFormat() {
		return "", fmt.Errorf("unsupported output format %q, expected one of table, json, yaml, csv, hcl", value)
	}
	return format, nil
}

type Printer struct {
	Format     Format
	Writer     io.Writer
	JsonClient json.IJsonClient
	CsvClient  csv.IBillingCsvClient
	HclClient  hcl.IHclClient
	Logger     *logrus.Logger
}

func NewPrinter(format Format, writer io.Writer, logger *logrus.Logger) *Printer {
	return &Printer{
		Format:     format,
		Writer:     writer,
		JsonClient: json.NewJsonClient(logger),
		CsvClient:  csv.NewBillingCsvClient(logger),
		HclClient:  hcl.NewHclClient(logger),
		Logger:     logger,
	}
}

// Print writes the billing features of one component. JSON and YAML use the
// ARM wire names (CurrentBillingFeatures, DataVolumeCap, Cap, ...) so the
// output can be fed back to the API.
func (printer *Printer) Print(coordinate types.ResourceCoordinate, features types.BillingFeatures) error {
	summary := types.SummarizeBillingFeatures(coordinate, features)

	switch printer.Format {
	case FormatJSON:
		return printer.JsonClient.Export(features, printer.Writer)
	case FormatYAML:
		encoder := yaml.NewEncoder(printer.Writer)
		defer encoder.Close()
		if err := encoder.Encode(newYamlBillingFeatures(features)); err != nil {
			return fmt.Errorf("encoding billing features to YAML: %w", err)
		}
		return nil
	case FormatCSV:
		return printer.CsvClient.Export([]types.BillingSummary{summary}, printer.Writer)
	case FormatHCL:
		return printer.HclClient.WriteBillingBlocks([]types.BillingSummary{summary}, printer.Writer)
	default:
		return printer.printTable(summary)
	}
}

func (printer *Printer) printTable(summary types.BillingSummary) error {
	table := tablewriter.NewWriter(printer.Writer)
	table.Header("Property", "Value")

	_ = table.Append("Resource Group", summary.ResourceGroupName)
	_ = table.Append("Name", summary.ResourceName)
	_ = table.Append("Pricing Plan", string(summary.PricingPlan))
	_ = table.Append("Billing Features", strings.Join(summary.BillingFeatures, ", "))
	_ = table.Append("Daily Cap (GB)", formatFloat(summary.DailyCapGB))
	_ = table.Append("Reset Time (UTC Hour)", formatInt(summary.ResetTimeUTCHour))
	_ = table.Append("Warning Threshold (%)", formatInt(summary.WarningThresholdPercent))
	_ = table.Append("Stop Notification When Hit Cap", formatBool(summary.StopSendNotificationWhenHitCap))
	_ = table.Append("Stop Notification When Hit Threshold", formatBool(summary.StopSendNotificationWhenHitThreshold))
	_ = table.Append("Max History Cap (GB)", formatFloat(summary.MaxHistoryCapGB))

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

type yamlDataVolumeCap struct {
	Cap                                  *float32 `yaml:"Cap,omitempty"`
	ResetTime                            *int32   `yaml:"ResetTime,omitempty"`
	WarningThreshold                     *int32   `yaml:"WarningThreshold,omitempty"`
	StopSendNotificationWhenHitThreshold *bool    `yaml:"StopSendNotificationWhenHitThreshold,omitempty"`
	StopSendNotificationWhenHitCap       *bool    `yaml:"StopSendNotificationWhenHitCap,omitempty"`
	MaxHistoryCap                        *float32 `yaml:"MaxHistoryCap,omitempty"`
}

type yamlBillingFeatures struct {
	CurrentBillingFeatures []string           `yaml:"CurrentBillingFeatures"`
	DataVolumeCap          *yamlDataVolumeCap `yaml:"DataVolumeCap,omitempty"`
}

func newYamlBillingFeatures(features types.BillingFeatures) yamlBillingFeatures {
	result := yamlBillingFeatures{CurrentBillingFeatures: []string{}}
	for _, label := range features.CurrentBillingFeatures {
		if label != nil {
			result.CurrentBillingFeatures = append(result.CurrentBillingFeatures, *label)
		}
	}
	if dataVolumeCap := features.DataVolumeCap; dataVolumeCap != nil {
		result.DataVolumeCap = &yamlDataVolumeCap{
			Cap:                                  dataVolumeCap.Cap,
			ResetTime:                            dataVolumeCap.ResetTime,
			WarningThreshold:                     dataVolumeCap.WarningThreshold,
			StopSendNotificationWhenHitThreshold: dataVolumeCap.StopSendNotificationWhenHitThreshold,
			StopSendNotificationWhenHitCap:       dataVolumeCap.StopSendNotificationWhenHitCap,
			MaxHistoryCap:                        dataVolumeCap.MaxHistoryCap,
		}
	}
	return result
}

func formatFloat(value *float32) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(float64(*value), 'f', -1, 32)
}

func formatInt(value *int32) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatInt(int64(*value), 10)
}

func formatBool(value *bool) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatBool(*value)
}
