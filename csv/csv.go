package csv

import (
	csvwriter "encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/azure/appinsights-pricing/types"
)

type IBillingCsvClient interface {
	Export(summaries []types.BillingSummary, writer io.Writer) error
}

type BillingCsvClient struct {
	BillingCsv *BillingCsv
	Logger     *logrus.Logger
}

type BillingCsv struct {
	Header []string
	Rows   []*BillingCsvRow
}

type BillingCsvRow struct {
	ResourceGroupName                    string
	ResourceName                         string
	PricingPlan                          string
	BillingFeatures                      string
	DailyCapGB                           string
	ResetTimeUTCHour                     string
	WarningThresholdPercent              string
	StopSendNotificationWhenHitCap       string
	StopSendNotificationWhenHitThreshold string
	MaxHistoryCapGB                      string
}

func NewBillingCsvClient(logger *logrus.Logger) *BillingCsvClient {
	return &BillingCsvClient{
		BillingCsv: &BillingCsv{Header: []string{"Resource Group", "Resource Name", "Pricing Plan", "Billing Features", "Daily Cap (GB)", "Reset Time (UTC Hour)", "Warning Threshold (%)", "Stop Notification When Hit Cap", "Stop Notification When Hit Threshold", "Max History Cap (GB)"}},
		Logger:     logger,
	}
}

func (csv *BillingCsv) AddRow(row *BillingCsvRow) {
	csv.Rows = append(csv.Rows, row)
}

// Export writes the header and one row per summary. Rows from earlier calls are
// discarded.
func (csvClient *BillingCsvClient) Export(summaries []types.BillingSummary, writer io.Writer) error {
	csvClient.BillingCsv.Rows = []*BillingCsvRow{}
	for _, summary := range summaries {
		csvRow := BillingCsvRow{
			ResourceGroupName:                    summary.ResourceGroupName,
			ResourceName:                         summary.ResourceName,
			PricingPlan:                          string(summary.PricingPlan),
			BillingFeatures:                      strings.Join(summary.BillingFeatures, ";"),
			DailyCapGB:                           formatFloat(summary.DailyCapGB),
			ResetTimeUTCHour:                     formatInt(summary.ResetTimeUTCHour),
			WarningThresholdPercent:              formatInt(summary.WarningThresholdPercent),
			StopSendNotificationWhenHitCap:       formatBool(summary.StopSendNotificationWhenHitCap),
			StopSendNotificationWhenHitThreshold: formatBool(summary.StopSendNotificationWhenHitThreshold),
			MaxHistoryCapGB:                      formatFloat(summary.MaxHistoryCapGB),
		}
		csvClient.BillingCsv.AddRow(&csvRow)
	}

	return csvClient.writeCsv(writer)
}

func (csvClient *BillingCsvClient) writeCsv(writer io.Writer) error {
	csvData := [][]string{csvClient.BillingCsv.Header}
	for _, row := range csvClient.BillingCsv.Rows {
		csvData = append(csvData, []string{
			row.ResourceGroupName,
			row.ResourceName,
			row.PricingPlan,
			row.BillingFeatures,
			row.DailyCapGB,
			row.ResetTimeUTCHour,
			row.WarningThresholdPercent,
			row.StopSendNotificationWhenHitCap,
			row.StopSendNotificationWhenHitThreshold,
			row.MaxHistoryCapGB,
		})
	}

	csvWriter := csvwriter.NewWriter(writer)
	if err := csvWriter.WriteAll(csvData); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	csvClient.Logger.Debugf("Wrote %d billing CSV rows", len(csvClient.BillingCsv.Rows))
	return nil
}

func formatFloat(value *float32) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*value), 'f', -1, 32)
}

func formatInt(value *int32) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(int64(*value), 10)
}

func formatBool(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}
