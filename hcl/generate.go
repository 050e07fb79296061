package hcl

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/azure/appinsights-pricing/types"
)

const terraformResourceType = "azurerm_application_insights"

var invalidIdentifierCharacters = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type IHclClient interface {
	WriteBillingBlocks(summaries []types.BillingSummary, writer io.Writer) error
}

type HclClient struct {
	Logger *logrus.Logger
}

func NewHclClient(logger *logrus.Logger) *HclClient {
	return &HclClient{
		Logger: logger,
	}
}

// WriteBillingBlocks renders each summary as the azurerm_application_insights
// arguments that carry the same daily cap settings. Settings the server did not
// return are left out.
func (hclClient *HclClient) WriteBillingBlocks(summaries []types.BillingSummary, writer io.Writer) error {
	hclFile := hclwrite.NewEmptyFile()

	for _, summary := range summaries {
		resourceBlock := hclFile.Body().AppendNewBlock("resource", []string{terraformResourceType, terraformIdentifier(summary.ResourceName)})
		body := resourceBlock.Body()
		body.SetAttributeValue("name", cty.StringVal(summary.ResourceName))
		body.SetAttributeValue("resource_group_name", cty.StringVal(summary.ResourceGroupName))
		if summary.DailyCapGB != nil {
			body.SetAttributeValue("daily_data_cap_in_gb", cty.NumberFloatVal(widenFloat(*summary.DailyCapGB)))
		}
		if summary.StopSendNotificationWhenHitCap != nil {
			body.SetAttributeValue("daily_data_cap_notifications_disabled", cty.BoolVal(*summary.StopSendNotificationWhenHitCap))
		}
		hclFile.Body().AppendNewline()

		if summary.PricingPlan != "" && summary.PricingPlan != types.PricingPlanBasic {
			hclClient.Logger.Warnf("Pricing plan %s of %s has no azurerm_application_insights argument and is not rendered", summary.PricingPlan, summary.ResourceName)
		}
	}

	if _, err := writer.Write(hclwrite.Format(hclFile.Bytes())); err != nil {
		return fmt.Errorf("error writing HCL: %w", err)
	}
	return nil
}

func terraformIdentifier(name string) string {
	identifier := invalidIdentifierCharacters.ReplaceAllString(name, "_")
	if identifier == "" || (identifier[0] >= '0' && identifier[0] <= '9') || identifier[0] == '-' {
		identifier = "_" + identifier
	}
	return identifier
}

// widenFloat keeps the shortest decimal form of a float32 so 0.1 stays 0.1.
func widenFloat(value float32) float64 {
	widened, err := strconv.ParseFloat(strconv.FormatFloat(float64(value), 'f', -1, 32), 64)
	if err != nil {
		return float64(value)
	}
	return widened
}
