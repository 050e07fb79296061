package output

import (
	"bytes"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/azure/appinsights-pricing/types"
)

var testCoordinate = types.ResourceCoordinate{ResourceGroupName: "rg-monitoring", ResourceName: "ai-web"}

func testFeatures() types.BillingFeatures {
	return types.BillingFeatures{
		CurrentBillingFeatures: []*string{to.Ptr(types.BillingLabelEnterprise)},
		DataVolumeCap: &types.DataVolumeCap{
			Cap:                            to.Ptr(float32(5.5)),
			WarningThreshold:               to.Ptr(int32(90)),
			StopSendNotificationWhenHitCap: to.Ptr(false),
		},
	}
}

func render(t *testing.T, format Format) string {
	t.Helper()
	buffer := &bytes.Buffer{}
	err := NewPrinter(format, buffer, logrus.New()).Print(testCoordinate, testFeatures())
	require.NoError(t, err)
	return buffer.String()
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrintJSON(t *testing.T) {
	assert.JSONEq(t, `{
  "CurrentBillingFeatures": ["Application Insights Enterprise"],
  "DataVolumeCap": {"Cap": 5.5, "WarningThreshold": 90, "StopSendNotificationWhenHitCap": false}
}`, render(t, FormatJSON))
}

func TestPrintYAML(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(render(t, FormatYAML)), &decoded))

	assert.Equal(t, []any{"Application Insights Enterprise"}, decoded["CurrentBillingFeatures"])
	dataVolumeCap := decoded["DataVolumeCap"].(map[string]any)
	assert.Equal(t, 5.5, dataVolumeCap["Cap"])
	assert.Equal(t, 90, dataVolumeCap["WarningThreshold"])
	assert.Equal(t, false, dataVolumeCap["StopSendNotificationWhenHitCap"])
	assert.NotContains(t, dataVolumeCap, "ResetTime")
}

func TestPrintJSONAndYAMLShareKeys(t *testing.T) {
	var fromJSON, fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(render(t, FormatJSON)), &fromJSON))
	require.NoError(t, yaml.Unmarshal([]byte(render(t, FormatYAML)), &fromYAML))

	assert.ElementsMatch(t, keys(fromJSON), keys(fromYAML))
	assert.ElementsMatch(t,
		keys(fromJSON["DataVolumeCap"].(map[string]any)),
		keys(fromYAML["DataVolumeCap"].(map[string]any)))
}

func keys(values map[string]any) []string {
	result := make([]string, 0, len(values))
	for key := range values {
		result = append(result, key)
	}
	return result
}

func TestPrintTable(t *testing.T) {
	output := render(t, FormatTable)

	assert.Contains(t, output, "ai-web")
	assert.Contains(t, output, "Enterprise")
	assert.Contains(t, output, "5.5")
}

func TestPrintCSV(t *testing.T) {
	assert.Contains(t, render(t, FormatCSV), "rg-monitoring,ai-web,Enterprise,Application Insights Enterprise,5.5,,90,false,,")
}

func TestPrintHCL(t *testing.T) {
	output := render(t, FormatHCL)

	assert.Contains(t, output, `resource "azurerm_application_insights" "ai-web"`)
	assert.Regexp(t, `daily_data_cap_in_gb\s+= 5.5`, output)
}
