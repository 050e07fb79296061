package json

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeComponentFile(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "component.json")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

func TestImportComponent_AzCliDocument(t *testing.T) {
	filePath := writeComponentFile(t, `{
  "id": "/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg-monitoring/providers/microsoft.insights/components/ai-web",
  "name": "ai-web",
  "resourceGroup": "rg-monitoring",
  "kind": "web",
  "properties": {"Application_Type": "web"}
}`)

	component, err := NewJsonClient(logrus.New()).ImportComponent(filePath)

	require.NoError(t, err)
	assert.Equal(t, "/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg-monitoring/providers/microsoft.insights/components/ai-web", component.ID)
	assert.Equal(t, "ai-web", component.Name)
	assert.Equal(t, "rg-monitoring", component.ResourceGroupName)
}

func TestImportComponent_PowerShellDocument(t *testing.T) {
	filePath := writeComponentFile(t, `{"Name": "ai-web", "ResourceGroupName": "rg-monitoring", "PricingPlan": "Basic"}`)

	component, err := NewJsonClient(logrus.New()).ImportComponent(filePath)

	require.NoError(t, err)
	assert.Empty(t, component.ID)
	assert.Equal(t, "ai-web", component.Name)
	assert.Equal(t, "rg-monitoring", component.ResourceGroupName)
}

func TestImportComponent_Errors(t *testing.T) {
	jsonClient := NewJsonClient(logrus.New())

	_, err := jsonClient.ImportComponent(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = jsonClient.ImportComponent(writeComponentFile(t, `[1, 2`))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	buffer := &bytes.Buffer{}

	err := NewJsonClient(logrus.New()).Export(map[string]any{"currentBillingFeatures": []string{"Basic"}}, buffer)

	require.NoError(t, err)
	assert.JSONEq(t, `{"currentBillingFeatures": ["Basic"]}`, buffer.String())
}
