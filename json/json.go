package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/azure/appinsights-pricing/types"
)

type IJsonClient interface {
	Export(value any, writer io.Writer) error
	ImportComponent(filePath string) (*types.ComponentObject, error)
}

type JsonClient struct {
	Logger *logrus.Logger
}

func NewJsonClient(logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		Logger: logger,
	}
}

func (jsonClient *JsonClient) Export(value any, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}
	return nil
}

// ImportComponent reads a component document as written by the ARM API, the
// az cli ("resourceGroup") or Azure PowerShell ("ResourceGroupName"). Keys
// are matched case-insensitively.
func (jsonClient *JsonClient) ImportComponent(filePath string) (*types.ComponentObject, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening component file: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("parsing component file %s: %w", filePath, err)
	}

	component := &types.ComponentObject{}
	for key, value := range payload {
		text, ok := value.(string)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "id":
			component.ID = text
		case "name":
			component.Name = text
		case "resourcegroup", "resourcegroupname":
			component.ResourceGroupName = text
		}
	}

	jsonClient.Logger.Debugf("Imported component %q (id %q, resource group %q) from %s", component.Name, component.ID, component.ResourceGroupName, filePath)
	return component, nil
}
