package api

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/modules.yaml
var catalogFS embed.FS

// CatalogModule describes one installable module from the embedded
// catalog.
type CatalogModule struct {
	Name            string   `yaml:"name" json:"name"`
	DisplayName     string   `yaml:"display_name" json:"display_name"`
	Description     string   `yaml:"description" json:"description"`
	Version         string   `yaml:"version" json:"version"`
	Category        string   `yaml:"category" json:"category"`
	Features        []string `yaml:"features" json:"features"`
	RequiredConfig  []string `yaml:"required_config" json:"required_config"`
	APIRequirements []string `yaml:"api_requirements" json:"api_requirements"`
}

func loadCatalog() ([]CatalogModule, error) {
	raw, err := catalogFS.ReadFile("catalog/modules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read module catalog: %w", err)
	}

	var doc struct {
		Modules []CatalogModule `yaml:"modules"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse module catalog: %w", err)
	}
	return doc.Modules, nil
}

func findCatalogModule(catalog []CatalogModule, name string) (CatalogModule, bool) {
	for _, m := range catalog {
		if m.Name == name {
			return m, true
		}
	}
	return CatalogModule{}, false
}

func filterCatalog(catalog []CatalogModule, category string) []CatalogModule {
	if category == "" {
		return catalog
	}
	out := make([]CatalogModule, 0, len(catalog))
	for _, m := range catalog {
		if strings.EqualFold(m.Category, category) {
			out = append(out, m)
		}
	}
	return out
}
