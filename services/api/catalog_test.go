package api

import "testing"

func TestLoadCatalog(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if len(catalog) != 5 {
		t.Fatalf("loadCatalog() returned %d modules, want 5", len(catalog))
	}

	seo, ok := findCatalogModule(catalog, "seo_optimizer")
	if !ok {
		t.Fatal("seo_optimizer missing from catalog")
	}
	if seo.Category != "SEO" {
		t.Fatalf("seo_optimizer category = %q, want %q", seo.Category, "SEO")
	}
	if len(seo.Features) == 0 || len(seo.RequiredConfig) == 0 {
		t.Fatal("seo_optimizer missing features or required_config")
	}

	if _, ok := findCatalogModule(catalog, "nonexistent"); ok {
		t.Fatal("findCatalogModule matched an unknown name")
	}
}

func TestFilterCatalog(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}

	tests := []struct {
		name     string
		category string
		want     int
	}{
		{name: "no filter", category: "", want: 5},
		{name: "marketing case insensitive", category: "marketing", want: 2},
		{name: "analytics", category: "Analytics", want: 1},
		{name: "unknown category", category: "gaming", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterCatalog(catalog, tt.category)
			if len(got) != tt.want {
				t.Fatalf("filterCatalog(%q) returned %d modules, want %d", tt.category, len(got), tt.want)
			}
		})
	}
}
