// Package yamlfile loads category profiles from a YAML document.
package yamlfile

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

// document is the on-disk layout:
//
//	categories:
//	  - id: smartphones
//	    customs_code: "8517.13.00"
//	    unit_weight_kg: "0.18"
//	    markup_factor: "1.6"
type document struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	CustomsCode   string `yaml:"customs_code"`
	UnitWeightKg  string `yaml:"unit_weight_kg"`
	MarkupFactor  string `yaml:"markup_factor"`
	SearchTerm    string `yaml:"search_term"`
	DefaultOrigin string `yaml:"default_origin"`
}

// Load reads path and returns its profiles. Environment references like
// ${VAR} are expanded before parsing.
func Load(path string) ([]domain.CategoryProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeCatalogLoad, path, err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]domain.CategoryProfile, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperror.Internal(apperror.CodeCatalogLoad, "parse catalog yaml", err)
	}

	profiles := make([]domain.CategoryProfile, 0, len(doc.Categories))
	for i, e := range doc.Categories {
		weight, err := decimal.NewFromString(e.UnitWeightKg)
		if err != nil {
			return nil, apperror.Internal(apperror.CodeCatalogLoad,
				fmt.Sprintf("categories[%d].unit_weight_kg", i), err)
		}
		markup, err := decimal.NewFromString(e.MarkupFactor)
		if err != nil {
			return nil, apperror.Internal(apperror.CodeCatalogLoad,
				fmt.Sprintf("categories[%d].markup_factor", i), err)
		}

		profiles = append(profiles, domain.CategoryProfile{
			ID:            e.ID,
			Name:          e.Name,
			CustomsCode:   e.CustomsCode,
			UnitWeightKg:  weight,
			MarkupFactor:  markup,
			SearchTerm:    e.SearchTerm,
			DefaultOrigin: e.DefaultOrigin,
		})
	}

	return profiles, nil
}
