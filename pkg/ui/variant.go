package ui

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/csvexport"
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = "classic"

// Variant is a named set of presentation choices. Every variant renders the
// same records; only the columns, colours and optional panels differ.
type Variant struct {
	Name    string
	Title   string
	Accent  string   // hex colour
	Columns []string // subset of csvexport.Header, in display order
	// ShowCharts writes the scatter and histogram after every refresh.
	ShowCharts bool
	// RankingRows caps the ranking panel.
	RankingRows int
}

var variants = mustVariants(map[string]Variant{
	"classic": {
		Name:        "classic",
		Title:       "Comex Intelligence",
		Accent:      "#0D47A1",
		Columns:     csvexport.Header,
		ShowCharts:  true,
		RankingRows: 10,
	},
	"compact": {
		Name:        "compact",
		Title:       "Comex",
		Accent:      "#00897B",
		Columns:     []string{"CO_NCM", "Produto", "Valor_FOB_USD", "Pais_Origem"},
		RankingRows: 5,
	},
	"analyst": {
		Name:        "analyst",
		Title:       "Comex Analyst",
		Accent:      "#6A1B9A",
		Columns:     []string{"Produto", "Valor_FOB_USD", "Peso_KG", "Preco_Medio_KG", "Porto_Entrada", "Data"},
		ShowCharts:  true,
		RankingRows: 15,
	},
})

// mustVariants panics when a variant names a column the export does not have.
func mustVariants(vs map[string]Variant) map[string]Variant {
	for name, v := range vs {
		if err := v.validate(); err != nil {
			panic(fmt.Sprintf("ui: variant %s: %v", name, err))
		}
	}
	return vs
}

func (v Variant) validate() error {
	for _, col := range v.Columns {
		if _, ok := columnIndex[col]; !ok {
			return fmt.Errorf("unknown column %q", col)
		}
	}
	return nil
}

// LookupVariant returns the named variant. An empty name selects the default.
func LookupVariant(name string) (Variant, error) {
	if name == "" {
		name = DefaultVariant
	}
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown presentation variant %q (available: %v)", name, VariantNames())
	}
	return v, nil
}

// VariantNames lists the registered variants.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AccentColor returns the accent as an image colour for chart rendering.
func (v Variant) AccentColor() color.Color {
	return lipgloss.Color(v.Accent)
}

// Row returns the values of rec for the variant's columns.
func (v Variant) Row(rec domain.InferredImportRecord) []string {
	full := csvexport.Row(rec)
	out := make([]string, 0, len(v.Columns))
	for _, col := range v.Columns {
		out = append(out, full[columnIndex[col]])
	}
	return out
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(csvexport.Header))
	for i, h := range csvexport.Header {
		idx[h] = i
	}
	return idx
}()
