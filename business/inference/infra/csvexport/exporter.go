// Package csvexport writes inferred import records as the flat CSV
// artifact consumed by spreadsheet users.
package csvexport

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

// Header is the fixed column order of the artifact.
var Header = []string{
	"CO_NCM",
	"Produto",
	"Valor_FOB_USD",
	"Peso_KG",
	"Preco_Medio_KG",
	"Porto_Entrada",
	"Pais_Origem",
	"Data",
}

// Row formats one record in Header order.
func Row(r domain.InferredImportRecord) []string {
	return []string{
		r.CustomsCode,
		r.Title,
		r.EstimatedFOB.StringFixed(2),
		r.EstimatedWeightKg.StringFixed(3),
		r.UnitValuePerKg.StringFixed(2),
		r.EntryPort,
		r.OriginCountry,
		r.Date(),
	}
}

// Write writes the header and one row per record to w.
func Write(w io.Writer, records []domain.InferredImportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, "header", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return apperror.Internal(apperror.CodeExportFailed, "row "+r.SourceID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, "flush", err)
	}
	return nil
}

// WriteFile writes records to path, replacing it atomically.
func WriteFile(path string, records []domain.InferredImportRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	return nil
}
