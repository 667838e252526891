// Package domain contains the marketplace listing types.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

// Marketplace thumbnails come in several sizes; the suffix picks one.
const (
	thumbnailSuffix = "-I.jpg"
	previewSuffix   = "-V.jpg"
)

// ListingRecord is one marketplace offer with its retail price in local
// currency. Read-only input to inference.
type ListingRecord struct {
	SourceID       string
	Title          string
	RetailPrice    decimal.Decimal
	CategoryID     string
	ImageReference string
	Permalink      string
}

// NewListingRecord validates price > 0 and upgrades the image reference.
func NewListingRecord(sourceID, title string, price decimal.Decimal, categoryID, image, permalink string) (ListingRecord, error) {
	if !price.IsPositive() {
		return ListingRecord{}, apperror.InvalidInput("retail_price", price)
	}
	return ListingRecord{
		SourceID:       sourceID,
		Title:          strings.TrimSpace(title),
		RetailPrice:    price,
		CategoryID:     categoryID,
		ImageReference: UpgradeImage(image),
		Permalink:      permalink,
	}, nil
}

// UpgradeImage swaps the small thumbnail for the larger preview variant.
// References without the thumbnail suffix are returned unchanged.
func UpgradeImage(ref string) string {
	if strings.HasSuffix(ref, thumbnailSuffix) {
		return strings.TrimSuffix(ref, thumbnailSuffix) + previewSuffix
	}
	return ref
}
