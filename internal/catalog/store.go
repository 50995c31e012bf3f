package catalog

import (
	"context"
	"errors"
	"iter"
	"strings"

	"PriceStore/internal/pricetree"
)

// MaxPrice bounds accepted prices so that the sum of any two stays well
// inside int64.
const MaxPrice pricetree.Price = 1_000_000_000_000_000

const (
	maxBarcodeLen = 64
	maxNameLen    = 128
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrAlreadyExists  = errors.New("product already exists")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidBarcode = errors.New("invalid barcode")
	ErrInvalidName    = errors.New("invalid name")
)

type Product struct {
	Barcode      string            `json:"barcode"`
	Name         string            `json:"name"`
	Price        pricetree.Price   `json:"price"`
	PriceHistory []pricetree.Price `json:"price_history"`
}

func (p Product) clone() Product {
	p.PriceHistory = append([]pricetree.Price(nil), p.PriceHistory...)
	return p
}

// RangeResult lists everything priced within [Min, Max].
type RangeResult struct {
	Min      pricetree.Price   `json:"min"`
	Max      pricetree.Price   `json:"max"`
	Count    int               `json:"count"`
	Prices   []pricetree.Price `json:"prices"`
	Products []Product         `json:"products"`
}

// Neighbors partitions the catalog around one product's price. Products at
// exactly the same price are in neither list.
type Neighbors struct {
	Product       Product   `json:"product"`
	Cheaper       []Product `json:"cheaper"`
	Costlier      []Product `json:"costlier"`
	CheaperCount  int       `json:"cheaper_count"`
	CostlierCount int       `json:"costlier_count"`
}

// PriceIndex is the multiset of current prices the catalog keeps in sync
// with its products.
type PriceIndex interface {
	Insert(v pricetree.Price)
	RemoveOne(v pricetree.Price) bool
	Median() (pricetree.Median, bool)
	Rank(v pricetree.Price) int
	CountInRange(low, high pricetree.Price) (int, error)
	ValuesInRange(low, high pricetree.Price) (iter.Seq[pricetree.Price], error)
	Len() int
}

type Store interface {
	Ping(ctx context.Context) error
	Add(ctx context.Context, barcode, name string, price pricetree.Price) (Product, error)
	Remove(ctx context.Context, barcode string) (Product, error)
	UpdatePrice(ctx context.Context, barcode string, price pricetree.Price) (Product, pricetree.Median, error)
	Get(ctx context.Context, barcode string) (Product, error)
	ListSortedByBarcode(ctx context.Context) ([]Product, error)
	Median(ctx context.Context) (pricetree.Median, bool, error)
	InRange(ctx context.Context, low, high pricetree.Price) (RangeResult, error)
	Neighbors(ctx context.Context, barcode string) (Neighbors, error)
	Rank(ctx context.Context, price pricetree.Price) (int, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats summarises the catalog for metrics and diagnostics.
type Stats struct {
	Products   int              `json:"products"`
	PriceCount int              `json:"price_count"`
	Median     pricetree.Median `json:"median"`
	HasMedian  bool             `json:"has_median"`
}

// normalizeBarcode validates a barcode for Add. Lookups trim the same way,
// so " 42 " and "42" name one product.
func normalizeBarcode(barcode string) (string, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" || len(barcode) > maxBarcodeLen {
		return "", ErrInvalidBarcode
	}
	return barcode, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return "", ErrInvalidName
	}
	return name, nil
}

func validatePrice(p pricetree.Price) error {
	if p <= 0 || p > MaxPrice {
		return ErrInvalidPrice
	}
	return nil
}
