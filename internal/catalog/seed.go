package catalog

import (
	"context"
	"errors"
	"fmt"
)

// DefaultProducts is the starter catalog loaded when seeding is enabled.
var DefaultProducts = []Product{
	{Barcode: "1", Name: "kafsh", Price: 890000},
	{Barcode: "2", Name: "kif", Price: 1500000},
	{Barcode: "3", Name: "loptop", Price: 47000000},
}

// Seed adds products, skipping barcodes that are already present.
func Seed(ctx context.Context, s Store, products []Product) (int, error) {
	added := 0
	for _, p := range products {
		_, err := s.Add(ctx, p.Barcode, p.Name, p.Price)
		switch {
		case errors.Is(err, ErrAlreadyExists):
			continue
		case err != nil:
			return added, fmt.Errorf("seeding %q: %w", p.Barcode, err)
		}
		added++
	}
	return added, nil
}
