package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"PriceStore/internal/pricetree"
)

// priceEntry orders products by (price, barcode) for range and neighbour
// listings.
type priceEntry struct {
	price   pricetree.Price
	barcode string
	product *Product
}

// MemStore keeps products in two ordered indexes and their current prices
// in a PriceIndex. One lock covers all three so that every call sees them
// in sync.
type MemStore struct {
	mu        sync.RWMutex
	byBarcode *btree.BTreeG[*Product]
	byPrice   *btree.BTreeG[priceEntry]
	prices    PriceIndex
}

func NewMemStore() *MemStore {
	return NewMemStoreWithIndex(pricetree.New())
}

// NewMemStoreWithIndex builds a store around an empty price index.
func NewMemStoreWithIndex(prices PriceIndex) *MemStore {
	// The store's own lock already serialises access.
	opts := btree.Options{NoLocks: true}
	return &MemStore{
		byBarcode: btree.NewBTreeGOptions(func(a, b *Product) bool {
			return a.Barcode < b.Barcode
		}, opts),
		byPrice: btree.NewBTreeGOptions(func(a, b priceEntry) bool {
			if a.price != b.price {
				return a.price < b.price
			}
			return a.barcode < b.barcode
		}, opts),
		prices: prices,
	}
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Add(ctx context.Context, barcode, name string, price pricetree.Price) (Product, error) {
	barcode, err := normalizeBarcode(barcode)
	if err != nil {
		return Product{}, err
	}
	name, err = normalizeName(name)
	if err != nil {
		return Product{}, err
	}
	if err := validatePrice(price); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byBarcode.Get(&Product{Barcode: barcode}); ok {
		return Product{}, ErrAlreadyExists
	}

	p := &Product{
		Barcode:      barcode,
		Name:         name,
		Price:        price,
		PriceHistory: []pricetree.Price{price},
	}
	s.byBarcode.Set(p)
	s.byPrice.Set(priceEntry{price: price, barcode: barcode, product: p})
	s.prices.Insert(price)

	return p.clone(), nil
}

func (s *MemStore) Remove(ctx context.Context, barcode string) (Product, error) {
	barcode = strings.TrimSpace(barcode)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byBarcode.Delete(&Product{Barcode: barcode})
	if !ok {
		return Product{}, ErrNotFound
	}
	s.byPrice.Delete(priceEntry{price: p.Price, barcode: p.Barcode})
	s.prices.RemoveOne(p.Price)

	return p.clone(), nil
}

// UpdatePrice records a new current price and returns the catalog median
// after the change.
func (s *MemStore) UpdatePrice(ctx context.Context, barcode string, price pricetree.Price) (Product, pricetree.Median, error) {
	barcode = strings.TrimSpace(barcode)

	if err := validatePrice(price); err != nil {
		return Product{}, pricetree.Median{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byBarcode.Get(&Product{Barcode: barcode})
	if !ok {
		return Product{}, pricetree.Median{}, ErrNotFound
	}

	s.byPrice.Delete(priceEntry{price: p.Price, barcode: p.Barcode})
	s.prices.RemoveOne(p.Price)

	p.Price = price
	p.PriceHistory = append(p.PriceHistory, price)

	s.byPrice.Set(priceEntry{price: price, barcode: p.Barcode, product: p})
	s.prices.Insert(price)

	// The index holds at least this product's price.
	median, _ := s.prices.Median()
	return p.clone(), median, nil
}

func (s *MemStore) Get(ctx context.Context, barcode string) (Product, error) {
	barcode = strings.TrimSpace(barcode)

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byBarcode.Get(&Product{Barcode: barcode})
	if !ok {
		return Product{}, ErrNotFound
	}
	return p.clone(), nil
}

func (s *MemStore) ListSortedByBarcode(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, s.byBarcode.Len())
	s.byBarcode.Scan(func(p *Product) bool {
		out = append(out, p.clone())
		return true
	})
	return out, nil
}

func (s *MemStore) Median(ctx context.Context) (pricetree.Median, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.prices.Median()
	return m, ok, nil
}

func (s *MemStore) InRange(ctx context.Context, low, high pricetree.Price) (RangeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count, err := s.prices.CountInRange(low, high)
	if err != nil {
		return RangeResult{}, err
	}
	values, err := s.prices.ValuesInRange(low, high)
	if err != nil {
		return RangeResult{}, err
	}

	res := RangeResult{
		Min:      low,
		Max:      high,
		Count:    count,
		Prices:   make([]pricetree.Price, 0, count),
		Products: make([]Product, 0, count),
	}
	res.Prices = slices.AppendSeq(res.Prices, values)

	s.byPrice.Ascend(priceEntry{price: low}, func(e priceEntry) bool {
		if e.price > high {
			return false
		}
		res.Products = append(res.Products, e.product.clone())
		return true
	})
	return res, nil
}

func (s *MemStore) Neighbors(ctx context.Context, barcode string) (Neighbors, error) {
	barcode = strings.TrimSpace(barcode)

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byBarcode.Get(&Product{Barcode: barcode})
	if !ok {
		return Neighbors{}, ErrNotFound
	}

	n := Neighbors{
		Product:       p.clone(),
		Cheaper:       []Product{},
		Costlier:      []Product{},
		CheaperCount:  s.prices.Rank(p.Price),
		CostlierCount: s.prices.Len() - s.prices.Rank(p.Price+1),
	}

	s.byPrice.Scan(func(e priceEntry) bool {
		if e.price >= p.Price {
			return false
		}
		n.Cheaper = append(n.Cheaper, e.product.clone())
		return true
	})
	s.byPrice.Ascend(priceEntry{price: p.Price + 1}, func(e priceEntry) bool {
		n.Costlier = append(n.Costlier, e.product.clone())
		return true
	})
	return n, nil
}

func (s *MemStore) Rank(ctx context.Context, price pricetree.Price) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.prices.Rank(price), nil
}

func (s *MemStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.prices.Median()
	return Stats{
		Products:   s.byBarcode.Len(),
		PriceCount: s.prices.Len(),
		Median:     m,
		HasMedian:  ok,
	}, nil
}
