package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PriceStore/internal/pricetree"
	"PriceStore/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger

	// Guard wraps the mutating routes. Nil leaves them open.
	Guard func(http.Handler) http.Handler
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			s.logger().Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.list)
	r.Get("/products/{barcode}", s.get)
	r.Get("/products/{barcode}/neighbors", s.neighbors)

	r.Get("/prices/median", s.median)
	r.Get("/prices/range", s.priceRange)
	r.Get("/prices/rank", s.rank)
	r.Get("/stats", s.stats)

	r.Group(func(r chi.Router) {
		if s.Guard != nil {
			r.Use(s.Guard)
		}
		r.Post("/products", s.add)
		r.Delete("/products/{barcode}", s.remove)
		r.Put("/products/{barcode}/price", s.updatePrice)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListSortedByBarcode(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "list products")
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	p, err := s.Store.Get(r.Context(), barcode)
	if err != nil {
		s.writeStoreError(w, r, err, "get product", zap.String("barcode", barcode))
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) neighbors(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	n, err := s.Store.Neighbors(r.Context(), barcode)
	if err != nil {
		s.writeStoreError(w, r, err, "neighbors", zap.String("barcode", barcode))
		return
	}
	kit.WriteJSON(w, http.StatusOK, n)
}

type medianResp struct {
	Median pricetree.Median `json:"median"`
	Count  int              `json:"count"`
}

func (s *Server) median(w http.ResponseWriter, r *http.Request) {
	st, err := s.Store.Stats(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "median")
		return
	}
	if !st.HasMedian {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	kit.WriteJSON(w, http.StatusOK, medianResp{Median: st.Median, Count: st.PriceCount})
}

func (s *Server) priceRange(w http.ResponseWriter, r *http.Request) {
	low, err := queryPrice(r, "min")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad query", map[string]any{"param": "min"})
		return
	}
	high, err := queryPrice(r, "max")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad query", map[string]any{"param": "max"})
		return
	}

	res, err := s.Store.InRange(r.Context(), low, high)
	if err != nil {
		s.writeStoreError(w, r, err, "price range")
		return
	}
	kit.WriteJSON(w, http.StatusOK, res)
}

type rankResp struct {
	Price pricetree.Price `json:"price"`
	Rank  int             `json:"rank"`
}

func (s *Server) rank(w http.ResponseWriter, r *http.Request) {
	price, err := queryPrice(r, "price")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad query", map[string]any{"param": "price"})
		return
	}

	n, err := s.Store.Rank(r.Context(), price)
	if err != nil {
		s.writeStoreError(w, r, err, "rank")
		return
	}
	kit.WriteJSON(w, http.StatusOK, rankResp{Price: price, Rank: n})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Store.Stats(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "stats")
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

type addReq struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Price   pricetree.Price `json:"price"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.Add(r.Context(), req.Barcode, req.Name, req.Price)
	if err != nil {
		s.writeStoreError(w, r, err, "add product", zap.String("barcode", req.Barcode))
		return
	}
	s.logger().Info("product added",
		zap.String("barcode", p.Barcode),
		zap.Int64("price", int64(p.Price)),
	)
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	p, err := s.Store.Remove(r.Context(), barcode)
	if err != nil {
		s.writeStoreError(w, r, err, "remove product", zap.String("barcode", barcode))
		return
	}
	s.logger().Info("product removed", zap.String("barcode", barcode))
	kit.WriteJSON(w, http.StatusOK, p)
}

type updatePriceReq struct {
	Price pricetree.Price `json:"price"`
}

type updatePriceResp struct {
	Product Product          `json:"product"`
	Median  pricetree.Median `json:"median"`
}

func (s *Server) updatePrice(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	var req updatePriceReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, m, err := s.Store.UpdatePrice(r.Context(), barcode, req.Price)
	if err != nil {
		s.writeStoreError(w, r, err, "update price", zap.String("barcode", barcode))
		return
	}
	s.logger().Info("price updated",
		zap.String("barcode", barcode),
		zap.Int64("price", int64(p.Price)),
		zap.Stringer("median", m),
	)
	kit.WriteJSON(w, http.StatusOK, updatePriceResp{Product: p, Median: m})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, op string, fields ...zap.Field) {
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
	case errors.Is(err, ErrAlreadyExists):
		kit.WriteError(w, r, http.StatusConflict, "already exists", nil)
	case errors.Is(err, ErrInvalidPrice):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid price",
			map[string]any{"max": MaxPrice})
	case errors.Is(err, ErrInvalidBarcode):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid barcode", nil)
	case errors.Is(err, ErrInvalidName):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid name", nil)
	case errors.Is(err, pricetree.ErrInvalidRange):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid range", nil)
	default:
		s.logger().Error(op+" failed", append(fields, zap.Error(err))...)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func queryPrice(r *http.Request, key string) (pricetree.Price, error) {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0, err
	}
	return pricetree.Price(v), nil
}
