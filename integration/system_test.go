//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceStore/internal/catalog"
	"PriceStore/internal/pricetree"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8082")

// TestSystem_E2E drives a running catalog service: it adds a product,
// moves its price and checks that the median and range answers follow.
func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	c := catalog.NewClient(baseURL)
	require.NoError(t, c.Login(ctx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")))

	barcode := fmt.Sprintf("e2e-%d-%d", time.Now().Unix(), rand.Intn(100000))
	price := pricetree.Price(1 + rand.Int63n(1_000_000))

	_, err := c.Add(ctx, barcode, "e2e item", price)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = c.Remove(context.Background(), barcode) })

	res, err := c.InRange(ctx, price, price)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Count, 1)

	p, m, err := c.UpdatePrice(ctx, barcode, price+1)
	require.NoError(t, err)
	assert.Equal(t, []pricetree.Price{price, price + 1}, p.PriceHistory)

	got, ok, err := c.Median(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)

	_, err = c.Remove(ctx, barcode)
	require.NoError(t, err)
	_, err = c.Get(ctx, barcode)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
