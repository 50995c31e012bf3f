package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PriceStore/internal/auth"
)

const (
	testSecret       = "test-secret-test-secret-test-secret"
	testMetricsToken = "scrape-me"
)

type testEnv struct {
	ts     *httptest.Server
	store  *MemStore
	admin  string
	viewer string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	ops := auth.NewMemStore()
	_, err := ops.Create(ctx, "admin@example.com", "password123", auth.RoleAdmin)
	require.NoError(t, err)
	_, err = ops.Create(ctx, "viewer@example.com", "password123", auth.RoleViewer)
	require.NoError(t, err)

	store := NewMemStore()
	_, err = Seed(ctx, store, DefaultProducts)
	require.NoError(t, err)

	h := NewHandler(&Server{Store: store, Log: zap.NewNop()}, HTTPDeps{
		Log:            zap.NewNop(),
		Service:        "catalog",
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   testMetricsToken,
		Auth: &auth.Server{
			Log:              zap.NewNop(),
			Store:            ops,
			JWT:              auth.NewTokenMaker(testSecret),
			TokenTTL:         time.Minute,
			LoginLimitPerMin: 10,
		},
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	env := &testEnv{ts: ts, store: store}
	env.admin = env.login(t, "admin@example.com")
	env.viewer = env.login(t, "viewer@example.com")
	return env
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	resp, err := http.Post(e.ts.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"`+email+`","password":"password123"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHTTP_PublicQueries(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = env.do(t, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, body = env.do(t, http.MethodGet, "/prices/median", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"median":1500000,"count":3}`, string(body))

	code, body = env.do(t, http.MethodGet, "/products/2", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"barcode":"2","name":"kif","price":1500000,"price_history":[1500000]}`, string(body))

	code, _ = env.do(t, http.MethodGet, "/products/404", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = env.do(t, http.MethodGet, "/prices/rank?price=1500000", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"price":1500000,"rank":1}`, string(body))

	code, body = env.do(t, http.MethodGet, "/products/2/neighbors", "", "")
	require.Equal(t, http.StatusOK, code)
	var n Neighbors
	require.NoError(t, json.Unmarshal(body, &n))
	assert.Equal(t, 1, n.CheaperCount)
	assert.Equal(t, 1, n.CostlierCount)
	assert.Equal(t, []string{"1"}, barcodes(n.Cheaper))
	assert.Equal(t, []string{"3"}, barcodes(n.Costlier))

	code, body = env.do(t, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, code)
	var list []Product
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, []string{"1", "2", "3"}, barcodes(list))
}

func TestHTTP_PriceRange(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/prices/range?min=800000&max=2000000", "", "")
	require.Equal(t, http.StatusOK, code)
	var res RangeResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"1", "2"}, barcodes(res.Products))

	code, body = env.do(t, http.MethodGet, "/prices/range?min=100&max=50", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "invalid range")

	for _, q := range []string{"", "?min=1", "?min=x&max=2", "?min=1&max=1.5"} {
		code, _ = env.do(t, http.MethodGet, "/prices/range"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, code, q)
	}
}

func TestHTTP_OperatorMutations(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/products", env.admin,
		`{"barcode":"4","name":"shalvar","price":500000}`)
	require.Equal(t, http.StatusCreated, code, string(body))

	code, body = env.do(t, http.MethodGet, "/prices/median", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"median":1195000,"count":4}`, string(body))

	code, body = env.do(t, http.MethodPut, "/products/1/price", env.admin, `{"price":890001}`)
	require.Equal(t, http.StatusOK, code)
	var upd struct {
		Product Product         `json:"product"`
		Median  json.RawMessage `json:"median"`
	}
	require.NoError(t, json.Unmarshal(body, &upd))
	assert.Equal(t, "1195000.5", string(upd.Median))
	assert.Len(t, upd.Product.PriceHistory, 2)

	code, _ = env.do(t, http.MethodPost, "/products", env.admin,
		`{"barcode":"4","name":"again","price":1}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = env.do(t, http.MethodPost, "/products", env.admin,
		`{"barcode":"5","name":"free","price":0}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/products", env.admin,
		`{"barcode":"5","name":"x","price":1,"color":"red"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	for _, b := range []string{"1", "2", "3", "4"} {
		code, _ = env.do(t, http.MethodDelete, "/products/"+b, env.admin, "")
		require.Equal(t, http.StatusOK, code)
	}
	code, _ = env.do(t, http.MethodDelete, "/products/4", env.admin, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = env.do(t, http.MethodGet, "/prices/median", "", "")
	assert.Equal(t, http.StatusNoContent, code)
	assert.Empty(t, body)
}

func TestHTTP_MutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		method, path, token, body string
		want                      int
	}{
		{http.MethodPost, "/products", "", `{"barcode":"9","name":"x","price":1}`, http.StatusUnauthorized},
		{http.MethodPost, "/products", "garbage", `{"barcode":"9","name":"x","price":1}`, http.StatusUnauthorized},
		{http.MethodPost, "/products", env.viewer, `{"barcode":"9","name":"x","price":1}`, http.StatusForbidden},
		{http.MethodDelete, "/products/1", env.viewer, "", http.StatusForbidden},
		{http.MethodPut, "/products/1/price", "", `{"price":1}`, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		code, _ := env.do(t, tc.method, tc.path, tc.token, tc.body)
		assert.Equal(t, tc.want, code, "%s %s", tc.method, tc.path)
	}

	st, err := env.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.Products)
}

func TestHTTP_ReadOnlyWithoutAuth(t *testing.T) {
	store := NewMemStore()
	ts := httptest.NewServer(NewHandler(&Server{Store: store}, HTTPDeps{Log: zap.NewNop()}))
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/products", "application/json",
		strings.NewReader(`{"barcode":"9","name":"x","price":1}`))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(raw), "read-only")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/products/9", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTP_Metrics(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusForbidden, code)

	env.do(t, http.MethodGet, "/products/1", "", "")

	code, body := env.do(t, http.MethodGet, "/metrics", testMetricsToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "catalog_products 3")
	assert.Contains(t, string(body), "catalog_median_price 1.5e+06")
	assert.Contains(t, string(body), `path="/products/{barcode}"`)
}
