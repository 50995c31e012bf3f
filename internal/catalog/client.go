package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PriceStore/internal/pricetree"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrBadStatus   = errors.New("catalog bad status")
)

// Client talks to a running catalog service over HTTP.
type Client struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// Login exchanges operator credentials for a token and keeps it for later
// calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return err
	}
	c.Token = out.AccessToken
	return nil
}

func (c *Client) Get(ctx context.Context, barcode string) (Product, error) {
	var p Product
	_, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(barcode), nil, &p)
	return p, err
}

func (c *Client) Add(ctx context.Context, barcode, name string, price pricetree.Price) (Product, error) {
	var p Product
	_, err := c.do(ctx, http.MethodPost, "/products", addReq{Barcode: barcode, Name: name, Price: price}, &p)
	return p, err
}

func (c *Client) Remove(ctx context.Context, barcode string) (Product, error) {
	var p Product
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(barcode), nil, &p)
	return p, err
}

func (c *Client) UpdatePrice(ctx context.Context, barcode string, price pricetree.Price) (Product, pricetree.Median, error) {
	var out updatePriceResp
	_, err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(barcode)+"/price", updatePriceReq{Price: price}, &out)
	return out.Product, out.Median, err
}

// Median returns false when the catalog is empty.
func (c *Client) Median(ctx context.Context) (pricetree.Median, bool, error) {
	var out medianResp
	status, err := c.do(ctx, http.MethodGet, "/prices/median", nil, &out)
	if err != nil || status == http.StatusNoContent {
		return pricetree.Median{}, false, err
	}
	return out.Median, true, nil
}

func (c *Client) InRange(ctx context.Context, low, high pricetree.Price) (RangeResult, error) {
	q := url.Values{}
	q.Set("min", strconv.FormatInt(int64(low), 10))
	q.Set("max", strconv.FormatInt(int64(high), 10))

	var res RangeResult
	_, err := c.do(ctx, http.MethodGet, "/prices/range?"+q.Encode(), nil, &res)
	return res, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusNoContent:
		return resp.StatusCode, nil
	case http.StatusNotFound:
		return resp.StatusCode, ErrNotFound
	case http.StatusConflict:
		return resp.StatusCode, ErrAlreadyExists
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
