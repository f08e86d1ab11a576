// Package billing is an HTTP client for the Stripe billing API. It
// fetches paid invoices for a date window plus the customer, charge and
// balance-transaction records linked from them, decoding everything
// into the raw wire models the report extractor is written against.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	pageLimit      = 100
)

// Client calls the billing API with basic-auth key authentication.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// Retry governs transient-failure retries and may be replaced
	// before first use (tests shrink the delays).
	Retry RetryConfig
}

// NewClient creates a client against the production API endpoint.
func NewClient(apiKey string) *Client {
	return NewClientWith(apiKey, defaultBaseURL, nil)
}

// NewClientWith creates a client against a specific endpoint. A nil
// httpClient gets a sensible default timeout.
func NewClientWith(apiKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		Retry:      DefaultRetryConfig,
	}
}

// ListPaidInvoices fetches every paid invoice created inside the
// inclusive [start, end] Unix-timestamp window, following pagination
// until the API reports no more pages.
func (c *Client) ListPaidInvoices(ctx context.Context, start, end int64) ([]Invoice, error) {
	var all []Invoice
	startingAfter := ""

	for {
		q := url.Values{}
		q.Set("status", "paid")
		q.Set("limit", strconv.Itoa(pageLimit))
		q.Set("created[gte]", strconv.FormatInt(start, 10))
		q.Set("created[lte]", strconv.FormatInt(end, 10))
		if startingAfter != "" {
			q.Set("starting_after", startingAfter)
		}

		var page invoiceList
		if err := c.get(ctx, "/v1/invoices", q, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if !page.HasMore || len(page.Data) == 0 {
			return all, nil
		}
		startingAfter = page.Data[len(page.Data)-1].ID
	}
}

// GetCustomer fetches a customer by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var cust Customer
	if err := c.get(ctx, "/v1/customers/"+url.PathEscape(id), nil, &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

// GetCharge fetches a charge by id.
func (c *Client) GetCharge(ctx context.Context, id string) (*Charge, error) {
	var ch Charge
	if err := c.get(ctx, "/v1/charges/"+url.PathEscape(id), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetBalanceTransaction fetches a balance transaction by id.
func (c *Client) GetBalanceTransaction(ctx context.Context, id string) (*BalanceTransaction, error) {
	var bt BalanceTransaction
	if err := c.get(ctx, "/v1/balance_transactions/"+url.PathEscape(id), nil, &bt); err != nil {
		return nil, err
	}
	return &bt, nil
}

// get performs an authenticated GET and decodes the JSON response into
// out, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := WithRetry(ctx, c.Retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.doGet(ctx, path, query, out)
	})
	return err
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	// The API key is the basic-auth username; the password is empty.
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Path: path, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}
