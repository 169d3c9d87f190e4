// Package transactioncloud is a Go client for the Transaction.Cloud
// payment and subscription management API.
package transactioncloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/transactioncloud/transactioncloud-go/model"
)

const Version = "0.1"

// Fixed per-environment hosts, matching the remote API's deployment.
const (
	ProdAPIHost       = "https://api.transction.cloud"
	SandboxAPIHost    = "https://sandbox-api.transaction.cloud"
	ProdHostedHost    = "https://hosted.transaction.cloud"
	SandboxHostedHost = "https://sandbox-hosted.transaction.cloud"
)

// Client talks to the Transaction.Cloud API. It performs one blocking
// round trip per operation and keeps no mutable state between calls, so
// it is safe for concurrent use whenever the injected transport is.
type Client struct {
	transport     Doer
	factory       *model.Factory
	apiBaseURL    string
	hostedBaseURL string
	userAgent     string
	authorization string
	logger        *slog.Logger
}

type Option func(*Client)

// WithSandbox points the client at the sandbox environment.
func WithSandbox() Option {
	return func(c *Client) {
		c.apiBaseURL = SandboxAPIHost
		c.hostedBaseURL = SandboxHostedHost
	}
}

// WithLogger sets the logger for request completion logging. The
// default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithModelFactory replaces the model factory, mainly for tests.
func WithModelFactory(factory *model.Factory) Option {
	return func(c *Client) {
		c.factory = factory
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New builds a Client against the production environment. Credentials
// are fixed for the life of the client; every request carries them as
// an Authorization header in the API's "<key>:<password>" form.
func New(transport Doer, apiKey, apiKeyPassword string, opts ...Option) *Client {
	c := &Client{
		transport:     transport,
		factory:       model.NewFactory(),
		apiBaseURL:    ProdAPIHost,
		hostedBaseURL: ProdHostedHost,
		userAgent:     "transactioncloud-go/" + Version,
		authorization: fmt.Sprintf("%s:%s", apiKey, apiKeyPassword),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the drained result of one round trip.
type apiResponse struct {
	status int
	body   []byte
}

func (r apiResponse) snapshot() APIResponse {
	return APIResponse{StatusCode: r.status, Body: r.body}
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (apiResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBaseURL+path, reader)
	if err != nil {
		return apiResponse{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", c.authorization)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.transport.Do(req)
	if err != nil {
		return apiResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, err
	}

	c.logger.Info("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return apiResponse{status: resp.StatusCode, body: raw}, nil
}

// decode parses a JSON body preserving number precision.
func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) decodeObject(res apiResponse) (map[string]any, error) {
	data, err := decode(res.body)
	if err != nil {
		return nil, &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain valid json",
			Cause:    err,
		}
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain a json object",
		}
	}
	return obj, nil
}

func (c *Client) decodeArray(res apiResponse) ([]any, error) {
	data, err := decode(res.body)
	if err != nil {
		return nil, &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain valid json",
			Cause:    err,
		}
	}
	arr, ok := data.([]any)
	if !ok {
		return nil, &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain a json array",
		}
	}
	return arr, nil
}

// wrapMissingData turns factory validation failures into a
// MalformedResponseError carrying the message verbatim. Anything else,
// currency resolution failures included, passes through unchanged.
func wrapMissingData(res apiResponse, err error) error {
	var missing *model.MissingModelDataError
	if errors.As(err, &missing) {
		return &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   missing.Error(),
			Cause:    missing,
		}
	}
	return err
}

func (c *Client) getURL(ctx context.Context, path string) (string, error) {
	res, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	if res.status != http.StatusOK {
		return "", &InvalidResponseError{Response: res.snapshot()}
	}

	data, err := decode(res.body)
	obj, isObj := data.(map[string]any)
	if err != nil || !isObj {
		return "", &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain a url key with a string value",
			Cause:    err,
		}
	}
	u, ok := obj["url"].(string)
	if !ok {
		return "", &MalformedResponseError{
			Response: res.snapshot(),
			Reason:   "Expected return body to contain a url key with a string value",
		}
	}
	return u, nil
}

// GetURLToManageTransactions returns a hosted URL where the customer
// with the given email can manage their transactions.
func (c *Client) GetURLToManageTransactions(ctx context.Context, email string) (string, error) {
	return c.getURL(ctx, "/v1/generate-url-to-manage-transactions/"+url.PathEscape(email))
}

// GetURLToAdmin returns a hosted URL for the vendor admin interface.
func (c *Client) GetURLToAdmin(ctx context.Context) (string, error) {
	return c.getURL(ctx, "/v1/generate-url-to-admin")
}

// GetTransactionsByEmail returns every transaction belonging to the
// given email. A 200 with an empty array yields an empty slice.
func (c *Client) GetTransactionsByEmail(ctx context.Context, email string) ([]*model.Transaction, error) {
	res, err := c.send(ctx, http.MethodGet, "/v1/transactions/"+url.PathEscape(email), nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, &InvalidResponseError{Response: res.snapshot()}
	}

	rows, err := c.decodeArray(res)
	if err != nil {
		return nil, err
	}

	transactions := make([]*model.Transaction, 0, len(rows))
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, &MalformedResponseError{
				Response: res.snapshot(),
				Reason:   "Expected return body to contain an array of json objects",
			}
		}
		tx, err := c.factory.BuildTransaction(obj)
		if err != nil {
			return nil, wrapMissingData(res, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// GetTransactionByID returns a single transaction.
func (c *Client) GetTransactionByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	res, err := c.send(ctx, http.MethodGet, "/v1/transaction/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, &InvalidResponseError{Response: res.snapshot()}
	}

	obj, err := c.decodeObject(res)
	if err != nil {
		return nil, err
	}

	tx, err := c.factory.BuildTransaction(obj)
	if err != nil {
		return nil, wrapMissingData(res, err)
	}
	return tx, nil
}

// AssignTransactionToEmail assigns a transaction to an email address.
// It reports success as a boolean and never fails on a rejected
// request; the error is non-nil only when the transport itself fails.
func (c *Client) AssignTransactionToEmail(ctx context.Context, transactionID, email string) (bool, error) {
	body, err := json.Marshal(map[string]string{"assignEmail": email})
	if err != nil {
		return false, err
	}

	res, err := c.send(ctx, http.MethodPost, "/v1/transaction/"+url.PathEscape(transactionID), body)
	if err != nil {
		return false, err
	}
	return res.status == http.StatusOK, nil
}

// CancelSubscription cancels the subscription behind a transaction.
// Boolean result contract as AssignTransactionToEmail.
func (c *Client) CancelSubscription(ctx context.Context, transactionID string) (bool, error) {
	res, err := c.send(ctx, http.MethodPost, "/v1/cancel-subscription/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return false, err
	}
	return res.status == http.StatusOK, nil
}

// RefundTransaction refunds a transaction and returns the refund record.
func (c *Client) RefundTransaction(ctx context.Context, transactionID string) (*model.Refund, error) {
	res, err := c.send(ctx, http.MethodPost, "/v1/refund-transaction/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, &InvalidResponseError{Response: res.snapshot()}
	}

	obj, err := c.decodeObject(res)
	if err != nil {
		return nil, err
	}

	refund, err := c.factory.BuildRefund(obj)
	if err != nil {
		return nil, wrapMissingData(res, err)
	}
	return refund, nil
}

// FetchChangedTransactions returns transactions whose state changed
// since they were last marked as processed.
func (c *Client) FetchChangedTransactions(ctx context.Context) ([]*model.ChangedTransaction, error) {
	res, err := c.send(ctx, http.MethodGet, "/v1/changed-transactions", nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, &InvalidResponseError{Response: res.snapshot()}
	}

	rows, err := c.decodeArray(res)
	if err != nil {
		return nil, err
	}

	changed := make([]*model.ChangedTransaction, 0, len(rows))
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, &MalformedResponseError{
				Response: res.snapshot(),
				Reason:   "Expected return body to contain an array of json objects",
			}
		}
		tx, err := c.factory.BuildChangedTransaction(obj)
		if err != nil {
			return nil, wrapMissingData(res, err)
		}
		changed = append(changed, tx)
	}
	return changed, nil
}

// MarkTransactionAsProcessed acknowledges one changed transaction so it
// drops out of the change feed. Boolean result contract as
// AssignTransactionToEmail.
func (c *Client) MarkTransactionAsProcessed(ctx context.Context, transactionID string) (bool, error) {
	res, err := c.send(ctx, http.MethodPost, "/v1/changed-transactions/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return false, err
	}
	return res.status == http.StatusOK, nil
}

// CustomizeProduct submits a product customization and returns the
// confirmation record.
func (c *Client) CustomizeProduct(ctx context.Context, productID string, product *model.Product) (*model.ProductData, error) {
	body, err := json.Marshal(product.APIPayload())
	if err != nil {
		return nil, err
	}

	res, err := c.send(ctx, http.MethodPost, "/v1/transaction/"+url.PathEscape(productID), body)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, &InvalidResponseError{Response: res.snapshot()}
	}

	obj, err := c.decodeObject(res)
	if err != nil {
		return nil, err
	}

	data, err := c.factory.BuildProductData(obj)
	if err != nil {
		return nil, wrapMissingData(res, err)
	}
	return data, nil
}

// PaymentURLForProduct returns the hosted checkout URL for a product.
// No round trip is involved.
func (c *Client) PaymentURLForProduct(productID string) string {
	return fmt.Sprintf("%s/payment/product/%s", c.hostedBaseURL, productID)
}
