// Package rest implements backend.Client over the hosted PostgREST table API.
package rest

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/kkkkikiki/lukitas/internal/backend"
	"github.com/kkkkikiki/lukitas/internal/model"
)

const (
	restPrefix      = "rest/v1"
	newestFirst     = "created_at.desc"
	maxErrorBody    = 1 << 20
	preferMinimal   = "return=minimal"
	preferReturning = "return=representation"
)

// Client talks to the table API with the project's public key.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
}

var _ backend.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outgoing calls to rps requests per second. Zero or
// negative disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for the project at rawURL. Both values are required.
func New(rawURL, apiKey string, opts ...Option) (*Client, error) {
	rawURL = strings.TrimSpace(rawURL)
	apiKey = strings.TrimSpace(apiKey)
	if rawURL == "" {
		return nil, errors.New("backend url is required")
	}
	if apiKey == "" {
		return nil, errors.New("backend api key is required")
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", rawURL)
	}

	c := &Client{
		baseURL: base,
		apiKey:  apiKey,
		http:    &http.Client{},
		tracer:  otel.Tracer("github.com/kkkkikiki/lukitas/internal/backend/rest"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListUsers returns all users, newest first.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.list(ctx, backend.OpListUsers, model.TableUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAccounts returns all accounts, newest first.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := c.list(ctx, backend.OpListAccounts, model.TableAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListCampaigns returns all campaigns, newest first.
func (c *Client) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := c.list(ctx, backend.OpListCampaigns, model.TableCampaigns, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// SetAccountBalance overwrites the balance of one account.
func (c *Client) SetAccountBalance(ctx context.Context, accountID int64, balance float64) error {
	body := struct {
		Balance float64 `json:"saldo"`
	}{balance}
	return c.do(ctx, request{
		op:     backend.OpSetAccountBalance,
		table:  model.TableAccounts,
		method: http.MethodPatch,
		query:  idFilter(accountID),
		body:   body,
		prefer: preferMinimal,
	})
}

// SetCampaignActive overwrites the active flag of one campaign.
func (c *Client) SetCampaignActive(ctx context.Context, campaignID int64, active bool) error {
	body := struct {
		Active bool `json:"estado"`
	}{active}
	return c.do(ctx, request{
		op:     backend.OpSetCampaignActive,
		table:  model.TableCampaigns,
		method: http.MethodPatch,
		query:  idFilter(campaignID),
		body:   body,
		prefer: preferMinimal,
	})
}

// CreateCampaign inserts a campaign and returns the stored row.
func (c *Client) CreateCampaign(ctx context.Context, campaign model.NewCampaign) (*model.Campaign, error) {
	var rows []model.Campaign
	err := c.do(ctx, request{
		op:     backend.OpCreateCampaign,
		table:  model.TableCampaigns,
		method: http.MethodPost,
		query:  url.Values{"select": {"*"}},
		body:   []model.NewCampaign{campaign},
		prefer: preferReturning,
		dest:   &rows,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &backend.ServiceError{
			Op:      backend.OpCreateCampaign,
			Table:   model.TableCampaigns,
			Message: "insert returned no rows",
		}
	}
	return &rows[0], nil
}

// Ping issues the cheapest authenticated read the API offers.
func (c *Client) Ping(ctx context.Context) error {
	var rows []struct {
		ID int64 `json:"id"`
	}
	return c.do(ctx, request{
		op:     backend.OpPing,
		table:  model.TableUsers,
		method: http.MethodGet,
		query:  url.Values{"select": {"id"}, "limit": {"1"}},
		dest:   &rows,
	})
}

func (c *Client) list(ctx context.Context, op, table string, dest any) error {
	return c.do(ctx, request{
		op:     op,
		table:  table,
		method: http.MethodGet,
		query:  url.Values{"select": {"*"}, "order": {newestFirst}},
		dest:   dest,
	})
}

type request struct {
	op     string
	table  string
	method string
	query  url.Values
	body   any
	prefer string
	dest   any
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
	Hint    string          `json:"hint"`
}

func (c *Client) do(ctx context.Context, req request) (err error) {
	ctx, span := c.tracer.Start(ctx, "backend."+req.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.table", req.table),
			attribute.String("http.method", req.method),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	fail := func(status int, cause error) error {
		return &backend.ServiceError{Op: req.op, Table: req.table, StatusCode: status, Err: cause}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	endpoint := c.baseURL.JoinPath(restPrefix, req.table)
	endpoint.RawQuery = req.query.Encode()

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fail(0, fmt.Errorf("failed to encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint.String(), body)
	if err != nil {
		return fail(0, fmt.Errorf("failed to build request: %w", err))
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(req, resp)
	}

	if req.dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.dest); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func decodeError(req request, resp *http.Response) error {
	se := &backend.ServiceError{
		Op:         req.op,
		Table:      req.table,
		StatusCode: resp.StatusCode,
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		se.Err = fmt.Errorf("failed to read error body: %w", err)
		return se
	}

	var apiErr apiError
	if json.Unmarshal(raw, &apiErr) == nil {
		se.Code = apiErr.Code
		se.Message = apiErr.Message
		se.Details = rawText(apiErr.Details)
		se.Hint = apiErr.Hint
	}
	if se.Message == "" {
		se.Message = strings.TrimSpace(string(raw))
	}
	if se.Message == "" {
		se.Message = http.StatusText(resp.StatusCode)
	}
	return se
}

// rawText flattens a JSON value that may be a string, null or an object.
func rawText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

func idFilter(id int64) url.Values {
	return url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
}
