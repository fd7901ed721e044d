// Package backend defines the data client the dashboard talks to and the
// single error kind every driver reports.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kkkkikiki/lukitas/internal/model"
)

// Operation names, used for errors, metrics and spans.
const (
	OpListUsers         = "list_users"
	OpListAccounts      = "list_accounts"
	OpListCampaigns     = "list_campaigns"
	OpSetAccountBalance = "set_account_balance"
	OpSetCampaignActive = "set_campaign_active"
	OpCreateCampaign    = "create_campaign"
	OpPing              = "ping"
)

// Client is the typed view over the backend tables. Every call is a single
// round trip with no retry and no caching. List calls return rows newest
// first.
type Client interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	SetAccountBalance(ctx context.Context, accountID int64, balance float64) error
	SetCampaignActive(ctx context.Context, campaignID int64, active bool) error
	CreateCampaign(ctx context.Context, campaign model.NewCampaign) (*model.Campaign, error)
	Ping(ctx context.Context) error
}

// ServiceError is returned for any failed backend call: transport, auth,
// constraint violation or an unreadable response.
type ServiceError struct {
	Op         string
	Table      string
	StatusCode int    // HTTP status, 0 when the request never completed
	Code       string // backend error code, e.g. PGRST301 or 23505
	Message    string
	Details    string
	Hint       string
	Err        error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Table != "" {
		fmt.Fprintf(&b, " %s", e.Table)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Wrap turns err into a ServiceError for op unless it already is one.
func Wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{Op: op, Table: table, Err: err}
}

// AsServiceError extracts the ServiceError from err.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	ok := errors.As(err, &se)
	return se, ok
}
