package backend

import (
	"context"
	"time"

	"github.com/kkkkikiki/lukitas/internal/metrics"
	"github.com/kkkkikiki/lukitas/internal/model"
)

// Instrument wraps a Client so that every call is timed into the backend
// call histogram.
func Instrument(next Client) Client {
	return &instrumented{next: next}
}

type instrumented struct {
	next Client
}

func observe(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordBackendCall(op, status, time.Since(start).Seconds())
}

func (c *instrumented) ListUsers(ctx context.Context) (users []model.User, err error) {
	defer func(start time.Time) { observe(OpListUsers, start, err) }(time.Now())
	return c.next.ListUsers(ctx)
}

func (c *instrumented) ListAccounts(ctx context.Context) (accounts []model.Account, err error) {
	defer func(start time.Time) { observe(OpListAccounts, start, err) }(time.Now())
	return c.next.ListAccounts(ctx)
}

func (c *instrumented) ListCampaigns(ctx context.Context) (campaigns []model.Campaign, err error) {
	defer func(start time.Time) { observe(OpListCampaigns, start, err) }(time.Now())
	return c.next.ListCampaigns(ctx)
}

func (c *instrumented) SetAccountBalance(ctx context.Context, accountID int64, balance float64) (err error) {
	defer func(start time.Time) { observe(OpSetAccountBalance, start, err) }(time.Now())
	return c.next.SetAccountBalance(ctx, accountID, balance)
}

func (c *instrumented) SetCampaignActive(ctx context.Context, campaignID int64, active bool) (err error) {
	defer func(start time.Time) { observe(OpSetCampaignActive, start, err) }(time.Now())
	return c.next.SetCampaignActive(ctx, campaignID, active)
}

func (c *instrumented) CreateCampaign(ctx context.Context, campaign model.NewCampaign) (created *model.Campaign, err error) {
	defer func(start time.Time) { observe(OpCreateCampaign, start, err) }(time.Now())
	return c.next.CreateCampaign(ctx, campaign)
}

func (c *instrumented) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { observe(OpPing, start, err) }(time.Now())
	return c.next.Ping(ctx)
}
