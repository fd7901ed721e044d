package web

import (
	"strconv"
	"time"

	"github.com/kkkkikiki/lukitas/internal/model"
	"github.com/kkkkikiki/lukitas/internal/service"
	"github.com/kkkkikiki/lukitas/internal/web/templates"
)

// buildDashboardView formats a snapshot for the templates. Empty messages
// are dropped.
func buildDashboardView(snap service.Snapshot, tab string, messages ...string) templates.DashboardView {
	view := templates.DashboardView{
		Tab: tab,
		Stats: templates.StatsView{
			TotalUsers:      strconv.Itoa(snap.Stats.TotalUsers),
			TotalAccounts:   strconv.Itoa(snap.Stats.TotalAccounts),
			ActiveCampaigns: strconv.Itoa(snap.Stats.ActiveCampaigns),
		},
		Users:     make([]templates.UserRow, 0, len(snap.Users)),
		Campaigns: make([]templates.CampaignRow, 0, len(snap.Campaigns)),
	}

	for _, message := range messages {
		if message != "" {
			view.Messages = append(view.Messages, message)
		}
	}

	for _, user := range snap.Users {
		row := templates.UserRow{
			Name:        user.FullName(),
			Email:       user.Email,
			StudentCode: deref(user.StudentCode),
			Balance:     formatAmount(0),
		}
		if account, ok := snap.AccountFor(user.ID); ok {
			row.AccountID = strconv.FormatInt(account.ID, 10)
			row.AccountNumber = account.Number
			row.AccountStatus = account.Status
			row.Balance = formatAmount(account.Balance)
			row.BalanceInput = strconv.FormatFloat(account.Balance, 'f', -1, 64)
		}
		view.Users = append(view.Users, row)
	}

	for _, campaign := range snap.Campaigns {
		view.Campaigns = append(view.Campaigns, buildCampaignRow(campaign))
	}

	if snap.FormOpen {
		view.Modal = &templates.CampaignModalView{}
	}
	return view
}

func buildCampaignRow(c model.Campaign) templates.CampaignRow {
	return templates.CampaignRow{
		ID:          strconv.FormatInt(c.ID, 10),
		Name:        c.Name,
		Description: deref(c.Description),
		Location:    deref(c.Location),
		StartDate:   formatDate(c.StartDate),
		EndDate:     formatDate(c.EndDate),
		Budget:      formatAmount(c.BudgetValue()),
		Active:      c.Active,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatDate renders an ISO date as DD/MM/YYYY; other values pass through.
func formatDate(raw string) string {
	if len(raw) >= 10 {
		if t, err := time.Parse(time.DateOnly, raw[:10]); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
