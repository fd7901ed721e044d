// Package templates renders the admin dashboard as templ components.
package templates

import (
	"github.com/kkkkikiki/lukitas/internal/campaignform"
)

// Tabs
const (
	TabUsers     = "users"
	TabCampaigns = "campanas"
)

// AppName is shown in the title and header.
const AppName = "Panel de Administración Lukitas"

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Tab       string
	// Messages are alerts in display order.
	Messages  []string
	Stats     StatsView
	Users     []UserRow
	Campaigns []CampaignRow
	// Modal is set while the new-campaign form is open.
	Modal *CampaignModalView
}

// StatsView holds formatted summary counts.
type StatsView struct {
	TotalUsers      string
	TotalAccounts   string
	ActiveCampaigns string
}

// UserRow is one line of the users and accounts table.
type UserRow struct {
	Name        string
	Email       string
	StudentCode string
	// AccountID is empty when the user has no account.
	AccountID     string
	AccountNumber string
	AccountStatus string
	// Balance is formatted with two decimals.
	Balance string
	// BalanceInput prefills the edit field.
	BalanceInput string
}

// CampaignRow is one line of the campaigns table.
type CampaignRow struct {
	ID          string
	Name        string
	Description string
	Location    string
	StartDate   string
	EndDate     string
	Budget      string
	Active      bool
}

// CampaignModalView is the new-campaign form with its field errors.
type CampaignModalView struct {
	Form       campaignform.Form
	Errors     campaignform.Errors
	Submitting bool
}
