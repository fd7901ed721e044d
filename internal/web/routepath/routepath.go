// Package routepath centralizes dashboard URLs shared by handlers and
// templates.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Dashboard         = "/"
	Campaigns         = "/campaigns"
	CampaignNew       = "/campaigns/new"
	CampaignNewCancel = "/campaigns/new/cancel"
	Health            = "/health"
	HealthBackend     = "/health/backend"
	Metrics           = "/metrics"
)

// AccountBalance is the balance edit endpoint for an account.
func AccountBalance(accountID string) string {
	return "/accounts/" + url.PathEscape(accountID) + "/balance"
}

// CampaignToggle is the active flag toggle endpoint for a campaign.
func CampaignToggle(campaignID string) string {
	return Campaigns + "/" + url.PathEscape(campaignID) + "/toggle"
}

// DashboardTab links to one tab of the dashboard.
func DashboardTab(tab string) string {
	return AppendQueryParam(Dashboard, "tab", tab)
}

// AppendQueryParam appends a single query parameter to a URL.
func AppendQueryParam(baseURL string, key string, value string) string {
	encodedKey := url.QueryEscape(key)
	encodedValue := url.QueryEscape(value)
	if strings.Contains(baseURL, "?") {
		return baseURL + "&" + encodedKey + "=" + encodedValue
	}
	return baseURL + "?" + encodedKey + "=" + encodedValue
}
