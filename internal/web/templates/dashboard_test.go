package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkkkikiki/lukitas/internal/campaignform"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleView() DashboardView {
	return DashboardView{
		Tab:   TabUsers,
		Stats: StatsView{TotalUsers: "2", TotalAccounts: "1", ActiveCampaigns: "1"},
		Users: []UserRow{
			{Name: "Ana Rojas", Email: "ana@uni.pe", AccountID: "11", AccountNumber: "LK-0002", Balance: "40.00", BalanceInput: "40"},
			{Name: "Luis <Paz>", Email: "luis@uni.pe", Balance: "0.00"},
		},
		Campaigns: []CampaignRow{
			{ID: "5", Name: "Reciclaje", Budget: "1200.00", Active: true},
		},
	}
}

func TestDashboardFullPageWrapsContent(t *testing.T) {
	out := render(t, DashboardFullPage(sampleView()))
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `<main id="content" class="container">`)
	assert.Contains(t, out, "<title>"+AppName+"</title>")
}

func TestUsersTab(t *testing.T) {
	out := render(t, DashboardPage(sampleView()))
	assert.Contains(t, out, `action="/accounts/11/balance"`)
	assert.Contains(t, out, `value="40"`)
	assert.Contains(t, out, "$ 40.00")
	assert.Contains(t, out, "Luis &lt;Paz&gt;")
	assert.NotContains(t, out, "Luis <Paz>")
	assert.NotContains(t, out, `id="campaigns"`)
	// users without an account get no edit form
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte(`name="saldo"`)))
}

func TestCampaignsTab(t *testing.T) {
	view := sampleView()
	view.Tab = TabCampaigns
	view.Messages = []string{"Estado de campaña actualizado"}

	out := render(t, DashboardPage(view))
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Estado de campaña actualizado")
	assert.Contains(t, out, `action="/campaigns/5/toggle"`)
	assert.Contains(t, out, `action="/campaigns/new">`)
	assert.Contains(t, out, "Activa")
	assert.Contains(t, out, "Desactivar")
	assert.NotContains(t, out, `id="users"`)
}

func TestCampaignModalShowsFieldErrors(t *testing.T) {
	out := render(t, CampaignModal(CampaignModalView{
		Form:   campaignform.Form{Name: "Feria", StartDate: "2024-01-10", EndDate: "2024-01-10"},
		Errors: campaignform.Errors{EndDate: campaignform.MsgEndBeforeStart, Location: campaignform.MsgLocationRequired},
	}))
	assert.Contains(t, out, `value="Feria"`)
	assert.Contains(t, out, `data-field="fecha_fin"`)
	assert.Contains(t, out, campaignform.MsgEndBeforeStart)
	assert.Contains(t, out, `data-field="lugar"`)
	assert.NotContains(t, out, `data-field="nombre"`)
	assert.Contains(t, out, "Crear Campaña")
}

func TestCampaignModalBusy(t *testing.T) {
	out := render(t, CampaignModal(CampaignModalView{Submitting: true}))
	assert.Contains(t, out, "Creando...")
	assert.Contains(t, out, `aria-busy="true"`)
}

func TestReloadLinkFollowsRenderedTab(t *testing.T) {
	view := sampleView()
	view.Tab = TabCampaigns

	fragment := render(t, DashboardPage(view))
	assert.Contains(t, fragment, `href="/?tab=campanas&amp;reload=1"`)
	assert.NotContains(t, fragment, "tab=users&amp;reload=1")

	full := render(t, DashboardFullPage(view))
	assert.Equal(t, 1, strings.Count(full, "reload=1"), "reload link lives only inside the swapped content")
}

func TestAlertsRenderInOrder(t *testing.T) {
	view := sampleView()
	view.Messages = []string{"primero", "segundo"}

	out := render(t, DashboardPage(view))
	assert.Equal(t, 2, strings.Count(out, `role="alert"`))
	assert.Less(t, strings.Index(out, "primero"), strings.Index(out, "segundo"))
}
