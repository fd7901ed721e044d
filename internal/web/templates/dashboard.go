package templates

import (
	"github.com/a-h/templ"

	"github.com/kkkkikiki/lukitas/internal/campaignform"
	"github.com/kkkkikiki/lukitas/internal/web/routepath"
)

// DashboardFullPage renders the complete HTML document.
func DashboardFullPage(view DashboardView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(AppName)
		h.raw(`</title>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.raw(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.min.css">`)
		h.raw(`</head><body><header class="container"><nav><ul><li><strong>`)
		h.text(AppName)
		h.raw(`</strong></li></ul><ul><li>Coordinador Admin</li></ul></nav></header>`)
		h.raw(`<main id="content" class="container">`)
		h.render(DashboardPage(view))
		h.raw(`</main></body></html>`)
	})
}

// DashboardPage renders the dashboard body: alert, stats, tabs, the active
// table and the modal when open.
func DashboardPage(view DashboardView) templ.Component {
	return component(func(h *htmlWriter) {
		for _, message := range view.Messages {
			h.raw(`<article role="alert" class="alert">`)
			h.text(message)
			h.raw(`</article>`)
		}
		h.raw(`<p id="reload"><a`)
		h.attr("href", ReloadURL(view.Tab))
		h.raw(`>Recargar</a></p>`)
		h.render(statsCards(view.Stats))
		h.render(tabs(view.Tab))
		if view.Tab == TabCampaigns {
			h.render(campaignsTable(view.Campaigns))
		} else {
			h.render(usersTable(view.Users))
		}
		if view.Modal != nil {
			h.render(CampaignModal(*view.Modal))
		}
	})
}

func statsCards(stats StatsView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="grid" id="stats">`)
		for _, card := range []struct{ label, value string }{
			{"Total Usuarios", stats.TotalUsers},
			{"Cuentas Activas", stats.TotalAccounts},
			{"Campañas Activas", stats.ActiveCampaigns},
		} {
			h.raw(`<article><small>`)
			h.text(card.label)
			h.raw(`</small><h2>`)
			h.text(card.value)
			h.raw(`</h2></article>`)
		}
		h.raw(`</section>`)
	})
}

func tabs(active string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav><ul>`)
		for _, tab := range []struct{ id, label string }{
			{TabUsers, "Usuarios y Cuentas"},
			{TabCampaigns, "Campañas"},
		} {
			href := routepath.DashboardTab(tab.id)
			h.raw(`<li><a`)
			h.attr("href", href)
			h.attr("hx-get", href)
			h.raw(` hx-target="#content" hx-push-url="true"`)
			if tab.id == active || (active != TabCampaigns && tab.id == TabUsers) {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.text(tab.label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)
	})
}

func usersTable(rows []UserRow) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="users"><h3>Gestión de Usuarios y Lukitas</h3><table><thead><tr>`)
		h.raw(`<th>Usuario</th><th>Cuenta</th><th>Saldo Lukitas</th><th>Acciones</th>`)
		h.raw(`</tr></thead><tbody>`)
		for _, row := range rows {
			h.raw(`<tr><td><div>`)
			h.text(row.Name)
			h.raw(`</div><small>`)
			h.text(row.Email)
			h.raw(`</small><br><small>`)
			h.text(row.StudentCode)
			h.raw(`</small></td><td><div>`)
			h.text(row.AccountNumber)
			h.raw(`</div><small>`)
			h.text(row.AccountStatus)
			h.raw(`</small></td><td>$ `)
			h.text(row.Balance)
			h.raw(`</td><td>`)
			if row.AccountID != "" {
				h.raw(`<form method="post" role="group"`)
				h.attr("action", routepath.AccountBalance(row.AccountID))
				h.raw(`><input type="text" inputmode="decimal" name="saldo" aria-label="Nuevo saldo de Lukitas"`)
				h.attr("value", row.BalanceInput)
				h.raw(`><button type="submit">Editar</button></form>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}

func campaignsTable(rows []CampaignRow) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="campaigns"><h3>Gestión de Campañas</h3><form method="post"`)
		h.attr("action", routepath.CampaignNew)
		h.raw(`><button type="submit">Nueva Campaña</button></form><table><thead><tr>`)
		h.raw(`<th>Campaña</th><th>Fechas</th><th>Presupuesto</th><th>Estado</th><th>Acciones</th>`)
		h.raw(`</tr></thead><tbody>`)
		for _, row := range rows {
			h.raw(`<tr><td><div>`)
			h.text(row.Name)
			h.raw(`</div><small>`)
			h.text(row.Description)
			h.raw(`</small><br><small>`)
			h.text(row.Location)
			h.raw(`</small></td><td><div>`)
			h.text(row.StartDate)
			h.raw(`</div><div>`)
			h.text(row.EndDate)
			h.raw(`</div></td><td>$ `)
			h.text(row.Budget)
			h.raw(`</td><td>`)
			if row.Active {
				h.raw(`<mark data-state="active">Activa</mark>`)
			} else {
				h.raw(`<mark data-state="inactive">Inactiva</mark>`)
			}
			h.raw(`</td><td><form method="post"`)
			h.attr("action", routepath.CampaignToggle(row.ID))
			h.raw(`><button type="submit" class="secondary">`)
			if row.Active {
				h.raw(`Desactivar`)
			} else {
				h.raw(`Activar`)
			}
			h.raw(`</button></form></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}

// ReloadURL re-fetches the data and shows tab.
func ReloadURL(tab string) string {
	return routepath.AppendQueryParam(routepath.DashboardTab(tab), "reload", "1")
}

// CampaignModal renders the new-campaign dialog with per-field errors.
func CampaignModal(view CampaignModalView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<dialog open id="campaign-modal"><article><h3>Nueva Campaña</h3><form method="post"`)
		h.attr("action", routepath.Campaigns)
		h.raw(`>`)
		h.render(inputField("Nombre *", "text", campaignform.FieldName, view.Form.Name, view.Errors.Name, "Ingresa el nombre de la campaña"))
		h.raw(`<label>Descripción<textarea rows="3" placeholder="Describe brevemente la campaña"`)
		h.attr("name", campaignform.FieldDescription)
		h.raw(`>`)
		h.text(view.Form.Description)
		h.raw(`</textarea></label>`)
		h.render(inputField("Fecha Inicio *", "date", campaignform.FieldStartDate, view.Form.StartDate, view.Errors.StartDate, ""))
		h.render(inputField("Fecha Fin *", "date", campaignform.FieldEndDate, view.Form.EndDate, view.Errors.EndDate, ""))
		h.render(inputField("Lugar *", "text", campaignform.FieldLocation, view.Form.Location, view.Errors.Location, "Ubicación de la campaña"))
		h.render(inputField("Presupuesto *", "number", campaignform.FieldBudget, view.Form.Budget, view.Errors.Budget, "0.00"))
		h.raw(`<footer><button type="submit" class="secondary"`)
		h.attr("formaction", routepath.CampaignNewCancel)
		h.raw(` formnovalidate`)
		if view.Submitting {
			h.raw(` disabled`)
		}
		h.raw(`>Cancelar</button><button type="submit"`)
		if view.Submitting {
			h.raw(` disabled aria-busy="true">Creando...`)
		} else {
			h.raw(`>Crear Campaña`)
		}
		h.raw(`</button></footer></form></article></dialog>`)
	})
}

func inputField(label, kind, name, value, errMsg, placeholder string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<label>`)
		h.text(label)
		h.raw(`<input`)
		h.attr("type", kind)
		h.attr("name", name)
		h.attr("value", value)
		if kind == "number" {
			h.raw(` step="0.01" min="0"`)
		}
		if placeholder != "" {
			h.attr("placeholder", placeholder)
		}
		if errMsg != "" {
			h.raw(` aria-invalid="true"`)
		}
		h.raw(`>`)
		if errMsg != "" {
			h.raw(`<small class="field-error"`)
			h.attr("data-field", name)
			h.raw(`>`)
			h.text(errMsg)
			h.raw(`</small>`)
		}
		h.raw(`</label>`)
	})
}
