// Package campaignform holds the new-campaign form, its validation and the
// insert payload it produces.
package campaignform

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/kkkkikiki/lukitas/internal/model"
)

// Form field names, shared with the HTML form.
const (
	FieldName        = "nombre"
	FieldDescription = "descripcion"
	FieldStartDate   = "fecha_inicio"
	FieldEndDate     = "fecha_fin"
	FieldLocation    = "lugar"
	FieldBudget      = "presupuesto"
)

// Validation messages
const (
	MsgNameRequired      = "El nombre es obligatorio"
	MsgStartRequired     = "La fecha de inicio es obligatoria"
	MsgEndRequired       = "La fecha de fin es obligatoria"
	MsgEndBeforeStart    = "La fecha de fin debe ser posterior a la fecha de inicio"
	MsgLocationRequired  = "El lugar es obligatorio"
	MsgBudgetNotPositive = "El presupuesto debe ser mayor a 0"
)

// Form is the raw input as typed by the admin.
type Form struct {
	Name        string
	Description string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	Location    string
	Budget      string
}

// Errors carries one message per field; empty means valid.
type Errors struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Location    string
	Budget      string
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool {
	return e != Errors{}
}

// FromValues reads a posted HTML form.
func FromValues(values url.Values) Form {
	return Form{
		Name:        values.Get(FieldName),
		Description: values.Get(FieldDescription),
		StartDate:   values.Get(FieldStartDate),
		EndDate:     values.Get(FieldEndDate),
		Location:    values.Get(FieldLocation),
		Budget:      values.Get(FieldBudget),
	}
}

// Validate checks required fields, the date order and the budget. Dates
// compare as ISO strings.
func (f Form) Validate() (Errors, bool) {
	var errs Errors

	if strings.TrimSpace(f.Name) == "" {
		errs.Name = MsgNameRequired
	}
	if f.StartDate == "" {
		errs.StartDate = MsgStartRequired
	}
	if f.EndDate == "" {
		errs.EndDate = MsgEndRequired
	}
	if strings.TrimSpace(f.Location) == "" {
		errs.Location = MsgLocationRequired
	}
	if budget, ok := parseBudget(f.Budget); !ok || budget <= 0 {
		errs.Budget = MsgBudgetNotPositive
	}
	if f.StartDate != "" && f.EndDate != "" && f.EndDate <= f.StartDate {
		errs.EndDate = MsgEndBeforeStart
	}

	return errs, !errs.Any()
}

// Payload assembles the insert for a validated form. The campaign is owned
// by ownerID and starts active.
func (f Form) Payload(ownerID int64) model.NewCampaign {
	budget, _ := parseBudget(f.Budget)
	return model.NewCampaign{
		UserID:      ownerID,
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Location:    f.Location,
		Budget:      budget,
		Active:      true,
	}
}

func parseBudget(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
