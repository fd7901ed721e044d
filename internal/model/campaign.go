package model

// Campaign represents a marketing campaign row in the campanas table
type Campaign struct {
	ID          int64    `db:"id" json:"id"`
	UserID      int64    `db:"user_id" json:"user_id"`
	Name        string   `db:"nombre" json:"nombre"`
	Description *string  `db:"descripcion" json:"descripcion,omitempty"`
	StartDate   string   `db:"fecha_inicio" json:"fecha_inicio"` // YYYY-MM-DD
	EndDate     string   `db:"fecha_fin" json:"fecha_fin"`       // YYYY-MM-DD
	Schedule    *string  `db:"horario" json:"horario,omitempty"`
	Location    *string  `db:"lugar" json:"lugar,omitempty"`
	Contact     *string  `db:"nro_contacto" json:"nro_contacto,omitempty"`
	Budget      *float64 `db:"presupuesto" json:"presupuesto,omitempty"`
	Active      bool     `db:"estado" json:"estado"`
	CreatedAt   string   `db:"created_at" json:"created_at"`
}

// NewCampaign is the insert payload for a campaign. The backend assigns
// id and created_at.
type NewCampaign struct {
	UserID      int64   `db:"user_id" json:"user_id"`
	Name        string  `db:"nombre" json:"nombre"`
	Description string  `db:"descripcion" json:"descripcion"`
	StartDate   string  `db:"fecha_inicio" json:"fecha_inicio"`
	EndDate     string  `db:"fecha_fin" json:"fecha_fin"`
	Location    string  `db:"lugar" json:"lugar"`
	Budget      float64 `db:"presupuesto" json:"presupuesto"`
	Active      bool    `db:"estado" json:"estado"`
}

// BudgetValue returns the budget or zero when unset.
func (c Campaign) BudgetValue() float64 {
	if c.Budget == nil {
		return 0
	}
	return *c.Budget
}
