package model

// Account represents a Lukitas balance row in the cuentas table
type Account struct {
	ID         int64   `db:"id" json:"id"`
	UserID     int64   `db:"user_id" json:"user_id"`
	Number     string  `db:"numero_cuenta" json:"numero_cuenta"`
	Balance    float64 `db:"saldo" json:"saldo"`
	Status     string  `db:"estado" json:"estado"`
	CampaignID *int64  `db:"campanas_id" json:"campanas_id,omitempty"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}
