package model

// Backend table names
const (
	TableUsers     = "users"
	TableAccounts  = "cuentas"
	TableCampaigns = "campanas"
	TableProviders = "proveedores"
	TableProducts  = "productos"
	TableTransfers = "transferencias"
	TableSales     = "ventas"
)

// The shapes below mirror backend tables the dashboard does not read or
// write yet.

// Provider represents a row in the proveedores table
type Provider struct {
	ID             int64   `db:"id" json:"id"`
	ProviderTypeID int64   `db:"tipo_proveedor_id" json:"tipo_proveedor_id"`
	Name           string  `db:"nombre" json:"nombre"`
	Email          *string `db:"email" json:"email,omitempty"`
	Phone          *string `db:"telefono" json:"telefono,omitempty"`
	Status         string  `db:"estado" json:"estado"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
}

// Product represents a row in the productos table
type Product struct {
	ID            int64   `db:"id" json:"id"`
	ProviderID    int64   `db:"proveedor_id" json:"proveedor_id"`
	ProductTypeID int64   `db:"tipo_producto_id" json:"tipo_producto_id"`
	Code          string  `db:"codigo" json:"codigo"`
	Name          string  `db:"nombre" json:"nombre"`
	Price         float64 `db:"precio" json:"precio"`
	Stock         int64   `db:"stock" json:"stock"`
	Status        string  `db:"estado" json:"estado"`
	ImageURL      *string `db:"imagen_url" json:"imagen_url,omitempty"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// Transfer represents a row in the transferencias table
type Transfer struct {
	ID            int64   `db:"id" json:"id"`
	FromAccountID int64   `db:"cuenta_origen_id" json:"cuenta_origen_id"`
	ToAccountID   int64   `db:"cuenta_destino_id" json:"cuenta_destino_id"`
	TransferredAt string  `db:"fecha_transferencia" json:"fecha_transferencia"`
	Amount        float64 `db:"monto" json:"monto"`
	Status        string  `db:"estado" json:"estado"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// Sale represents a row in the ventas table
type Sale struct {
	ID        int64   `db:"id" json:"id"`
	AccountID int64   `db:"cuenta_id" json:"cuenta_id"`
	SoldAt    string  `db:"fecha_venta" json:"fecha_venta"`
	Total     float64 `db:"total" json:"total"`
	Status    string  `db:"estado" json:"estado"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}
