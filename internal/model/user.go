package model

// User represents a campus user row in the users table
type User struct {
	ID          int64   `db:"id" json:"id"`
	FirstName   string  `db:"nombre" json:"nombre"`
	LastName    string  `db:"apellido" json:"apellido"`
	Email       string  `db:"email" json:"email"`
	StudentCode *string `db:"codigo_estudiante" json:"codigo_estudiante,omitempty"`
	RoleID      int64   `db:"role_id" json:"role_id"`
	Active      bool    `db:"activo" json:"activo"`
	Company     string  `db:"empresa" json:"empresa"`
	University  string  `db:"universidad" json:"universidad"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
