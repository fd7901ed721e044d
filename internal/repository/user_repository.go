package repository

import (
	"context"
	"fmt"

	"github.com/kkkkikiki/lukitas/internal/model"
)

// UserRepository reads the users table
type UserRepository struct{}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// ListUsers returns every user, newest first
func (r *UserRepository) ListUsers(ctx context.Context, db DBExecutor) ([]model.User, error) {
	query := `
		SELECT id, nombre, apellido, email, codigo_estudiante, role_id, activo,
		       COALESCE(empresa, '') AS empresa,
		       COALESCE(universidad, '') AS universidad,
		       CAST(created_at AS TEXT) AS created_at
		FROM users
		ORDER BY users.created_at DESC
	`

	users := []model.User{}
	if err := db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
