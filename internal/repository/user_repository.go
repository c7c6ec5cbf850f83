package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a single user by ID.
func (r *UserRepository) GetByID(id string) (*model.User, error) {
	query := `
		SELECT id, name, email, role
		FROM user
		WHERE id = ?
	`

	var u model.User
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}

	return &u, nil
}
