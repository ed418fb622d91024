package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Email    string `bun:"email,notnull,unique" json:"email"`
}

// PostgresStore implements UserStore using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL user store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateTables creates the users table if it does not exist.
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*UserSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// CreateUser inserts a new user and returns it with its assigned id.
func (s *PostgresStore) CreateUser(ctx context.Context, req *RegisterUserRequest) (*User, error) {
	schema := &UserSchema{
		Username: req.Username,
		Email:    req.Email,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, NewUserAlreadyExistsError(req.Username, req.Email, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return schemaToUser(schema), nil
}

// GetUser retrieves a user by id.
func (s *PostgresStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	schema := new(UserSchema)
	err := s.db.NewSelect().Model(schema).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return schemaToUser(schema), nil
}

// ListUsers retrieves all users in store-default order.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().Model(&schemas).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]*User, 0, len(schemas))
	for i := range schemas {
		result = append(result, schemaToUser(&schemas[i]))
	}
	return result, nil
}

// DeleteUser removes a user by id.
func (s *PostgresStore) DeleteUser(ctx context.Context, userID int64) error {
	result, err := s.db.NewDelete().Model((*UserSchema)(nil)).Where("id = ?", userID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return NewUserNotFoundError(userID)
	}
	return nil
}

func schemaToUser(schema *UserSchema) *User {
	return &User{
		ID:       schema.ID,
		Username: schema.Username,
		Email:    schema.Email,
	}
}
