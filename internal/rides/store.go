package rides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// RideSchema represents the rides table schema in PostgreSQL
type RideSchema struct {
	bun.BaseModel `bun:"table:rides,alias:r"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Origin      string `bun:"origin,notnull" json:"origin"`
	Destination string `bun:"destination,notnull" json:"destination"`
	Seats       int    `bun:"seats,notnull" json:"seats"`
}

// MembershipSchema represents the user_rides join table. The composite
// primary key is the only guard against duplicate joins.
type MembershipSchema struct {
	bun.BaseModel `bun:"table:user_rides,alias:ur"`

	UserID int64 `bun:"user_id,pk" json:"user_id"`
	RideID int64 `bun:"ride_id,pk" json:"ride_id"`
}

// RiderSchema mirrors the users table for join/leave validation and
// event payloads. The user service owns writes to this table.
type RiderSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Email    string `bun:"email,notnull,unique" json:"email"`
}

// PostgresStore implements RideStore using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL ride store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateTables creates the ride service tables if they do not exist. The
// users table is included because the ride schema carries its own copy of
// user identities, as membership references are logical only.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*RiderSchema)(nil),
		(*RideSchema)(nil),
		(*MembershipSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateRide inserts a new ride and returns it with its assigned id.
func (s *PostgresStore) CreateRide(ctx context.Context, req *CreateRideRequest) (*Ride, error) {
	schema := &RideSchema{
		Origin:      req.Origin,
		Destination: req.Destination,
		Seats:       req.Seats,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	return schemaToRide(schema), nil
}

// GetRide retrieves a ride by id.
func (s *PostgresStore) GetRide(ctx context.Context, rideID int64) (*Ride, error) {
	schema := new(RideSchema)
	err := s.db.NewSelect().Model(schema).Where("id = ?", rideID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRideNotFoundError(rideID)
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	return schemaToRide(schema), nil
}

// ListRides retrieves all rides in store-default order.
func (s *PostgresStore) ListRides(ctx context.Context) ([]*Ride, error) {
	var schemas []RideSchema
	err := s.db.NewSelect().Model(&schemas).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	result := make([]*Ride, 0, len(schemas))
	for i := range schemas {
		result = append(result, schemaToRide(&schemas[i]))
	}
	return result, nil
}

// GetRider retrieves a user row by id.
func (s *PostgresStore) GetRider(ctx context.Context, userID int64) (*Rider, error) {
	schema := new(RiderSchema)
	err := s.db.NewSelect().Model(schema).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRiderNotFoundError(userID)
		}
		return nil, fmt.Errorf("failed to get rider: %w", err)
	}
	return schemaToRider(schema), nil
}

// AddMember inserts a membership edge. A duplicate join violates the
// composite primary key and is translated to a conflict error.
func (s *PostgresStore) AddMember(ctx context.Context, rideID, userID int64) error {
	membership := &MembershipSchema{
		UserID: userID,
		RideID: rideID,
	}

	_, err := s.db.NewInsert().Model(membership).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return NewAlreadyJoinedError(rideID, userID, err)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership edge. Removing an edge that does not
// exist is a no-op.
func (s *PostgresStore) RemoveMember(ctx context.Context, rideID, userID int64) error {
	_, err := s.db.NewDelete().
		Model((*MembershipSchema)(nil)).
		Where("ride_id = ?", rideID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers retrieves the users who joined the given ride.
func (s *PostgresStore) ListMembers(ctx context.Context, rideID int64) ([]*Rider, error) {
	var schemas []RiderSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Join("JOIN user_rides AS ur ON ur.user_id = u.id").
		Where("ur.ride_id = ?", rideID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	result := make([]*Rider, 0, len(schemas))
	for i := range schemas {
		result = append(result, schemaToRider(&schemas[i]))
	}
	return result, nil
}

func schemaToRide(schema *RideSchema) *Ride {
	return &Ride{
		ID:          schema.ID,
		Origin:      schema.Origin,
		Destination: schema.Destination,
		Seats:       schema.Seats,
	}
}

func schemaToRider(schema *RiderSchema) *Rider {
	return &Rider{
		ID:       schema.ID,
		Username: schema.Username,
		Email:    schema.Email,
	}
}
