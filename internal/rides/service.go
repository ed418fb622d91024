package rides

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carpool-labs/rideshare/internal/notifier"
)

// Service implements RideService on top of a RideStore, emitting an
// advisory notification after each successful mutation. Notification
// failure never rolls back or fails the mutation.
type Service struct {
	store    RideStore
	notifier notifier.Publisher
	logger   *zap.Logger
}

// NewService creates a new ride service instance
func NewService(store RideStore, publisher notifier.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: publisher,
		logger:   logger,
	}
}

// CreateRide inserts a ride and emits a ride_created event. Seats is not
// validated against anything; capacity is never enforced on joins either.
func (s *Service) CreateRide(ctx context.Context, req *CreateRideRequest) (*Ride, error) {
	if req.Origin == "" {
		return nil, fmt.Errorf("origin is required")
	}
	if req.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}

	ride, err := s.store.CreateRide(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ride created",
		zap.Int64("ride_id", ride.ID),
		zap.String("origin", ride.Origin),
		zap.String("destination", ride.Destination))

	s.notifier.Publish(ctx, notifier.RideCreated(ride.Origin, ride.Destination))

	return ride, nil
}

// GetRide retrieves a ride by id.
func (s *Service) GetRide(ctx context.Context, rideID int64) (*Ride, error) {
	return s.store.GetRide(ctx, rideID)
}

// ListRides retrieves all rides.
func (s *Service) ListRides(ctx context.Context) ([]*Ride, error) {
	return s.store.ListRides(ctx)
}

// JoinRide records the user as a member of the ride and emits a
// ride_joined event. Both entities must exist; a duplicate join is a
// conflict. Seat capacity is deliberately not checked.
func (s *Service) JoinRide(ctx context.Context, rideID, userID int64) error {
	ride, rider, err := s.lookup(ctx, rideID, userID)
	if err != nil {
		return err
	}

	if err := s.store.AddMember(ctx, rideID, userID); err != nil {
		return err
	}

	s.logger.Info("User joined ride",
		zap.Int64("ride_id", rideID),
		zap.Int64("user_id", userID),
		zap.String("username", rider.Username))

	s.notifier.Publish(ctx, notifier.RideJoined(rider.Username, ride.Origin, ride.Destination))

	return nil
}

// LeaveRide removes the membership edge and emits a ride_left event.
// Leaving a ride the user never joined is a no-op that still succeeds.
func (s *Service) LeaveRide(ctx context.Context, rideID, userID int64) error {
	ride, rider, err := s.lookup(ctx, rideID, userID)
	if err != nil {
		return err
	}

	if err := s.store.RemoveMember(ctx, rideID, userID); err != nil {
		return err
	}

	s.logger.Info("User left ride",
		zap.Int64("ride_id", rideID),
		zap.Int64("user_id", userID),
		zap.String("username", rider.Username))

	s.notifier.Publish(ctx, notifier.RideLeft(rider.Username, ride.Origin, ride.Destination))

	return nil
}

// ListMembers retrieves the users who joined the ride.
func (s *Service) ListMembers(ctx context.Context, rideID int64) ([]*Rider, error) {
	if _, err := s.store.GetRide(ctx, rideID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, rideID)
}

func (s *Service) lookup(ctx context.Context, rideID, userID int64) (*Ride, *Rider, error) {
	ride, err := s.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, nil, err
	}

	rider, err := s.store.GetRider(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return ride, rider, nil
}
