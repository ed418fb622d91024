package rides

import (
	"context"
)

// RideStore defines the interface for ride storage operations
type RideStore interface {
	CreateRide(ctx context.Context, req *CreateRideRequest) (*Ride, error)
	GetRide(ctx context.Context, rideID int64) (*Ride, error)
	ListRides(ctx context.Context) ([]*Ride, error)

	GetRider(ctx context.Context, userID int64) (*Rider, error)
	AddMember(ctx context.Context, rideID, userID int64) error
	RemoveMember(ctx context.Context, rideID, userID int64) error
	ListMembers(ctx context.Context, rideID int64) ([]*Rider, error)
}

// RideService defines the interface for ride service operations
type RideService interface {
	CreateRide(ctx context.Context, req *CreateRideRequest) (*Ride, error)
	GetRide(ctx context.Context, rideID int64) (*Ride, error)
	ListRides(ctx context.Context) ([]*Ride, error)
	JoinRide(ctx context.Context, rideID, userID int64) error
	LeaveRide(ctx context.Context, rideID, userID int64) error
	ListMembers(ctx context.Context, rideID int64) ([]*Rider, error)
}
