package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carpool-labs/rideshare/internal/notifier"
)

// Service implements UserService on top of a UserStore, emitting an
// advisory notification after each successful mutation. Notification
// failure never rolls back or fails the mutation.
type Service struct {
	store    UserStore
	notifier notifier.Publisher
	logger   *zap.Logger
}

// NewService creates a new user service instance
func NewService(store UserStore, publisher notifier.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: publisher,
		logger:   logger,
	}
}

// Register creates a new user and emits a user_registered event.
func (s *Service) Register(ctx context.Context, req *RegisterUserRequest) (*User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	user, err := s.store.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	s.notifier.Publish(ctx, notifier.UserRegistered(user.Username, user.Email))

	return user, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.store.GetUser(ctx, userID)
}

// ListUsers retrieves all users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteUser removes a user and emits a user_deleted event carrying the
// deleted row's username and email.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.Int64("user_id", userID),
		zap.String("username", user.Username))

	s.notifier.Publish(ctx, notifier.UserDeleted(user.Username, user.Email))

	return nil
}
