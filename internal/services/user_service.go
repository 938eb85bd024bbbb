package services

import (
	"context"

	"mobilebazar/internal/logging"
	"mobilebazar/internal/models"
	"mobilebazar/internal/repositories"
	"mobilebazar/internal/store"
)

// UserService handles users, which are keyed by email.
type UserService struct {
	repo   repositories.UserRepository
	events events
}

// NewUserService creates a new UserService. pub may be nil.
func NewUserService(repo repositories.UserRepository, pub EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		events: newEvents(pub),
	}
}

// CreateUser inserts a new user. Email uniqueness is not checked.
func (s *UserService) CreateUser(ctx context.Context, user models.Document) (*store.InsertResult, error) {
	email, err := requireString(user, "email")
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventUserCreated,
		Collection: models.UsersCollection,
		ID:         idString(res.InsertedID),
		Email:      email,
	})
	return res, nil
}

// UpsertUser updates the user with the payload's email, creating it when absent.
func (s *UserService) UpsertUser(ctx context.Context, user models.Document) (*store.UpdateResult, error) {
	email, err := requireString(user, "email")
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Upsert(ctx, email, user)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventUserUpserted,
		Collection: models.UsersCollection,
		ID:         idString(res.UpsertedID),
		Email:      email,
	})
	return res, nil
}

// MakeAdmin grants the admin role to an existing user.
// The caller is not authorized; anyone can promote any user.
func (s *UserService) MakeAdmin(ctx context.Context, req models.MakeAdminRequest) (*store.UpdateResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	res, err := s.repo.SetRole(ctx, req.Email, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventUserAdminGranted,
		Collection: models.UsersCollection,
		Email:      req.Email,
	})
	return res, nil
}

// IsAdmin reports whether email belongs to an admin. It never fails: an unknown
// user or a store error both answer false.
func (s *UserService) IsAdmin(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logging.FromContext(ctx).Debug("admin check answered false", "email", email, "error", err)
		return false
	}
	return models.StringField(user, "role") == models.RoleAdmin
}
