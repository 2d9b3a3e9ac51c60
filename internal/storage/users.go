package storage

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/models"
)

// SaveUser saves a user document. Handles both create and update.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	if user.Context == "" {
		user.Context = "https://schema.org"
	}
	if user.Type == "" {
		user.Type = "Person"
	}
	if user.ID == "" {
		user.ID = models.GenerateID("user")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = time.Now().UTC()

	rev, err := s.putDocument(ctx, user.ID, user)
	if err != nil {
		return fmt.Errorf("saving user %s: %w", user.ID, err)
	}
	user.Rev = rev
	return nil
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.getDocument(ctx, id, &user); err != nil {
		return nil, fmt.Errorf("reading user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username. Returns ErrNotFound
// when no account carries the name. Usernames serialize as the
// schema.org "name" property.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := NewQuery("Person").Eq("name", username).Limit(1).Build()
	users, err := findTyped[models.User](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("finding user %q: %w", username, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return &users[0], nil
}

// GetUserByEmail retrieves a user by email address.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := NewQuery("Person").Eq("email", email).Limit(1).Build()
	users, err := findTyped[models.User](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
	}
	return &users[0], nil
}

// ListUsers retrieves all user accounts.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := NewQuery("Person").Build()

	users, err := findTyped[models.User](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	result := make([]*models.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// DeleteUser deletes a user by ID.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	if err := s.deleteDocument(ctx, id, ""); err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	return nil
}
