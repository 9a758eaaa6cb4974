package repositories

import (
	"context"
	"strings"

	"jotter/internal/database"
	"jotter/internal/database/models"
)

type UserRepository interface {
	// Login provisions an empty note collection and the category password
	// table for a previously unseen user. Returns the trimmed user id.
	// Logging in an already known user is a no-op that still succeeds.
	Login(ctx context.Context, userID string) (string, error)
}

type userRepository struct {
	store *database.Store
}

func NewUserRepository(store *database.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Login(ctx context.Context, userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", database.ErrEmptyUserID
	}
	err := r.store.Update(func(d *models.Snapshot) error {
		if _, ok := d.Notes[id]; ok {
			return nil
		}
		d.Notes[id] = []models.Note{}
		d.Passwords[id] = models.NewPasswordTable()
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
