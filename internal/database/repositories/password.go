package repositories

import (
	"context"

	"jotter/internal/database"
	"jotter/internal/database/models"
)

type PasswordRepository interface {
	// Set stores a category password. Passwords are set-once: there is no
	// update path, a second Set on the same category fails.
	Set(ctx context.Context, userID, category, password string) error
	// Verify compares the supplied password with the stored one.
	Verify(ctx context.Context, userID, category, password string) error
}

type passwordRepository struct {
	store *database.Store
}

func NewPasswordRepository(store *database.Store) PasswordRepository {
	return &passwordRepository{store: store}
}

func (r *passwordRepository) Set(ctx context.Context, userID, category, password string) error {
	return r.store.Update(func(d *models.Snapshot) error {
		table, ok := d.Passwords[userID]
		if !ok {
			return database.ErrUserNotFound
		}
		if !models.CategorySettable(category) {
			return database.ErrInvalidCategory
		}
		if password == "" {
			return database.ErrEmptyPassword
		}
		if table[category] != nil {
			return database.ErrPasswordAlreadySet
		}
		stored := password
		table[category] = &stored
		return nil
	})
}

func (r *passwordRepository) Verify(ctx context.Context, userID, category, password string) error {
	var err error
	r.store.View(func(d *models.Snapshot) {
		table, ok := d.Passwords[userID]
		if !ok {
			err = database.ErrUserNotFound
			return
		}
		stored := table[category]
		if stored == nil {
			err = database.ErrPasswordNotSet
			return
		}
		if *stored != password {
			err = database.ErrPasswordMismatch
		}
	})
	return err
}
