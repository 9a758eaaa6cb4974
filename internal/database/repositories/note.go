package repositories

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"jotter/internal/database"
	"jotter/internal/database/models"
)

// DefaultCollection receives notes created through the routes that carry no
// user id. It is provisioned lazily on first such create.
const DefaultCollection = "default"

type NoteRepository interface {
	ListAll(ctx context.Context) ([]models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, userID, title, content, category string) (*models.Note, error)
	CreateGlobal(ctx context.Context, title, content string) (*models.Note, error)
	Update(ctx context.Context, noteID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, noteID string) error
	DeleteByUser(ctx context.Context, userID, noteID string) error
}

type noteRepository struct {
	store *database.Store
}

func NewNoteRepository(store *database.Store) NoteRepository {
	return &noteRepository{store: store}
}

// sortNotes orders most recently updated first. The sort is stable and the
// timestamps are fixed-width, so equal timestamps keep insertion order.
func sortNotes(notes []models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt > notes[j].UpdatedAt
	})
}

func (r *noteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	r.store.View(func(d *models.Snapshot) {
		users := make([]string, 0, len(d.Notes))
		for user := range d.Notes {
			users = append(users, user)
		}
		sort.Strings(users)
		for _, user := range users {
			notes = append(notes, d.Notes[user]...)
		}
	})
	sortNotes(notes)
	return notes, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	notes := []models.Note{}
	r.store.View(func(d *models.Snapshot) {
		notes = append(notes, d.Notes[userID]...)
	})
	sortNotes(notes)
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, userID, title, content, category string) (*models.Note, error) {
	var note models.Note
	err := r.store.Update(func(d *models.Snapshot) error {
		if _, ok := d.Notes[userID]; !ok {
			return database.ErrUserNotFound
		}
		now := models.Now()
		note = models.Note{
			ID:        uuid.NewString(),
			Title:     title,
			Content:   content,
			Category:  category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		d.Notes[userID] = append(d.Notes[userID], note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) CreateGlobal(ctx context.Context, title, content string) (*models.Note, error) {
	var note models.Note
	err := r.store.Update(func(d *models.Snapshot) error {
		if _, ok := d.Notes[DefaultCollection]; !ok {
			d.Notes[DefaultCollection] = []models.Note{}
			d.Passwords[DefaultCollection] = models.NewPasswordTable()
		}
		now := models.Now()
		note = models.Note{
			ID:        uuid.NewString(),
			Title:     title,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		d.Notes[DefaultCollection] = append(d.Notes[DefaultCollection], note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, noteID, title, content string) (*models.Note, error) {
	var note models.Note
	err := r.store.Update(func(d *models.Snapshot) error {
		for user, collection := range d.Notes {
			for i, n := range collection {
				if n.ID != noteID {
					continue
				}
				n.Title = title
				n.Content = content
				n.UpdatedAt = models.Now()
				d.Notes[user][i] = n
				note = n
				return nil
			}
		}
		return database.ErrNoteNotFound
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, noteID string) error {
	return r.store.Update(func(d *models.Snapshot) error {
		for user, collection := range d.Notes {
			for i, n := range collection {
				if n.ID == noteID {
					d.Notes[user] = append(collection[:i:i], collection[i+1:]...)
					return nil
				}
			}
		}
		return database.ErrNoteNotFound
	})
}

func (r *noteRepository) DeleteByUser(ctx context.Context, userID, noteID string) error {
	return r.store.Update(func(d *models.Snapshot) error {
		collection, ok := d.Notes[userID]
		if !ok {
			return database.ErrUserNotFound
		}
		for i, n := range collection {
			if n.ID == noteID {
				d.Notes[userID] = append(collection[:i:i], collection[i+1:]...)
				return nil
			}
		}
		return database.ErrNoteNotFound
	})
}
