package repository

import (
	"context"

	"studynotes/internal/model"
)

// NoteRepository defines data access for library notes using SQL queries only.
// Persistence only; rules live in the service layer.
type NoteRepository interface {
	// Create inserts a new note record and returns the stored row.
	Create(ctx context.Context, n *model.Note) (*model.Note, error)

	// FindByID returns a note by its ID.
	FindByID(ctx context.Context, id string) (*model.Note, error)

	// List returns a filtered page of notes, newest first, and the total matching rows.
	List(ctx context.Context, f model.NoteFilter, pq PageQuery) (*PageResult[model.Note], error)

	// Subjects returns the distinct subject tags present in the library, sorted.
	Subjects(ctx context.Context) ([]string, error)

	// IncrementViews adds exactly one to the note's view counter and returns the new value.
	IncrementViews(ctx context.Context, id string) (int64, error)

	// Delete removes a note by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
