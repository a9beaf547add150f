package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes/internal/model"
	"studynotes/internal/repository"
)

var noteRowColumns = []string{"id", "title", "description", "subject", "semester", "branch", "file_ref", "uploader_id", "views", "created_at"}

func TestNotePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	n := &model.Note{
		ID:          "note-1",
		Title:       "Operating Systems Unit 1",
		Description: "Processes and threads",
		Subject:     "OS",
		Semester:    4,
		Branch:      "CSE",
		FileRef:     "notes/abc.pdf",
		UploaderID:  "user-1",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(noteRowColumns).
		AddRow(n.ID, n.Title, n.Description, n.Subject, n.Semester, n.Branch, n.FileRef, n.UploaderID, 0, n.CreatedAt)

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(n.ID, n.Title, n.Description, n.Subject, n.Semester, n.Branch, n.FileRef, n.UploaderID, n.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, n)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, n.ID, result.ID)
	assert.Equal(t, int64(0), result.Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(noteRowColumns).
			AddRow("note-1", "t", "d", "OS", 4, "CSE", "notes/a.pdf", "u", 3, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = ?").
			WithArgs("note-1").
			WillReturnRows(rows)

		n, err := repo.FindByID(ctx, "note-1")

		assert.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, "note-1", n.ID)
		assert.Equal(t, int64(3), n.Views)
		assert.Equal(t, "notes/a.pdf", n.FileRef)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		n, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, n)
	})
}

func TestBuildNoteWhere(t *testing.T) {
	tests := []struct {
		name      string
		filter    model.NoteFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    model.NoteFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "search escapes wildcards",
			filter:    model.NoteFilter{Search: " 100%_done "},
			wantWhere: " WHERE (title ILIKE $1 OR description ILIKE $1)",
			wantArgs:  []any{`%100\%\_done%`},
		},
		{
			name:      "all filters",
			filter:    model.NoteFilter{Search: "tree", Subject: "dsa", Semester: 3, Branch: "CSE"},
			wantWhere: " WHERE (title ILIKE $1 OR description ILIKE $1) AND LOWER(subject) = LOWER($2) AND semester = $3 AND branch = $4",
			wantArgs:  []any{"%tree%", "dsa", 3, "CSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildNoteWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestNotePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotePostgres(db)
	ctx := context.Background()

	t.Run("unfiltered", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes$").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(noteRowColumns).
			AddRow("note-1", "t", "d", "OS", 4, "CSE", "notes/a.pdf", "u", 0, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM notes ORDER BY created_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, model.NoteFilter{}, repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("filtered by semester", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes WHERE semester = \\$1").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT (.+) FROM notes WHERE semester = \\$1 ORDER BY (.+) LIMIT \\$2 OFFSET \\$3").
			WithArgs(5, 20, 40).
			WillReturnRows(sqlmock.NewRows(noteRowColumns))

		res, err := repo.List(ctx, model.NoteFilter{Semester: 5}, repository.PageQuery{Limit: 20, Offset: 40})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotePostgres_Subjects(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT subject FROM notes ORDER BY subject").
		WillReturnRows(sqlmock.NewRows([]string{"subject"}).AddRow("DBMS").AddRow("OS"))

	got, err := NewNotePostgres(db).Subjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"DBMS", "OS"}, got)
}

func TestNotePostgres_IncrementViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotePostgres(db)
	ctx := context.Background()

	t.Run("returns new count", func(t *testing.T) {
		mock.ExpectQuery("UPDATE notes SET views = views \\+ 1 WHERE id = \\$1 RETURNING views").
			WithArgs("note-1").
			WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(4))

		views, err := repo.IncrementViews(ctx, "note-1")

		require.NoError(t, err)
		assert.Equal(t, int64(4), views)
	})

	t.Run("missing note", func(t *testing.T) {
		mock.ExpectQuery("UPDATE notes SET views").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.IncrementViews(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestNotePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes WHERE id = ?").
		WithArgs("note-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewNotePostgres(db).Delete(context.Background(), "note-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
