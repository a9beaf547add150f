package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"studynotes/internal/model"
	"studynotes/internal/repository"
)

const noteColumns = `id, title, description, subject, semester, branch, file_ref, uploader_id, views, created_at`

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Description,
		&n.Subject,
		&n.Semester,
		&n.Branch,
		&n.FileRef,
		&n.UploaderID,
		&n.Views,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, title, description, subject, semester, branch, file_ref, uploader_id, views, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
		RETURNING ` + noteColumns
	row := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.Title,
		n.Description,
		n.Subject,
		n.Semester,
		n.Branch,
		n.FileRef,
		n.UploaderID,
		n.CreatedAt,
	)
	return scanNote(row)
}

// FindByID fetches a single note by its ID.
func (r *NotePostgres) FindByID(ctx context.Context, id string) (*model.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

// buildNoteWhere renders the filter as a WHERE clause with positional args starting at $1.
func buildNoteWhere(f model.NoteFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if s := strings.TrimSpace(f.Subject); s != "" {
		conds = append(conds, "LOWER(subject) = LOWER("+next(s)+")")
	}
	if f.Semester > 0 {
		conds = append(conds, "semester = "+next(f.Semester))
	}
	if s := strings.TrimSpace(f.Branch); s != "" {
		conds = append(conds, "branch = "+next(s))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns notes newest first using LIMIT/OFFSET pagination and a total count.
func (r *NotePostgres) List(ctx context.Context, f model.NoteFilter, pq repository.PageQuery) (*repository.PageResult[model.Note], error) {
	where, args := buildNoteWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := `SELECT ` + noteColumns + ` FROM notes` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Note]{
		Items: items,
		Total: total,
	}, nil
}

// Subjects returns the distinct subject tags, sorted alphabetically.
func (r *NotePostgres) Subjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT subject FROM notes ORDER BY subject`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// IncrementViews bumps the counter in a single statement so concurrent reveals never lose a count.
func (r *NotePostgres) IncrementViews(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE notes SET views = views + 1 WHERE id = $1 RETURNING views`
	var views int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

// Delete removes a note by ID. It does not return an error if the row does not exist.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notes WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
