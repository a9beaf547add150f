package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"studynotes/internal/model"
	"studynotes/internal/repository"
	"studynotes/internal/storage"
	"studynotes/internal/viewer"
)

const (
	// MaxUploadBytes caps a single note file.
	MaxUploadBytes = 10 << 20

	defaultListLimit = 20
	maxListLimit     = 100
)

// NoteListResult is the service-level DTO for a page of library notes.
type NoteListResult struct {
	Items []model.Note `json:"data"`
	Total int          `json:"total"`
}

// UploadInput carries the metadata submitted with a note file.
type UploadInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Subject     string `validate:"required,max=100"`
	Semester    int    `validate:"min=1,max=8"`
	Branch      string `validate:"omitempty,max=20"`
	Filename    string `validate:"required"`
	ContentType string
	Size        int64  `validate:"min=0"`
	UploaderID  string `validate:"required"`
}

// Content is an open stream of a note's file. The caller must close Body.
type Content struct {
	Note        *model.Note
	Mode        viewer.Mode
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// NoteService defines the library use cases.
type NoteService interface {
	// Upload stores the file, then its metadata; the stored object is removed if the metadata write fails.
	Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Note, error)

	// List returns notes newest first matching f.
	List(ctx context.Context, f model.NoteFilter, limit, offset int) (*NoteListResult, error)

	// Subjects returns the distinct subjects for the filter UI.
	Subjects(ctx context.Context) ([]string, error)

	// Get returns a single note by its ID.
	Get(ctx context.Context, id string) (*model.Note, error)

	// RecordView counts one reveal of the note and returns the new count.
	RecordView(ctx context.Context, id string) (int64, error)

	// Open streams the file of a note whose format the viewer supports.
	Open(ctx context.Context, id string) (*Content, error)

	// Delete removes a note owned by requesterID from storage and the repository.
	Delete(ctx context.Context, id, requesterID string) error
}

type noteService struct {
	store    storage.Storage
	repo     repository.NoteRepository
	validate *validator.Validate
	log      *zap.Logger
	metrics  *Metrics
}

// NewNoteService constructs a NoteService.
func NewNoteService(store storage.Storage, repo repository.NoteRepository, log *zap.Logger, m *Metrics) NoteService {
	return &noteService{
		store:    store,
		repo:     repo,
		validate: validator.New(),
		log:      log,
		metrics:  m,
	}
}

func (s *noteService) Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Note, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Branch = strings.TrimSpace(in.Branch)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if in.Size > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if in.Branch == "" {
		in.Branch = model.DefaultBranch
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	key := "notes/" + uuid.NewString() + ext

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		} else {
			contentType = "application/octet-stream"
		}
	}

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
			"uploader-id":       in.UploaderID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	note := &model.Note{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Subject:     in.Subject,
		Semester:    in.Semester,
		Branch:      in.Branch,
		FileRef:     objInfo.Key,
		UploaderID:  in.UploaderID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, note)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.log.Info("note_uploaded",
		zap.String("note_id", stored.ID),
		zap.String("uploader_id", in.UploaderID),
		zap.Int64("size", objInfo.Size),
	)
	return stored, nil
}

func (s *noteService) List(ctx context.Context, f model.NoteFilter, limit, offset int) (*NoteListResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	if f.Semester < 0 || f.Semester > 8 {
		return nil, fmt.Errorf("%w: semester must be between 1 and 8", ErrValidation)
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &NoteListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *noteService) Subjects(ctx context.Context) ([]string, error) {
	return s.repo.Subjects(ctx)
}

func (s *noteService) Get(ctx context.Context, id string) (*model.Note, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *noteService) RecordView(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "notes.record_view", trace.WithAttributes(attribute.String("note.id", id)))
	defer span.End()

	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}
	s.metrics.viewRecorded()
	return views, nil
}

func (s *noteService) Open(ctx context.Context, id string) (*Content, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mode := viewer.Classify(n.FileRef)
	if !mode.Supported() {
		return nil, ErrUnsupportedFormat
	}

	body, info, err := s.store.Get(ctx, n.FileRef)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.Warn("note_object_missing", zap.String("note_id", n.ID))
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open storage object: %w", err)
	}

	contentType := info.ContentType
	if byExt := mime.TypeByExtension("." + viewer.Extension(n.FileRef)); byExt != "" {
		contentType = byExt
	}
	return &Content{
		Note:        n,
		Mode:        mode,
		Body:        body,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

func (s *noteService) Delete(ctx context.Context, id, requesterID string) error {
	n, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if requesterID == "" || n.UploaderID != requesterID {
		return ErrForbidden
	}
	// Storage goes first; if it fails the row still points at the object.
	if err := s.store.Delete(ctx, n.FileRef); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
