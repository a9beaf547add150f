package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"studynotes/internal/http/middleware"
	"studynotes/internal/model"
	"studynotes/internal/service"
	"studynotes/internal/viewer"
)

// ViewerOptions are the page-level settings of the restricted viewer.
type ViewerOptions struct {
	Brand       string
	Price       string
	PurchaseURL string
}

// Viewer serves the restricted viewer pages and the gated content stream.
// Every handler checks entitlement itself; none relies on an earlier page having done so.
type Viewer struct {
	notes service.NoteService
	ent   service.EntitlementService
	opts  ViewerOptions
	log   *zap.Logger
}

// NewViewer constructs the viewer handlers.
func NewViewer(notes service.NoteService, ent service.EntitlementService, opts ViewerOptions, log *zap.Logger) *Viewer {
	return &Viewer{notes: notes, ent: ent, opts: opts, log: log}
}

func viewerLinks(id string) viewer.Links {
	base := "/library/" + id
	return viewer.Links{Content: base + "/content", Reveal: base + "/reveal"}
}

// lookup validates the id and loads the note, writing the error response itself on failure.
func (v *Viewer) lookup(c *fiber.Ctx) (*model.Note, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	note, err := v.notes.Get(c.UserContext(), id)
	if err != nil {
		return nil, false, writeServiceError(c, err)
	}
	return note, true, nil
}

func (v *Viewer) prompt(c *fiber.Ctx, status int, note *model.Note) error {
	var buf bytes.Buffer
	if err := viewer.RenderPrompt(&buf, viewer.Prompt{
		Title:       note.Title,
		Price:       v.opts.Price,
		PurchaseURL: v.opts.PurchaseURL,
	}); err != nil {
		v.log.Error("render_prompt_failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func (v *Viewer) page(c *fiber.Ctx, s *viewer.Session) error {
	var buf bytes.Buffer
	if err := viewer.Render(&buf, s); err != nil {
		v.log.Error("render_viewer_failed", zap.String("note_id", s.NoteID), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// Show renders the viewer in its Locked state, or the purchase prompt for callers without a grant.
func (v *Viewer) Show() fiber.Handler {
	return func(c *fiber.Ctx) error {
		note, ok, err := v.lookup(c)
		if !ok {
			return err
		}
		id := middleware.IdentityFrom(c)
		if !v.ent.IsEntitled(c.UserContext(), id.UserID) {
			return v.prompt(c, fiber.StatusOK, note)
		}
		return v.page(c, viewer.NewSession(*note, id, v.opts.Brand, viewerLinks(note.ID)))
	}
}

// Reveal handles the "View Notes" action: it re-checks entitlement, reveals the content and counts
// the view. A failed count is logged and the page is still shown. A capture flag raised on the
// Locked page is carried into the Revealed page.
func (v *Viewer) Reveal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		note, ok, err := v.lookup(c)
		if !ok {
			return err
		}
		id := middleware.IdentityFrom(c)
		if !v.ent.IsEntitled(c.UserContext(), id.UserID) {
			return v.prompt(c, fiber.StatusForbidden, note)
		}

		s := viewer.NewSession(*note, id, v.opts.Brand, viewerLinks(note.ID))
		// The form post reloads the page; the banner must not reset with it.
		s.CarryCapture(c.FormValue(viewer.CaptureField))
		s.Reveal()

		views, err := v.notes.RecordView(c.UserContext(), note.ID)
		if err != nil {
			v.log.Warn("record_view_failed", zap.String("note_id", note.ID), zap.Error(err))
		} else {
			s.Views = views
		}
		return v.page(c, s)
	}
}

// Content streams the note's bytes for the embedded viewer surface.
func (v *Viewer) Content() fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID := c.Params("id")
		if _, err := uuid.Parse(noteID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		id := middleware.IdentityFrom(c)
		if !v.ent.IsEntitled(c.UserContext(), id.UserID) {
			return writeError(c, fiber.StatusForbidden, "ACCESS_REQUIRED", "lifetime access required")
		}

		content, err := v.notes.Open(c.UserContext(), noteID)
		if err != nil {
			if !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrUnsupportedFormat) {
				v.log.Error("open_content_failed", zap.String("note_id", noteID), zap.Error(err))
			}
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, content.ContentType)
		c.Set(fiber.HeaderContentDisposition, "inline")
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderXFrameOptions, "SAMEORIGIN")
		size := -1
		if content.Size > 0 {
			size = int(content.Size)
		}
		return c.SendStream(content.Body, size)
	}
}
