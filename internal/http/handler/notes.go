package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studynotes/internal/http/middleware"
	"studynotes/internal/model"
	"studynotes/internal/service"
)

// ListNotes godoc
// @Summary List library notes
// @Tags notes
// @Produce json
// @Param q query string false "search in title and description"
// @Param subject query string false "subject"
// @Param semester query int false "semester 1-8"
// @Param branch query string false "branch"
// @Param limit query int false "page size" default(20)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.NoteListResult
// @Failure 400 {object} errorPayload
// @Router /api/notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		semester := 0
		if s := c.Query("semester"); s != "" {
			if semester, err = strconv.Atoi(s); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_SEMESTER", "invalid semester")
			}
		}

		f := model.NoteFilter{
			Search:   strings.TrimSpace(c.Query("q")),
			Subject:  strings.TrimSpace(c.Query("subject")),
			Semester: semester,
			Branch:   strings.TrimSpace(c.Query("branch")),
		}
		res, err := svc.List(c.UserContext(), f, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListSubjects godoc
// @Summary Distinct subjects for the library filter
// @Tags notes
// @Produce json
// @Success 200 {array} string
// @Router /api/notes/subjects [get]
func ListSubjects(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjects, err := svc.Subjects(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if subjects == nil {
			subjects = []string{}
		}
		return c.JSON(fiber.Map{"data": subjects})
	}
}

// UploadNote godoc
// @Summary Upload a note (multipart/form-data)
// @Tags notes
// @Accept mpfd
// @Produce json
// @Param file formData file true "note file"
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param subject formData string true "subject"
// @Param semester formData int true "semester 1-8"
// @Param branch formData string false "branch" default(CSE)
// @Success 201 {object} model.Note
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/notes [post]
func UploadNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		semester, err := strconv.Atoi(c.FormValue("semester"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SEMESTER", "invalid semester")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		note, err := svc.Upload(c.UserContext(), f, service.UploadInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Subject:     c.FormValue("subject"),
			Semester:    semester,
			Branch:      c.FormValue("branch"),
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			UploaderID:  middleware.IdentityFrom(c).UserID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// GetNote godoc
// @Summary Get note metadata
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} model.Note
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/notes/{id} [get]
func GetNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		note, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(note)
	}
}

// DeleteNote godoc
// @Summary Delete a note (uploader only)
// @Tags notes
// @Param id path string true "note id"
// @Success 204
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id, middleware.IdentityFrom(c).UserID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
