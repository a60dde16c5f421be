package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/server/models"
	"github.com/dmitrijs2005/trackit/internal/server/services"
)

// JobService is the slice of the job service the job handlers need.
type JobService interface {
	List(ctx context.Context, userID int64) ([]models.Job, error)
	Create(ctx context.Context, userID int64, draft services.JobDraft) (*models.Job, error)
	Get(ctx context.Context, userID, id int64) (*models.Job, error)
	Update(ctx context.Context, userID, id int64, patch services.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, userID, id int64) error
	UploadResume(ctx context.Context, userID, jobID int64, file *services.UploadedFile) (*models.Job, error)
	GetResume(ctx context.Context, userID, jobID, resumeID int64) (*models.ResumeVersion, []byte, error)
	DeleteResume(ctx context.Context, userID, jobID, resumeID int64) error
}

type JobsHandler struct {
	jobs JobService
}

func NewJobsHandler(jobs JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

// respondServiceError maps service sentinels onto the REST error contract.
func respondServiceError(c *fiber.Ctx, err error, notFoundDetail string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return respondError(c, http.StatusNotFound, notFoundDetail)
	case errors.Is(err, common.ErrorValidation):
		return respondError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func readUpload(fh *multipart.FileHeader) (*services.UploadedFile, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.UploadedFile{Name: fh.Filename, Data: data}, nil
}

// List returns every job of the authenticated user.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	list, err := h.jobs.List(c.Context(), userIDFrom(c))
	if err != nil {
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	payload := make([]JobPayload, 0, len(list))
	for i := range list {
		payload = append(payload, toJobPayload(&list[i]))
	}
	return respondJSON(c, http.StatusOK, payload)
}

// Create accepts the multipart creation form with an optional resume file.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	draft := services.JobDraft{
		Company:     c.FormValue("company"),
		Position:    c.FormValue("position"),
		Notes:       c.FormValue("notes"),
		Status:      c.FormValue("status"),
		AppliedDate: c.FormValue("applied_date"),
	}

	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		upload, err := readUpload(fh)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "could not read uploaded file")
		}
		draft.Resume = upload
	}

	job, err := h.jobs.Create(c.Context(), userIDFrom(c), draft)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return respondError(c, http.StatusUnprocessableEntity, err.Error())
		}
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	return respondJSON(c, http.StatusOK, toJobPayload(job))
}

// Get returns one job.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}

	job, err := h.jobs.Get(c.Context(), userIDFrom(c), id)
	if err != nil {
		return respondServiceError(c, err, "Job not found")
	}

	return respondJSON(c, http.StatusOK, toJobPayload(job))
}

type updateRequest struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	AppliedDate *string `json:"applied_date"`
}

// Update applies a partial JSON change to one job.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid JSON payload")
	}

	job, err := h.jobs.Update(c.Context(), userIDFrom(c), id, services.JobPatch{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		Notes:       req.Notes,
		AppliedDate: req.AppliedDate,
	})
	if err != nil {
		return respondServiceError(c, err, "Job not found")
	}

	return respondJSON(c, http.StatusOK, toJobPayload(job))
}

// Delete removes a job, its resume versions, and the stored files.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}

	if err := h.jobs.Delete(c.Context(), userIDFrom(c), id); err != nil {
		return respondServiceError(c, err, "Job not found")
	}

	return c.SendStatus(http.StatusNoContent)
}

// UploadResume stores a new version for a job and returns the refreshed job.
func (h *JobsHandler) UploadResume(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "resume file is required")
	}
	upload, err := readUpload(fh)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "could not read uploaded file")
	}

	job, err := h.jobs.UploadResume(c.Context(), userIDFrom(c), id, upload)
	if err != nil {
		return respondServiceError(c, err, "Job not found")
	}

	return respondJSON(c, http.StatusOK, toJobPayload(job))
}

func (h *JobsHandler) sendResume(c *fiber.Ctx, disposition string) error {
	jobID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}
	resumeID, err := paramID(c, "versionId")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid resume id")
	}

	rv, data, err := h.jobs.GetResume(c.Context(), userIDFrom(c), jobID, resumeID)
	if err != nil {
		return respondServiceError(c, err, "Resume version not found")
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename=%q`, disposition, rv.Filename))
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Status(http.StatusOK).Send(data)
}

// ViewResume streams a version for inline display.
func (h *JobsHandler) ViewResume(c *fiber.Ctx) error {
	return h.sendResume(c, "inline")
}

// DownloadResume streams a version as an attachment.
func (h *JobsHandler) DownloadResume(c *fiber.Ctx) error {
	return h.sendResume(c, "attachment")
}

// DeleteResume removes one version: the blob and then the row.
func (h *JobsHandler) DeleteResume(c *fiber.Ctx) error {
	jobID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid job id")
	}
	resumeID, err := paramID(c, "versionId")
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid resume id")
	}

	if err := h.jobs.DeleteResume(c.Context(), userIDFrom(c), jobID, resumeID); err != nil {
		return respondServiceError(c, err, "Resume version not found")
	}

	return c.SendStatus(http.StatusNoContent)
}
