package handlers

import (
	"errors"

	"bu-ethesis/internal/adapters/http/middleware"
	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/core/services"
	"bu-ethesis/internal/pkg/flash"
	"bu-ethesis/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// pdfField is the multipart field carrying the attachment
const pdfField = "pdf_file"

// CurationHandler handles the authenticated dashboard and thesis forms
type CurationHandler struct {
	catalog  *services.CatalogService
	curation *services.CurationService
	upload   config.UploadConfig
}

// NewCurationHandler creates a new curation handler
func NewCurationHandler(catalog *services.CatalogService, curation *services.CurationService, upload config.UploadConfig) *CurationHandler {
	return &CurationHandler{
		catalog:  catalog,
		curation: curation,
		upload:   upload,
	}
}

// Dashboard lists every thesis for management
// @Summary Dashboard
// @Tags Curation
// @Produce json
// @Success 200 {object} response.Response
// @Success 303
// @Router /dashboard [get]
func (h *CurationHandler) Dashboard(c *fiber.Ctx) error {
	theses, err := h.catalog.ListAll(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to load theses")
	}

	return response.Success(c, "", fiber.Map{
		"theses":   models.ThesesToResponse(theses),
		"username": middleware.CurrentSession(c).Username,
		"flash":    flash.Pop(c),
	})
}

// AddForm returns the empty form state
// @Summary Add thesis form
// @Tags Curation
// @Produce json
// @Success 200 {object} response.Response
// @Router /add [get]
func (h *CurationHandler) AddForm(c *fiber.Ctx) error {
	return response.Success(c, "", h.formLimits(fiber.Map{
		"flash": flash.Pop(c),
	}))
}

// Add creates a thesis
// @Summary Add thesis
// @Description JSON bodies take the same fields; year may be a number or a string
// @Tags Curation
// @Accept multipart/form-data,json
// @Produce json
// @Param title formData string true "Title"
// @Param authors formData string true "Authors"
// @Param year formData int true "Year"
// @Param adviser formData string true "Adviser"
// @Param abstract formData string true "Abstract"
// @Param keywords formData string true "Keywords"
// @Param pdf_file formData file false "PDF attachment"
// @Success 303
// @Failure 422 {object} response.Response
// @Router /add [post]
func (h *CurationHandler) Add(c *fiber.Ctx) error {
	var input services.ThesisInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	att, closeFile, err := attachmentFromForm(c)
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer closeFile()

	if _, err := h.curation.Create(c.UserContext(), middleware.CurrentSession(c), input, att); err != nil {
		return h.submitError(c, err, input)
	}

	return redirectWithFlash(c, "/dashboard", flash.Success, "Thesis added successfully!")
}

// EditForm returns the form state for an existing thesis
// @Summary Edit thesis form
// @Tags Curation
// @Produce json
// @Param id path int true "Thesis ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /edit/{id} [get]
func (h *CurationHandler) EditForm(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.NotFound(c, "Thesis not found")
	}

	thesis, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Thesis not found")
		}
		return response.InternalServerError(c, "Failed to load thesis")
	}

	return response.Success(c, "", h.formLimits(fiber.Map{
		"thesis": thesis.ToResponse(),
		"flash":  flash.Pop(c),
	}))
}

// Edit updates a thesis
// @Summary Edit thesis
// @Description A new PDF replaces the previous one; without a file the attachment is kept
// @Tags Curation
// @Accept multipart/form-data,json
// @Produce json
// @Param id path int true "Thesis ID"
// @Param title formData string true "Title"
// @Param authors formData string true "Authors"
// @Param year formData int true "Year"
// @Param adviser formData string true "Adviser"
// @Param abstract formData string true "Abstract"
// @Param keywords formData string true "Keywords"
// @Param pdf_file formData file false "PDF attachment"
// @Success 303
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /edit/{id} [post]
func (h *CurationHandler) Edit(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.NotFound(c, "Thesis not found")
	}

	var input services.ThesisInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	att, closeFile, err := attachmentFromForm(c)
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer closeFile()

	if _, err := h.curation.Update(c.UserContext(), middleware.CurrentSession(c), id, input, att); err != nil {
		return h.submitError(c, err, input)
	}

	return redirectWithFlash(c, "/dashboard", flash.Success, "Thesis updated successfully!")
}

// Delete removes a thesis and its attachment
// @Summary Delete thesis
// @Tags Curation
// @Param id path int true "Thesis ID"
// @Success 303
// @Failure 404 {object} response.Response
// @Router /delete/{id} [get]
func (h *CurationHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.NotFound(c, "Thesis not found")
	}

	if err := h.curation.Delete(c.UserContext(), middleware.CurrentSession(c), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Thesis not found")
		case errors.Is(err, domain.ErrUnauthorized):
			return redirectWithFlash(c, "/login", flash.Warning, "Please log in to access this page.")
		default:
			return response.InternalServerError(c, "Failed to delete thesis")
		}
	}

	return redirectWithFlash(c, "/dashboard", flash.Success, "Thesis deleted successfully!")
}

func (h *CurationHandler) submitError(c *fiber.Ctx, err error, input services.ThesisInput) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Thesis not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return redirectWithFlash(c, "/login", flash.Warning, "Please log in to access this page.")
	case errors.Is(err, domain.ErrValidation):
		msg := domain.ValidationMessage(err)
		return response.UnprocessableEntity(c, msg, formState(flash.Danger, msg, input))
	default:
		return response.InternalServerError(c, "Failed to save thesis")
	}
}

func (h *CurationHandler) formLimits(data fiber.Map) fiber.Map {
	data["max_upload_bytes"] = h.upload.MaxBytes
	data["allowed_extensions"] = h.upload.AllowedExtensions
	return data
}

// attachmentFromForm opens the uploaded PDF, if the form carries one.
// The returned close func is always safe to call.
func attachmentFromForm(c *fiber.Ctx) (*services.AttachmentInput, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(pdfField)
	if err != nil || fh.Filename == "" {
		// no multipart body or no file part
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &services.AttachmentInput{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	}, func() { _ = f.Close() }, nil
}
