package handlers

import (
	"errors"
	"mime"

	"bu-ethesis/internal/adapters/http/middleware"
	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/core/services"
	"bu-ethesis/internal/pkg/flash"
	"bu-ethesis/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public catalog pages
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Index lists theses
// @Summary List and search theses
// @Description Case-insensitive text search over title, authors and keywords, with an optional exact year filter
// @Tags Catalog
// @Produce json
// @Param search query string false "Text to search for"
// @Param year query int false "Publication year"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router / [get]
func (h *CatalogHandler) Index(c *fiber.Ctx) error {
	input := services.SearchInput{
		Text: c.Query("search"),
		Year: c.Query("year"),
	}

	result, err := h.catalog.Search(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.UnprocessableEntity(c, domain.ValidationMessage(err), formState(flash.Danger, domain.ValidationMessage(err), fiber.Map{
				"search_query": input.Text,
				"year_filter":  input.Year,
			}))
		}
		return response.InternalServerError(c, "Failed to load theses")
	}

	return response.Success(c, "", fiber.Map{
		"theses":       models.ThesesToResponse(result.Theses),
		"years":        result.Years,
		"search_query": result.SearchQuery,
		"year_filter":  result.YearFilter,
		"logged_in":    middleware.CurrentSession(c) != nil,
		"flash":        flash.Pop(c),
	})
}

// View shows one thesis
// @Summary Thesis detail
// @Tags Catalog
// @Produce json
// @Param id path int true "Thesis ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /thesis/{id} [get]
func (h *CatalogHandler) View(c *fiber.Ctx) error {
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

	return response.Success(c, "", fiber.Map{
		"thesis": thesis.ToResponse(),
		"flash":  flash.Pop(c),
	})
}

// Download streams the thesis PDF
// @Summary Download thesis PDF
// @Description Streams the attachment with a filename derived from the title
// @Tags Catalog
// @Produce application/pdf
// @Param id path int true "Thesis ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /download/{id} [get]
func (h *CatalogHandler) Download(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.NotFound(c, "File not found")
	}

	download, err := h.catalog.Download(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "File not found")
		}
		return response.InternalServerError(c, "Failed to load file")
	}

	// RFC 6266 form; quotes the ASCII name and adds filename* for non-ASCII titles
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename}))
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendStream(download.Body, int(download.Size))
}
