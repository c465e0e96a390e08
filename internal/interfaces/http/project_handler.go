package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/application/records"
)

// ProjectHandler maneja el CRUD de proyectos.
type ProjectHandler struct {
	uc     *records.ProjectUseCase
	errors *ErrorResponder
}

// NewProjectHandler construye el handler de proyectos.
func NewProjectHandler(uc *records.ProjectUseCase, errors *ErrorResponder) *ProjectHandler {
	return &ProjectHandler{uc: uc, errors: errors}
}

// Create godoc
// @Summary      Crear proyecto sobre un cliente
// @Tags         project
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, client_id"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/project [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetPrincipal(c), in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List proyectos activos del alcance.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetPrincipal(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// ListArchived proyectos archivados del alcance.
func (h *ProjectHandler) ListArchived(c *fiber.Ctx) error {
	out, err := h.uc.ListArchived(GetPrincipal(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// GetByID un proyecto por id.
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// Update edita un proyecto.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// Archive archiva un proyecto (reversible).
func (h *ProjectHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proyecto archivado"})
}

// Restore recupera un proyecto archivado.
func (h *ProjectHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proyecto restaurado"})
}

// Delete borrado físico.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proyecto eliminado"})
}
