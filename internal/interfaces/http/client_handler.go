package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/application/records"
)

// ClientHandler maneja el CRUD de clientes.
type ClientHandler struct {
	uc     *records.ClientUseCase
	errors *ErrorResponder
}

// NewClientHandler construye el handler de clientes.
func NewClientHandler(uc *records.ClientUseCase, errors *ErrorResponder) *ClientHandler {
	return &ClientHandler{uc: uc, errors: errors}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "name, email, phone"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/client [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetPrincipal(c), in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List clientes activos del alcance.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetPrincipal(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// ListArchived clientes archivados del alcance.
func (h *ClientHandler) ListArchived(c *fiber.Ctx) error {
	out, err := h.uc.ListArchived(GetPrincipal(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// GetByID un cliente por id.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// Update edita un cliente.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// Archive archiva un cliente (reversible).
func (h *ClientHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente archivado"})
}

// Restore recupera un cliente archivado.
func (h *ClientHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente restaurado"})
}

// Delete borrado físico.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}
