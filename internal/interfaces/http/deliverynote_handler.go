package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/application/notes"
	"github.com/dverdu/albaranes-api/internal/domain"
)

// DeliveryNoteHandler maneja el ciclo de vida del albarán.
type DeliveryNoteHandler struct {
	uc     *notes.NoteUseCase
	store  ImageStore
	errors *ErrorResponder
}

// NewDeliveryNoteHandler construye el handler de albaranes.
func NewDeliveryNoteHandler(uc *notes.NoteUseCase, store ImageStore, errors *ErrorResponder) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{uc: uc, store: store, errors: errors}
}

// Create godoc
// @Summary      Crear albarán en borrador
// @Tags         deliverynote
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "project_id, items"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliverynote [post]
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetPrincipal(c), in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List albaranes del alcance.
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetPrincipal(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// GetByID un albarán con sus líneas.
func (h *DeliveryNoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar un albarán (multipart 'signature')
// @Tags         deliverynote
// @Accept       multipart/form-data
// @Produce      json
// @Param        signature  formData  file  true  "imagen de la firma"
// @Success      200  {object}  dto.NoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliverynote/{id}/sign [post]
func (h *DeliveryNoteHandler) Sign(c *fiber.Ctx) error {
	if _, err := c.FormFile("signature"); err != nil {
		return h.errors.Respond(c, domain.ErrSignatureRequired)
	}
	data, ext, err := readImageUpload(c, "signature")
	if err != nil {
		return h.errors.Respond(c, err)
	}
	imageURL, err := h.store.SaveSignature(ext, data)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	out, err := h.uc.Sign(GetPrincipal(c), c.Params("id"), imageURL)
	if err != nil {
		// La firma no se aplicó: la imagen recién guardada no debe quedar huérfana
		_ = h.store.Remove(imageURL)
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar el PDF del albarán
// @Tags         deliverynote
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliverynote/pdf/{id} [get]
func (h *DeliveryNoteHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.DownloadPDF(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Delete borra un albarán mientras siga en borrador.
func (h *DeliveryNoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetPrincipal(c), c.Params("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "albarán eliminado"})
}
