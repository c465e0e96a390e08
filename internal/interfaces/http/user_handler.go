package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/auth"
	"github.com/dverdu/albaranes-api/internal/application/dto"
)

// ImageStore almacenamiento de imágenes subidas por los usuarios.
type ImageStore interface {
	SaveSignature(ext string, data []byte) (string, error)
	SaveLogo(ext string, data []byte) (string, error)
	// Remove borra un artefacto guardado que al final no se llegó a usar.
	Remove(url string) error
}

// UserHandler maneja cuenta, sesión, empresa e invitaciones.
type UserHandler struct {
	uc     *auth.AuthUseCase
	store  ImageStore
	errors *ErrorResponder
}

// NewUserHandler construye el handler de usuario.
func NewUserHandler(uc *auth.AuthUseCase, store ImageStore, errors *ErrorResponder) *UserHandler {
	return &UserHandler{uc: uc, store: store, errors: errors}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ValidateEmail godoc
// @Summary      Verificar email con el código recibido
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateEmailRequest  true  "code"
// @Success      200   {object}  dto.ValidateEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/user/validate [put]
func (h *UserHandler) ValidateEmail(c *fiber.Ctx) error {
	var in dto.ValidateEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p := GetPrincipal(c)
	out, attemptsLeft, err := h.uc.ValidateEmail(p.UserID, in.Code)
	if err != nil {
		return h.errors.RespondWithAttempts(c, attemptsLeft, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// GetProfile devuelve el perfil del usuario autenticado.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(GetPrincipal(c).UserID)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile edita los datos personales.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProfile(GetPrincipal(c).UserID, in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// DeleteProfile elimina la cuenta. Soft por defecto; ?soft=false borra la fila.
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	if err := h.uc.DeleteAccount(GetPrincipal(c).UserID, soft); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}

// UpsertCompany crea o actualiza la empresa del usuario.
func (h *UserHandler) UpsertCompany(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertCompany(GetPrincipal(c).UserID, in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// SetLogo sube el logo (multipart 'logo') y lo asocia al perfil.
func (h *UserHandler) SetLogo(c *fiber.Ctx) error {
	data, ext, err := readImageUpload(c, "logo")
	if err != nil {
		return h.errors.Respond(c, err)
	}
	url, err := h.store.SaveLogo(ext, data)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	out, err := h.uc.SetLogo(GetPrincipal(c).UserID, url)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}

// RecoverPassword godoc
// @Summary      Solicitar código de recuperación de contraseña
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecoverPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/user/password/recover [post]
func (h *UserHandler) RecoverPassword(c *fiber.Ctx) error {
	var in dto.RecoverPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RecoverPassword(in.Email); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "código de recuperación enviado"})
}

// ResetPassword consume el código de recuperación y fija la nueva contraseña.
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	attemptsLeft, err := h.uc.ResetPassword(in)
	if err != nil {
		return h.errors.RespondWithAttempts(c, attemptsLeft, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}

// Invite incorpora a otro usuario a la empresa del emisor.
func (h *UserHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Invite(GetPrincipal(c).UserID, in)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(out)
}
