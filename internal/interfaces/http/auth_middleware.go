package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
	"github.com/dverdu/albaranes-api/pkg/jwt"
)

// Local key para el Principal en Fiber.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token JWT, carga el usuario y deja en
// c.Locals el Principal con su empresa resuelta. La empresa se resuelve aquí
// una única vez por petición; los handlers ya no tocan la tabla de usuarios.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		// El repo excluye cuentas borradas: un token de una cuenta eliminada
		// deja de valer aunque no haya caducado.
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "cuenta inexistente"})
		}
		c.Locals(LocalPrincipal, scope.Principal{UserID: user.ID, CompanyID: user.CompanyID})
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) scope.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return scope.Principal{}
	}
	p, _ := v.(scope.Principal)
	return p
}
