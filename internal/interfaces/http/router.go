package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/auth"
	"github.com/dverdu/albaranes-api/internal/application/notes"
	"github.com/dverdu/albaranes-api/internal/application/records"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/infrastructure/slack"
	"github.com/dverdu/albaranes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *records.ClientUseCase
	ProjectUC *records.ProjectUseCase
	NoteUC    *notes.NoteUseCase
	UserRepo  repository.UserRepository
	Store     ImageStore
	JWTSecret string
	Log       *logger.Logger
	Slack     *slack.Notifier
}

// Router registra las rutas de la API. Todo /api va protegido por JWT salvo
// register, login y la recuperación de contraseña.
func Router(app *fiber.App, deps RouterDeps) {
	errorsResp := NewErrorResponder(deps.Log, deps.Slack)
	authRequired := AuthMiddleware(deps.JWTSecret, deps.UserRepo)

	api := app.Group("/api")

	// Usuario
	userHandler := NewUserHandler(deps.AuthUC, deps.Store, errorsResp)
	user := api.Group("/user")
	user.Post("/register", userHandler.Register)
	user.Post("/login", userHandler.Login)
	user.Post("/password/recover", userHandler.RecoverPassword)
	user.Put("/password/reset", userHandler.ResetPassword)
	user.Put("/validate", authRequired, userHandler.ValidateEmail)
	user.Get("/profile", authRequired, userHandler.GetProfile)
	user.Put("/profile", authRequired, userHandler.UpdateProfile)
	user.Delete("/profile", authRequired, userHandler.DeleteProfile)
	user.Patch("/company", authRequired, userHandler.UpsertCompany)
	user.Patch("/logo", authRequired, userHandler.SetLogo)
	user.Post("/invite", authRequired, userHandler.Invite)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientUC, errorsResp)
	client := api.Group("/client", authRequired)
	client.Post("/", clientHandler.Create)
	client.Get("/", clientHandler.List)
	client.Get("/archived", clientHandler.ListArchived)
	client.Get("/:id", clientHandler.GetByID)
	client.Put("/:id", clientHandler.Update)
	client.Patch("/:id/archive", clientHandler.Archive)
	client.Patch("/:id/restore", clientHandler.Restore)
	client.Delete("/:id", clientHandler.Delete)

	// Proyectos
	projectHandler := NewProjectHandler(deps.ProjectUC, errorsResp)
	project := api.Group("/project", authRequired)
	project.Post("/", projectHandler.Create)
	project.Get("/", projectHandler.List)
	project.Get("/archived", projectHandler.ListArchived)
	project.Get("/:id", projectHandler.GetByID)
	project.Put("/:id", projectHandler.Update)
	project.Patch("/:id/archive", projectHandler.Archive)
	project.Patch("/:id/restore", projectHandler.Restore)
	project.Delete("/:id", projectHandler.Delete)

	// Albaranes
	noteHandler := NewDeliveryNoteHandler(deps.NoteUC, deps.Store, errorsResp)
	note := api.Group("/deliverynote", authRequired)
	note.Post("/", noteHandler.Create)
	note.Get("/", noteHandler.List)
	note.Get("/pdf/:id", noteHandler.DownloadPDF)
	note.Get("/:id", noteHandler.GetByID)
	note.Post("/:id/sign", noteHandler.Sign)
	note.Delete("/:id", noteHandler.Delete)
}
