// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"

	authapi "notekeeper/internal/auth/ports/api"
	"notekeeper/internal/gateway/adapters/http/auth"
	"notekeeper/internal/gateway/adapters/http/middleware"
	"notekeeper/internal/gateway/adapters/http/notes"
	"notekeeper/internal/gateway/adapters/http/response"
	"notekeeper/internal/gateway/metrics"
	"notekeeper/internal/gateway/ports/ratelimit"
	notesapi "notekeeper/internal/notes/ports/api"
)

// DefaultMetricsPath - путь экспорта метрик по умолчанию.
const DefaultMetricsPath = "/metrics"

// Dependencies содержит use case и инфраструктуру HTTP слоя.
// Limiter и Metrics необязательны.
type Dependencies struct {
	Auth        authapi.AuthUseCase
	Users       authapi.UserUseCase
	Notes       notesapi.NoteUseCase
	Limiter     ratelimit.Limiter
	Metrics     *metrics.Metrics
	MetricsPath string
}

// NewApp создает fiber приложение с JSON обработчиком ошибок.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = response.NewErrorHandler()
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth, deps.Users)
	notesHandler := notes.NewHandler(deps.Notes)
	requireAuth := middleware.NewAuthMiddleware(deps.Auth)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	if deps.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	app.Use(cors.New())

	app.Get("/", func(ctx fiber.Ctx) error {
		return ctx.Redirect().Status(fiber.StatusFound).To("/login")
	})

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		app.Get(path, adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Публичные маршруты. Ограничитель подключается через Use группы,
	// чтобы выполняться до обработчика.
	var limit fiber.Handler
	if deps.Limiter != nil {
		var observer middleware.RateLimitObserver
		if deps.Metrics != nil {
			observer = deps.Metrics
		}
		limit = middleware.NewRateLimitMiddleware(deps.Limiter, observer)
	}
	public := func(path string) fiber.Router {
		grp := app.Group(path)
		if limit != nil {
			grp.Use(limit)
		}
		return grp
	}
	public("/create-account").Post("", authHandler.CreateAccount)
	public("/login").Post("", authHandler.Login)

	// Защищенные маршруты.
	protected := func(path string) fiber.Router {
		grp := app.Group(path)
		grp.Use(requireAuth)
		return grp
	}
	protected("/get-user").Get("", authHandler.GetUser)
	protected("/logout").Post("", authHandler.Logout)

	protected("/add-note").Post("", notesHandler.AddNote)
	protected("/edit-note").Put("/:noteId", notesHandler.EditNote)
	protected("/get-all-notes").Get("", notesHandler.GetAllNotes)
	protected("/delete-note").Delete("/:noteId", notesHandler.DeleteNote)
	protected("/update-note-pinned").Put("/:noteId", notesHandler.UpdateNotePinned)
	protected("/search-notes").Get("", notesHandler.SearchNotes)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return response.Error(ctx, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}
