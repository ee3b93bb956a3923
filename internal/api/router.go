package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/smarttask/internal/api/middleware"
	"github.com/phrazzld/smarttask/internal/api/shared"
	"github.com/phrazzld/smarttask/internal/service"
	"github.com/phrazzld/smarttask/internal/service/auth"
)

// RouterDeps are the services the HTTP routes delegate to.
type RouterDeps struct {
	Users      service.UserService
	Tasks      service.TaskService
	JWTService auth.JWTService
	Logger     *slog.Logger
}

// NewRouter builds the companion server's route tree.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))

	authHandler := NewAuthHandler(deps.Users, deps.JWTService)
	taskHandler := NewTaskHandler(deps.Tasks)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService)

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, shared.StatusResponse{Status: "ok"})
	})

	return r
}
