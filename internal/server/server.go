package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/auth"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

// Server exposes the JSON API over the store clients.
type Server struct {
	auth       *auth.Service
	todos      *service.TodoService
	categories *service.CategoryService
	users      *repository.UserRepository
	mw         auth.Middleware
}

func New(authSvc *auth.Service, todos *service.TodoService, categories *service.CategoryService, users *repository.UserRepository, secret []byte) *Server {
	return &Server{
		auth:       authSvc,
		todos:      todos,
		categories: categories,
		users:      users,
		mw:         auth.NewMiddleware(secret),
	}
}

// Handler builds the route table. Auth routes are public; everything
// else requires a bearer token.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /auth/signout", s.handleSignOut)

	api := http.NewServeMux()
	api.HandleFunc("GET /me", s.handleMe)
	api.HandleFunc("PUT /me/telegram", s.handleLinkTelegram)

	api.HandleFunc("GET /todos", s.handleListTodos)
	api.HandleFunc("POST /todos", s.handleCreateTodo)
	api.HandleFunc("PATCH /todos/{id}", s.handleUpdateTodo)
	api.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)
	api.HandleFunc("PUT /todos/{id}/status", s.handleSetStatus)
	api.HandleFunc("PUT /todos/{id}/priority", s.handleSetPriority)

	api.HandleFunc("GET /categories", s.handleListCategories)
	api.HandleFunc("POST /categories", s.handleCreateCategory)
	api.HandleFunc("GET /categories/{id}", s.handleGetCategory)
	api.HandleFunc("PATCH /categories/{id}", s.handleUpdateCategory)
	api.HandleFunc("DELETE /categories/{id}", s.handleDeleteCategory)

	mux.Handle("/", s.mw.Wrap(api))

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain errors onto HTTP statuses. Anything unrecognized is
// a store failure and stays opaque to the client.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// userID returns the authenticated user id; the middleware guarantees
// it is present on protected routes.
func userID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
