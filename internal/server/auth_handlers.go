package server

import (
	"net/http"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, token, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: user})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Tokens are stateless, so signing out is a client-side discard; the
// endpoint exists for API symmetry.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.FindByID(r.Context(), userID(r))
	if err != nil {
		fail(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLinkTelegram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID int64 `json:"chatId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.users.SetTelegramChat(r.Context(), userID(r), req.ChatID); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
