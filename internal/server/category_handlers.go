package server

import (
	"net/http"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context(), userID(r))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	category, err := s.categories.Create(r.Context(), userID(r), req.Name, req.Color)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.categories.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		fail(w, err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	update := service.CategoryUpdate{Name: req.Name, Color: req.Color}
	if err := s.categories.Update(r.Context(), userID(r), r.PathValue("id"), update); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
