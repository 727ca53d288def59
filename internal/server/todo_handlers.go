package server

import (
	"net/http"
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/filter"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

const dueDateLayout = "2006-01-02"

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	CategoryID  string `json:"categoryId"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	CategoryID  *string `json:"categoryId"`
}

// handleListTodos serves the list in canonical order. Equality filters
// run in the store; free-text search runs over the fetched list, and
// view=board returns the status partition instead of a flat array.
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.TodoFilter{
		Status:     model.Status(normalizeCriterion(q.Get("status"))),
		Priority:   model.Priority(normalizeCriterion(q.Get("priority"))),
		CategoryID: normalizeCriterion(q.Get("categoryId")),
	}

	todos, err := s.todos.List(r.Context(), userID(r), f)
	if err != nil {
		fail(w, err)
		return
	}

	if search := q.Get("q"); search != "" {
		todos = filter.Apply(todos, filter.Spec{Search: search})
	}

	if q.Get("view") == "board" {
		writeJSON(w, http.StatusOK, filter.PartitionByStatus(todos))
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	input := service.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		CategoryID:  req.CategoryID,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dueDate, expected YYYY-MM-DD")
			return
		}
		input.DueDate = &due
	}

	todo, err := s.todos.Create(r.Context(), userID(r), input)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	update := service.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Status != nil {
		status := model.Status(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		update.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDueDate = true
		} else {
			due, err := time.Parse(dueDateLayout, *req.DueDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid dueDate, expected YYYY-MM-DD")
				return
			}
			update.DueDate = &due
		}
	}

	if err := s.todos.Update(r.Context(), userID(r), r.PathValue("id"), update); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.todos.SetStatus(r.Context(), userID(r), r.PathValue("id"), model.Status(req.Status)); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetPriority(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Priority string `json:"priority"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.todos.SetPriority(r.Context(), userID(r), r.PathValue("id"), model.Priority(req.Priority)); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// normalizeCriterion treats the UI's "all" sentinel as no filter.
func normalizeCriterion(v string) string {
	if v == filter.All {
		return ""
	}
	return v
}
