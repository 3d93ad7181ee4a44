// ABOUTME: HTTP API handlers and JSON shapes for auth and task routes
// ABOUTME: Maps service errors onto status codes without leaking ownership info

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/store"
	"github.com/taskvault/taskvault/internal/task"
)

// CredentialsRequest is the JSON request body for POST /auth/register and /auth/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the JSON response for successful register/login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// TaskRequest is the JSON request body for POST and PUT task routes.
// Status is optional; unrecognized values are coerced, not rejected.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// TaskResponse is the JSON shape of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func taskResponse(t *store.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

// sendJSON writes a JSON response body.
func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// parseCredentials parses and validates a CredentialsRequest from the given reader.
func parseCredentials(r io.Reader) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if req.Username == "" {
		return nil, errors.New("username is required")
	}
	if req.Password == "" {
		return nil, errors.New("password is required")
	}
	return &req, nil
}

// handleRegister handles POST /auth/register requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.authSvc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			s.sendJSONError(w, http.StatusBadRequest, "username already taken")
			return
		}
		if errors.Is(err, auth.ErrInvalidInput) {
			s.sendJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to register user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, AuthResponse{Token: token, Username: req.Username})
}

// handleLogin handles POST /auth/login requests.
// Unknown username and wrong password produce the same response.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.sendJSONError(w, http.StatusBadRequest, "invalid username or password")
			return
		}
		s.logger.Error("failed to log in user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, AuthResponse{Token: token, Username: req.Username})
}

// handleCreateTask handles POST /api/tasks requests.
// The owner is always the authenticated caller; it is never taken from the body.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := s.taskSvc.Create(r.Context(), user.ID, task.Fields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		s.logger.Error("failed to create task", "error", err, "user_id", user.ID)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, taskResponse(t))
}

// handleListTasks handles GET /api/tasks requests.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	tasks, err := s.taskSvc.List(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", user.ID)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, taskResponse(t))
	}
	s.sendJSON(w, response)
}

// handleGetTask handles GET /api/tasks/{id} requests.
// A task owned by another user reads as 404, never 403.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())
	taskID := r.PathValue("id")

	t, err := s.taskSvc.Get(r.Context(), user.ID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendJSONError(w, http.StatusNotFound, "task not found")
			return
		}
		s.logger.Error("failed to get task", "error", err, "task_id", taskID)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, taskResponse(t))
}

// handleUpdateTask handles PUT /api/tasks/{id} requests.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())
	taskID := r.PathValue("id")

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := s.taskSvc.Update(r.Context(), user.ID, taskID, task.Fields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendJSONError(w, http.StatusNotFound, "task not found")
			return
		}
		s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, taskResponse(t))
}

// handleDeleteTask handles DELETE /api/tasks/{id} requests.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())
	taskID := r.PathValue("id")

	deleted, err := s.taskSvc.Delete(r.Context(), user.ID, taskID)
	if err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		s.sendJSONError(w, http.StatusNotFound, "task not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}
