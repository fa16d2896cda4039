// Package server implements the planner backend: the two flat item
// collections exposed as independent REST resources. The server stores and
// returns wire records verbatim; validation of their content is the
// client's concern.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/matrixxonek/RPG-Planner/internal/domain"
	"github.com/sirupsen/logrus"
)

// Server routes collection requests to the two repositories.
type Server struct {
	events *EventRepo
	tasks  *TaskRepo
	log    *logrus.Entry
}

// New creates a Server over the two collection repositories.
func New(events *EventRepo, tasks *TaskRepo, log *logrus.Entry) *Server {
	return &Server{events: events, tasks: tasks, log: log}
}

// Handler returns the HTTP routes for both collections.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/events", s.listEvents)
	mux.HandleFunc("POST /api/events", s.createEvent)
	mux.HandleFunc("PUT /api/events/{id}", s.replaceEvent)
	mux.HandleFunc("DELETE /api/events/{id}", s.deleteEvent)

	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.replaceTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)

	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	recs, err := s.events.List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("listing events")
		s.writeError(w, http.StatusInternalServerError, "listing events failed")
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var rec domain.EventRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	created, err := s.events.Create(r.Context(), uuid.New().String(), rec)
	if err != nil {
		s.log.WithError(err).Error("creating event")
		s.writeError(w, http.StatusInternalServerError, "creating event failed")
		return
	}

	s.log.WithFields(logrus.Fields{"collection": "events", "id": created.ID}).Info("record created")
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) replaceEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var rec domain.EventRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	updated, err := s.events.Replace(r.Context(), id, rec)
	if errors.Is(err, ErrNoRecord) {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("replacing event")
		s.writeError(w, http.StatusInternalServerError, "replacing event failed")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.events.Delete(r.Context(), id)
	if errors.Is(err, ErrNoRecord) {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("deleting event")
		s.writeError(w, http.StatusInternalServerError, "deleting event failed")
		return
	}

	s.log.WithFields(logrus.Fields{"collection": "events", "id": id}).Info("record deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	recs, err := s.tasks.List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("listing tasks")
		s.writeError(w, http.StatusInternalServerError, "listing tasks failed")
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var rec domain.TaskRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}

	created, err := s.tasks.Create(r.Context(), uuid.New().String(), rec)
	if err != nil {
		s.log.WithError(err).Error("creating task")
		s.writeError(w, http.StatusInternalServerError, "creating task failed")
		return
	}

	s.log.WithFields(logrus.Fields{"collection": "tasks", "id": created.ID}).Info("record created")
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) replaceTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var rec domain.TaskRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}

	updated, err := s.tasks.Replace(r.Context(), id, rec)
	if errors.Is(err, ErrNoRecord) {
		s.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("replacing task")
		s.writeError(w, http.StatusInternalServerError, "replacing task failed")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.tasks.Delete(r.Context(), id)
	if errors.Is(err, ErrNoRecord) {
		s.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("deleting task")
		s.writeError(w, http.StatusInternalServerError, "deleting task failed")
		return
	}

	s.log.WithFields(logrus.Fields{"collection": "tasks", "id": id}).Info("record deleted")
	w.WriteHeader(http.StatusNoContent)
}
