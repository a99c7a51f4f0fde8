package server

import (
	"net/http"

	"github.com/jonathan/jobboard/internal/applications"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/internal/validation"
)

// ApplyRequest is the body of POST /vacancies/{id}/applications.
type ApplyRequest struct {
	UserID       string `json:"user_id"`
	CoverLetter  string `json:"cover_letter"`
	ContactPhone string `json:"contact_phone"`
}

// StatusRequest is the body of PATCH /applications/{id}.
type StatusRequest struct {
	Status types.ApplicationStatus `json:"status" validate:"required,oneof=pending viewed approved rejected"`
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := decodeJSON(r, "server.handleSubmitApplication", &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	app, err := s.applications.Submit(r.Context(), applications.SubmitRequest{
		UserID:       req.UserID,
		VacancyID:    r.PathValue("id"),
		CoverLetter:  req.CoverLetter,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	apps, err := s.applications.List(r.Context(), applications.ListOptions{
		UserID:   q.Get("user_id"),
		AuthorID: q.Get("author_id"),
		Status:   q.Get("status"),
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": apps, "count": len(apps)})
}

func (s *Server) handleTransitionApplication(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTransitionApplication"

	var req StatusRequest
	if err := decodeJSON(r, op, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := validation.Struct(op, req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	app, err := s.applications.Transition(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}
