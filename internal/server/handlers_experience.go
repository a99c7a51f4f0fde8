package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/experience"
)

func (s *Server) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	sum, err := s.experience.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sum)
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var d experience.Draft
	if err := decodeJSON(r, "server.handleAddExperience", &d); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sum, err := s.experience.Add(r.Context(), r.PathValue("id"), d)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sum)
}

func (s *Server) handleReplaceExperience(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReplaceExperience"

	index, err := pathIndex(r, op)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var d experience.Draft
	if err := decodeJSON(r, op, &d); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sum, err := s.experience.Replace(r.Context(), r.PathValue("id"), index, d)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sum)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRemoveExperience"

	index, err := pathIndex(r, op)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sum, err := s.experience.Remove(r.Context(), r.PathValue("id"), index)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sum)
}

func pathIndex(r *http.Request, op string) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, apperrors.Validation(op, map[string]string{"index": "must be an integer"})
	}
	return index, nil
}
