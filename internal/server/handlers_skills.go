package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/skills"
)

// SuggestResponse mirrors what the tag input shows for a query.
type SuggestResponse struct {
	Query         string   `json:"query"`
	Suggestions   []string `json:"suggestions"`
	ExactMatch    bool     `json:"exact_match"`
	ShowAddCustom bool     `json:"show_add_custom"`
}

// AddSkillRequest is the body of POST /skills.
type AddSkillRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	// a comma would commit the tag; suggestions only look at the text before it
	if i := strings.IndexByte(query, ','); i >= 0 {
		query = query[:i]
	}

	input := skills.NewTagInput(s.vocabulary, skills.Options{Logger: s.logger})
	input.SetValue(splitParam(q["selected"]))
	input.InputChange(r.Context(), query)

	suggestions := input.Suggestions()
	if suggestions == nil {
		suggestions = []string{}
	}
	s.jsonResponse(w, http.StatusOK, SuggestResponse{
		Query:         strings.TrimSpace(query),
		Suggestions:   suggestions,
		ExactMatch:    input.HasExactMatch(),
		ShowAddCustom: input.ShowAddCustom(),
	})
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddSkill"

	var req AddSkillRequest
	if err := decodeJSON(r, op, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.errorResponse(w, r, apperrors.Validation(op, map[string]string{"name": "is required"}))
		return
	}

	added, err := s.vocabulary.Append(r.Context(), name)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, map[string]any{"name": name, "added": added})
}

func splitParam(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ProfileSkillsRequest is the body of PUT /users/{id}/skills.
type ProfileSkillsRequest struct {
	Skills []string `json:"skills"`
}

// handleSetProfileSkills replaces a profile's skills. Each entry is committed
// through a tag input, so blanks and exact duplicates are dropped and, with
// auto-add enabled, unknown skills join the vocabulary.
func (s *Server) handleSetProfileSkills(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSetProfileSkills"

	var req ProfileSkillsRequest
	if err := decodeJSON(r, op, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	id := r.PathValue("id")
	u, ok, err := s.users.Find(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if !ok {
		s.errorResponse(w, r, apperrors.NotFound(op, "user "+id+" not found", nil))
		return
	}

	input := skills.NewTagInput(s.vocabulary, skills.Options{AutoAddNewSkills: s.autoAdd, Logger: s.logger})
	for _, skill := range req.Skills {
		input.Commit(r.Context(), skill)
	}

	tags := input.Tags()
	if tags == nil {
		tags = []string{}
	}
	u.Profile.Skills = tags
	if _, err := s.users.Update(r.Context(), u); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"skills": tags})
}
