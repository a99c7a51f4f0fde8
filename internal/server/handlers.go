package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/listings"
	"github.com/jonathan/jobboard/internal/search"
	"github.com/jonathan/jobboard/internal/types"
	"golang.org/x/sync/errgroup"
)

// ListingsResponse is the reply of the search endpoints.
type ListingsResponse struct {
	Items []types.Listing `json:"items"`
	Count int             `json:"count"`
}

func (s *Server) handleSearchVacancies(w http.ResponseWriter, r *http.Request) {
	s.searchListings(w, r, types.KindVacancy)
}

func (s *Server) handleSearchResumes(w http.ResponseWriter, r *http.Request) {
	s.searchListings(w, r, types.KindResume)
}

func (s *Server) searchListings(w http.ResponseWriter, r *http.Request, kind types.ListingKind) {
	filter, err := search.FromValues(r.URL.Query())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	all, err := s.listings.List(r.Context(), kind)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	items := s.engine.Apply(all, filter)
	s.jsonResponse(w, http.StatusOK, ListingsResponse{Items: items, Count: len(items)})
}

func (s *Server) handleGetVacancy(w http.ResponseWriter, r *http.Request) {
	s.getListing(w, r, types.KindVacancy)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	s.getListing(w, r, types.KindResume)
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request, kind types.ListingKind) {
	l, err := s.listings.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, l)
}

func (s *Server) handleCreateVacancy(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, types.KindVacancy)
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, types.KindResume)
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request, kind types.ListingKind) {
	var req listings.CreateRequest
	if err := decodeJSON(r, "server.createListing", &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	l, err := s.listings.Create(r.Context(), kind, req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, l)
}

// handleCategories lists the categories in use. Without a kind both
// collections are read, vacancies first.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	kind := types.ListingKind(strings.TrimSpace(r.URL.Query().Get("kind")))

	var kinds []types.ListingKind
	switch kind {
	case "":
		kinds = []types.ListingKind{types.KindVacancy, types.KindResume}
	case types.KindVacancy, types.KindResume:
		kinds = []types.ListingKind{kind}
	default:
		s.errorResponse(w, r, apperrors.Validation("server.handleCategories",
			map[string]string{"kind": "must be one of vacancy, resume"}))
		return
	}

	results := make([][]types.Listing, len(kinds))
	g, ctx := errgroup.WithContext(r.Context())
	for i, k := range kinds {
		g.Go(func() error {
			all, err := s.listings.List(ctx, k)
			results[i] = all
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var merged []types.Listing
	for _, res := range results {
		merged = append(merged, res...)
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"categories": search.Categories(merged)})
}
