// Package listings publishes vacancies and resumes into the store.
package listings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/internal/validation"
	"go.uber.org/zap"
)

// Service creates and reads listings.
type Service struct {
	vacancies *store.Collection[types.Listing]
	resumes   *store.Collection[types.Listing]
	users     *store.Collection[types.User]

	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *zap.Logger) Option          { return func(s *Service) { s.logger = logging.OrNop(l) } }
func WithClock(now func() time.Time) Option    { return func(s *Service) { s.now = now } }
func WithIDGenerator(gen func() string) Option { return func(s *Service) { s.newID = gen } }

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		vacancies: store.NewCollection[types.Listing](st, store.CollectionVacancies),
		resumes:   store.NewCollection[types.Listing](st, store.CollectionResumes),
		users:     store.NewCollection[types.User](st, store.CollectionUsers),
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) collection(op string, kind types.ListingKind) (*store.Collection[types.Listing], error) {
	switch kind {
	case types.KindVacancy:
		return s.vacancies, nil
	case types.KindResume:
		return s.resumes, nil
	default:
		return nil, apperrors.Validation(op, map[string]string{"kind": fmt.Sprintf("unknown listing kind %q", kind)})
	}
}

// List returns every listing of the given kind in store order.
func (s *Service) List(ctx context.Context, kind types.ListingKind) ([]types.Listing, error) {
	coll, err := s.collection("listings.List", kind)
	if err != nil {
		return nil, err
	}
	return coll.All(ctx)
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, kind types.ListingKind, id string) (types.Listing, error) {
	const op = "listings.Get"

	coll, err := s.collection(op, kind)
	if err != nil {
		return types.Listing{}, err
	}
	l, ok, err := coll.Find(ctx, id)
	if err != nil {
		return types.Listing{}, err
	}
	if !ok {
		return types.Listing{}, apperrors.NotFound(op, fmt.Sprintf("%s %s not found", kind, id), nil)
	}
	return l, nil
}

// Create validates req and stores a new listing of the given kind. A vacancy
// with no company takes the author's company name; a resume with no name
// takes the author's name. New vacancies are added to the author's posted
// jobs; if that update fails the listing is removed again.
func (s *Service) Create(ctx context.Context, kind types.ListingKind, req CreateRequest) (types.Listing, error) {
	const op = "listings.Create"

	coll, err := s.collection(op, kind)
	if err != nil {
		return types.Listing{}, err
	}
	req.Kind = kind

	req, err = req.normalize()
	if err != nil {
		return types.Listing{}, apperrors.Validation(op, map[string]string{"description": "could not read HTML: " + err.Error()})
	}

	var (
		author      types.User
		authorFound bool
	)
	if req.AuthorID != "" {
		author, authorFound, err = s.users.Find(ctx, req.AuthorID)
		if err != nil {
			return types.Listing{}, err
		}
		if !authorFound {
			return types.Listing{}, apperrors.NotFound(op, fmt.Sprintf("user %s not found", req.AuthorID), nil)
		}
		if kind == types.KindVacancy && req.Company == "" {
			req.Company = author.Profile.CompanyName
		}
		if kind == types.KindResume && req.Name == "" {
			req.Name = author.Name
		}
	}

	if err := validation.FromError(op, validation.Validator().Struct(req), map[string]string{
		"title":       MsgRequired,
		"company":     MsgRequired,
		"description": MsgRequired,
	}); err != nil {
		return types.Listing{}, err
	}

	l := types.Listing{
		ID:              s.newID(),
		Kind:            kind,
		Title:           req.Title,
		Company:         req.Company,
		Name:            req.Name,
		Description:     req.Description,
		Requirements:    []string(req.Requirements),
		Category:        req.Category,
		Experience:      req.Experience,
		Location:        req.Location,
		Remote:          req.Remote,
		Salary:          req.Salary,
		Date:            s.now().UTC(),
		AuthorID:        req.AuthorID,
		Applications:    []string{},
		WorkExperiences: req.WorkExperiences,
	}
	if err := schemas.Check(op, schemas.Listing, l); err != nil {
		return types.Listing{}, err
	}

	if _, err := coll.Create(ctx, l); err != nil {
		return types.Listing{}, err
	}

	if kind == types.KindVacancy && authorFound {
		updated := author
		updated.Profile.PostedJobs = append(append([]string(nil), author.Profile.PostedJobs...), l.ID)
		if _, err := s.users.Update(ctx, updated); err != nil {
			if derr := coll.Delete(ctx, l.ID); derr != nil {
				s.logger.Error("failed to remove listing after author update failure",
					zap.String("listing_id", l.ID), zap.Error(derr))
			}
			return types.Listing{}, err
		}
	}

	s.logger.Info("listing created",
		zap.String("listing_id", l.ID),
		zap.String("kind", string(kind)),
		zap.String("author_id", l.AuthorID))
	return l, nil
}
