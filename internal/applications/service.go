package applications

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultCoverLetter is used when the applicant leaves the letter blank.
const DefaultCoverLetter = "Здравствуйте! Я заинтересован в данной вакансии и хотел бы предложить свою кандидатуру."

// StatusAll disables the status filter of List.
const StatusAll = "all"

// SubmitRequest is the input of Service.Submit.
type SubmitRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	VacancyID    string `json:"vacancy_id" validate:"required"`
	CoverLetter  string `json:"cover_letter,omitempty" validate:"max=5000"`
	ContactPhone string `json:"contact_phone,omitempty" validate:"max=32"`
}

// ListOptions select applications for List. AuthorID (an employer) takes
// precedence over UserID (an applicant); with neither every application is
// returned. Status is a status name or "all".
type ListOptions struct {
	UserID   string
	AuthorID string
	Status   string
}

// Service runs the application workflow over the users, vacancies and
// applications collections.
type Service struct {
	users        *store.Collection[types.User]
	vacancies    *store.Collection[types.Listing]
	applications *store.Collection[types.Application]

	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

func WithPublisher(p Publisher) Option         { return func(s *Service) { s.publisher = p } }
func WithLogger(l *zap.Logger) Option          { return func(s *Service) { s.logger = logging.OrNop(l) } }
func WithClock(now func() time.Time) Option    { return func(s *Service) { s.now = now } }
func WithIDGenerator(gen func() string) Option { return func(s *Service) { s.newID = gen } }

// NewService returns a Service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		users:        store.NewCollection[types.User](st, store.CollectionUsers),
		vacancies:    store.NewCollection[types.Listing](st, store.CollectionVacancies),
		applications: store.NewCollection[types.Application](st, store.CollectionApplications),
		publisher:    NopPublisher{},
		logger:       zap.NewNop(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit creates an application for req.UserID on req.VacancyID.
//
// The write is three store calls: create the application, append the vacancy
// to the user's applied set, append the application to the vacancy. When a
// later call fails the earlier ones are undone best-effort and the original
// error is returned. The store has no transactions, so two concurrent
// submissions for the same pair can both pass the duplicate check.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (types.Application, error) {
	const op = "applications.Submit"

	if err := validation.Struct(op, req); err != nil {
		return types.Application{}, err
	}

	var (
		u         types.User
		v         types.Listing
		userFound bool
		vacFound  bool
		existing  []types.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, userFound, err = s.users.Find(gctx, req.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		v, vacFound, err = s.vacancies.Find(gctx, req.VacancyID)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = s.applications.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.Application{}, err
	}

	if !userFound {
		return types.Application{}, apperrors.NotFound(op, fmt.Sprintf("user %s not found", req.UserID), nil)
	}
	if !u.IsJobseeker() {
		e := apperrors.New(apperrors.KindValidation, op, ErrNotJobseeker.Error(), ErrNotJobseeker)
		e.Fields = map[string]string{"user_id": "Только соискатели могут откликаться на вакансии"}
		return types.Application{}, e
	}
	if HasApplied(u, req.VacancyID) || appliedBefore(existing, req.UserID, req.VacancyID) {
		return types.Application{}, apperrors.Conflict(op, "Вы уже откликнулись на эту вакансию", ErrDuplicateApplication)
	}
	if !vacFound {
		return types.Application{}, apperrors.NotFound(op, fmt.Sprintf("vacancy %s not found", req.VacancyID), nil)
	}

	app := s.snapshot(u, v, req)
	if err := schemas.Check(op, schemas.Application, app); err != nil {
		return types.Application{}, err
	}

	if _, err := s.applications.Create(ctx, app); err != nil {
		return types.Application{}, err
	}

	updatedUser := u
	updatedUser.Profile.AppliedJobs = append(append([]string(nil), u.Profile.AppliedJobs...), v.ID)
	if _, err := s.users.Update(ctx, updatedUser); err != nil {
		s.undoCreate(ctx, app.ID)
		return types.Application{}, err
	}

	updatedVacancy := v
	updatedVacancy.Applications = append(append([]string(nil), v.Applications...), app.ID)
	if _, err := s.vacancies.Update(ctx, updatedVacancy); err != nil {
		if _, uerr := s.users.Update(ctx, u); uerr != nil {
			s.logger.Error("failed to restore applied set after submit failure",
				zap.String("user_id", u.ID), zap.Error(uerr))
		}
		s.undoCreate(ctx, app.ID)
		return types.Application{}, err
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("vacancy_id", v.ID),
		zap.String("user_id", u.ID))
	s.publish(ctx, SubjectSubmitted, Event{
		ApplicationID: app.ID,
		VacancyID:     app.VacancyID,
		UserID:        app.UserID,
		Status:        app.Status,
		OccurredAt:    app.Date,
	})
	return app, nil
}

// Transition moves an application to status to.
func (s *Service) Transition(ctx context.Context, applicationID string, to types.ApplicationStatus) (types.Application, error) {
	const op = "applications.Transition"

	if _, err := ParseStatus(string(to)); err != nil {
		return types.Application{}, apperrors.Validation(op, map[string]string{"status": err.Error()})
	}

	app, ok, err := s.applications.Find(ctx, applicationID)
	if err != nil {
		return types.Application{}, err
	}
	if !ok {
		return types.Application{}, apperrors.NotFound(op, fmt.Sprintf("application %s not found", applicationID), nil)
	}
	if !CanTransition(app.Status, to) {
		return types.Application{}, apperrors.Conflict(op,
			fmt.Sprintf("cannot move application from %s to %s", app.Status, to), ErrIllegalTransition)
	}

	from := app.Status
	app.Status = to
	if _, err := s.applications.Update(ctx, app); err != nil {
		return types.Application{}, err
	}

	s.logger.Info("application status changed",
		zap.String("application_id", app.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	s.publish(ctx, SubjectStatusChanged, Event{
		ApplicationID:  app.ID,
		VacancyID:      app.VacancyID,
		UserID:         app.UserID,
		Status:         to,
		PreviousStatus: from,
		OccurredAt:     s.now(),
	})
	return app, nil
}

// List returns the selected applications, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]types.Application, error) {
	const op = "applications.List"

	var status types.ApplicationStatus
	if opts.Status != "" && opts.Status != StatusAll {
		st, err := ParseStatus(opts.Status)
		if err != nil {
			return nil, apperrors.Validation(op, map[string]string{"status": err.Error()})
		}
		status = st
	}

	var (
		apps      []types.Application
		vacancies []types.Listing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.applications.All(gctx)
		apps = all
		return err
	})
	if opts.AuthorID != "" {
		g.Go(func() error {
			all, err := s.vacancies.All(gctx)
			vacancies = all
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var keep func(types.Application) bool
	switch {
	case opts.AuthorID != "":
		owned := make(map[string]struct{})
		for _, v := range vacancies {
			if v.AuthorID == opts.AuthorID {
				owned[v.ID] = struct{}{}
			}
		}
		keep = func(a types.Application) bool { _, ok := owned[a.VacancyID]; return ok }
	case opts.UserID != "":
		keep = func(a types.Application) bool { return a.UserID == opts.UserID }
	default:
		keep = func(types.Application) bool { return true }
	}

	out := make([]types.Application, 0, len(apps))
	for _, a := range apps {
		if !keep(a) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Service) snapshot(u types.User, v types.Listing, req SubmitRequest) types.Application {
	letter := strings.TrimSpace(req.CoverLetter)
	if letter == "" {
		letter = DefaultCoverLetter
	}
	phone := strings.TrimSpace(req.ContactPhone)
	if phone == "" {
		phone = u.Profile.Contacts.Phone
	}
	return types.Application{
		ID:           s.newID(),
		VacancyID:    v.ID,
		VacancyTitle: v.Title,
		CompanyName:  v.Company,
		UserID:       u.ID,
		UserName:     u.Name,
		UserEmail:    u.Email,
		ContactPhone: phone,
		CoverLetter:  letter,
		Status:       types.StatusPending,
		Date:         s.now().UTC(),
	}
}

func (s *Service) undoCreate(ctx context.Context, id string) {
	if err := s.applications.Delete(ctx, id); err != nil {
		s.logger.Error("failed to remove application after submit failure",
			zap.String("application_id", id), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, subject string, ev Event) {
	if err := s.publisher.Publish(ctx, subject, ev); err != nil {
		s.logger.Warn("application event not delivered",
			zap.String("subject", subject),
			zap.String("application_id", ev.ApplicationID),
			zap.Error(err))
	}
}

func appliedBefore(apps []types.Application, userID, vacancyID string) bool {
	for _, a := range apps {
		if a.UserID == userID && a.VacancyID == vacancyID {
			return true
		}
	}
	return false
}
