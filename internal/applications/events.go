package applications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectSubmitted     = "applications.submitted"
	SubjectStatusChanged = "applications.status_changed"

	connectTimeout = 5 * time.Second
)

// Event describes a change to an application.
type Event struct {
	ApplicationID  string                  `json:"application_id"`
	VacancyID      string                  `json:"vacancy_id"`
	UserID         string                  `json:"user_id"`
	Status         types.ApplicationStatus `json:"status"`
	PreviousStatus types.ApplicationStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time               `json:"occurred_at"`
}

// Publisher delivers workflow events.
type Publisher interface {
	Publish(ctx context.Context, subject string, ev Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
func (NopPublisher) Close() error                                 { return nil }

// NATSPublisher publishes events as JSON on core NATS subjects.
type NATSPublisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewNATSPublisher connects to the server at url.
func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("jobboard"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, apperrors.Internal("applications.NewNATSPublisher", "connecting to NATS", err)
	}

	return &NATSPublisher{
		nc:     nc,
		logger: logging.OrNop(logger),
	}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, subject string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return apperrors.Internal("applications.Publish", "marshaling event", err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish application event",
			zap.String("subject", subject),
			zap.String("application_id", ev.ApplicationID),
			zap.Error(err))
		return apperrors.Internal("applications.Publish", "publishing event", err)
	}

	p.logger.Debug("published application event",
		zap.String("subject", subject),
		zap.String("application_id", ev.ApplicationID),
		zap.String("status", string(ev.Status)))
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.nc != nil {
		return p.nc.Drain()
	}
	return nil
}
