// Package seed loads the bundled sample dataset into a store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"go.uber.org/zap"
)

//go:embed data/sample.json
var sample []byte

// Dataset is the shape of the sample file.
type Dataset struct {
	Users     []types.User    `json:"users"`
	Vacancies []types.Listing `json:"vacancies"`
	Resumes   []types.Listing `json:"resumes"`
}

// Sample decodes the bundled dataset.
func Sample() (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(sample, &d); err != nil {
		return Dataset{}, fmt.Errorf("failed to parse sample dataset: %w", err)
	}
	return d, nil
}

// Result counts the records written by Load.
type Result struct {
	Skipped   bool `json:"skipped"`
	Users     int  `json:"users"`
	Vacancies int  `json:"vacancies"`
	Resumes   int  `json:"resumes"`
}

// Load writes d into st unless the vacancies collection already has records.
// Every record is checked against its schema before anything is written.
func Load(ctx context.Context, st store.Store, d Dataset, logger *zap.Logger) (Result, error) {
	const op = "seed.Load"
	logger = logging.OrNop(logger)

	existing, err := st.FetchAll(ctx, store.CollectionVacancies)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		logger.Info("store already initialized, skipping seed", zap.Int("vacancies", len(existing)))
		return Result{Skipped: true}, nil
	}

	for _, u := range d.Users {
		if err := schemas.Check(op, schemas.User, u); err != nil {
			return Result{}, fmt.Errorf("user %s: %w", u.ID, err)
		}
	}
	for _, l := range append(append([]types.Listing(nil), d.Vacancies...), d.Resumes...) {
		if err := schemas.Check(op, schemas.Listing, l); err != nil {
			return Result{}, fmt.Errorf("listing %s: %w", l.ID, err)
		}
	}

	var res Result
	users := store.NewCollection[types.User](st, store.CollectionUsers)
	for _, u := range d.Users {
		if _, err := users.Create(ctx, u); err != nil {
			return res, err
		}
		res.Users++
	}
	vacancies := store.NewCollection[types.Listing](st, store.CollectionVacancies)
	for _, l := range d.Vacancies {
		if _, err := vacancies.Create(ctx, l); err != nil {
			return res, err
		}
		res.Vacancies++
	}
	resumes := store.NewCollection[types.Listing](st, store.CollectionResumes)
	for _, l := range d.Resumes {
		if _, err := resumes.Create(ctx, l); err != nil {
			return res, err
		}
		res.Resumes++
	}

	logger.Info("seeded store",
		zap.Int("users", res.Users),
		zap.Int("vacancies", res.Vacancies),
		zap.Int("resumes", res.Resumes))
	return res, nil
}
