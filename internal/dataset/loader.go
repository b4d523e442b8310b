package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"suedtirol/server/config"
	"suedtirol/server/internal/database"
	"suedtirol/server/internal/models"
)

// SnapshotStore keeps the last good content of every dataset so a failed
// download can fall back to it.
type SnapshotStore interface {
	SaveSnapshot(source string, content []byte) (bool, error)
	LatestSnapshot(source string) (*database.Snapshot, error)
	PruneSnapshots(source string, keep int) (int64, error)
}

// Sources locates the three workbooks.
type Sources struct {
	Prices               string
	IncomeRegions        string
	IncomeMunicipalities string
}

type Loader struct {
	fetcher    Fetcher
	store      SnapshotStore
	logger     *logrus.Logger
	sources    Sources
	maxRetries int
	retryDelay time.Duration
	keep       int
}

// NewLoader builds a loader from the dataset settings. store may be nil, in
// which case a failed download is final.
func NewLoader(cfg *config.Config, fetcher Fetcher, store SnapshotStore, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	maxRetries := cfg.Datasets.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Loader{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		sources: Sources{
			Prices:               cfg.Datasets.PricesURL,
			IncomeRegions:        cfg.Datasets.IncomeRegionURL,
			IncomeMunicipalities: cfg.Datasets.IncomeMunicipalityURL,
		},
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay(),
		keep:       cfg.Snapshots.Keep,
	}
}

// LoadAll fetches and parses every dataset into a fresh catalog. Datasets
// load independently: one that fails is recorded in Catalog.Errors and the
// others are still returned. An error is returned only when none loaded.
func (l *Loader) LoadAll(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	catalog := &Catalog{Errors: make(map[string]error)}

	var err error
	if catalog.Prices, err = load(ctx, l, DatasetPrices, l.sources.Prices, ParsePrices); err != nil {
		catalog.Errors[DatasetPrices] = err
	}
	if catalog.IncomeRegions, err = load(ctx, l, DatasetIncomeRegions, l.sources.IncomeRegions, ParseRegionIncome); err != nil {
		catalog.Errors[DatasetIncomeRegions] = err
	}
	if catalog.IncomeMunicipalities, err = load(ctx, l, DatasetIncomeMunicipalities, l.sources.IncomeMunicipalities, ParseMunicipalityIncome); err != nil {
		catalog.Errors[DatasetIncomeMunicipalities] = err
	}

	for _, name := range Datasets {
		if err := catalog.Errors[name]; err != nil {
			l.logger.WithError(err).WithField("dataset", name).Error("Dataset could not be loaded")
		}
	}
	if len(catalog.Errors) == len(Datasets) {
		errs := make([]error, 0, len(Datasets))
		for _, name := range Datasets {
			errs = append(errs, catalog.Errors[name])
		}
		return nil, errors.Join(errs...)
	}

	catalog.LoadedAt = time.Now().UTC()
	l.logger.WithFields(logrus.Fields{
		"prices":                len(catalog.Prices),
		"income_regions":        len(catalog.IncomeRegions),
		"income_municipalities": len(catalog.IncomeMunicipalities),
		"failed":                len(catalog.Errors),
		"duration_ms":           time.Since(start).Milliseconds(),
	}).Info("Datasets loaded")

	return catalog, nil
}

func load[T any](ctx context.Context, l *Loader, dataset, source string, parse func([]byte) ([]T, error)) ([]T, error) {
	logger := l.logger.WithFields(logrus.Fields{"dataset": dataset, "source": source})

	content, fetchErr := l.fetchWithRetry(ctx, dataset, source)
	if fetchErr == nil {
		records, err := parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", dataset, err)
		}
		l.saveSnapshot(logger, dataset, content)
		return records, nil
	}

	if errors.Is(fetchErr, context.Canceled) || l.store == nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, dataset, fetchErr)
	}

	snap, err := l.store.LatestSnapshot(dataset)
	if err != nil {
		logger.WithError(err).Error("No snapshot to fall back to")
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, dataset, fetchErr)
	}

	logger.WithFields(logrus.Fields{
		"fetched_at": snap.FetchedAt,
		"error":      fetchErr.Error(),
	}).Warn("Download failed, using stored snapshot")

	records, err := parse(snap.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s snapshot: %w", dataset, err)
	}
	return records, nil
}

func (l *Loader) fetchWithRetry(ctx context.Context, dataset, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			l.logger.Infof("Retrying %s download, attempt %d of %d", dataset, attempt, l.maxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.retryDelay):
			}
		}

		var content []byte
		content, err = l.fetcher.Fetch(ctx, source)
		if err == nil {
			return content, nil
		}

		l.logger.WithError(err).WithField("dataset", dataset).Error("Dataset download failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}

	return nil, fmt.Errorf("failed to fetch %s after %d attempts: %w", dataset, l.maxRetries+1, err)
}

func (l *Loader) saveSnapshot(logger *logrus.Entry, dataset string, content []byte) {
	if l.store == nil {
		return
	}
	saved, err := l.store.SaveSnapshot(dataset, content)
	if err != nil {
		logger.WithError(err).Error("Failed to store snapshot")
		return
	}
	if !saved {
		return
	}
	logger.WithField("bytes", len(content)).Info("Stored new snapshot")

	if pruned, err := l.store.PruneSnapshots(dataset, l.keep); err != nil {
		logger.WithError(err).Error("Failed to prune snapshots")
	} else if pruned > 0 {
		logger.WithField("pruned", pruned).Debug("Pruned old snapshots")
	}
}

// Catalog is one immutable generation of the three tables. It is shared by
// all requests and never modified after loading.
type Catalog struct {
	Prices               []models.PriceRecord
	IncomeRegions        []models.IncomeRecord
	IncomeMunicipalities []models.IncomeRecord
	LoadedAt             time.Time

	// Errors holds the datasets this catalog has no data for.
	Errors map[string]error
	// Reused holds the datasets that failed to load and were kept from the
	// previous catalog, with the error of the failed attempt.
	Reused map[string]error
}

// Err returns why a dataset is missing from the catalog, or nil.
func (c *Catalog) Err(name string) error {
	return c.Errors[name]
}

// Len returns the number of rows loaded for a dataset.
func (c *Catalog) Len(name string) int {
	switch name {
	case DatasetPrices:
		return len(c.Prices)
	case DatasetIncomeRegions:
		return len(c.IncomeRegions)
	case DatasetIncomeMunicipalities:
		return len(c.IncomeMunicipalities)
	}
	return 0
}

// reuse copies every dataset that failed in c but was loaded in prev.
func (c *Catalog) reuse(prev *Catalog) {
	if prev == nil {
		return
	}
	for _, name := range Datasets {
		err := c.Errors[name]
		if err == nil || prev.Err(name) != nil {
			continue
		}
		switch name {
		case DatasetPrices:
			c.Prices = prev.Prices
		case DatasetIncomeRegions:
			c.IncomeRegions = prev.IncomeRegions
		case DatasetIncomeMunicipalities:
			c.IncomeMunicipalities = prev.IncomeMunicipalities
		}
		delete(c.Errors, name)
		if c.Reused == nil {
			c.Reused = make(map[string]error)
		}
		c.Reused[name] = err
	}
}
