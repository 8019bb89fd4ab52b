package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thirukguru/aws-netcfg/model"
	"github.com/thirukguru/aws-netcfg/service/dataset"
	"golang.org/x/sync/errgroup"
)

// NewService creates a download service from its collaborators.
func NewService(
	identity IdentityResolver,
	regions RegionEnumerator,
	store dataset.Service,
	collectors CollectorFactory,
	opts Options,
) Service {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &service{
		identity:   identity,
		regions:    regions,
		store:      store,
		collectors: collectors,
		options:    opts,
		log:        logger,
	}
}

// Run replaces the calling account's region map in the dataset at path with
// freshly collected snapshots. Other accounts are left untouched. If any
// region fails nothing further is written.
func (s *service) Run(ctx context.Context, path string) (*Result, error) {
	startedAt := time.Now()

	accountID, err := s.identity.GetAccountID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	log := s.log.WithField("account", accountID)
	log.Debug("Running download for account")

	regionNames, err := s.regions.GetRegionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate regions: %w", err)
	}

	ds, err := s.loadOrInit(path, accountID)
	if err != nil {
		return nil, err
	}

	collected, err := s.collectRegions(ctx, regionNames)
	if err != nil {
		return nil, err
	}

	ds.Accounts[accountID] = &model.AccountRecord{Regions: collected}

	if err := s.store.Save(path, ds); err != nil {
		return nil, fmt.Errorf("failed to save dataset: %w", err)
	}

	counts := map[string]int{}
	for _, snapshot := range collected {
		for kind, n := range snapshot.ResourceCounts() {
			counts[kind] += n
		}
	}

	log.WithField("regions", len(regionNames)).Debug("Dataset saved")

	return &Result{
		AccountID:      accountID,
		Regions:        regionNames,
		ResourceCounts: counts,
		StartedAt:      startedAt,
		Duration:       time.Since(startedAt),
	}, nil
}

// loadOrInit loads the dataset, or writes a placeholder holding only an empty
// record for accountID when the file does not exist yet.
func (s *service) loadOrInit(path, accountID string) (*model.Dataset, error) {
	exists, err := s.store.Exists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		ds := model.NewDataset()
		ds.Accounts[accountID] = model.NewAccountRecord()
		if err := s.store.Save(path, ds); err != nil {
			return nil, fmt.Errorf("failed to initialize dataset: %w", err)
		}
		return ds, nil
	}

	ds, err := s.store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

func (s *service) collectRegions(ctx context.Context, regionNames []string) (map[string]*model.RegionSnapshot, error) {
	g, groupCtx := errgroup.WithContext(ctx)
	if s.options.MaxParallel > 0 {
		g.SetLimit(s.options.MaxParallel)
	}

	var mu sync.Mutex
	collected := make(map[string]*model.RegionSnapshot, len(regionNames))

	for _, region := range regionNames {
		g.Go(func() error {
			snapshot, err := s.collectors(region).CollectRegion(groupCtx)
			if err != nil {
				return err
			}

			mu.Lock()
			collected[region] = snapshot
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	return collected, nil
}
