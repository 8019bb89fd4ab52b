// Package download collects one account's network configuration across all
// target regions and merges it into the persisted dataset.
package download

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thirukguru/aws-netcfg/service/dataset"
	"github.com/thirukguru/aws-netcfg/service/ec2inventory"
)

// IdentityResolver returns the calling account's ID.
type IdentityResolver interface {
	GetAccountID(ctx context.Context) (string, error)
}

// RegionEnumerator returns the regions to scan.
type RegionEnumerator interface {
	GetRegionNames(ctx context.Context) ([]string, error)
}

// CollectorFactory builds a regional collector for one region.
type CollectorFactory func(region string) ec2inventory.Service

// Options tunes a download.
type Options struct {
	// MaxParallel caps concurrently collected regions. Zero or negative is unbounded.
	MaxParallel int
	Logger      logrus.FieldLogger
}

// Result summarizes a completed download.
type Result struct {
	AccountID      string
	Regions        []string
	ResourceCounts map[string]int
	StartedAt      time.Time
	Duration       time.Duration
}

// Service runs a download for the calling account.
type Service interface {
	Run(ctx context.Context, path string) (*Result, error)
}

type service struct {
	identity   IdentityResolver
	regions    RegionEnumerator
	store      dataset.Service
	collectors CollectorFactory
	options    Options
	log        logrus.FieldLogger
}
