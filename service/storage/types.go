package storage

import (
	"context"
	"time"
)

// Service records and queries download run history.
type Service interface {
	SaveDownload(ctx context.Context, input SaveDownloadInput) (int64, error)
	GetRecentDownloads(ctx context.Context, accountID string, limit int) ([]DownloadSummary, error)
	GetDownload(ctx context.Context, downloadID int64) (*DownloadDetail, error)
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveDownloadInput is the payload saved for a completed download.
type SaveDownloadInput struct {
	RunUUID        string
	AccountID      string
	DataFile       string
	Regions        []string
	ResourceCounts map[string]int
	StartedAt      time.Time
	Duration       time.Duration
	Version        string
	Profile        string
}

// DownloadSummary provides compact download metadata.
type DownloadSummary struct {
	DownloadID     int64
	RunUUID        string
	AccountID      string
	DataFile       string
	RegionCount    int
	TotalResources int
	StartedAt      time.Time
	DurationMS     int64
	Version        string
}

// DownloadDetail is a download with its regions and per-kind resource counts.
type DownloadDetail struct {
	DownloadSummary
	Regions        []string
	ResourceCounts map[string]int
}
