// Package storage keeps a SQLite history of download runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	defaultDBPath = "~/.aws-netcfg/history.db"
	timeLayout    = "2006-01-02 15:04:05"
)

// ErrDownloadNotFound is returned by GetDownload for an unknown ID.
var ErrDownloadNotFound = errors.New("download not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db}, nil
}

type service struct {
	db *sql.DB
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveDownload(ctx context.Context, input SaveDownloadInput) (id int64, err error) {
	if input.AccountID == "" {
		return 0, errors.New("account id is required")
	}
	if input.RunUUID == "" {
		input.RunUUID = uuid.NewString()
	}
	if input.StartedAt.IsZero() {
		input.StartedAt = time.Now()
	}

	total := 0
	for _, n := range input.ResourceCounts {
		total += n
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO downloads (
			run_uuid, account_id, data_file, region_count, total_resources,
			started_at, duration_ms, cli_version, aws_profile
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.AccountID, input.DataFile, len(input.Regions), total,
		input.StartedAt.UTC().Format(timeLayout), input.Duration.Milliseconds(), input.Version, input.Profile)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, region := range input.Regions {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO download_regions(download_id, region) VALUES (?, ?)
		`, id, region); err != nil {
			return 0, err
		}
	}

	for kind, n := range input.ResourceCounts {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO resource_counts(download_id, resource_kind, resource_count) VALUES (?, ?, ?)
		`, id, kind, n); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *service) GetRecentDownloads(ctx context.Context, accountID string, limit int) ([]DownloadSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT download_id, run_uuid, account_id, data_file, region_count, total_resources,
			started_at, duration_ms, cli_version
		FROM downloads
	`
	args := []any{}
	if accountID != "" {
		query += " WHERE account_id=?"
		args = append(args, accountID)
	}
	query += " ORDER BY started_at DESC, download_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	downloads := []DownloadSummary{}
	for rows.Next() {
		d, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}

func (s *service) GetDownload(ctx context.Context, downloadID int64) (*DownloadDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT download_id, run_uuid, account_id, data_file, region_count, total_resources,
			started_at, duration_ms, cli_version
		FROM downloads WHERE download_id=?
	`, downloadID)

	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrDownloadNotFound, downloadID)
	}
	if err != nil {
		return nil, err
	}

	detail := &DownloadDetail{DownloadSummary: summary, ResourceCounts: map[string]int{}}

	regionRows, err := s.db.QueryContext(ctx, `SELECT region FROM download_regions WHERE download_id=?`, downloadID)
	if err != nil {
		return nil, err
	}
	defer regionRows.Close()
	for regionRows.Next() {
		var region string
		if err := regionRows.Scan(&region); err != nil {
			return nil, err
		}
		detail.Regions = append(detail.Regions, region)
	}
	if err := regionRows.Err(); err != nil {
		return nil, err
	}
	slices.Sort(detail.Regions)

	countRows, err := s.db.QueryContext(ctx, `
		SELECT resource_kind, resource_count FROM resource_counts WHERE download_id=?
	`, downloadID)
	if err != nil {
		return nil, err
	}
	defer countRows.Close()
	for countRows.Next() {
		var (
			kind string
			n    int
		)
		if err := countRows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		detail.ResourceCounts[kind] = n
	}

	return detail, countRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (DownloadSummary, error) {
	var (
		d          DownloadSummary
		startedAt  string
		durationMS sql.NullInt64
		version    sql.NullString
	)
	if err := row.Scan(&d.DownloadID, &d.RunUUID, &d.AccountID, &d.DataFile, &d.RegionCount, &d.TotalResources,
		&startedAt, &durationMS, &version); err != nil {
		return DownloadSummary{}, err
	}

	ts, err := parseTimestamp(startedAt)
	if err != nil {
		return DownloadSummary{}, err
	}
	d.StartedAt = ts
	d.DurationMS = durationMS.Int64
	d.Version = version.String
	return d, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM downloads WHERE started_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
