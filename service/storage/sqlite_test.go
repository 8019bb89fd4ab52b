package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestSaveDownloadAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := svc.SaveDownload(ctx, SaveDownloadInput{
		RunUUID:        "run-1",
		AccountID:      "111111111111",
		DataFile:       "data.json",
		Regions:        []string{"us-west-2", "us-east-1"},
		ResourceCounts: map[string]int{"vpcs": 2, "subnets": 5},
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		Version:        "1.0.0",
	})
	if err != nil {
		t.Fatalf("SaveDownload failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive download id, got %d", id)
	}

	recent, err := svc.GetRecentDownloads(ctx, "111111111111", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "run-1", recent[0].RunUUID)
	assert.Equal(t, 2, recent[0].RegionCount)
	assert.Equal(t, 7, recent[0].TotalResources)
	assert.Equal(t, int64(1500), recent[0].DurationMS)
	assert.True(t, started.Equal(recent[0].StartedAt), "started at %v", recent[0].StartedAt)

	detail, err := svc.GetDownload(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1", "us-west-2"}, detail.Regions)
	assert.Equal(t, map[string]int{"vpcs": 2, "subnets": 5}, detail.ResourceCounts)
	assert.Equal(t, "1.0.0", detail.Version)
}

func TestRecentDownloadsOrderingAndFilter(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	inputs := []SaveDownloadInput{
		{AccountID: "111111111111", DataFile: "a.json", StartedAt: base},
		{AccountID: "222222222222", DataFile: "a.json", StartedAt: base.Add(time.Hour)},
		{AccountID: "111111111111", DataFile: "a.json", StartedAt: base.Add(2 * time.Hour)},
	}
	for _, in := range inputs {
		if _, err := svc.SaveDownload(ctx, in); err != nil {
			t.Fatalf("SaveDownload failed: %v", err)
		}
	}

	all, err := svc.GetRecentDownloads(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	if !all[0].StartedAt.After(all[1].StartedAt) || !all[1].StartedAt.After(all[2].StartedAt) {
		t.Fatalf("expected newest first, got %+v", all)
	}
	for _, d := range all {
		assert.NotEmpty(t, d.RunUUID, "run uuid should be generated")
	}

	filtered, err := svc.GetRecentDownloads(ctx, "111111111111", 10)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, d := range filtered {
		assert.Equal(t, "111111111111", d.AccountID)
	}

	limited, err := svc.GetRecentDownloads(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetDownloadNotFound(t *testing.T) {
	svc := newTestStorage(t)
	_, err := svc.GetDownload(context.Background(), 42)
	if !errors.Is(err, ErrDownloadNotFound) {
		t.Fatalf("expected ErrDownloadNotFound, got %v", err)
	}
}

func TestSaveDownloadRequiresAccount(t *testing.T) {
	svc := newTestStorage(t)
	_, err := svc.SaveDownload(context.Background(), SaveDownloadInput{DataFile: "a.json"})
	require.Error(t, err)
}

func TestPurgeOlderThan(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	oldID, err := svc.SaveDownload(ctx, SaveDownloadInput{
		AccountID:      "111111111111",
		DataFile:       "a.json",
		Regions:        []string{"us-east-1"},
		ResourceCounts: map[string]int{"vpcs": 1},
		StartedAt:      time.Now().AddDate(0, 0, -40),
	})
	require.NoError(t, err)
	_, err = svc.SaveDownload(ctx, SaveDownloadInput{
		AccountID: "111111111111",
		DataFile:  "a.json",
		StartedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.PurgeOlderThan(ctx, 0)
	require.Error(t, err)

	deleted, err := svc.PurgeOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.GetDownload(ctx, oldID)
	assert.ErrorIs(t, err, ErrDownloadNotFound)

	remaining, err := svc.GetRecentDownloads(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestResolvePath(t *testing.T) {
	got, err := resolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "history.db", filepath.Base(got))
	assert.Equal(t, ".aws-netcfg", filepath.Base(filepath.Dir(got)))

	got, err = resolvePath("/tmp/x/../h.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/h.db", got)
}
