// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/maplebear-saf/saf-server/allocation"
)

// Job periodically re-derives the school/user allocation snapshot from
// the external collector and the schools reference CSV.
type Job struct {
	Collector      allocation.Collector
	SchoolsCSVPath string
	SnapshotPath   string
	Interval       time.Duration
}

// Run executes the job on every tick until the context is cancelled.
// A failed run is logged and leaves the previous snapshot intact.
func (j *Job) Run(ctx context.Context) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	slog.Info("refresh job scheduled", "interval", j.Interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh job stopped")
			return
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil {
				slog.Error("refresh run failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single collect → allocate → persist cycle.
func (j *Job) RunOnce(ctx context.Context) error {
	start := time.Now()
	slog.Info("refresh run started")

	var metrics allocation.RawMetrics
	err := allocation.Retry(ctx, 3, 5*time.Second, time.Minute, func() error {
		var collectErr error
		metrics, collectErr = j.Collector.Collect(ctx)
		return collectErr
	})
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}

	f, err := os.Open(j.SchoolsCSVPath)
	if err != nil {
		return fmt.Errorf("failed to open schools CSV: %w", err)
	}
	schools, err := allocation.LoadSchools(f)
	f.Close()
	if err != nil {
		return err
	}

	snapshot := allocation.BuildSnapshot(metrics, schools)

	size, err := writeSnapshot(j.SnapshotPath, snapshot)
	if err != nil {
		return err
	}

	slog.Info("refresh run completed",
		"duration", time.Since(start).Round(time.Millisecond),
		"snapshot_size", humanize.Bytes(uint64(size)),
		"users", humanize.Comma(int64(len(metrics.Usuarios))),
		"unallocated", snapshot.UnallocatedUsersCount,
	)
	return nil
}

// writeSnapshot persists the snapshot atomically: write a temp file in
// the same directory, then rename over the previous snapshot. A failure
// at any step leaves the old snapshot untouched.
func writeSnapshot(path string, snapshot allocation.Snapshot) (int, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return len(data), nil
}
