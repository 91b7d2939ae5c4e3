package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/straye-as/offer-tracker/internal/storage"
	"go.uber.org/zap"
)

// BackupJobName is the scheduler name of the snapshot backup job
const BackupJobName = "snapshot_backup"

// BackupPrefix is prepended to every key written by the backup job
const BackupPrefix = "backups/"

// backupTimestampLayout names a snapshot; it sorts chronologically
const backupTimestampLayout = "20060102T150405Z"

// BackupJob copies every key of the primary backend into the backup backend
// under backups/<timestamp>/<key>.
type BackupJob struct {
	source  storage.KV
	target  storage.KV
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewBackupJob creates a backup job. The timeout bounds a single run.
func NewBackupJob(source, target storage.KV, logger *zap.Logger, timeout time.Duration) *BackupJob {
	return &BackupJob{
		source:  source,
		target:  target,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// Run executes one backup. This is called by the scheduler.
func (j *BackupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	snapshot, copied, err := j.Snapshot(ctx)
	if err != nil {
		j.logger.Error("snapshot backup failed",
			zap.String("snapshot", snapshot),
			zap.Int("keys_copied", copied),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("snapshot backup completed",
		zap.String("snapshot", snapshot),
		zap.Int("keys_copied", copied),
		zap.Duration("duration", time.Since(start)))
}

// Snapshot copies the current keys and returns the snapshot prefix used.
// Keys that are themselves backups are skipped so a backend can back up
// into itself.
func (j *BackupJob) Snapshot(ctx context.Context) (string, int, error) {
	prefix := BackupPrefix + j.now().UTC().Format(backupTimestampLayout) + "/"

	keys, err := j.source.Keys(ctx)
	if err != nil {
		return prefix, 0, fmt.Errorf("failed to list keys: %w", err)
	}

	copied := 0
	for _, key := range keys {
		if strings.HasPrefix(key, BackupPrefix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return prefix, copied, err
		}

		value, err := j.source.Get(ctx, key)
		if err != nil {
			return prefix, copied, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := j.target.Set(ctx, prefix+key, value); err != nil {
			return prefix, copied, fmt.Errorf("failed to write %s: %w", prefix+key, err)
		}
		copied++
	}

	return prefix, copied, nil
}

// RegisterBackupJob registers the snapshot backup with the scheduler.
// The cronExpr accepts an optional seconds field (e.g. "0 0 3 * * *").
func RegisterBackupJob(scheduler *Scheduler, source, target storage.KV, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewBackupJob(source, target, logger, timeout)
	return scheduler.AddJob(BackupJobName, cronExpr, job.Run)
}
