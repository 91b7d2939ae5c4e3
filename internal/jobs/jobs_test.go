package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSetKV struct {
	*storage.MemoryKV
}

func (f *failingSetKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func seededKV(t *testing.T, entries map[string]string) *storage.MemoryKV {
	t.Helper()
	kv := storage.NewMemoryKV()
	for k, v := range entries {
		require.NoError(t, kv.Set(context.Background(), k, []byte(v)))
	}
	return kv
}

func TestBackupJob_CopiesEveryKey(t *testing.T) {
	source := seededKV(t, map[string]string{
		"offer-tracker-state-v1": `{"clients":[],"offers":[]}`,
		"dashboard-columns-v1":   `["status"]`,
	})
	target := storage.NewMemoryKV()

	job := NewBackupJob(source, target, zap.NewNop(), time.Minute)
	job.now = func() time.Time { return time.Date(2025, 3, 14, 3, 0, 0, 0, time.UTC) }

	prefix, copied, err := job.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/20250314T030000Z/", prefix)
	assert.Equal(t, 2, copied)

	value, err := target.Get(context.Background(), prefix+"offer-tracker-state-v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"clients":[],"offers":[]}`, string(value))

	value, err = target.Get(context.Background(), prefix+"dashboard-columns-v1")
	require.NoError(t, err)
	assert.Equal(t, `["status"]`, string(value))
}

func TestBackupJob_SkipsPreviousBackupsInSameBackend(t *testing.T) {
	kv := seededKV(t, map[string]string{
		"offer-tracker-state-v1":                         `{}`,
		"backups/20250101T000000Z/offer-tracker-state-v1": `{}`,
	})

	job := NewBackupJob(kv, kv, zap.NewNop(), time.Minute)
	job.now = func() time.Time { return time.Date(2025, 3, 14, 3, 0, 0, 0, time.UTC) }

	_, copied, err := job.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	keys, err := kv.Keys(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestBackupJob_WriteFailure(t *testing.T) {
	source := seededKV(t, map[string]string{"offer-tracker-state-v1": `{}`})
	target := &failingSetKV{MemoryKV: storage.NewMemoryKV()}

	job := NewBackupJob(source, target, zap.NewNop(), time.Minute)
	_, copied, err := job.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, copied)

	// Run only logs
	assert.NotPanics(t, job.Run)
}

func TestBackupJob_CancelledContext(t *testing.T) {
	source := seededKV(t, map[string]string{"a": "1"})
	job := NewBackupJob(source, storage.NewMemoryKV(), zap.NewNop(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := job.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("noop", "@every 1h", func() {}))
	assert.Equal(t, []string{"noop"}, s.GetJobNames())

	err := s.AddJob("noop", "@every 1h", func() {})
	assert.Error(t, err)

	err = s.AddJob("broken", "not a cron", func() {})
	assert.Error(t, err)

	require.NoError(t, s.RemoveJob("noop"))
	assert.Empty(t, s.GetJobNames())
	assert.Error(t, s.RemoveJob("noop"))
}

func TestRegisterBackupJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	kv := storage.NewMemoryKV()

	require.NoError(t, RegisterBackupJob(s, kv, kv, zap.NewNop(), "0 0 3 * * *", time.Minute))
	assert.Equal(t, []string{BackupJobName}, s.GetJobNames())
}
