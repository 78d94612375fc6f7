package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/renato0307/remux/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRecordCreatedGeneratesID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.RecordCreated(ctx, ports.Run{Command: "make", SessionID: "build", Target: "dev-vm"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := repo.List(ctx, "build", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "make", runs[0].Command)
	assert.Equal(t, "dev-vm", runs[0].Target)
	assert.Equal(t, ports.RunCreated, runs[0].State)
	assert.Nil(t, runs[0].ExitCode)
	assert.Nil(t, runs[0].FinishedAt)
}

func TestRecordCreatedRequiresSession(t *testing.T) {
	_, err := newTestRepository(t).RecordCreated(context.Background(), ports.Run{})
	assert.Error(t, err)
}

func TestRecordOutcomeFinishesLatestRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.RecordCreated(ctx, ports.Run{SessionID: "job", CreatedAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	second, err := repo.RecordCreated(ctx, ports.Run{SessionID: "job"})
	require.NoError(t, err)

	code := 42
	require.NoError(t, repo.RecordOutcome(ctx, "job", ports.RunOutcome{ExitCode: &code, State: ports.RunExited}))

	runs, err := repo.List(ctx, "job", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, ports.RunExited, runs[0].State)
	require.NotNil(t, runs[0].ExitCode)
	assert.Equal(t, 42, *runs[0].ExitCode)
	assert.NotNil(t, runs[0].FinishedAt)

	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, ports.RunCreated, runs[1].State)
}

func TestRecordOutcomeTimedOutStaysOpen(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.RecordCreated(ctx, ports.Run{SessionID: "server"})
	require.NoError(t, err)

	require.NoError(t, repo.RecordOutcome(ctx, "server", ports.RunOutcome{Error: "Timed out", State: ports.RunTimedOut}))
	require.NoError(t, repo.RecordOutcome(ctx, "server", ports.RunOutcome{State: ports.RunKilled}))

	runs, err := repo.List(ctx, "server", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ports.RunKilled, runs[0].State)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestRecordOutcomeWithoutRun(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.RecordOutcome(context.Background(), "unknown", ports.RunOutcome{State: ports.RunKilled}))
}

func TestListAllSessionsWithLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		_, err := repo.RecordCreated(ctx, ports.Run{SessionID: id, CreatedAt: time.Now().Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	runs, err := repo.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].SessionID)
	assert.Equal(t, "b", runs[1].SessionID)
}
