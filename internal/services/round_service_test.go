package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbcd/internal/models"
	"bbcd/internal/structures"
)

func testConfig(dataDir string) *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{
			DataDir:     dataDir,
			HistoryFile: false,
		},
	}
}

func newRound(id string, observedAt time.Time) *models.Round {
	return &models.Round{
		ObservedAt: observedAt,
		RoundID:    id,
		SideADie1:  1, SideADie2: 2,
		SideBDie1: 3, SideBDie2: 4,
		Outcome: models.OutcomeSideBWin,
	}
}

func TestRoundService_AppendUpdatesView(t *testing.T) {
	svc, err := NewRoundService(testConfig(t.TempDir()))
	require.NoError(t, err)

	_, ok := svc.Latest()
	assert.False(t, ok)
	assert.Equal(t, int64(0), svc.Count())

	require.NoError(t, svc.Append(newRound("r1", time.Now())))

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, "r1", latest.RoundID)
	assert.Equal(t, int64(1), svc.Count())
}

func TestRoundService_AppendRecomputesTotals(t *testing.T) {
	svc, err := NewRoundService(testConfig(t.TempDir()))
	require.NoError(t, err)

	r := newRound("r1", time.Now())
	r.SideATotal = 40
	r.SideBTotal = 50
	require.NoError(t, svc.Append(r))

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, 3, latest.SideATotal)
	assert.Equal(t, 7, latest.SideBTotal)
}

func TestRoundService_RestoreAfterRestart(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewRoundService(testConfig(dir))
	require.NoError(t, err)
	require.NoError(t, svc.Append(newRound("r1", time.Now())))
	require.NoError(t, svc.Append(newRound("r2", time.Now())))

	// A new service over the same data dir mirrors a process restart.
	restarted, err := NewRoundService(testConfig(dir))
	require.NoError(t, err)

	assert.Equal(t, int64(2), restarted.Count())
	latest, ok := restarted.Latest()
	require.True(t, ok)
	assert.Equal(t, "r2", latest.RoundID)
}

func TestRoundService_LatestIgnoresPriorDayPartition(t *testing.T) {
	svc, err := NewRoundService(testConfig(t.TempDir()))
	require.NoError(t, err)

	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, svc.Append(newRound("old", yesterday)))

	_, ok := svc.Latest()
	assert.False(t, ok, "a round from yesterday's partition must not answer latest")
	assert.Equal(t, int64(0), svc.Count())
}

func TestRoundService_LastN(t *testing.T) {
	svc, err := NewRoundService(testConfig(t.TempDir()))
	require.NoError(t, err)

	now := time.Now()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Append(newRound(id, now)))
	}

	rounds, err := svc.LastN(2)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "b", rounds[0].RoundID)
	assert.Equal(t, "c", rounds[1].RoundID)
}

func TestRoundService_DuplicateIDsAreAppendedVerbatim(t *testing.T) {
	// Dedup lives in the poll loop, not the log: a round pushed twice
	// through the service lands twice.
	svc, err := NewRoundService(testConfig(t.TempDir()))
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, svc.Append(newRound("dup", now)))
	require.NoError(t, svc.Append(newRound("dup", now)))

	assert.Equal(t, int64(2), svc.Count())
}
