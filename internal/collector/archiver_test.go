package collector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbcd/internal/models"
	"bbcd/internal/structures"
	"bbcd/internal/testutil"
)

func archiverConfig(t *testing.T, retention int) *structures.Config {
	dir := t.TempDir()
	return &structures.Config{Storage: structures.StorageConfig{
		DataDir:       dir,
		ArchiveDir:    filepath.Join(dir, "archive"),
		RetentionDays: retention,
	}}
}

func writePartition(t *testing.T, dataDir string, day time.Time, content string) string {
	t.Helper()
	path := filepath.Join(dataDir, "rounds_"+day.Format(models.PartitionKeyLayout)+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestArchiver_SweepArchivesOldPartitions(t *testing.T) {
	conf := archiverConfig(t, 7)
	old := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -10), "observed_at\nrow\n")
	recent := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -2), "observed_at\n")

	a := NewArchiver(conf, &testutil.MockLogger{}, &testutil.MockCompressor{})
	require.NoError(t, a.Sweep())

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err), "old partition should be removed")
	_, err = os.Stat(recent)
	assert.NoError(t, err, "recent partition stays in place")

	archived, err := os.ReadFile(filepath.Join(conf.Storage.ArchiveDir, filepath.Base(old)+".zst"))
	require.NoError(t, err)
	assert.Equal(t, "observed_at\nrow\n", string(archived))
}

func TestArchiver_SweepRoundtripsThroughZstd(t *testing.T) {
	conf := archiverConfig(t, 1)
	original := "observed_at,round_id\n2024-04-01 10:00:00,r1\n"
	old := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -5), original)

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	a := NewArchiver(conf, &testutil.MockLogger{}, compressor)
	require.NoError(t, a.Sweep())

	compressed, err := os.ReadFile(filepath.Join(conf.Storage.ArchiveDir, filepath.Base(old)+".zst"))
	require.NoError(t, err)
	restored, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, string(restored))
}

func TestArchiver_SweepDisabledByZeroRetention(t *testing.T) {
	conf := archiverConfig(t, 0)
	old := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -30), "observed_at\n")

	a := NewArchiver(conf, &testutil.MockLogger{}, &testutil.MockCompressor{})
	require.NoError(t, a.Sweep())

	_, err := os.Stat(old)
	assert.NoError(t, err)
}

func TestArchiver_SweepContinuesPastFailures(t *testing.T) {
	conf := archiverConfig(t, 1)
	bad := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -5), "bad\n")
	good := writePartition(t, conf.Storage.DataDir, time.Now().AddDate(0, 0, -6), "good\n")

	calls := 0
	compressor := &testutil.MockCompressor{CompressFn: func(val []byte) ([]byte, error) {
		calls++
		if string(val) == "bad\n" {
			return nil, errors.New("encoder gone")
		}
		return val, nil
	}}
	a := NewArchiver(conf, &testutil.MockLogger{}, compressor)

	require.NoError(t, a.Sweep())
	assert.Equal(t, 2, calls, "both partitions attempted")

	_, err := os.Stat(filepath.Join(conf.Storage.ArchiveDir, filepath.Base(good)+".zst"))
	assert.NoError(t, err, "failure on one partition does not stop the sweep")
	_, err = os.Stat(bad)
	assert.NoError(t, err, "failed partition stays in place for the next sweep")
}

func TestArchiver_SkipsFilesWithoutDateKey(t *testing.T) {
	conf := archiverConfig(t, 1)
	odd := filepath.Join(conf.Storage.DataDir, "rounds_notadate.csv")
	require.NoError(t, os.WriteFile(odd, []byte("x"), 0644))

	a := NewArchiver(conf, &testutil.MockLogger{}, &testutil.MockCompressor{})
	require.NoError(t, a.Sweep())

	_, err := os.Stat(odd)
	assert.NoError(t, err)
}

func TestPartitionKeyFromPath(t *testing.T) {
	assert.Equal(t, "2024-05-01", partitionKeyFromPath("/data/rounds_2024-05-01.csv"))
	assert.Equal(t, "2024-05-01", partitionKeyFromPath("rounds_2024-05-01.csv"))
}
