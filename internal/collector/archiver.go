package collector

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"bbcd/internal/collector/interfaces"
	"bbcd/internal/models"
	"bbcd/internal/providers"
	"bbcd/internal/structures"
)

// Archiver compresses closed day partitions past the retention window into
// the archive directory. Records are never dropped; the partition content
// survives verbatim inside the .zst file, and the plain CSV is removed only
// after the archive has been written and renamed into place.
type Archiver struct {
	dataDir    string
	archiveDir string
	retention  int
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewArchiver(conf *structures.Config, logger providers.Logger, compressor interfaces.CompressorInterface) *Archiver {
	return &Archiver{
		dataDir:    conf.Storage.DataDir,
		archiveDir: conf.Storage.ArchiveDir,
		retention:  conf.Storage.RetentionDays,
		compressor: compressor,
		logger:     logger,
	}
}

// Sweep archives every partition older than the retention window. Errors
// on one partition do not stop the sweep; a partial run just retries next
// time. The sweep is idempotent.
func (a *Archiver) Sweep() error {
	if a.retention <= 0 {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(a.dataDir, "rounds_*.csv"))
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -a.retention)
	archived := 0
	for _, file := range files {
		key := partitionKeyFromPath(file)
		day, err := time.ParseInLocation(models.PartitionKeyLayout, key, time.Local)
		if err != nil {
			continue
		}
		if !day.Before(cutoff) {
			continue
		}
		if err := a.archive(file); err != nil {
			a.logger.Errorf(providers.TypeApp, "Failed to archive %s: %s", file, err)
			continue
		}
		archived++
	}

	if archived > 0 {
		a.logger.Infof(providers.TypeApp, "Archived %d partition(s)", archived)
	}
	return nil
}

func (a *Archiver) archive(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compressed, err := a.compressor.Compress(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.archiveDir, 0755); err != nil {
		return err
	}
	dst := filepath.Join(a.archiveDir, filepath.Base(path)+".zst")
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Remove(path)
}

func partitionKeyFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimPrefix(base, "rounds_")
	return strings.TrimSuffix(base, ".csv")
}
