package report

import (
	"os"
	"storemon/internal/models"
	"storemon/internal/providers"
	"storemon/internal/report/interfaces"
	"time"

	json "github.com/goccy/go-json"
)

// indexFile is the on-disk snapshot of the report-status store.
type indexFile struct {
	Version int                         `json:"version"`
	Jobs    map[string]models.ReportJob `json:"jobs"`
}

// FileManager persists the report index across restarts, compressed and
// written atomically.
type FileManager struct {
	store      StoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(store StoreInterface, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		store:      store,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := indexFile{Version: 1, Jobs: f.store.Snapshot()}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores the report index. Jobs that were Running when the
// process died cannot resume — their generation task lived in this process —
// so they come back as Failed with a restart diagnostic.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot indexFile
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return err
	}
	if snapshot.Jobs == nil {
		return nil
	}

	interrupted := 0
	now := time.Now().UTC()
	for id, job := range snapshot.Jobs {
		if job.Status == models.ReportRunning {
			done := now
			job.Status = models.ReportFailed
			job.Error = "interrupted by restart"
			job.CompletedAt = &done
			snapshot.Jobs[id] = job
			interrupted++
		}
	}
	if interrupted > 0 {
		f.logger.Warnf(providers.TypeApp, "%d running report(s) interrupted by restart, marked failed", interrupted)
	}

	f.store.Put(snapshot.Jobs)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
