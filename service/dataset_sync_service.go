package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"groomify-backend/engine"
)

// DatasetSyncService pulls the latest recommendation dataset from
// Google Drive, persists it locally, and hot-reloads the engine.
// Implements DatasetSyncServiceInterface
type DatasetSyncService struct {
	driveService DriveServiceInterface
	engine       *engine.Engine
	datasetPath  string
}

// NewDatasetSyncService creates a new DatasetSyncService
func NewDatasetSyncService(driveService DriveServiceInterface, eng *engine.Engine, datasetPath string) *DatasetSyncService {
	return &DatasetSyncService{
		driveService: driveService,
		engine:       eng,
		datasetPath:  datasetPath,
	}
}

// Ensure DatasetSyncService implements DatasetSyncServiceInterface
var _ DatasetSyncServiceInterface = (*DatasetSyncService)(nil)

// SyncDataset downloads the newest dataset file from the Drive folder,
// validates it, writes it to disk, and reloads the engine with it.
// Returns the synced file name and the number of rules loaded.
func (s *DatasetSyncService) SyncDataset(ctx context.Context, folderID string) (string, int, error) {
	log.Printf("🔄 Starting dataset sync for folder: %s", folderID)

	fileID, fileName, err := s.driveService.LatestDatasetFile(folderID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to find dataset in Drive: %w", err)
	}

	log.Printf("📥 Downloading dataset %s (%s)", fileName, fileID)
	data, err := s.driveService.DownloadFile(fileID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download dataset: %w", err)
	}

	// Validate before touching the file on disk so a corrupt upload
	// never replaces a working dataset. ParseDataset accepts the same
	// shapes LoadDataset reads at startup, so a synced file always
	// survives a restart.
	dataset, err := engine.ParseDataset(data)
	if err != nil {
		return "", 0, fmt.Errorf("dataset %s is not valid JSON: %w", fileName, err)
	}

	if dir := filepath.Dir(s.datasetPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", 0, fmt.Errorf("failed to create dataset directory: %w", err)
		}
	}
	if err := os.WriteFile(s.datasetPath, data, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write dataset file: %w", err)
	}

	s.engine.Reload(dataset)

	log.Printf("✓ Dataset sync complete: %s, %d rules loaded", fileName, len(dataset.Rules))
	return fileName, len(dataset.Rules), nil
}
