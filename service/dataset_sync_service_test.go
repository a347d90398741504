package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/engine"
)

type fakeDriveService struct {
	fileID   string
	fileName string
	content  []byte
	findErr  error
}

var _ DriveServiceInterface = (*fakeDriveService)(nil)

func (f *fakeDriveService) LatestDatasetFile(folderID string) (string, string, error) {
	if f.findErr != nil {
		return "", "", f.findErr
	}
	return f.fileID, f.fileName, nil
}

func (f *fakeDriveService) DownloadFile(fileID string) ([]byte, error) {
	return f.content, nil
}

func TestSyncDatasetReloadsEngine(t *testing.T) {
	drive := &fakeDriveService{
		fileID:   "abc123",
		fileName: "outfits.json",
		content: []byte(`[
			{"gender": "Female", "event_name": "Nikah", "outfittype": "Formal",
			 "time": "Night", "weather_range": "20-30",
			 "dress_type": "Maxi", "dress_color": "Red", "dress_fabric_texture": "Silk",
			 "shoes_type": "Heels", "shoes_color": "Gold",
			 "upper_layer": "N/A", "upper_layer_color": "N/A"}
		]`),
	}

	eng := engine.NewEngine(&engine.Dataset{}, nil)
	require.False(t, eng.DatasetLoaded())

	datasetPath := filepath.Join(t.TempDir(), "data", "outfits.json")
	svc := NewDatasetSyncService(drive, eng, datasetPath)

	name, count, err := svc.SyncDataset(context.Background(), "folder-1")
	require.NoError(t, err)
	assert.Equal(t, "outfits.json", name)
	assert.Equal(t, 1, count)
	assert.True(t, eng.DatasetLoaded())

	written, err := os.ReadFile(datasetPath)
	require.NoError(t, err)
	assert.Equal(t, drive.content, written)

	// The synced file must load again at the next startup.
	reloaded, err := engine.LoadDataset(datasetPath)
	require.NoError(t, err)
	require.Len(t, reloaded.Rules, 1)
	assert.Equal(t, "Nikah", reloaded.Rules[0].EventName)
}

func TestSyncDatasetRejectsInvalidJSON(t *testing.T) {
	drive := &fakeDriveService{
		fileID:   "abc123",
		fileName: "broken.json",
		content:  []byte("not json"),
	}

	eng := engine.NewEngine(&engine.Dataset{}, nil)
	datasetPath := filepath.Join(t.TempDir(), "outfits.json")
	svc := NewDatasetSyncService(drive, eng, datasetPath)

	_, _, err := svc.SyncDataset(context.Background(), "folder-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")

	_, statErr := os.Stat(datasetPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, eng.DatasetLoaded())
}
