package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// LatestDatasetFile finds the most recently modified JSON file in a
// Drive folder. Returns the file ID and name.
func (ds *DriveService) LatestDatasetFile(folderID string) (string, string, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	r, err := ds.client.Files.List().
		Q(query).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, mimeType, modifiedTime)").
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to list dataset files: %w", err)
	}

	for _, file := range r.Files {
		if strings.HasSuffix(strings.ToLower(file.Name), ".json") {
			return file.Id, file.Name, nil
		}
	}

	return "", "", fmt.Errorf("no dataset file found in folder %s", folderID)
}

// DownloadFile downloads a file's content from Google Drive
func (ds *DriveService) DownloadFile(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	return data, nil
}
