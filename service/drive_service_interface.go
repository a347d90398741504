package service

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	LatestDatasetFile(folderID string) (string, string, error)
	DownloadFile(fileID string) ([]byte, error)
}
