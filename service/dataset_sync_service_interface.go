package service

import "context"

// DatasetSyncServiceInterface defines the contract for dataset synchronization
type DatasetSyncServiceInterface interface {
	SyncDataset(ctx context.Context, folderID string) (string, int, error)
}
