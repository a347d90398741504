package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"groomify-backend/service"
)

// DatasetSyncController handles admin requests for dataset synchronization
type DatasetSyncController struct {
	syncService service.DatasetSyncServiceInterface
}

// NewDatasetSyncController creates a new DatasetSyncController
func NewDatasetSyncController(syncService service.DatasetSyncServiceInterface) *DatasetSyncController {
	return &DatasetSyncController{
		syncService: syncService,
	}
}

// Sync handles POST /admin/dataset/sync?folderId=...
// Pulls the newest dataset from Drive and hot-reloads the engine.
func (c *DatasetSyncController) Sync(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DatasetSync: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ DatasetSync: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "folderId is required")
		return
	}

	ctx := context.Background()
	fileName, rules, err := c.syncService.SyncDataset(ctx, folderID)
	if err != nil {
		log.Printf("❌ DatasetSync: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Dataset sync failed: %v", err))
		return
	}

	log.Printf("✅ DatasetSync: Loaded %d rules from %s", rules, fileName)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file":  fileName,
		"rules": rules,
	})
}
