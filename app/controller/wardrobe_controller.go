package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"groomify-backend/models"
	"groomify-backend/repository"
)

// WardrobeController handles HTTP requests for wardrobes and the
// clothing items stored in their boxes
type WardrobeController struct {
	wardrobes repository.WardrobeRepositoryInterface
	items     repository.ClothingItemRepositoryInterface
}

// NewWardrobeController creates a new WardrobeController
func NewWardrobeController(wardrobes repository.WardrobeRepositoryInterface, items repository.ClothingItemRepositoryInterface) *WardrobeController {
	return &WardrobeController{
		wardrobes: wardrobes,
		items:     items,
	}
}

// Create handles POST /wardrobes
func (c *WardrobeController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateWardrobe: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateWardrobeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateWardrobe: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "user_id cannot be empty")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if len(req.Labels) == 0 {
		writeErrorJSON(w, http.StatusBadRequest, "at least one box label is required")
		return
	}

	ctx := context.Background()
	wardrobe, err := c.wardrobes.Insert(ctx, req)
	if err != nil {
		log.Printf("❌ CreateWardrobe: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create wardrobe: %v", err))
		return
	}

	log.Printf("✅ CreateWardrobe: Created wardrobe %d for user %s", wardrobe.ID, wardrobe.UserID)
	writeJSON(w, http.StatusCreated, wardrobe)
}

// List handles GET /wardrobes?user_id=...
func (c *WardrobeController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListWardrobes: Received %s request to %s", r.Method, r.URL.Path)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx := context.Background()
	wardrobes, err := c.wardrobes.ListActiveByUser(ctx, userID)
	if err != nil {
		log.Printf("❌ ListWardrobes: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list wardrobes: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, wardrobes)
}

// Deactivate handles DELETE /wardrobes/:id
// Wardrobes are soft-deleted so their items stay recoverable.
func (c *WardrobeController) Deactivate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeactivateWardrobe: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := wardrobeIDFromPath(w, r.URL.Path)
	if !ok {
		return
	}

	ctx := context.Background()
	if err := c.wardrobes.Deactivate(ctx, id); err != nil {
		log.Printf("❌ DeactivateWardrobe: %v", err)
		if strings.Contains(err.Error(), "does not exist") {
			writeErrorJSON(w, http.StatusNotFound, err.Error())
			return
		}
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete wardrobe: %v", err))
		return
	}

	log.Printf("✅ DeactivateWardrobe: Wardrobe %d deactivated", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Wardrobe deleted"})
}

// BoxTypes handles GET /wardrobes/boxes/:box/types
// Returns the clothing types accepted by a box.
func (c *WardrobeController) BoxTypes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/wardrobes/boxes/")
	box := strings.TrimSuffix(path, "/types")

	types := models.ClothingTypesForBox(box)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"box":    box,
		"types":  types,
		"custom": models.CustomClothingType,
	})
}

// AddItem handles POST /wardrobes/:id/items
// The item's box must be one of the wardrobe's labels and the clothing
// type must belong to that box (or be custom).
func (c *WardrobeController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	wardrobeID, ok := wardrobeIDFromPath(w, r.URL.Path)
	if !ok {
		return
	}

	var req models.SaveClothingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	ctx := context.Background()
	wardrobe, err := c.wardrobes.GetByID(ctx, wardrobeID)
	if err != nil {
		log.Printf("❌ AddItem: %v", err)
		if strings.Contains(err.Error(), "does not exist") {
			writeErrorJSON(w, http.StatusNotFound, err.Error())
			return
		}
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load wardrobe: %v", err))
		return
	}

	if msg := validateItemRequest(wardrobe, req); msg != "" {
		log.Printf("❌ AddItem: %s", msg)
		writeErrorJSON(w, http.StatusBadRequest, msg)
		return
	}

	item, err := c.items.Insert(ctx, wardrobeID, req)
	if err != nil {
		log.Printf("❌ AddItem: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save item: %v", err))
		return
	}

	log.Printf("✅ AddItem: Item %d added to wardrobe %d box %s", item.ID, wardrobeID, item.Box)
	writeJSON(w, http.StatusCreated, item)
}

// ListItems handles GET /wardrobes/:id/items
func (c *WardrobeController) ListItems(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListItems: Received %s request to %s", r.Method, r.URL.Path)

	wardrobeID, ok := wardrobeIDFromPath(w, r.URL.Path)
	if !ok {
		return
	}

	ctx := context.Background()
	items, err := c.items.ListByWardrobe(ctx, wardrobeID)
	if err != nil {
		log.Printf("❌ ListItems: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list items: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// UpdateItem handles PUT /items/:id
func (c *WardrobeController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateItem: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := itemIDFromPath(w, r.URL.Path)
	if !ok {
		return
	}

	var req models.SaveClothingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateItem: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if !models.ClothingTypeAllowed(req.Box, req.ClothingType) {
		msg := fmt.Sprintf("clothing type %q is not allowed in box %q", req.ClothingType, req.Box)
		log.Printf("❌ UpdateItem: %s", msg)
		writeErrorJSON(w, http.StatusBadRequest, msg)
		return
	}

	ctx := context.Background()
	item, err := c.items.Update(ctx, id, req)
	if err != nil {
		log.Printf("❌ UpdateItem: %v", err)
		if strings.Contains(err.Error(), "does not exist") {
			writeErrorJSON(w, http.StatusNotFound, err.Error())
			return
		}
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to update item: %v", err))
		return
	}

	log.Printf("✅ UpdateItem: Item %d updated", id)
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id
func (c *WardrobeController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteItem: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := itemIDFromPath(w, r.URL.Path)
	if !ok {
		return
	}

	ctx := context.Background()
	if err := c.items.Delete(ctx, id); err != nil {
		log.Printf("❌ DeleteItem: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete item: %v", err))
		return
	}

	log.Printf("✅ DeleteItem: Item %d deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// validateItemRequest checks a clothing item against its wardrobe's
// box labels and the box taxonomy. Returns an error message or "".
func validateItemRequest(wardrobe *models.Wardrobe, req models.SaveClothingItemRequest) string {
	if strings.TrimSpace(req.Box) == "" {
		return "box cannot be empty"
	}
	if strings.TrimSpace(req.ClothingType) == "" {
		return "clothing_type cannot be empty"
	}

	boxKnown := false
	for _, label := range wardrobe.Labels {
		if strings.EqualFold(label, req.Box) {
			boxKnown = true
			break
		}
	}
	if !boxKnown {
		return fmt.Sprintf("wardrobe %q has no box named %q", wardrobe.Name, req.Box)
	}

	if !models.ClothingTypeAllowed(req.Box, req.ClothingType) {
		return fmt.Sprintf("clothing type %q is not allowed in box %q", req.ClothingType, req.Box)
	}
	return ""
}

// wardrobeIDFromPath extracts the numeric wardrobe ID from paths like
// /wardrobes/:id and /wardrobes/:id/items
func wardrobeIDFromPath(w http.ResponseWriter, path string) (int, bool) {
	path = strings.TrimPrefix(path, "/wardrobes/")
	parts := strings.Split(path, "/")
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid wardrobe id")
		return 0, false
	}
	return id, true
}

// itemIDFromPath extracts the numeric item ID from /items/:id
func itemIDFromPath(w http.ResponseWriter, path string) (int, bool) {
	path = strings.TrimPrefix(path, "/items/")
	id, err := strconv.Atoi(strings.Split(path, "/")[0])
	if err != nil || id <= 0 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
