package controller

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"groomify-backend/service"
)

// maxAvatarUpload caps avatar uploads at 10 MB
const maxAvatarUpload = 10 << 20

// AvatarController handles HTTP requests for profile avatars
type AvatarController struct {
	avatars *service.AvatarService
}

// NewAvatarController creates a new AvatarController
func NewAvatarController(avatars *service.AvatarService) *AvatarController {
	return &AvatarController{
		avatars: avatars,
	}
}

// Cartoonify handles POST /avatar/cartoonify
// Accepts a multipart upload under the "image" field and returns the
// cartoonified avatar as a base64 data URI.
func (c *AvatarController) Cartoonify(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Cartoonify: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Cartoonify: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, _, ok := c.readUpload(w, r)
	if !ok {
		return
	}

	avatar, err := c.avatars.Cartoonify(data)
	if err != nil {
		log.Printf("❌ Cartoonify: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Failed to process image: %v", err))
		return
	}

	log.Printf("✅ Cartoonify: Avatar generated")
	writeJSON(w, http.StatusOK, map[string]string{"avatar": avatar})
}

// UploadProfileImage handles POST /avatar/profile?user_id=...
// Stores the uploaded photo and returns its public path.
func (c *AvatarController) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadProfileImage: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ UploadProfileImage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
		return
	}

	data, filename, ok := c.readUpload(w, r)
	if !ok {
		return
	}

	path, err := c.avatars.SaveProfileImage(userID, filename, data)
	if err != nil {
		log.Printf("❌ UploadProfileImage: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Failed to save image: %v", err))
		return
	}

	log.Printf("✅ UploadProfileImage: Saved for user %s at %s", userID, path)
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// readUpload extracts the "image" field from a multipart request.
func (c *AvatarController) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(maxAvatarUpload); err != nil {
		log.Printf("❌ Failed to parse multipart form: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, "Expected a multipart upload with an image field")
		return nil, "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Printf("❌ Missing image field: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, "image field is required")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ Failed to read upload: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to read upload: %v", err))
		return nil, "", false
	}

	return data, header.Filename, true
}
