package router

import (
	"net/http"
	"strings"

	"groomify-backend/app/controller"
)

type Controllers struct {
	Recommendation *controller.RecommendationController
	Review         *controller.ReviewController
	Suggestion     *controller.SuggestionController
	Wardrobe       *controller.WardrobeController
	Event          *controller.EventController
	Weather        *controller.WeatherController
	Avatar         *controller.AvatarController
	DatasetSync    *controller.DatasetSyncController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Recommendation engine routes (the in-process recommender API)
	http.HandleFunc("/recommend", controllers.Recommendation.Recommend)
	http.HandleFunc("/feedback", controllers.Recommendation.Feedback)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		controllers.Recommendation.Status(w, r)
	})

	// Review workflow routes
	http.HandleFunc("/recommendations/generate", controllers.Review.Generate)
	http.HandleFunc("/recommendations/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/recommendations/sessions/")

		// Route to specific actions first
		if strings.HasSuffix(path, "/accept") {
			controllers.Review.Accept(w, r)
			return
		}
		if strings.HasSuffix(path, "/reject") {
			controllers.Review.Reject(w, r)
			return
		}
		if strings.HasSuffix(path, "/save") {
			controllers.Review.Save(w, r)
			return
		}

		// Generic /:id route
		if r.Method == http.MethodGet {
			controllers.Review.GetSession(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Review.DeleteSession(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Saved suggestion routes
	http.HandleFunc("/suggestions", controllers.Suggestion.List)
	http.HandleFunc("/suggestions/watch", controllers.Suggestion.Watch)
	http.HandleFunc("/suggestions/lookbook", controllers.Suggestion.DownloadLookbook)
	http.HandleFunc("/suggestions/lookbook/render", controllers.Suggestion.RenderLookbook)
	http.HandleFunc("/suggestions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Suggestion.Delete(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Wardrobe routes
	http.HandleFunc("/wardrobes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Wardrobe.Create(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Wardrobe.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/wardrobes/boxes/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/types") && r.Method == http.MethodGet {
			controllers.Wardrobe.BoxTypes(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
	http.HandleFunc("/wardrobes/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/wardrobes/")

		// Handle /wardrobes/:id/items
		if strings.HasSuffix(path, "/items") {
			if r.Method == http.MethodPost {
				controllers.Wardrobe.AddItem(w, r)
			} else if r.Method == http.MethodGet {
				controllers.Wardrobe.ListItems(w, r)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Generic /:id route
		if r.Method == http.MethodDelete {
			controllers.Wardrobe.Deactivate(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Clothing item routes
	http.HandleFunc("/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			controllers.Wardrobe.UpdateItem(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Wardrobe.DeleteItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Event routes
	http.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Event.Create(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Event.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/events/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Event.Delete(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Weather lookup
	http.HandleFunc("/weather", controllers.Weather.Lookup)

	// Avatar routes
	http.HandleFunc("/avatar/cartoonify", controllers.Avatar.Cartoonify)
	http.HandleFunc("/avatar/profile", controllers.Avatar.UploadProfileImage)

	// Uploaded profile images
	http.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	// Admin routes
	if controllers.DatasetSync != nil {
		http.HandleFunc("/admin/dataset/sync", controllers.DatasetSync.Sync)
	}
}
