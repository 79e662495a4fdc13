package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"crag-outfitters/service"
)

// ImageController serves resized product image variants
type ImageController struct {
	images *service.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(images *service.ImageService) *ImageController {
	return &ImageController{
		images: images,
	}
}

// GetImage handles GET /images/{file}?size=thumb|medium
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}

	log.Printf("🔍 GetImage: file=%s size=%s", file, size)

	data, err := c.images.Variant(file, size)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("❌ GetImage: Image not found: %s", file)
			http.Error(w, fmt.Sprintf("Image not found: %s", file), http.StatusNotFound)
			return
		}
		log.Printf("❌ GetImage: Error producing variant: %v", err)
		http.Error(w, fmt.Sprintf("Failed to produce image variant: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: Error writing response: %v", err)
	}
}
