package service

import (
	"context"
	"log"

	"github.com/j-h-711/MongMongVillage-BE/pkg/storage"
)

// removeImages deletes previously uploaded files from storage. Cleanup
// is best-effort: the owning record is already gone or updated, so a
// failed destroy is only logged.
func removeImages(ctx context.Context, store storage.ImageStorage, urls []string) {
	if store == nil {
		return
	}
	for _, url := range urls {
		if err := store.DeleteImage(ctx, url); err != nil {
			log.Printf("failed to delete image %s from storage: %v", url, err)
		}
	}
}
