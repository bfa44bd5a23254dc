package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// CollectImages reads the image files in dir (non-recursive) into upload
// items, in directory order. Non-image files are skipped.
func CollectImages(dir string) ([]models.UploadItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var items []models.UploadItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", entry.Name(), err)
		}

		items = append(items, models.UploadItem{Data: data, Filename: entry.Name()})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}

	return items, nil
}
