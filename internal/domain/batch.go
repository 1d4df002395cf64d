package domain

import (
	"path/filepath"
	"strings"
)

// CopyBatch is the fixed input of one run: two directories and the ordered
// list of names to move between them.
type CopyBatch struct {
	SourceDir string
	TargetDir string
	Files     []string
}

func (b CopyBatch) Item(name string) CopyItem {
	return CopyItem{
		Name:       name,
		SourcePath: filepath.Join(b.SourceDir, name),
		TargetPath: filepath.Join(b.TargetDir, name),
	}
}

// Items keeps list order and duplicates.
func (b CopyBatch) Items() []CopyItem {
	items := make([]CopyItem, 0, len(b.Files))
	for _, name := range b.Files {
		items = append(items, b.Item(name))
	}
	return items
}

func IsImageExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".heic":
		return true
	default:
		return false
	}
}

// IsJpegExtension reports whether EXIF data can be expected in the file.
func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
