package project

import (
	"path"
	"strings"
)

// Asset subfolders of a project directory.
const (
	ImagesDir = "images"
	VideosDir = "videos"
	GanttDir  = "gantt"
)

// MediaKind groups the file extensions recognized for one kind of asset.
type MediaKind struct {
	Name       string
	Extensions []string
}

var (
	ImageKind = MediaKind{Name: "image", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}}
	VideoKind = MediaKind{Name: "video", Extensions: []string{".mp4", ".webm", ".mov"}}
)

// Matches reports whether filename carries one of the kind's extensions,
// compared case-insensitively.
func (k MediaKind) Matches(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return false
	}
	for _, known := range k.Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// Filter keeps the names matching the kind, in their original order.
func (k MediaKind) Filter(names []string) []string {
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if k.Matches(name) {
			matched = append(matched, name)
		}
	}
	return matched
}

// TitleFromFilename strips the last extension from filename.
func TitleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

// NewMediaAsset builds the asset for filename inside dir.
func NewMediaAsset(dir, filename string) MediaAsset {
	return MediaAsset{
		Path:  path.Join(dir, filename),
		Title: TitleFromFilename(filename),
	}
}
