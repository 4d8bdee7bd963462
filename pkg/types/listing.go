package types

import (
	"path/filepath"
	"strings"
)

// FileType is the backend's classification of a file
type FileType string

const (
	FileImage FileType = "image"
	FileSVG   FileType = "svg"
	FileVideo FileType = "video"
	FileAudio FileType = "audio"
	FileOther FileType = "other"
)

// HasThumbnail reports whether cards of this type show an image preview
func (t FileType) HasThumbnail() bool {
	return t == FileImage || t == FileSVG
}

// DirectoryEntry is a subdirectory of the listed directory
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FileEntry is a file of the listed directory that passed the filters
type FileEntry struct {
	Name string   `json:"name"`
	Path string   `json:"path"`
	Ext  string   `json:"ext"`
	Type FileType `json:"type"`
}

// Extension returns Ext, falling back to the extension of Name
func (f FileEntry) Extension() string {
	if f.Ext != "" {
		return f.Ext
	}
	return strings.ToLower(filepath.Ext(f.Name))
}

// Listing is one backend response for a directory. ParentDirectory is
// empty at the filesystem root.
type Listing struct {
	CurrentDirectory string           `json:"current_directory"`
	ParentDirectory  string           `json:"parent_directory"`
	Dirs             []DirectoryEntry `json:"dirs"`
	Files            []FileEntry      `json:"files"`
	TotalCount       int              `json:"total_count"`
}

// HasParent reports whether "up" navigation is possible
func (l *Listing) HasParent() bool {
	return l != nil && l.ParentDirectory != ""
}

// ResolvedIndex is the backend's answer to "where is this file in the
// filtered, sorted list". Index is -1 when the file is not part of it.
type ResolvedIndex struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// Found reports whether the file was located
func (r ResolvedIndex) Found() bool {
	return r.Index >= 0
}

// PickerFile is one row of the flat file-picker listing
type PickerFile struct {
	Name  string  `json:"name"`
	Path  string  `json:"path"`
	Size  int64   `json:"size"`
	MTime float64 `json:"mtime"`
}

// PickerListing is the flat, optionally recursive listing used by the
// simple file picker
type PickerListing struct {
	Dir   string       `json:"dir"`
	Count int          `json:"count"`
	Files []PickerFile `json:"files"`
}

// Names returns the file names in listing order
func (p *PickerListing) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.Files))
	for i, f := range p.Files {
		names[i] = f.Name
	}
	return names
}
