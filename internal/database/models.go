package database

import (
	"time"

	"media-catalog/internal/mediatypes"
)

// Directory is one cataloged directory. ParentID is empty for a scan root.
type Directory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	ParentID  string    `json:"parentId,omitempty"`
	FileCount int       `json:"fileCount"`
	TotalSize int64     `json:"totalSize"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DirectoryInput holds the fields needed to create a directory.
type DirectoryInput struct {
	Name      string
	Path      string
	ParentID  string
	FileCount int
	TotalSize int64
}

// DirectoryUpdate is a partial update; nil fields are left untouched.
type DirectoryUpdate struct {
	Name      *string
	ParentID  *string
	FileCount *int
	TotalSize *int64
}

// File is one cataloged regular file. HasSubtitles always mirrors
// len(SubtitlePaths) > 0.
type File struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Path          string              `json:"path"`
	DirectoryID   string              `json:"directoryId"`
	Type          mediatypes.FileType `json:"type"`
	Extension     string              `json:"extension"`
	Size          int64               `json:"size"`
	ThumbnailPath *string             `json:"thumbnailPath,omitempty"`
	Duration      *float64            `json:"duration,omitempty"`
	Width         *int                `json:"width,omitempty"`
	Height        *int                `json:"height,omitempty"`
	HasSubtitles  bool                `json:"hasSubtitles"`
	SubtitlePaths []string            `json:"subtitlePaths"`
	ModTime       *time.Time          `json:"modTime,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FileInput holds the fields needed to create a file.
type FileInput struct {
	Name          string
	Path          string
	DirectoryID   string
	Type          mediatypes.FileType
	Extension     string
	Size          int64
	ThumbnailPath *string
	Duration      *float64
	Width         *int
	Height        *int
	SubtitlePaths []string
	ModTime       *time.Time
}

// FileUpdate is a partial update; nil fields are left untouched. Setting
// SubtitlePaths also recomputes HasSubtitles.
type FileUpdate struct {
	Name          *string
	DirectoryID   *string
	Type          *mediatypes.FileType
	Extension     *string
	Size          *int64
	ThumbnailPath *string
	Duration      *float64
	Width         *int
	Height        *int
	SubtitlePaths *[]string
	ModTime       *time.Time
}

// FileBatchUpdate pairs a file id with its update for BatchUpdateFiles.
type FileBatchUpdate struct {
	ID     string
	Update FileUpdate
}

// FileFilter narrows GetFiles. Zero values mean "no filter".
type FileFilter struct {
	DirectoryID string
	Search      string
	Type        mediatypes.FileType
	Limit       int
	Offset      int
}

// ScanStatus is the lifecycle state of a scan job.
type ScanStatus string

const (
	ScanStatusIdle      ScanStatus = "idle"
	ScanStatusScanning  ScanStatus = "scanning"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusError     ScanStatus = "error"
)

// ScanJob records one scan attempt.
type ScanJob struct {
	ID           string     `json:"id"`
	Status       ScanStatus `json:"status"`
	Progress     int        `json:"progress"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

// ScanJobUpdate is a partial update; nil fields are left untouched.
type ScanJobUpdate struct {
	Status       *ScanStatus
	Progress     *int
	CompletedAt  *time.Time
	ErrorMessage *string
}

// RecentView is the last time a user opened a file.
type RecentView struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	FileID   string    `json:"fileId"`
	ViewedAt time.Time `json:"viewedAt"`
	File     *File     `json:"file,omitempty"`
}

// VideoProgress is a user's playback position in a video.
type VideoProgress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileID      string    `json:"fileId"`
	CurrentTime float64   `json:"currentTime"`
	Duration    float64   `json:"duration"`
	IsWatched   bool      `json:"isWatched"`
	UpdatedAt   time.Time `json:"updatedAt"`
	File        *File     `json:"file,omitempty"`
}

// TotalStats summarizes the whole catalog.
type TotalStats struct {
	TotalFiles       int                         `json:"totalFiles"`
	TotalSize        int64                       `json:"totalSize"`
	TotalDirectories int                         `json:"totalDirectories"`
	FilesByType      map[mediatypes.FileType]int `json:"filesByType"`
}
