package mediatypes

import "strings"

// FileType is the coarse classification stored on every catalog file.
type FileType string

const (
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeAudio represents an audio file.
	FileTypeAudio FileType = "audio"
	// FileTypeDocument represents a document (pdf, office, text, ebook).
	FileTypeDocument FileType = "document"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// AllFileTypes lists every classification in a stable order.
var AllFileTypes = []FileType{
	FileTypeVideo,
	FileTypeImage,
	FileTypeAudio,
	FileTypeDocument,
	FileTypeOther,
}

// VideoExtensions maps file extensions to whether they are video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
	".m2ts": true,
	".ogv":  true,
}

// ImageExtensions maps file extensions to whether they are image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
}

// AudioExtensions maps file extensions to whether they are audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".aac":  true,
	".m4a":  true,
	".ogg":  true,
	".opus": true,
	".wma":  true,
	".alac": true,
	".aiff": true,
}

// DocumentExtensions maps file extensions to whether they are document formats.
var DocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".odt":  true,
	".ods":  true,
	".txt":  true,
	".md":   true,
	".rtf":  true,
	".epub": true,
	".mobi": true,
	".csv":  true,
}

// SubtitleExtensions maps file extensions to whether they are subtitle sidecars.
// Subtitles classify as FileTypeOther; this set only drives sidecar matching.
var SubtitleExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".ass": true,
	".ssa": true,
	".sub": true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Videos
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
	".m2ts": "video/mp2t",
	".ogv":  "video/ogg",

	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",

	// Audio
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",

	// Documents
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".csv":  "text/csv; charset=utf-8",
	".epub": "application/epub+zip",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",

	// Subtitles
	".srt": "application/x-subrip",
	".vtt": "text/vtt; charset=utf-8",
}

// NormalizeExtension lower-cases ext and ensures a leading dot.
// An empty input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// GetFileType returns the FileType for a given file extension.
// Matching is case-insensitive and the leading dot is optional.
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(ext string) FileType {
	ext = NormalizeExtension(ext)
	switch {
	case VideoExtensions[ext]:
		return FileTypeVideo
	case ImageExtensions[ext]:
		return FileTypeImage
	case AudioExtensions[ext]:
		return FileTypeAudio
	case DocumentExtensions[ext]:
		return FileTypeDocument
	default:
		return FileTypeOther
	}
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[NormalizeExtension(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsSubtitleExtension reports whether ext names a subtitle sidecar format.
func IsSubtitleExtension(ext string) bool {
	return SubtitleExtensions[NormalizeExtension(ext)]
}

// IsValid reports whether t is one of the known classifications.
func (t FileType) IsValid() bool {
	for _, known := range AllFileTypes {
		if t == known {
			return true
		}
	}
	return false
}
