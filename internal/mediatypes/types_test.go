package mediatypes

import (
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want FileType
	}{
		{name: "MP4 video", ext: ".mp4", want: FileTypeVideo},
		{name: "MKV video", ext: ".mkv", want: FileTypeVideo},
		{name: "upper case video", ext: ".MP4", want: FileTypeVideo},
		{name: "missing dot", ext: "mkv", want: FileTypeVideo},
		{name: "JPEG image", ext: ".jpg", want: FileTypeImage},
		{name: "WebP image", ext: ".webp", want: FileTypeImage},
		{name: "FLAC audio", ext: ".flac", want: FileTypeAudio},
		{name: "PDF document", ext: ".pdf", want: FileTypeDocument},
		{name: "EPUB document", ext: ".EPUB", want: FileTypeDocument},
		{name: "subtitle is other", ext: ".srt", want: FileTypeOther},
		{name: "Unknown extension", ext: ".xyz", want: FileTypeOther},
		{name: "Empty extension", ext: "", want: FileTypeOther},
		{name: "lone dot", ext: ".", want: FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFileType(tt.ext)
			if got != tt.want {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestExtensionSetsDoNotOverlap(t *testing.T) {
	sets := map[FileType]map[string]bool{
		FileTypeVideo:    VideoExtensions,
		FileTypeImage:    ImageExtensions,
		FileTypeAudio:    AudioExtensions,
		FileTypeDocument: DocumentExtensions,
	}

	seen := make(map[string]FileType)
	for fileType, set := range sets {
		for ext := range set {
			if prev, ok := seen[ext]; ok {
				t.Errorf("extension %s listed as both %s and %s", ext, prev, fileType)
			}
			seen[ext] = fileType
		}
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", "video/mp4"},
		{"MKV", "video/x-matroska"},
		{".jpg", "image/jpeg"},
		{".mp3", "audio/mpeg"},
		{".pdf", "application/pdf"},
		{".vtt", "text/vtt; charset=utf-8"},
		{".unknown", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetMimeType(tt.ext); got != tt.want {
			t.Errorf("GetMimeType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := map[string]string{
		"":       "",
		".MP4":   ".mp4",
		"srt":    ".srt",
		" .Txt ": ".txt",
	}

	for in, want := range tests {
		if got := NormalizeExtension(in); got != want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsSubtitleExtension(t *testing.T) {
	for _, ext := range []string{".srt", ".VTT", "ass", ".ssa", ".sub"} {
		if !IsSubtitleExtension(ext) {
			t.Errorf("IsSubtitleExtension(%q) = false, want true", ext)
		}
	}
	for _, ext := range []string{".mp4", ".txt", ""} {
		if IsSubtitleExtension(ext) {
			t.Errorf("IsSubtitleExtension(%q) = true, want false", ext)
		}
	}
}

func TestFileTypeIsValid(t *testing.T) {
	for _, ft := range AllFileTypes {
		if !ft.IsValid() {
			t.Errorf("%q should be valid", ft)
		}
	}
	if FileType("folder").IsValid() {
		t.Error("folder should not be a valid file type")
	}
}
