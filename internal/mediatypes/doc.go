// Package mediatypes classifies catalog files by extension.
//
// This package is a dependency-free foundation imported by the store, the
// scanner and the HTTP layer without creating import cycles.
//
// # File Types
//
//	mediatypes.FileTypeVideo    // mp4, mkv, avi, ...
//	mediatypes.FileTypeImage    // jpg, png, webp, ...
//	mediatypes.FileTypeAudio    // mp3, flac, ...
//	mediatypes.FileTypeDocument // pdf, docx, epub, txt, ...
//	mediatypes.FileTypeOther    // everything else, subtitles included
//
// # Extension Detection
//
// GetFileType normalises its input, so both ".MP4" and "mp4" classify as
// video:
//
//	fileType := mediatypes.GetFileType(filepath.Ext(name))
//
// Subtitle sidecars (srt, vtt, ass, ssa, sub) are recognised separately with
// IsSubtitleExtension; they are catalogued as ordinary files of type other.
package mediatypes
