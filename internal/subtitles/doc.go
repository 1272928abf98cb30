// Package subtitles locates sidecar subtitle files for videos.
//
// A subtitle belongs to a video when it lives in the same directory, has one
// of the subtitle extensions known to mediatypes (.srt, .vtt, .ass, .ssa,
// .sub), and its name without extension starts with the video's name
// without extension. Language-tagged files such as "movie.en.srt" or
// "movie.forced.ass" therefore all attach to "movie.mp4".
package subtitles
