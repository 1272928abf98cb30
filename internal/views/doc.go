// Package views tracks per-user interaction with cataloged files: the
// recently viewed list and video playback progress used for "continue
// watching".
package views
