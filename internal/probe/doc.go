// Package probe extracts media metadata (dimensions, duration) for the
// scanner.
//
// The default ImageProber reads only image headers via image.DecodeConfig.
// JPEG, PNG and GIF decoders come from the standard library; BMP, TIFF and
// WebP come from golang.org/x/image. Failures are not fatal: the scanner
// logs them at debug level and stores the file without metadata.
package probe
