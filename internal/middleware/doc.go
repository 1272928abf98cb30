// Package middleware provides HTTP middleware for the media catalog API.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with optional
//     suppression of health check noise
//   - Prometheus request metrics labelled by route template
package middleware
