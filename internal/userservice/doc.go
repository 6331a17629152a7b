// Package userservice is the HTTP client for the remote user profile service
// and the fire-and-forget wrapper the theme selector pushes updates through.
package userservice
