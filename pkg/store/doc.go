// Package store defines the Driver and Cursor interfaces, the backend
// Config, and standard error values for the vellum document store layer.
package store
