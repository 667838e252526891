package ui

import (
	inferenceApp "github.com/ChiaviniK/ComexioCase/business/inference/app"
	trendsApp "github.com/ChiaviniK/ComexioCase/business/trends/app"
)

// Message types for TUI updates

// BatchMsg is sent when a category refresh completes.
type BatchMsg struct {
	Batch *inferenceApp.Batch
}

// TrendsMsg is sent when a ranking completes.
type TrendsMsg struct {
	Report *trendsApp.Report
}

// ArtifactMsg is sent when export files have been written.
type ArtifactMsg struct {
	Kind  string // "csv", "charts"
	Paths []string
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // "config", "catalog", "rates", "listings"
	Status  string // "connecting", "connected", "done", "failed"
	Message string
}
