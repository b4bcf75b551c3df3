// Package controller provides output adapters for displaying curation
// progress and results.
package controller

import (
	m "crycurate/internal/model"
)

// SourceStat summarizes one matched source file for listings.
type SourceStat struct {
	Path     m.Path
	Hash     string
	Comments int
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeExtract
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithListMode sets the UI to source listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithExtractMode sets the UI to extraction mode with the expected number of
// files.
func WithExtractMode(total int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeExtract
		c.total = total
	}
}

// UI defines the interface for displaying curation runs.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplaySourceList(stats []SourceStat, err error) error
	DisplayRunInfo(workers int, model string, offline bool, cached int)
	DisplayFileStart(path m.Path)
	DisplayFileDone(path m.Path, kept int, dropped int)
	DisplaySummary(files int, comments int, kept int, cached int)
}
