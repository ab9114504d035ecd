package plugin

import (
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
)

// Reporter is the host's user-facing sink.
type Reporter interface {
	// Info reports an advisory notice.
	Info(message string)

	// Created reports that an artifact of the given kind was written to path.
	Created(path string, kind ArtifactKind)
}

// SlogReporter forwards reporter calls to a structured logger.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a reporter writing to logger (or the default logger).
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) Info(message string) {
	r.logger.Info(message)
}

func (r *SlogReporter) Created(path string, kind ArtifactKind) {
	r.logger.Info("Artifact created", logfields.Path(path), logfields.Kind(kind.String()))
}

// CreatedArtifact is one Created notification captured by a RecordingReporter.
type CreatedArtifact struct {
	Path string
	Kind ArtifactKind
}

// RecordingReporter captures notifications in memory. The CLI uses it to print
// a summary; tests use it to assert on reported artifacts.
type RecordingReporter struct {
	mu        sync.Mutex
	next      Reporter
	infos     []string
	artifacts []CreatedArtifact
}

// NewRecordingReporter creates a recorder that also forwards to next when non-nil.
func NewRecordingReporter(next Reporter) *RecordingReporter {
	return &RecordingReporter{next: next}
}

func (r *RecordingReporter) Info(message string) {
	r.mu.Lock()
	r.infos = append(r.infos, message)
	r.mu.Unlock()
	if r.next != nil {
		r.next.Info(message)
	}
}

func (r *RecordingReporter) Created(path string, kind ArtifactKind) {
	r.mu.Lock()
	r.artifacts = append(r.artifacts, CreatedArtifact{Path: path, Kind: kind})
	r.mu.Unlock()
	if r.next != nil {
		r.next.Created(path, kind)
	}
}

// Infos returns a copy of the recorded advisory notices.
func (r *RecordingReporter) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

// Artifacts returns a copy of the recorded artifact notifications.
func (r *RecordingReporter) Artifacts() []CreatedArtifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CreatedArtifact(nil), r.artifacts...)
}
