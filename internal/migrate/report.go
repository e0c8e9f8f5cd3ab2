package migrate

import (
	"github.com/sirupsen/logrus"

	"github.com/lherron/joplin2fnx/internal/domain"
)

// Item kinds reported by the driver.
const (
	KindFolder = "folder"
	KindNote   = "note"
)

// Skipped identifies an item left out of the output and why.
type Skipped struct {
	Kind   string `json:"kind" yaml:"kind"`
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

// Report summarizes a run.
type Report struct {
	FoldersMerged     int       `json:"folders_merged" yaml:"folders_merged"`
	NotesMerged       int       `json:"notes_merged" yaml:"notes_merged"`
	ContainersCreated int       `json:"containers_created" yaml:"containers_created"`
	Duplicates        int       `json:"duplicates" yaml:"duplicates"`
	Skipped           []Skipped `json:"skipped" yaml:"skipped"`
}

func (r *Report) skip(kind, id, title string, err error) Skipped {
	s := Skipped{Kind: kind, ID: id, Title: title, Reason: err.Error(), Err: err}
	r.Skipped = append(r.Skipped, s)
	return s
}

// Sink receives one event per merged or skipped item.
type Sink interface {
	Merged(kind string, path domain.Path, name string, inserted bool)
	Skipped(item Skipped)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Merged(string, domain.Path, string, bool) {}
func (NopSink) Skipped(Skipped)                          {}

// LogSink writes events to a logrus entry: merges at debug, skips at warn.
type LogSink struct {
	Entry *logrus.Entry
}

func (s LogSink) Merged(kind string, path domain.Path, name string, inserted bool) {
	s.Entry.WithFields(logrus.Fields{
		"kind":     kind,
		"path":     path.String(),
		"name":     name,
		"inserted": inserted,
	}).Debug("merged")
}

func (s LogSink) Skipped(item Skipped) {
	s.Entry.WithFields(logrus.Fields{
		"kind":  item.Kind,
		"id":    item.ID,
		"title": item.Title,
	}).WithError(item.Err).Warn("skipped")
}
