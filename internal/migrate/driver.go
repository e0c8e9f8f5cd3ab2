// Package migrate rebuilds a Joplin folder hierarchy inside a FeatherNotes
// document: folders become container nodes, notes become leaves.
package migrate

import (
	"fmt"

	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/hierarchy"
)

// State is the driver's position in a run.
type State int

const (
	StateInit State = iota
	StateFoldersIndexed
	StateStructuralPassComplete
	StateContentPassComplete
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateFoldersIndexed:
		return "folders-indexed"
	case StateStructuralPassComplete:
		return "structural-pass-complete"
	case StateContentPassComplete:
		return "content-pass-complete"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ContentFunc returns the converted body for a note. An error skips the note.
type ContentFunc func(note domain.NoteRecord) (string, error)

// Driver merges indexed records into a document. It is single-threaded: the
// document must not be touched by anyone else until Finish.
type Driver struct {
	idx    *hierarchy.Index
	doc    *feather.Document
	sink   Sink
	state  State
	report Report
}

// NewDriver returns a driver in StateInit. A nil sink discards events.
func NewDriver(doc *feather.Document, sink Sink) *Driver {
	if sink == nil {
		sink = NopSink{}
	}
	return &Driver{doc: doc, sink: sink}
}

// State returns the current state.
func (d *Driver) State() State {
	return d.state
}

func (d *Driver) expect(want State) error {
	if d.state != want {
		return fmt.Errorf("migrate: driver is %s, want %s", d.state, want)
	}
	return nil
}

// Index builds the hierarchy index. Invalid input is fatal and leaves the
// document untouched.
func (d *Driver) Index(folders []domain.FolderRecord, notes []domain.NoteRecord) (*hierarchy.Index, error) {
	if err := d.expect(StateInit); err != nil {
		return nil, err
	}
	idx, err := hierarchy.New(folders, notes)
	if err != nil {
		return nil, fmt.Errorf("index records: %w", err)
	}
	d.idx = idx
	d.state = StateFoldersIndexed
	return idx, nil
}

// StructuralPass merges one container node per folder, in the given order.
// Each folder is inserted as a leaf under its parent's path, so roots land at
// the top of the forest. Parents must precede children.
func (d *Driver) StructuralPass(folders []domain.FolderRecord) error {
	if err := d.expect(StateFoldersIndexed); err != nil {
		return err
	}
	for _, f := range folders {
		path, err := d.idx.ResolveParentPath(f.ID)
		if err != nil {
			d.skipped(KindFolder, f.ID, f.Title, err)
			continue
		}
		out, err := d.doc.Insert(path, f.Title, "")
		if err != nil {
			d.skipped(KindFolder, f.ID, f.Title, err)
			continue
		}
		d.merged(KindFolder, path, f.Title, out)
		if out.Inserted {
			d.report.FoldersMerged++
		}
	}
	d.state = StateStructuralPassComplete
	return nil
}

// ContentPass merges the notes of each folder as leaves under the folder's
// own path. A note whose content fails is skipped.
func (d *Driver) ContentPass(folders []domain.FolderRecord, content ContentFunc) error {
	if err := d.expect(StateStructuralPassComplete); err != nil {
		return err
	}
	for _, f := range folders {
		notes := d.idx.NotesOf(f.ID)
		if len(notes) == 0 {
			continue
		}
		path, err := d.idx.ResolvePath(f.ID)
		if err != nil {
			for _, n := range notes {
				d.skipped(KindNote, n.ID, n.Title, err)
			}
			continue
		}
		for _, n := range notes {
			body, err := content(n)
			if err != nil {
				d.skipped(KindNote, n.ID, n.Title, err)
				continue
			}
			out, err := d.doc.Insert(path, n.Title, body)
			if err != nil {
				d.skipped(KindNote, n.ID, n.Title, err)
				continue
			}
			d.merged(KindNote, path, n.Title, out)
			if out.Inserted {
				d.report.NotesMerged++
			}
		}
	}
	d.state = StateContentPassComplete
	return nil
}

// SkipNotes records notes whose folder path cannot be resolved, such as
// orphans whose parent folder is missing from the index. Notes that do
// resolve are left alone.
func (d *Driver) SkipNotes(notes []domain.NoteRecord) {
	for _, n := range notes {
		if _, err := d.idx.ResolveNotePath(n); err != nil {
			d.skipped(KindNote, n.ID, n.Title, err)
		}
	}
}

// Finish moves to StateDone and returns the report.
func (d *Driver) Finish() (*Report, error) {
	if err := d.expect(StateContentPassComplete); err != nil {
		return nil, err
	}
	d.state = StateDone
	r := d.report
	return &r, nil
}

func (d *Driver) merged(kind string, path domain.Path, name string, out feather.Outcome) {
	if out.ContainerCreated {
		d.report.ContainersCreated++
	}
	if !out.Inserted {
		d.report.Duplicates++
	}
	d.sink.Merged(kind, path, name, out.Inserted)
}

func (d *Driver) skipped(kind, id, title string, err error) {
	d.sink.Skipped(d.report.skip(kind, id, title, err))
}

// Execute runs both passes of plan on an indexed driver and finishes.
func (d *Driver) Execute(plan Plan, content ContentFunc) (*Report, error) {
	if err := d.StructuralPass(plan.Structural); err != nil {
		return nil, err
	}
	if err := d.ContentPass(plan.Content, content); err != nil {
		return nil, err
	}
	d.SkipNotes(plan.Orphans)
	return d.Finish()
}
