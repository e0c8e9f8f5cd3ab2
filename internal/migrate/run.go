package migrate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lherron/joplin2fnx/internal/convert"
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/hierarchy"
)

// DefaultJobs is the number of concurrent body fetches.
const DefaultJobs = 4

// Source supplies flat records and note bodies. Both the Joplin API client
// and the profile database reader implement it.
type Source interface {
	Folders(ctx context.Context) ([]domain.FolderRecord, error)
	Notes(ctx context.Context) ([]domain.NoteRecord, error)
	NoteBody(ctx context.Context, id string) (string, error)
}

// Options configure Run.
type Options struct {
	// Selector picks the folders to migrate; empty means the whole collection.
	Selector string
	// Exclude holds glob patterns; matching folders and their subtrees are skipped.
	Exclude   []string
	Jobs      int
	Converter convert.Converter
	Sink      Sink
}

// Run fetches records from src and merges them into doc. Fetch, index and
// selection failures are fatal and leave doc untouched; per-item failures are
// reported in the returned Report.
func Run(ctx context.Context, src Source, doc *feather.Document, opts Options) (*Report, error) {
	folders, err := src.Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch folders: %w", err)
	}
	notes, err := src.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}

	d := NewDriver(doc, opts.Sink)
	idx, err := d.Index(folders, notes)
	if err != nil {
		return nil, err
	}
	plan, err := BuildPlan(idx, opts.Selector, opts.Exclude)
	if err != nil {
		return nil, err
	}

	if err := d.StructuralPass(plan.Structural); err != nil {
		return nil, err
	}

	conv := opts.Converter
	if conv == nil {
		conv = convert.NewMarkdown()
	}
	bodies := Prefetch(ctx, src, conv, notesOf(idx, plan.Content), opts.Jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := d.ContentPass(plan.Content, bodies.Content); err != nil {
		return nil, err
	}
	d.SkipNotes(plan.Orphans)
	return d.Finish()
}

// BuildPlan resolves selector and exclude patterns against idx.
func BuildPlan(idx *hierarchy.Index, selector string, exclude []string) (Plan, error) {
	prune, err := hierarchy.ExcludeTitles(exclude)
	if err != nil {
		return Plan{}, err
	}
	roots, err := idx.Select(selector)
	if err != nil {
		return Plan{}, fmt.Errorf("select %q: %w", selector, err)
	}
	if selectsAll(selector) {
		return PlanAll(idx, prune)
	}
	return PlanSelected(idx, roots, prune)
}

func selectsAll(selector string) bool {
	switch selector {
	case "", "/":
		return true
	}
	return false
}

func notesOf(idx *hierarchy.Index, folders []domain.FolderRecord) []domain.NoteRecord {
	var out []domain.NoteRecord
	for _, f := range folders {
		out = append(out, idx.NotesOf(f.ID)...)
	}
	return out
}

// Bodies holds prefetched, converted note bodies.
type Bodies struct {
	mu      sync.Mutex
	content map[string]string
	errs    map[string]error
}

// Content returns the converted body of note, or the error that prevented it.
func (b *Bodies) Content(note domain.NoteRecord) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err, ok := b.errs[note.ID]; ok {
		return "", err
	}
	body, ok := b.content[note.ID]
	if !ok {
		return "", fmt.Errorf("body of note %s was not fetched", note.ID)
	}
	return body, nil
}

func (b *Bodies) set(id, body string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.errs[id] = err
		return
	}
	b.content[id] = body
}

// Prefetch fetches and converts the bodies of notes with at most jobs
// requests in flight. Failures are kept per note and never stop the others.
func Prefetch(ctx context.Context, src Source, conv convert.Converter, notes []domain.NoteRecord, jobs int) *Bodies {
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	b := &Bodies{
		content: make(map[string]string, len(notes)),
		errs:    make(map[string]error),
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for _, n := range notes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				b.set(n.ID, "", err)
				return nil
			}
			raw, err := src.NoteBody(ctx, n.ID)
			if err != nil {
				b.set(n.ID, "", fmt.Errorf("fetch body: %w", err))
				return nil
			}
			html, err := conv.Convert(raw)
			if err != nil {
				b.set(n.ID, "", fmt.Errorf("convert body: %w", err))
				return nil
			}
			b.set(n.ID, html, nil)
			return nil
		})
	}
	_ = g.Wait()
	return b
}
