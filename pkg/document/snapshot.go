// Package document ties the template pipeline together: one Snapshot per
// source and edit set, holding the index, sample data, patched source and
// preview computed from them.
package document

import (
	"github.com/yaklabco/tmplpatch/pkg/directive"
	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/patch"
	"github.com/yaklabco/tmplpatch/pkg/placeholder"
	"github.com/yaklabco/tmplpatch/pkg/preview"
	"github.com/yaklabco/tmplpatch/pkg/sample"
)

// Options configures the pipeline.
type Options struct {
	// Lookup chooses sample values. Nil selects sample.Default.
	Lookup sample.Lookup

	// Resolver substitutes placeholders. Nil uses the default suffix.
	Resolver *placeholder.Resolver

	// Stripper removes directives. Nil uses the default marker.
	Stripper *directive.Stripper

	// Index bounds the tokenizer.
	Index htmlpos.Options

	// Preview controls preview rendering.
	Preview preview.Options
}

func (o Options) withDefaults() Options {
	if o.Lookup == nil {
		o.Lookup = sample.Default()
	}
	if o.Resolver == nil {
		o.Resolver = placeholder.NewResolver()
	}
	if o.Stripper == nil {
		o.Stripper = directive.NewStripper(directive.DefaultMarker)
	}
	return o
}

// ToResolved fills placeholders from data and strips directive tags.
func ToResolved(source string, data placeholder.Data) string {
	return directive.Strip(placeholder.Resolve(source, data))
}

// Snapshot is the immutable result of running the pipeline on one source
// and edit set. Every field is computed once by New.
type Snapshot struct {
	opts   Options
	source string
	edits  patch.EditSet

	records  []htmlpos.Record
	indexErr error

	names   []string
	data    placeholder.Data
	patched string

	resolved string
	preview  string
	ids      preview.IDTable
}

// New runs the pipeline. When the source cannot be indexed the snapshot
// degrades: the patched source equals the source, there are no records,
// the preview is built from the resolved source and selection queries
// report false.
func New(source string, edits patch.EditSet, opts Options) *Snapshot {
	opts = opts.withDefaults()
	s := &Snapshot{opts: opts, source: source, edits: edits}

	s.names = opts.Resolver.CollectNames(source)
	s.data = opts.Resolver.GenerateDummyData(source, opts.Lookup)

	s.records, s.indexErr = opts.Index.Index(source)
	if s.indexErr != nil {
		s.records = nil
		s.patched = source
	} else {
		s.patched = patch.Apply(source, s.records, edits)
		s.ids = preview.NewIDTable(s.records, edits)
	}

	s.resolved = opts.Stripper.Strip(opts.Resolver.Resolve(s.patched, s.data))
	s.preview = opts.Preview.BuildMarkup(s.resolved)
	return s
}

// WithEdits returns a snapshot of the same source under different edits.
func (s *Snapshot) WithEdits(edits patch.EditSet) *Snapshot {
	return New(s.source, edits, s.opts)
}

// WithSource returns a snapshot of new source text. Edits are dropped
// because element ids do not carry over between sources.
func (s *Snapshot) WithSource(source string) *Snapshot {
	return New(source, patch.NewEditSet(), s.opts)
}

// Source returns the original text.
func (s *Snapshot) Source() string { return s.source }

// Edits returns the edit set the snapshot was built with.
func (s *Snapshot) Edits() patch.EditSet { return s.edits }

// Records returns the element records of the source. The slice must not
// be modified.
func (s *Snapshot) Records() []htmlpos.Record { return s.records }

// IndexErr returns the indexing error, if any.
func (s *Snapshot) IndexErr() error { return s.indexErr }

// Names returns the placeholder names referenced by the source.
func (s *Snapshot) Names() []string { return s.names }

// Data returns the generated sample data.
func (s *Snapshot) Data() placeholder.Data { return s.data }

// Patched returns the source with the edits applied.
func (s *Snapshot) Patched() string { return s.patched }

// Resolved returns the patched source with placeholders filled and
// directives stripped.
func (s *Snapshot) Resolved() string { return s.resolved }

// Preview returns the tagged preview markup.
func (s *Snapshot) Preview() string { return s.preview }

// IDs returns the preview index table.
func (s *Snapshot) IDs() preview.IDTable { return s.ids }

// Selection maps a source selection [from, to] to the preview index of the
// smallest element containing it.
func (s *Snapshot) Selection(from, to int) (int, bool) {
	id, ok := htmlpos.ContainingID(s.records, from, to)
	if !ok {
		return -1, false
	}
	return s.ids.IndexOf(id)
}

// Select maps a preview index to the source record shown there.
func (s *Snapshot) Select(previewIndex int) (htmlpos.Record, bool) {
	id := s.ids.IDAt(previewIndex)
	if id < 0 {
		return htmlpos.Record{}, false
	}
	return htmlpos.Find(s.records, id)
}

// Highlight maps a selected snippet of source to a preview index through
// its id or class attribute.
func (s *Snapshot) Highlight(code string) (int, bool) {
	selector, ok := preview.SelectorFromCode(code)
	if !ok {
		return -1, false
	}
	return preview.MatchIndex(s.preview, selector)
}
