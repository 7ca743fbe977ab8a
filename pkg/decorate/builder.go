package decorate

import (
	"slices"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Builder turns a syntax tree, a selection and a viewport into a decoration
// Set. A Builder holds only configuration and may be reused.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder with the given options applied over the defaults.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: applyOptions(opts)}
}

// BuildDecorations builds the decoration set for one document state.
// A nil viewport means the whole document is visible.
func BuildDecorations(snap *mdast.FileSnapshot, sel Selection, viewport []mdast.SourceRange, opts ...Option) *Set {
	return NewBuilder(opts...).Build(snap, sel, viewport)
}

// Build walks only the nodes overlapping the viewport, classifies each one
// and emits style and replace requests for every construct found.
// A nil viewport means the whole document is visible.
func (b *Builder) Build(snap *mdast.FileSnapshot, sel Selection, viewport []mdast.SourceRange) *Set {
	if snap == nil || snap.Root == nil {
		return &Set{}
	}

	if viewport == nil {
		viewport = []mdast.SourceRange{mdast.Span(0, snap.Len())}
	}
	ranges := NormalizeRanges(viewport, snap.Len())

	run := &buildRun{
		builder: b,
		snap:    snap,
		sel:     sel,
		ranges:  ranges,
		visited: make(map[*mdast.Node]struct{}),
		seen:    make(map[mdast.SourceRange]struct{}),
	}
	for _, r := range ranges {
		run.walk(r)
	}

	set := Assemble(run.reqs, mdast.Span(0, snap.Len()))
	set.revision = snap.Revision
	set.ranges = ranges

	if diag := b.opts.Diagnostics; diag != nil {
		diag.Debug("decorations rebuilt",
			logging.FieldPath, snap.Path,
			logging.FieldRevision, snap.Revision,
			logging.FieldRanges, len(ranges),
			logging.FieldNodes, run.nodes,
			logging.FieldConstructs, run.constructs,
			logging.FieldDecorations, set.Len(),
			logging.FieldDropped, len(run.reqs)-set.Len(),
		)
	}

	return set
}

// NormalizeRanges sorts ranges, clamps them to [0, limit] and merges
// overlapping or adjacent ones. Invalid ranges are dropped.
func NormalizeRanges(ranges []mdast.SourceRange, limit int) []mdast.SourceRange {
	out := make([]mdast.SourceRange, 0, len(ranges))
	for _, r := range ranges {
		if r.StartOffset > r.EndOffset {
			continue
		}
		out = append(out, r.Clamp(limit))
	}
	slices.SortFunc(out, func(a, b mdast.SourceRange) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})

	merged := out[:0]
	for _, r := range out {
		if n := len(merged); n > 0 && r.StartOffset <= merged[n-1].EndOffset {
			merged[n-1].EndOffset = max(merged[n-1].EndOffset, r.EndOffset)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// buildRun is the state of one Build call.
type buildRun struct {
	builder *Builder
	snap    *mdast.FileSnapshot
	sel     Selection
	ranges  []mdast.SourceRange

	// visited guards against classifying a node twice when it spans
	// several viewport ranges; seen does the same for marker spans.
	visited map[*mdast.Node]struct{}
	seen    map[mdast.SourceRange]struct{}

	reqs       []Request
	nodes      int
	constructs int
}

// walk visits the nodes overlapping r, seeking to the first top-level block
// that can overlap it instead of scanning the document from the start.
func (run *buildRun) walk(r mdast.SourceRange) {
	blocks := run.snap.Blocks
	if blocks == nil {
		_ = mdast.WalkRange(run.snap.Root, r, run.visit)
		return
	}

	for i := run.snap.SeekBlock(r.StartOffset); i < len(blocks); i++ {
		if blocks[i].Span.StartOffset >= r.EndOffset {
			break
		}
		_ = mdast.WalkRange(blocks[i], r, run.visit)
	}
}

func (run *buildRun) visit(n *mdast.Node) error {
	if _, ok := run.visited[n]; ok {
		return nil
	}
	run.visited[n] = struct{}{}
	run.nodes++

	if n.IsMark() {
		return mdast.ErrSkipChildren
	}

	construct, ok := Classify(n, run.snap)
	if !ok {
		return nil
	}
	run.constructs++
	run.emit(construct)
	return nil
}

// emit adds the requests for one construct: a style over the content and,
// per marker, a replacement when hidden or a muted style when visible.
func (run *buildRun) emit(construct Construct) {
	classes := run.builder.opts.Classes
	visible := MarkersVisible(construct.Reference, run.sel)

	if construct.Content.IsValid() && !construct.Content.IsEmpty() {
		run.add(Request{
			From:   construct.Content.StartOffset,
			To:     construct.Content.EndOffset,
			Family: FamilyStyle,
			Class:  classes.contentClass(construct, run.codeLanguage(construct)),
		})
	}

	for _, marker := range construct.Markers {
		if _, dup := run.seen[marker.Span]; dup {
			continue
		}
		run.seen[marker.Span] = struct{}{}

		req := Request{From: marker.Span.StartOffset, To: marker.Span.EndOffset}
		switch {
		case marker.Role == MarkerCheckbox:
			req.Family = FamilyReplace
			req.Class = classes.contentClass(construct, "")
			req.Widget = CheckboxWidget{
				Checked:  construct.Checked,
				From:     marker.Span.StartOffset,
				To:       marker.Span.EndOffset,
				Revision: run.snap.Revision,
				Anchor:   taskAnchor(run.snap, marker.Span.EndOffset),
			}
		case visible:
			req.Family = FamilyStyle
			req.Class = classes.Marker
		case marker.Role == MarkerBullet:
			req.Family = FamilyReplace
			req.Class = classes.ListMarker
			req.Widget = BulletWidget{Depth: construct.Level}
		case marker.Role == MarkerNumber:
			req.Family = FamilyReplace
			req.Class = classes.ListMarker
			req.Widget = OrderedWidget{Number: construct.Number, Delimiter: construct.Delimiter}
		default:
			req.Family = FamilyReplace
			req.Class = classes.Hidden
		}
		run.add(req)
	}
}

// add records a request inside the viewport. Styles are clipped to each
// viewport range they overlap; replacements are kept only when a single
// range holds them whole.
func (run *buildRun) add(req Request) {
	r := mdast.Span(req.From, req.To)
	for _, vr := range run.ranges {
		if !r.Overlaps(vr) {
			continue
		}
		if req.Family == FamilyStyle {
			clipped, _ := r.Intersect(vr)
			req.From, req.To = clipped.StartOffset, clipped.EndOffset
		} else if !vr.ContainsRange(r) {
			return
		}
		req.seq = len(run.reqs)
		run.reqs = append(run.reqs, req)
	}
}

// codeLanguage returns the language id of a fenced code block: the info
// string when present, else the detector's guess.
func (run *buildRun) codeLanguage(construct Construct) string {
	if construct.Kind != ConstructCodeBlock {
		return ""
	}
	if construct.Info != "" {
		if normalize := run.builder.opts.NormalizeLanguage; normalize != nil {
			return normalize(construct.Info)
		}
		return construct.Info
	}
	detect := run.builder.opts.DetectLanguage
	if detect == nil || construct.Content.IsEmpty() {
		return ""
	}
	return detect(run.snap.SliceText(construct.Content.StartOffset, construct.Content.EndOffset))
}
