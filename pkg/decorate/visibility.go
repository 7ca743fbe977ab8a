package decorate

import "github.com/yaklabco/mdlive/pkg/mdast"

// MarkersVisible reports whether a construct's markers must stay visible.
//
// ref is the construct's reference range: its whole source line for
// line-scoped constructs, its own span otherwise. Markers are visible when
// any selection range touches ref, boundaries included, so a caret sitting
// right before or after a marker reveals it. An unanchored ref is treated as
// visible so nothing is hidden on a malformed tree.
func MarkersVisible(ref mdast.SourceRange, sel Selection) bool {
	if !ref.IsValid() {
		return true
	}
	for _, r := range sel.Ranges {
		if r.From() <= ref.EndOffset && r.To() >= ref.StartOffset {
			return true
		}
	}
	return false
}
