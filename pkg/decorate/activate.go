package decorate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrStaleWidget is returned when a widget's captured offsets no longer
// address the construct it was built for.
var ErrStaleWidget = errors.New("stale widget")

// ErrNoWidget is returned when there is no interactive widget at an offset.
var ErrNoWidget = errors.New("no interactive widget at offset")

// taskLinePattern matches a list item line up to and including its task
// marker, allowing blockquote prefixes.
//
//nolint:gochecknoglobals // Compiled once.
var taskLinePattern = regexp.MustCompile(`^(?:[ \t]*>)*[ \t]*(?:[-+*]|[0-9]{1,9}[.)])[ \t]+(\[[ \t]*[xX]?[ \t]*\])`)

// ActivateCheckbox toggles the task marker a CheckboxWidget stands in for,
// replacing "[ ]" with "[x]" or the reverse in a single edit.
//
// The captured offsets are trusted only when the editor is still at the
// widget's revision and the text there is still a task marker in the
// captured state. After an edit the task is re-resolved on the line now
// holding the captured start offset, and only when that line still carries
// the widget's anchor text. When neither succeeds nothing is edited and
// ErrStaleWidget is returned. The marker text read while resolving is the
// expected text of the edit, so a change racing the toggle fails it.
func ActivateCheckbox(ed Editor, w CheckboxWidget) error {
	from, to, marker, ok := resolveCheckbox(ed, w)
	if !ok {
		return fmt.Errorf("toggle task at %d: %w", w.From, ErrStaleWidget)
	}

	if err := ed.ReplaceText(from, to, marker, CheckboxText(!w.Checked)); err != nil {
		return fmt.Errorf("toggle task at %d: %w", from, err)
	}
	return nil
}

// CheckboxText returns the task marker written for a checked or unchecked task.
func CheckboxText(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// resolveCheckbox returns the current offsets and text of the widget's task
// marker.
func resolveCheckbox(ed Editor, w CheckboxWidget) (int, int, string, bool) {
	if w.From < 0 || w.From >= w.To || w.To > ed.Len() {
		return 0, 0, "", false
	}

	from, to := w.From, w.To
	if ed.Revision() != w.Revision {
		line := lineRange(ed, w.From)
		match := taskLinePattern.FindStringSubmatchIndex(ed.SliceText(line.StartOffset, line.EndOffset))
		if match == nil {
			return 0, 0, "", false
		}
		from, to = line.StartOffset+match[2], line.StartOffset+match[3]
		if taskAnchor(ed, to) != w.Anchor {
			return 0, 0, "", false
		}
	}

	marker := ed.SliceText(from, to)
	checked, ok := parseCheckbox(marker)
	if !ok || checked != w.Checked {
		return 0, 0, "", false
	}
	return from, to, marker, true
}

// taskAnchor returns the text after a task marker ending at markerEnd, up to
// the end of its line, without surrounding blanks.
func taskAnchor(doc Text, markerEnd int) string {
	line := lineRange(doc, markerEnd)
	return strings.TrimSpace(doc.SliceText(markerEnd, line.EndOffset))
}
