package decorate

import "fmt"

// WidgetKind identifies the widget a replace decoration renders.
type WidgetKind uint8

const (
	// WidgetBullet stands in for a hidden unordered list marker.
	WidgetBullet WidgetKind = iota + 1

	// WidgetOrdered stands in for a hidden ordered list numeral.
	WidgetOrdered

	// WidgetCheckbox stands in for a task marker and toggles it on activation.
	WidgetCheckbox
)

// String returns the widget kind name.
func (k WidgetKind) String() string {
	switch k {
	case WidgetBullet:
		return "bullet"
	case WidgetOrdered:
		return "ordered"
	case WidgetCheckbox:
		return "checkbox"
	default:
		return fmt.Sprintf("WidgetKind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k WidgetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Widget is a value descriptor for what a replace decoration renders.
// Widgets carry no behaviour; activation is handled by ActivateCheckbox.
type Widget interface {
	// Kind returns the widget kind.
	Kind() WidgetKind

	// Eq reports whether other renders identically, letting a host reuse
	// the rendered widget across rebuilds.
	Eq(other Widget) bool
}

// BulletWidget renders a bullet glyph. Depth is the list nesting depth,
// starting at 1, which hosts may use to vary the glyph.
type BulletWidget struct {
	Depth int
}

// Kind implements Widget.
func (BulletWidget) Kind() WidgetKind { return WidgetBullet }

// Eq implements Widget.
func (w BulletWidget) Eq(other Widget) bool {
	o, ok := other.(BulletWidget)
	return ok && o.Depth == w.Depth
}

// OrderedWidget renders an ordered list numeral such as "3." or "3)".
type OrderedWidget struct {
	Number    int
	Delimiter byte
}

// Kind implements Widget.
func (OrderedWidget) Kind() WidgetKind { return WidgetOrdered }

// Eq implements Widget.
func (w OrderedWidget) Eq(other Widget) bool {
	o, ok := other.(OrderedWidget)
	return ok && o.Number == w.Number && o.Delimiter == w.Delimiter
}

// Label returns the numeral text, for example "3.".
func (w OrderedWidget) Label() string {
	delim := w.Delimiter
	if delim == 0 {
		delim = '.'
	}
	return fmt.Sprintf("%d%c", w.Number, delim)
}

// CheckboxWidget renders a task checkbox. From and To are the offsets of the
// bracketed task marker ("[ ]") at document revision Revision. Anchor is the
// task text following the marker on its line; after an edit the task is
// only re-found on a line carrying the same text.
type CheckboxWidget struct {
	Checked  bool
	From     int
	To       int
	Revision uint64
	Anchor   string
}

// Kind implements Widget.
func (CheckboxWidget) Kind() WidgetKind { return WidgetCheckbox }

// Eq implements Widget. Only the rendered state is compared; the captured
// offsets change on every edit without changing what is drawn.
func (w CheckboxWidget) Eq(other Widget) bool {
	o, ok := other.(CheckboxWidget)
	return ok && o.Checked == w.Checked
}
