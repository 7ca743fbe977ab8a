// Package logging configures charmbracelet/log loggers for mdlive and
// names the keys of their structured fields.
package logging

// Keys of structured log fields.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldConfig = "config"
	FieldFlavor = "flavor"
	FieldWrite  = "write"

	// Document position.
	FieldRevision = "revision"
	FieldLine     = "line"
	FieldOffset   = "offset"
	FieldBytes    = "bytes"

	// Decoration builds.
	FieldFrom        = "from"
	FieldTo          = "to"
	FieldRanges      = "ranges"
	FieldNodes       = "nodes"
	FieldConstructs  = "constructs"
	FieldDecorations = "decorations"
	FieldDropped     = "dropped"
	FieldWidget      = "widget"

	// Build information.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
