// Package goldmark parses Markdown with goldmark into mdast trees whose
// nodes carry exact byte spans, with an explicit mark child for every piece
// of syntax the decorator may hide.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Supported flavors. GFM adds task list items and strikethrough.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors, including "", select
// GFM.
func New(flavor string) *Parser {
	var extensions []goldmark.Extender
	switch flavor {
	case FlavorCommonMark:
	default:
		flavor = FlavorGFM
		extensions = append(extensions, extension.GFM)
	}

	return &Parser{
		flavor: flavor,
		md:     goldmark.New(goldmark.WithExtensions(extensions...)),
	}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse is ParseRevision at revision zero.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	return p.ParseRevision(ctx, path, content, 0)
}

// ParseRevision parses a private copy of content into a snapshot stamped
// with revision. The caller may reuse content afterwards. Cancellation is
// checked before and after the goldmark pass.
func (p *Parser) ParseRevision(ctx context.Context, path string, content []byte, revision uint64) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap := mdast.NewFileSnapshot(path, bytes.Clone(content))
	snap.Revision = revision

	doc := p.md.Parser().Parse(text.NewReader(snap.Content), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap.Root = newMapper(snap.Content).mapDocument(doc)
	mdast.SetFile(snap.Root, snap)
	snap.IndexBlocks()

	return snap, nil
}
