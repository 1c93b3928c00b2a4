// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/notion-tree/internal/notion"
)

// ResolveFunc rewrites a link or image destination. Every destination in the
// document passes through it before being written into a block.
type ResolveFunc func(dest string) (string, error)

// RenderBlocks parses source as GitHub-flavored Markdown and converts the
// document into workspace content blocks. A nil resolve leaves destinations
// unchanged.
//
// The conversion is lossy where the block model is narrower than Markdown:
// headings deeper than level 3 clamp to level 3, list nesting deeper than
// one level flattens to one level, and inline images degrade to links.
// Unhandled node kinds degrade to a plain paragraph of their text content.
func RenderBlocks(source []byte, resolve ResolveFunc) ([]notion.Block, error) {
	if resolve == nil {
		resolve = func(dest string) (string, error) { return dest, nil }
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	c := &converter{source: source, resolve: resolve}
	var blocks []notion.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		converted, err := c.block(n)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, converted...)
	}
	return blocks, nil
}

// converter carries the document source and link resolver through the walk.
type converter struct {
	source  []byte
	resolve ResolveFunc
}

// block converts one block-level node. A single node may expand to several
// blocks (lists) or none (empty paragraphs).
func (c *converter) block(n ast.Node) ([]notion.Block, error) {
	switch v := n.(type) {
	case *ast.Heading:
		rt, err := c.inlines(v, notion.Annotations{}, "")
		if err != nil {
			return nil, err
		}
		return []notion.Block{notion.Heading(v.Level, rt...)}, nil

	case *ast.Paragraph:
		// A paragraph holding a single image becomes an image block.
		if img, ok := v.FirstChild().(*ast.Image); ok && v.ChildCount() == 1 {
			dest, err := c.resolve(string(img.Destination))
			if err != nil {
				return nil, err
			}
			return []notion.Block{notion.ExternalImage(dest)}, nil
		}
		rt, err := c.inlines(v, notion.Annotations{}, "")
		if err != nil {
			return nil, err
		}
		if len(rt) == 0 {
			return nil, nil
		}
		return []notion.Block{notion.Paragraph(rt...)}, nil

	case *ast.List:
		return c.list(v, 0)

	case *ast.FencedCodeBlock:
		return []notion.Block{notion.CodeBlock(c.segmentText(v.Lines()), string(v.Language(c.source)))}, nil

	case *ast.CodeBlock:
		return []notion.Block{notion.CodeBlock(c.segmentText(v.Lines()), "")}, nil

	case *ast.Blockquote:
		rt, err := c.quoteText(v)
		if err != nil {
			return nil, err
		}
		return []notion.Block{notion.QuoteBlock(rt...)}, nil

	case *ast.ThematicBreak:
		return []notion.Block{notion.Divider()}, nil

	case *ast.HTMLBlock:
		raw := strings.TrimSpace(c.segmentText(v.Lines()))
		if raw == "" {
			return nil, nil
		}
		return []notion.Block{notion.Paragraph(notion.Text(raw))}, nil

	default:
		plain := strings.TrimSpace(string(n.Text(c.source)))
		if plain == "" {
			return nil, nil
		}
		return []notion.Block{notion.Paragraph(notion.Text(plain))}, nil
	}
}

// list converts a list node. The block model keeps one nesting level:
// sub-lists of top-level items become block children; anything deeper is
// flattened onto its parent's level.
func (c *converter) list(v *ast.List, depth int) ([]notion.Block, error) {
	var out []notion.Block
	for item := v.FirstChild(); item != nil; item = item.NextSibling() {
		var rt []notion.RichText
		var children, trailing []notion.Block
		var checked *bool

		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch b := child.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				if box, ok := child.FirstChild().(*east.TaskCheckBox); ok {
					state := box.IsChecked
					checked = &state
				}
				spans, err := c.inlines(child, notion.Annotations{}, "")
				if err != nil {
					return nil, err
				}
				if len(rt) > 0 && len(spans) > 0 {
					rt = append(rt, notion.Text("\n"))
				}
				rt = append(rt, spans...)
			case *ast.List:
				sub, err := c.list(b, depth+1)
				if err != nil {
					return nil, err
				}
				if depth == 0 {
					children = append(children, sub...)
				} else {
					trailing = append(trailing, sub...)
				}
			default:
				sub, err := c.block(child)
				if err != nil {
					return nil, err
				}
				if depth == 0 {
					children = append(children, sub...)
				} else {
					trailing = append(trailing, sub...)
				}
			}
		}

		if len(rt) == 0 {
			rt = []notion.RichText{notion.Text("")}
		}
		switch {
		case checked != nil:
			out = append(out, notion.ToDoBlock(rt, *checked, children...))
		case v.IsOrdered():
			out = append(out, notion.NumberedItem(rt, children...))
		default:
			out = append(out, notion.BulletedItem(rt, children...))
		}
		out = append(out, trailing...)
	}
	return out, nil
}

// quoteText gathers the inline text of every block inside a quote, joining
// blocks with newlines. The block model has no nested quote content.
func (c *converter) quoteText(v *ast.Blockquote) ([]notion.RichText, error) {
	var rt []notion.RichText
	for child := v.FirstChild(); child != nil; child = child.NextSibling() {
		spans, err := c.inlines(child, notion.Annotations{}, "")
		if err != nil {
			return nil, err
		}
		if len(rt) > 0 && len(spans) > 0 {
			rt = append(rt, notion.Text("\n"))
		}
		rt = append(rt, spans...)
	}
	return rt, nil
}

// inlines converts the inline children of parent into rich text spans,
// accumulating annotations and the enclosing link as it descends.
func (c *converter) inlines(parent ast.Node, ann notion.Annotations, link string) ([]notion.RichText, error) {
	var spans []notion.RichText
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Text:
			if content := string(v.Segment.Value(c.source)); content != "" {
				spans = append(spans, c.span(content, ann, link))
			}
			switch {
			case v.HardLineBreak():
				spans = append(spans, c.span("\n", ann, link))
			case v.SoftLineBreak():
				spans = append(spans, c.span(" ", ann, link))
			}

		case *ast.String:
			spans = append(spans, c.span(string(v.Value), ann, link))

		case *ast.CodeSpan:
			code := ann
			code.Code = true
			spans = append(spans, c.span(string(v.Text(c.source)), code, link))

		case *ast.Emphasis:
			styled := ann
			if v.Level >= 2 {
				styled.Bold = true
			} else {
				styled.Italic = true
			}
			sub, err := c.inlines(v, styled, link)
			if err != nil {
				return nil, err
			}
			spans = append(spans, sub...)

		case *east.Strikethrough:
			styled := ann
			styled.Strikethrough = true
			sub, err := c.inlines(v, styled, link)
			if err != nil {
				return nil, err
			}
			spans = append(spans, sub...)

		case *ast.Link:
			dest, err := c.resolve(string(v.Destination))
			if err != nil {
				return nil, err
			}
			sub, err := c.inlines(v, ann, dest)
			if err != nil {
				return nil, err
			}
			spans = append(spans, sub...)

		case *ast.AutoLink:
			dest, err := c.resolve(string(v.URL(c.source)))
			if err != nil {
				return nil, err
			}
			spans = append(spans, notion.LinkedText(string(v.Label(c.source)), dest))

		case *ast.Image:
			// Inline image among text: the block model cannot nest an
			// image here, so it degrades to a link on the alt text.
			dest, err := c.resolve(string(v.Destination))
			if err != nil {
				return nil, err
			}
			label := strings.TrimSpace(string(v.Text(c.source)))
			if label == "" {
				label = dest
			}
			spans = append(spans, notion.LinkedText(label, dest))

		case *east.TaskCheckBox:
			// Rendered by the enclosing list item as a to_do block.

		case *ast.RawHTML:
			// Inline HTML has no block equivalent; dropped.

		default:
			if content := strings.TrimSpace(string(n.Text(c.source))); content != "" {
				spans = append(spans, c.span(content, ann, link))
			}
		}
	}
	return spans, nil
}

// span builds one rich text span with the accumulated style and link.
func (c *converter) span(content string, ann notion.Annotations, link string) notion.RichText {
	rt := notion.StyledText(content, ann)
	if link != "" {
		rt.Text.Link = &notion.Link{URL: link}
	}
	return rt
}

// segmentText joins a node's source line segments into one string.
func (c *converter) segmentText(lines *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
