package plaintext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type textRenderer struct{}

func (r textRenderer) render(source []byte) string {
	p := goldmark.DefaultParser()
	doc := p.Parse(text.NewReader(source))
	return strings.Join(r.renderChildren(doc, source), "\n\n")
}

func (r textRenderer) renderChildren(node ast.Node, source []byte) []string {
	var blocks []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		blocks = append(blocks, r.renderBlock(c, source)...)
	}
	return blocks
}

func (r textRenderer) renderBlock(node ast.Node, source []byte) []string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		s := strings.TrimSpace(r.collectInline(node, source))
		if s == "" {
			return nil
		}
		return []string{s}

	case *ast.Heading:
		s := strings.TrimSpace(r.collectInline(n, source))
		if s == "" {
			return nil
		}
		// Headings carry no terminal punctuation; add one so the voice
		// pauses instead of running into the next sentence.
		return []string{ensureSentenceEnd(s)}

	case *ast.FencedCodeBlock:
		return rawLines(n.Lines(), source)

	case *ast.CodeBlock:
		return rawLines(n.Lines(), source)

	case *ast.List:
		return r.renderList(n, source)

	case *ast.ThematicBreak:
		return nil

	case *ast.HTMLBlock:
		// Markup is not speakable.
		return nil

	default:
		// Blockquotes and anything unrecognized: keep the inner text.
		return r.renderChildren(node, source)
	}
}

// renderList flattens a list into one block with one item per line.
// Markers are dropped; nested lists are flattened into the same block.
func (r textRenderer) renderList(list *ast.List, source []byte) []string {
	var lines []string
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		var parts []string
		var nested []string
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if s := strings.TrimSpace(r.collectInline(ic, source)); s != "" {
					parts = append(parts, s)
				}
			case *ast.List:
				nested = append(nested, strings.Split(strings.Join(r.renderList(in, source), "\n"), "\n")...)
			default:
				nested = append(nested, r.renderBlock(ic, source)...)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " "))
		}
		lines = append(lines, nested...)
	}
	if len(lines) == 0 {
		return nil
	}
	return []string{strings.Join(lines, "\n")}
}

// collectInline recursively collects the plain text of a node's children.
func (r textRenderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r textRenderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		// Line breaks inside a paragraph are just pauses when spoken.
		if n.SoftLineBreak() || n.HardLineBreak() {
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Link:
		// Speak the label, not the URL.
		buf.WriteString(r.collectInline(n, source))

	case *ast.AutoLink:
		buf.Write(n.URL(source))

	case *ast.Image:
		buf.WriteString(r.collectInline(n, source))

	case *ast.RawHTML:
		// Markup is not speakable.

	default:
		// Emphasis, code spans and anything unrecognized: keep the
		// inner text.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}

func rawLines(lines *text.Segments, source []byte) []string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	s := strings.TrimRight(b.String(), "\n")
	if s == "" {
		return nil
	}
	return []string{s}
}

func ensureSentenceEnd(s string) string {
	switch s[len(s)-1] {
	case '.', '!', '?', ':':
		return s
	}
	return s + "."
}
