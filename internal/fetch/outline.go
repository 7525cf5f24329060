package fetch

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one Markdown heading.
type Heading struct {
	Level int
	Text  string
}

// Outline returns the headings of a Markdown document in order.
func Outline(source []byte) []Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := h.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		headings = append(headings, Heading{Level: h.Level, Text: string(bytes.TrimSpace(buf.Bytes()))})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}
