// Package renderer formats valuations, allocations and snapshots as
// markdown documents, ready to be printed to the terminal.
package renderer

import (
	md "github.com/nao1215/markdown"
)

// orDash returns "-" for empty strings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// table writes t as a block of its own, so that the paragraphs around it are
// not read as table rows.
func table(doc *md.Markdown, t md.TableSet) {
	doc.PlainText("")
	doc.Table(t)
	doc.PlainText("")
}
