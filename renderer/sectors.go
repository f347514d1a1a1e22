package renderer

import (
	"bytes"

	"github.com/etnz/rebalance"
	md "github.com/nao1215/markdown"
)

// SectorsMarkdown renders the sector breakdown, largest first.
func SectorsMarkdown(shares []rebalance.SectorShare) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Sectors")
	if len(shares) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}
	t := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Sector", "Amount", "Share"},
		Rows:      [][]string{},
	}
	for _, s := range shares {
		t.Rows = append(t.Rows, []string{s.Sector, s.Amount.String(), s.Percentage.String()})
	}
	table(doc, t)
	return doc.String()
}
