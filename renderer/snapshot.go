package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/rebalance"
	md "github.com/nao1215/markdown"
)

const timeLayout = "2006-01-02 15:04"

// SnapshotMarkdown renders the totals of a single snapshot.
func SnapshotMarkdown(s rebalance.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Snapshot on %s", s.Timestamp.Format(timeLayout)))
	table(doc, md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Holdings", fmt.Sprint(s.StockCount)},
			{"Total Value", s.TotalValue.String()},
			{"Invested Capital", s.TotalInvestedCapital.String()},
			{"Unrealized P/L", s.TotalUnrealizedPL.SignedString()},
			{"Realized P/L", s.TotalRealizedPL.SignedString()},
			{"Dividends", s.TotalDividends.SignedString()},
			{"Overall P/L", s.TotalOverallPL.SignedString()},
		},
	})
	return doc.String()
}

// HistoryMarkdown renders one row per snapshot and the performance over the
// whole history.
func HistoryMarkdown(h *rebalance.History) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("History")
	snapshots := h.Snapshots()
	if len(snapshots) == 0 {
		doc.PlainText("No snapshots.")
		return doc.String()
	}

	t := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Holdings", "Value", "Invested", "Overall P/L"},
		Rows:   [][]string{},
	}
	for _, s := range snapshots {
		t.Rows = append(t.Rows, []string{
			s.Timestamp.Format(timeLayout),
			fmt.Sprint(s.StockCount),
			s.TotalValue.String(),
			s.TotalInvestedCapital.String(),
			s.TotalOverallPL.SignedString(),
		})
	}
	table(doc, t)

	if p, ok := h.Performance(); ok && len(snapshots) > 1 {
		first, last := snapshots[0].Timestamp, snapshots[len(snapshots)-1].Timestamp
		doc.PlainText(fmt.Sprintf("Performance from %s to %s: %s (%s)",
			first.Format(time.DateOnly), last.Format(time.DateOnly), p.Change().SignedString(), p.Percent().SignedString()))
	}
	return doc.String()
}
