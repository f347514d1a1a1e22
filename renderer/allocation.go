package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rebalance"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders an allocation as a list of orders.
func AllocationMarkdown(r *rebalance.AllocationResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Allocation (%s mode)", r.Mode))

	if r.Mode == rebalance.ModeSell {
		t := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Ticker", "Name", "Current", "Current %", "Target %", "Target", "Order"},
			Rows:   [][]string{},
		}
		for _, l := range r.Lines {
			t.Rows = append(t.Rows, []string{
				orDash(l.Ticker),
				orDash(l.Name),
				l.CurrentValue.String(),
				l.CurrentRatio.String(),
				l.TargetRatio.String(),
				l.TargetValue.String(),
				order(l.Delta),
			})
		}
		table(doc, t)
		doc.PlainText(fmt.Sprintf("Sell: %s, Buy: %s", r.SellTotal, r.BuyTotal))
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("Cash to invest: %s", r.Cash))
	t := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Name", "Current", "Current %", "Target %", "Buy"},
		Rows:   [][]string{},
	}
	for _, l := range r.Lines {
		target := l.TargetRatio.String()
		if l.Fixed {
			target = "fixed"
		}
		t.Rows = append(t.Rows, []string{
			orDash(l.Ticker),
			orDash(l.Name),
			l.CurrentValue.String(),
			l.CurrentRatio.String(),
			target,
			l.Delta.String(),
		})
	}
	table(doc, t)

	total := md.Bold(fmt.Sprintf("Total: %s", r.Total))
	if !r.Fixed.IsZero() {
		total += fmt.Sprintf(" (fixed %s, distributed %s)", r.Fixed, r.Distributed)
	}
	doc.PlainText(total)
	if r.FixedScaled {
		doc.PlainText("")
		doc.PlainText("Fixed amounts exceed the cash and were scaled down.")
	}
	if !r.Unallocated.IsZero() {
		doc.PlainText("")
		doc.PlainText(fmt.Sprintf("Unallocated: %s", r.Unallocated))
	}
	return doc.String()
}

// order turns a sell-mode delta into an instruction.
func order(delta rebalance.Money) string {
	switch {
	case delta.IsPositive():
		return "sell " + delta.String()
	case delta.IsNegative():
		return "buy " + delta.Neg().String()
	default:
		return "-"
	}
}
