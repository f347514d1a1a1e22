package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
	md "github.com/nao1215/markdown"
)

// ValuationMarkdown renders one line per holding with its position, cost and
// gains, followed by the portfolio totals.
func ValuationMarkdown(v *rebalance.PortfolioValuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Valuation in %s", v.DisplayCurrency))
	if v.DisplayCurrency != v.BaseCurrency {
		doc.PlainText(fmt.Sprintf("Converted from %s at %s.", v.BaseCurrency, v.Rate))
	}
	if len(v.Holdings) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	t := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Name", "Quantity", "Avg Cost", "Value", "Unrealized", "Unrealized %", "Realized", "Dividends"},
		Rows:   [][]string{},
	}
	var degraded []string
	for _, vh := range v.Holdings {
		h, m := vh.Holding, vh.Metrics
		ticker := orDash(h.Ticker)
		if vh.Degraded {
			degraded = append(degraded, ticker)
			ticker += " (!)"
		}
		t.Rows = append(t.Rows, []string{
			ticker,
			orDash(h.Name),
			m.QuantityHeld.String(),
			m.WeightedAvgCost.String(),
			vh.Converted.String(),
			m.UnrealizedPL.SignedString(),
			m.UnrealizedPLRate.SignedString(),
			m.RealizedPL.SignedString(),
			m.TotalDividends.SignedString(),
		})
	}
	table(doc, t)

	doc.PlainText(md.Bold(fmt.Sprintf("Total: %s", v.Total)))
	if len(degraded) > 0 {
		doc.PlainText("")
		doc.PlainText(fmt.Sprintf("(!) valued at zero: %s", strings.Join(degraded, ", ")))
	}
	return doc.String()
}
