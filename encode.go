package rebalance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// DecodeHoldings reads holdings from r.
//
// With an empty path (or "$") the document must be an array of holdings.
// Otherwise path is a JSONPath expression locating that array inside any
// JSON document, for instance "$.portfolio.holdings". Numbers are never
// turned into floats.
func DecodeHoldings(r io.Reader, path string) ([]*Holding, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "$" {
		return decodeHoldingArray(r)
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding holdings document: %w", err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("selecting holdings with %q: %w", path, err)
	}
	// a selector may return the array itself or a list holding the array.
	if list, ok := selected.([]any); ok && len(list) == 1 {
		if inner, ok := list[0].([]any); ok {
			selected = inner
		}
	}
	if _, ok := selected.([]any); !ok {
		return nil, fmt.Errorf("selecting holdings with %q: not an array but %T", path, selected)
	}

	// json.Number marshals back to the exact literal it was read from.
	data, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("selecting holdings with %q: %w", path, err)
	}
	return decodeHoldingArray(bytes.NewReader(data))
}

func decodeHoldingArray(r io.Reader) ([]*Holding, error) {
	var holdings []*Holding
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&holdings); err != nil {
		return nil, fmt.Errorf("decoding holdings: %w", err)
	}
	return sortedByID(holdings), nil
}

// EncodeHoldings writes holdings as an indented JSON array.
func EncodeHoldings(w io.Writer, holdings []*Holding) error {
	if holdings == nil {
		holdings = []*Holding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(holdings)
}
