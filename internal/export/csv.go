// Package export writes generated records to local files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/leapstack-labs/graphload/internal/record"
)

// csvHeader names the exported columns. The properties column holds
// the node's property map as one compact JSON document.
var csvHeader = []string{"id", "label", "properties"}

// CSV writes node records to w, one row per node, and returns the
// number of rows written. Edge records are an error since a flat row
// has nowhere to carry endpoints; only node sequences export cleanly.
func CSV(w io.Writer, records iter.Seq[record.Record]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	var count int
	for rec := range records {
		if rec.Edge != nil {
			return count, fmt.Errorf("cannot export edge %s->%s to csv",
				strconv.FormatUint(rec.Edge.FromID, 10), strconv.FormatUint(rec.Edge.ToID, 10))
		}
		if rec.Node == nil {
			continue
		}

		props, err := encodeProperties(rec.Node.Properties)
		if err != nil {
			return count, fmt.Errorf("failed to encode properties for node %d: %w", rec.Node.ID, err)
		}

		row := []string{strconv.FormatUint(rec.Node.ID, 10), rec.Node.Label, props}
		if err := cw.Write(row); err != nil {
			return count, fmt.Errorf("failed to write node %d: %w", rec.Node.ID, err)
		}
		count++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return count, fmt.Errorf("failed to flush csv: %w", err)
	}
	return count, nil
}

// encodeProperties marshals a property map without HTML escaping, so
// verse text like "<" survives the round trip readably. A nil map
// encodes as an empty object to keep the column shape uniform.
func encodeProperties(props map[string]any) (string, error) {
	if props == nil {
		return "{}", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(props); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
