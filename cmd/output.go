package cmd

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case formatTable, formatJSON:
		return nil
	}
	return errors.Wrapf(errs.Unsupported, "output format %q, use %q or %q", format, formatTable, formatJSON)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(v))
}

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(rows)
	table.Render()
}

// writeFields renders a single record as a two-column key/value table.
func writeFields(w io.Writer, fields [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk(fields)
	table.Render()
}
