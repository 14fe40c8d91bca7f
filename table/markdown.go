package table

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteMarkdown renders the wide view as a Markdown pipe table. It is a
// display format and cannot be read back.
func (t *Table) WriteMarkdown(w io.Writer) error {
	wide := t.Wide()

	header := make([]string, 0, len(wide.Columns)+1)
	header = append(header, wide.IndexName)
	header = append(header, wide.Columns...)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tw.SetCenterSeparator("|")
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	for r, size := range wide.Sizes {
		row := make([]string, len(header))
		row[0] = strconv.Itoa(size)
		for c, cell := range wide.Rows[r] {
			if cell.Present {
				row[c+1] = strconv.FormatFloat(cell.Value, 'f', 3, 64)
			}
		}
		tw.Append(row)
	}
	tw.Render()

	return nil
}
