package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func renderPlain(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	titles := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		titles[i] = strings.ToUpper(column.Title)
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))

	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
