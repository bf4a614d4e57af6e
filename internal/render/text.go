package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/user-locations/internal/view"
)

// Text writes the table as aligned columns. An empty page prints a single
// "No results found" line under the header.
func Text(w io.Writer, p view.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	labels := make([]string, len(p.Headers))
	for i, h := range p.Headers {
		labels[i] = h.Label
		if h.Indicator != "" {
			labels[i] += " " + h.Indicator
		}
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	if p.Empty() {
		fmt.Fprintln(tw, view.EmptyMessage)
	}
	for _, r := range p.Rows {
		fmt.Fprintln(tw, strings.Join(r.Cells(), "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render text: %w", err)
	}
	return nil
}
