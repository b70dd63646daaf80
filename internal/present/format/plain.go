package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/docsmith/pkg/api"
)

// TSV columns: kind, url, completed_unix_ms, digest
var headerLine = "kind\turl\tcompleted_unix_ms\tdigest\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// WriteRaw writes the formatted text exactly as produced, followed by a
// newline if it lacks one. With headers set a one-row metadata table and a
// blank line come first.
func WriteRaw(w io.Writer, res api.GenerationResult, headers bool) error {
	if headers {
		if err := writeHeader(w, res); err != nil {
			return err
		}
	}
	text := res.Text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func writeHeader(w io.Writer, res api.GenerationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = io.WriteString(tw, headerLine)
	ms := res.CompletedAt.UnixNano() / int64(time.Millisecond)
	line := fmt.Sprintf("%s\t%s\t%d\t%s\n",
		esc(string(res.Kind)), esc(res.URL), ms, res.Digest())
	_, _ = io.WriteString(tw, line)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
