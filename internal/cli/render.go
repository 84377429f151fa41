package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize/english"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/words"
)

var codeMeaning = [feedback.NumCodes]string{
	feedback.Absent:     "absent",
	feedback.SameRow:    "same row (行)",
	feedback.SameColumn: "same column (段)",
	feedback.Present:    "elsewhere in the word",
	feedback.Exact:      "exact",
	feedback.Variant:    "voicing or size variant",
}

func renderLegend(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"code", "meaning"})
	for c, m := range codeMeaning {
		t.AppendRow(table.Row{c, m})
	}
	t.Render()
	_, _ = fmt.Fprintln(w, "Enter feedback as four digits, one per kana, e.g. 4242.")
}

// renderCandidates lists ws ranked by frequency.
func renderCandidates(w io.Writer, ws []feedback.Word, freq words.Frequencies) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "candidate", "frequency"})
	for i, c := range freq.Rank(ws) {
		f := "rare"
		if v := freq.Of(c); v > 0 {
			f = fmt.Sprintf("%g", v)
		}
		t.AppendRow(table.Row{i + 1, c.String(), f})
	}
	t.Render()
}

// renderScore shows v position by position.
func renderScore(w io.Writer, guess, answer feedback.Word, v feedback.Vector) {
	_, _ = fmt.Fprintf(w, "%s → %s: %s\n", guess, answer, v)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"pos", "guess", "answer", "code", "meaning"})
	for i, c := range v {
		t.AppendRow(table.Row{i + 1, string(guess[i]), string(answer[i]), int(c), codeMeaning[c]})
	}
	t.Render()
}

func plural(n int, noun string) string {
	return english.Plural(n, noun, "")
}
