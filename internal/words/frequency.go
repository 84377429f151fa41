// internal/words/frequency.go
//
// Word frequency weights, used only to order candidates for display.
// The CSV has a header row with "word" and "freq" columns; rows that do not
// parse are skipped. A missing file is not an error: ranking falls back to
// plain lexical order.

package words

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/assets"
	"github.com/robalobadob/kanadle/internal/feedback"
)

// Frequencies maps a word to its display weight. Absent words weigh 0.
type Frequencies map[feedback.Word]float64

// ParseFrequencies reads a word,freq CSV.
func ParseFrequencies(r io.Reader) (Frequencies, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Frequencies{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("words: frequency header: %w", err)
	}
	wordCol, freqCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "word":
			wordCol = i
		case "freq":
			freqCol = i
		}
	}
	if wordCol < 0 || freqCol < 0 {
		return nil, fmt.Errorf("words: frequency header %v lacks word/freq columns", header)
	}

	out := Frequencies{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("words: frequency row: %w", err)
		}
		if wordCol >= len(rec) || freqCol >= len(rec) {
			continue
		}
		w, err := feedback.ParseWord(rec[wordCol])
		if err != nil {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[freqCol]), 64)
		if err != nil {
			continue
		}
		out[w] = f
	}
	return out, nil
}

// LoadFrequencies reads path, or the embedded default when path is empty.
// A missing file yields an empty table.
func LoadFrequencies(path string) (Frequencies, error) {
	if path == "" {
		src, err := assets.Frequencies()
		if err != nil {
			return nil, fmt.Errorf("words: embedded frequencies: %w", err)
		}
		return ParseFrequencies(strings.NewReader(src))
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("frequency file not found, using lexical order")
		return Frequencies{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseFrequencies(f)
}

// Of returns the weight of w (0 when unknown).
func (f Frequencies) Of(w feedback.Word) float64 { return f[w] }

// Rank returns a copy of ws sorted by weight descending, then lexically.
func (f Frequencies) Rank(ws []feedback.Word) []feedback.Word {
	out := append([]feedback.Word(nil), ws...)
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := f[out[i]], f[out[j]]
		if fi != fj {
			return fi > fj
		}
		return out[i].String() < out[j].String()
	})
	return out
}

// Coverage counts how many of ws have a weight.
func (f Frequencies) Coverage(ws []feedback.Word) int {
	n := 0
	for _, w := range ws {
		if _, ok := f[w]; ok {
			n++
		}
	}
	return n
}
