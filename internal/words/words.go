// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the embedded default.
//   - Accept two source formats:
//       .ts files: every single-quoted string literal is a word
//                  (the format the word game ships its list in);
//       anything else: one word per line, '#' comments and blank lines ignored.
//   - Validate (exactly four symbols), deduplicate preserving first occurrence.
//   - Count words using kana outside the classifier tables; they still load,
//     but only ever score exact, present or absent in those positions.
//   - Expose membership lookup and a stable dictionary key for the opening cache.
//
// Constraints:
//   • Words that are not four symbols long are skipped and counted, not fatal.
//   • An empty dictionary is an error.
//   • A Dictionary is immutable once built.

package words

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/assets"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/kana"
)

// ErrEmpty is returned when a source yields no valid words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Format selects how a dictionary source is tokenized.
type Format int

const (
	Lines  Format = iota // one word per line
	Quoted               // single-quoted literals anywhere in the text
)

var quotedLiteral = regexp.MustCompile(`'(?:\\.|[^'])*'`)

// Dictionary is an ordered, deduplicated list of words.
type Dictionary struct {
	words        []feedback.Word
	index        map[feedback.Word]int
	skipped      int
	unclassified int
	digest       feedback.Digest
}

// New builds a Dictionary from already-parsed words, dropping duplicates.
func New(ws []feedback.Word) (*Dictionary, error) {
	d := &Dictionary{index: make(map[feedback.Word]int, len(ws))}
	for _, w := range ws {
		d.add(w)
	}
	return d.finish()
}

func (d *Dictionary) add(w feedback.Word) {
	if _, dup := d.index[w]; dup {
		return
	}
	d.index[w] = len(d.words)
	d.words = append(d.words, w)
	for _, r := range w {
		if !kana.Known(r) {
			d.unclassified++
			break
		}
	}
}

func (d *Dictionary) finish() (*Dictionary, error) {
	if len(d.words) == 0 {
		return nil, ErrEmpty
	}
	d.digest = feedback.Fingerprint(d.words)
	return d, nil
}

// Parse tokenizes source according to format.
func Parse(source string, format Format) (*Dictionary, error) {
	var tokens []string
	switch format {
	case Quoted:
		for _, lit := range quotedLiteral.FindAllString(source, -1) {
			tokens = append(tokens, lit[1:len(lit)-1])
		}
	default:
		for _, line := range strings.Split(source, "\n") {
			s := strings.TrimSpace(line)
			if s == "" || strings.HasPrefix(s, "#") {
				continue
			}
			tokens = append(tokens, s)
		}
	}

	d := &Dictionary{index: make(map[feedback.Word]int, len(tokens))}
	for _, tok := range tokens {
		w, err := feedback.ParseWord(tok)
		if err != nil {
			d.skipped++
			continue
		}
		d.add(w)
	}
	if d.skipped > 0 {
		log.Debug().Int("skipped", d.skipped).Msg("dictionary entries with the wrong length skipped")
	}
	return d.finish()
}

// FormatFor picks the tokenizer for a file by extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".ts") {
		return Quoted
	}
	return Lines
}

// Load reads path, or the embedded default when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		src, err := assets.Dictionary()
		if err != nil {
			return nil, fmt.Errorf("words: embedded dictionary: %w", err)
		}
		return Parse(src, Lines)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	d, err := Parse(string(b), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return d, nil
}

// Words returns the ordered word list. Callers must not modify it.
func (d *Dictionary) Words() []feedback.Word { return d.words }

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the i-th word.
func (d *Dictionary) At(i int) feedback.Word { return d.words[i] }

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w feedback.Word) bool {
	_, ok := d.index[w]
	return ok
}

// Skipped is the number of source entries rejected as malformed.
func (d *Dictionary) Skipped() int { return d.skipped }

// Unclassified is the number of words containing a kana with no base, row
// or column entry.
func (d *Dictionary) Unclassified() int { return d.unclassified }

// Key identifies the dictionary contents and order (hex BLAKE2b-256).
func (d *Dictionary) Key() string { return d.digest.String() }
