// assets/embed.go
//
// Embedded defaults so the solver runs without any configured files:
//   - wordlist.txt: one four-kana word per line, '#' comments allowed.
//   - freq.csv:     "word,freq" display weights.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed wordlist.txt freq.csv
var FS embed.FS

const (
	DictionaryFile  = "wordlist.txt"
	FrequenciesFile = "freq.csv"
)

// Dictionary returns the embedded word list source.
func Dictionary() (string, error) {
	b, err := fs.ReadFile(FS, DictionaryFile)
	return string(b), err
}

// Frequencies returns the embedded frequency CSV.
func Frequencies() (string, error) {
	b, err := fs.ReadFile(FS, FrequenciesFile)
	return string(b), err
}
