// internal/words/words.go
//
// Recognized-word index for the engine.
//
// Responsibilities:
//   - Build an immutable trie-backed Dictionary from a word list.
//   - Case-insensitive membership (IsValid) and prefix queries (HasPrefix).
//   - Provide a process-wide Default dictionary, built once.
//
// Default source (resolved once, sync.Once):
//   1. WORDS_FILE=/path/to/words.txt when set.
//   2. Otherwise the embedded assets/words.txt.
//
// Constraints:
//   • Only alphabetic words of MinLength letters or more are indexed.
//   • After construction the Dictionary is never written, so it is safe for
//     unsynchronized concurrent reads.

package words

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordgrid/assets"
)

// MinLength is the shortest word the engine accepts.
const MinLength = 3

// Dictionary is a read-only recognized-word index.
type Dictionary struct {
	t trie
}

// New builds a dictionary from a list of words. Entries that are too short
// or contain non-letters are skipped.
func New(list []string) *Dictionary {
	d := &Dictionary{}
	for _, w := range list {
		if w = normalize(w); len(w) >= MinLength && isAlpha(w) {
			d.t.insert(w)
		}
	}
	return d
}

// Read builds a dictionary from one word per line; blank lines and
// '#' comments are ignored.
func Read(r io.Reader) (*Dictionary, error) {
	var list []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		list = append(list, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(list), nil
}

// ReadFile builds a dictionary from a word-list file.
func ReadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// IsValid reports whether w is a recognized word. Case-insensitive;
// always false below MinLength letters.
func (d *Dictionary) IsValid(w string) bool {
	w = normalize(w)
	if len(w) < MinLength {
		return false
	}
	n := d.t.walk(w)
	return n != nil && n.word
}

// HasPrefix reports whether any recognized word starts with p.
func (d *Dictionary) HasPrefix(p string) bool {
	return d.t.walk(normalize(p)) != nil
}

// Len returns the number of indexed words.
func (d *Dictionary) Len() int { return d.t.count }

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Default returns the process-wide dictionary, building it on first use.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		if path := os.Getenv("WORDS_FILE"); path != "" {
			defaultDict, defaultErr = ReadFile(path)
		} else {
			defaultDict, defaultErr = Read(strings.NewReader(assets.WordList))
		}
		if defaultErr == nil && defaultDict.Len() == 0 {
			defaultErr = errors.New("words: dictionary is empty")
		}
	})
	return defaultDict, defaultErr
}

func normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
