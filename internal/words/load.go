// internal/words/load.go
//
// Word list loading.
//
// Source selection (Load):
//   1. If DB is set, open the SQLite database. When Import is true the file list
//      (or the embedded default when File is empty) is imported first; entries are
//      then read back from the database.
//   2. Else if File is set, read one word per line from that file.
//   3. Else fall back to the embedded default list in the assets package.
//
// Lines are trimmed; blank lines and lines starting with '#' are ignored.

package words

import (
	"context"
	"fmt"
	"os"

	"github.com/robalobadob/cosmic-word/assets"
)

// Source describes where the word list comes from.
type Source struct {
	File   string // plain-text list, one word per line
	DB     string // SQLite database path
	Import bool   // seed DB from File (or the embedded list) before reading
}

// Describe returns a short label for logs.
func (s Source) Describe() string {
	switch {
	case s.DB != "":
		return "sqlite:" + s.DB
	case s.File != "":
		return "file:" + s.File
	default:
		return "embedded"
	}
}

// Load reads the raw entries for src. An empty result is ErrEmpty.
func Load(ctx context.Context, src Source) ([]string, error) {
	var (
		entries []string
		err     error
	)
	switch {
	case src.DB != "":
		entries, err = loadDB(ctx, src)
	case src.File != "":
		entries, err = ReadFile(src.File)
	default:
		entries, err = assets.WordList()
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", src.Describe(), ErrEmpty)
	}
	return entries, nil
}

func loadDB(ctx context.Context, src Source) ([]string, error) {
	db, err := OpenSQLite(src.DB)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.DB, err)
	}
	defer db.Close()

	if src.Import {
		var seed []string
		if src.File != "" {
			seed, err = ReadFile(src.File)
		} else {
			seed, err = assets.WordList()
		}
		if err != nil {
			return nil, err
		}
		if _, err := ImportSQLite(ctx, db, seed); err != nil {
			return nil, err
		}
	}
	return LoadSQLite(ctx, db)
}

// ReadFile loads one word per line from path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}
