package catalog

import "errors"

// ErrNotFound reports that no catalog row matched the requested code. It is a
// normal outcome of resolution, not a store fault.
var ErrNotFound = errors.New("movie not found")

// Resolve scans the ordered row snapshot for the first row whose id column
// equals code. Row 0 is the header and is skipped. Matching is exact string
// equality, so when duplicate ids exist the earliest append wins.
func Resolve(code string, rows [][]string) (Entry, error) {
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > 0 && row[0] == code {
			return entryFromRow(row), nil
		}
	}
	return Entry{}, ErrNotFound
}
