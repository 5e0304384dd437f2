// Package seed loads library records from the JSON export used to populate a fresh store.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shelf-service/cmd/api/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// libraryEntry mirrors one record of the export. Libri is decoded lazily because some
// records carry a string or an object there instead of a list.
type libraryEntry struct {
	ID       *int                `json:"id"`
	Name     string              `json:"Nome"`
	Floor    int                 `json:"Floor"`
	XPercent float64             `json:"xPercent"`
	YPercent float64             `json:"yPercent"`
	Books    jsoniter.RawMessage `json:"Libri"`
}

type Saver interface {
	SaveLibraries(ctx context.Context, libraries []book.Library) error
	SaveLibraryDetails(ctx context.Context, libraries []book.Library) error
}

// Mode tells how a load treats libraries that are already stored.
type Mode int

const (
	// Replace overwrites every stored field, title lists included.
	Replace Mode = iota
	// KeepTitles refreshes name, floor and coordinates but keeps stored title lists.
	// New libraries are inserted with the titles of the export.
	KeepTitles
)

/* Decodes the libraries export. Records without an id get their 1-based position. */
func DecodeLibraries(r io.Reader) ([]book.Library, error) {
	var entries []libraryEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding libraries: %w", err)
	}

	libraries := make([]book.Library, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for i, entry := range entries {
		id := i + 1
		if entry.ID != nil {
			id = *entry.ID
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("library %d: duplicated id: %w", id, book.ErrResponseLibraryEntryInvalid)
		}
		seen[id] = struct{}{}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("library %d: missing name: %w", id, book.ErrResponseLibraryEntryInvalid)
		}
		if !inPercentRange(entry.XPercent) || !inPercentRange(entry.YPercent) {
			return nil, fmt.Errorf("library %d: coordinates out of range: %w", id, book.ErrResponseLibraryEntryInvalid)
		}

		libraries = append(libraries, book.Library{
			ID:       id,
			Name:     name,
			Floor:    entry.Floor,
			XPercent: entry.XPercent,
			YPercent: entry.YPercent,
			Books:    decodeTitles(entry.Books),
		})
	}
	return libraries, nil
}

// decodeTitles keeps each title once, trimmed, in first-seen order. Anything that is not
// a list of strings yields an empty list.
func decodeTitles(raw jsoniter.RawMessage) []string {
	titles := []string{}
	if len(raw) == 0 {
		return titles
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return titles
	}

	seen := make(map[string]struct{}, len(list))
	for _, item := range list {
		title, ok := item.(string)
		if !ok {
			continue
		}
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}

/* Reads the export at path and saves every library through the store. */
func LoadLibraries(ctx context.Context, store Saver, path string, mode Mode) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening libraries seed: %w", err)
	}
	defer f.Close()

	libraries, err := DecodeLibraries(f)
	if err != nil {
		return 0, err
	}
	save := store.SaveLibraries
	if mode == KeepTitles {
		save = store.SaveLibraryDetails
	}
	if err := save(ctx, libraries); err != nil {
		return 0, fmt.Errorf("saving libraries seed: %w", err)
	}
	return len(libraries), nil
}
