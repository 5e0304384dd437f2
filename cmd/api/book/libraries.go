package book

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Library is a shelving location. Books holds titles only: it is not kept in sync
// with the catalog when a book is renamed or deleted.
type Library struct {
	ID       int
	Name     string
	Floor    int
	XPercent float64
	YPercent float64
	Books    []string
}

type TitleRequest struct {
	LibraryID string
	Title     string
}

type RenameTitleRequest struct {
	LibraryID string
	OldTitle  string
	NewTitle  string
}

type TitleRemoved struct {
	LibraryID int
	Title     string
}

/* Parses the library id sent by the client. */
func ParseLibraryID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrResponseLibraryIDInvalid
	}
	return id, nil
}

func (s *Service) ListLibraries(ctx context.Context) ([]Library, error) {
	libraries, err := s.repo.ListLibraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}
	for i := range libraries {
		if libraries[i].Books == nil {
			libraries[i].Books = []string{}
		}
	}
	return libraries, nil
}

func (s *Service) GetLibrary(ctx context.Context, libraryID string) (Library, error) {
	id, err := ParseLibraryID(libraryID)
	if err != nil {
		return Library{}, err
	}
	lib, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return Library{}, fmt.Errorf("getting library %d: %w", id, err)
	}
	return lib, nil
}

/* Appends a title to a library list. A title already on the list is a conflict. */
func (s *Service) AddTitle(ctx context.Context, req TitleRequest) (Library, error) {
	id, title, err := validateTitleRequest(req.LibraryID, req.Title)
	if err != nil {
		return Library{}, err
	}

	lib, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return Library{}, fmt.Errorf("adding title to library %d: %w", id, err)
	}
	if slices.Contains(lib.Books, title) {
		return Library{}, ErrResponseTitleAlreadyPresent
	}

	// The store re-checks presence in the same atomic update, the read above only
	// produces the precise error for the common case.
	updated, err := s.repo.AppendLibraryTitle(ctx, id, title)
	if err != nil {
		return Library{}, fmt.Errorf("adding title to library %d: %w", id, err)
	}

	if s.ntfy != nil {
		go s.notify(func(ctx context.Context) error {
			return s.ntfy.TitleShelved(ctx, updated.Name, title)
		})
	}

	return updated, nil
}

/* Removes a title from a library list, telling a missing library from a missing title. */
func (s *Service) RemoveTitle(ctx context.Context, req TitleRequest) (TitleRemoved, error) {
	id, title, err := validateTitleRequest(req.LibraryID, req.Title)
	if err != nil {
		return TitleRemoved{}, err
	}

	_, err = s.repo.RemoveLibraryTitle(ctx, id, title)
	if err != nil {
		return TitleRemoved{}, fmt.Errorf("removing title from library %d: %w", id, err)
	}
	return TitleRemoved{LibraryID: id, Title: title}, nil
}

/* Replaces oldTitle with newTitle in place, keeping the list order and length. */
func (s *Service) RenameTitle(ctx context.Context, req RenameTitleRequest) (Library, error) {
	id, err := ParseLibraryID(req.LibraryID)
	if err != nil {
		return Library{}, err
	}
	oldTitle := strings.TrimSpace(req.OldTitle)
	newTitle := strings.TrimSpace(req.NewTitle)
	if oldTitle == "" || newTitle == "" {
		return Library{}, ErrResponseRenameBlankFields
	}

	lib, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return Library{}, fmt.Errorf("renaming title in library %d: %w", id, err)
	}
	if !slices.Contains(lib.Books, oldTitle) {
		return Library{}, ErrResponseTitleNotFound
	}
	if oldTitle == newTitle {
		return lib, nil
	}
	if slices.Contains(lib.Books, newTitle) {
		return Library{}, ErrResponseTitleAlreadyPresent
	}

	updated, err := s.repo.ReplaceLibraryTitle(ctx, id, oldTitle, newTitle)
	if err != nil {
		if errors.Is(err, ErrResponseTitleNotFound) {
			// Present a moment ago, gone now: someone else changed the list.
			return Library{}, fmt.Errorf("renaming title in library %d: %w", id, ErrResponseTitleNotModified)
		}
		return Library{}, fmt.Errorf("renaming title in library %d: %w", id, err)
	}
	return updated, nil
}

func validateTitleRequest(libraryID, title string) (int, string, error) {
	id, err := ParseLibraryID(libraryID)
	if err != nil {
		return 0, "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, "", ErrResponseTitleBlank
	}
	return id, title, nil
}
