package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=bookmock github.com/shelf-service/cmd/api/book Repository,Notifier

type ServiceAPI interface {
	ListBooks(ctx context.Context, filter Filter) ([]Book, error)
	GetBook(ctx context.Context, key Key) (Book, error)
	CreateBook(ctx context.Context, req CreateBookRequest) (Book, error)
	UpdateBook(ctx context.Context, req UpdateBookRequest) (UpdateResult, error)
	DeleteBook(ctx context.Context, key Key) (Book, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListLibraries(ctx context.Context) ([]Library, error)
	GetLibrary(ctx context.Context, libraryID string) (Library, error)
	AddTitle(ctx context.Context, req TitleRequest) (Library, error)
	RemoveTitle(ctx context.Context, req TitleRequest) (TitleRemoved, error)
	RenameTitle(ctx context.Context, req RenameTitleRequest) (Library, error)
}

type Repository interface {
	ListBooks(ctx context.Context, filter Filter) ([]Book, error)
	GetBook(ctx context.Context, key Key) (Book, error)
	CreateBook(ctx context.Context, bookEntry Book) (Book, error)
	UpdateBook(ctx context.Context, bookEntry Book) (Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]string, error)

	ListLibraries(ctx context.Context) ([]Library, error)
	GetLibrary(ctx context.Context, id int) (Library, error)
	SaveLibraries(ctx context.Context, libraries []Library) error
	SaveLibraryDetails(ctx context.Context, libraries []Library) error
	AppendLibraryTitle(ctx context.Context, id int, title string) (Library, error)
	RemoveLibraryTitle(ctx context.Context, id int, title string) (Library, error)
	ReplaceLibraryTitle(ctx context.Context, id int, oldTitle, newTitle string) (Library, error)
}

type Notifier interface {
	BookCreated(ctx context.Context, title string, code string) error
	TitleShelved(ctx context.Context, libraryName string, title string) error
}

type Service struct {
	repo                 Repository
	ntfy                 Notifier
	notificationsTimeout time.Duration
	logger               *slog.Logger
	now                  func() time.Time
}

/* Creates the service. A nil notifier disables notifications, a nil logger uses slog's default. */
func NewService(repo Repository, ntfy Notifier, notificationsTimeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:                 repo,
		ntfy:                 ntfy,
		notificationsTimeout: notificationsTimeout,
		logger:               logger,
		now: func() time.Time {
			return time.Now().UTC().Round(time.Millisecond)
		},
	}
}

type CreateBookRequest struct {
	Code            Number
	Title           string
	Author          string
	Classification  string
	InventoryNumber Number
	Publisher       string
	Location        string
	Categories      []string
	Loanable        Loanable
	Image           *string
}

// UpdateBookRequest carries only the fields the client sent. Code and insertion time
// are not part of it on purpose: they never change.
type UpdateBookRequest struct {
	Key             Key
	Title           *string
	Author          *string
	Classification  *string
	InventoryNumber *Number
	Publisher       *string
	Location        *string
	Categories      *[]string
	Loanable        *Loanable
	Image           *string
	// ClearImage removes the image. It is set when the client sent an explicit null.
	ClearImage bool
}

type UpdateResult struct {
	Book    Book
	Changed bool
}

func (s *Service) ListBooks(ctx context.Context, filter Filter) ([]Book, error) {
	books, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

func (s *Service) GetBook(ctx context.Context, key Key) (Book, error) {
	b, err := s.repo.GetBook(ctx, key)
	if err != nil {
		return Book{}, fmt.Errorf("getting book %s: %w", key, err)
	}
	return b, nil
}

/* Validates the request, rejects duplicated codes and stores the new book. */
func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	if err := FilledFields(req); err != nil {
		return Book{}, err
	}

	code := req.Code
	if !code.Valid {
		code.Raw = strings.TrimSpace(code.Raw)
	}

	_, err := s.repo.GetBook(ctx, KeyForCode(code))
	switch {
	case err == nil:
		return Book{}, ErrResponseBookCodeConflict
	case !errors.Is(err, ErrResponseBookNotFound):
		return Book{}, fmt.Errorf("checking book code %s: %w", code, err)
	}

	newBook := Book{
		ID:              uuid.New(),
		Code:            code,
		Title:           strings.TrimSpace(req.Title),
		Author:          strings.TrimSpace(req.Author),
		Classification:  req.Classification,
		InventoryNumber: req.InventoryNumber,
		Publisher:       req.Publisher,
		Location:        req.Location,
		Categories:      NormalizeCategories(req.Categories),
		Loanable:        req.Loanable,
		Image:           req.Image,
		InsertedAt:      s.now(),
	}

	created, err := s.repo.CreateBook(ctx, newBook)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}

	if s.ntfy != nil {
		go s.notify(func(ctx context.Context) error {
			return s.ntfy.BookCreated(ctx, created.Title, created.Code.String())
		})
	}

	return created, nil
}

/* Applies the sent fields to the book found by key. Reports Changed=false when nothing differs. */
func (s *Service) UpdateBook(ctx context.Context, req UpdateBookRequest) (UpdateResult, error) {
	var err error
	if req.Title, err = trimRequired(req.Title); err != nil {
		return UpdateResult{}, err
	}
	if req.Author, err = trimRequired(req.Author); err != nil {
		return UpdateResult{}, err
	}

	current, err := s.repo.GetBook(ctx, req.Key)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("updating book %s: %w", req.Key, err)
	}

	updated, changed := applyUpdate(current, req)
	if !changed {
		return UpdateResult{Book: current, Changed: false}, nil
	}

	modifiedAt := s.now()
	updated.ModifiedAt = &modifiedAt

	stored, err := s.repo.UpdateBook(ctx, updated)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("updating book %s: %w", req.Key, err)
	}
	return UpdateResult{Book: stored, Changed: true}, nil
}

func applyUpdate(b Book, req UpdateBookRequest) (Book, bool) {
	changed := false
	setString := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}

	setString(&b.Title, req.Title)
	setString(&b.Author, req.Author)
	setString(&b.Classification, req.Classification)
	setString(&b.Publisher, req.Publisher)
	setString(&b.Location, req.Location)

	if req.InventoryNumber != nil && b.InventoryNumber != *req.InventoryNumber {
		b.InventoryNumber = *req.InventoryNumber
		changed = true
	}
	if req.Categories != nil {
		categories := NormalizeCategories(*req.Categories)
		if !slices.Equal(b.Categories, categories) {
			b.Categories = categories
			changed = true
		}
	}
	if req.Loanable != nil && b.Loanable != *req.Loanable {
		b.Loanable = *req.Loanable
		changed = true
	}
	switch {
	case req.Image != nil && (b.Image == nil || *b.Image != *req.Image):
		image := *req.Image
		b.Image = &image
		changed = true
	case req.Image == nil && req.ClearImage && b.Image != nil:
		b.Image = nil
		changed = true
	}
	return b, changed
}

// trimRequired leaves an absent field absent. A sent field must not be blank.
func trimRequired(field *string) (*string, error) {
	if field == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*field)
	if trimmed == "" {
		return nil, ErrResponseBookEntryBlankFields
	}
	return &trimmed, nil
}

/* Removes the book found by key and returns it as it was before removal. */
func (s *Service) DeleteBook(ctx context.Context, key Key) (Book, error) {
	b, err := s.repo.GetBook(ctx, key)
	if err != nil {
		return Book{}, fmt.Errorf("deleting book %s: %w", key, err)
	}

	err = s.repo.DeleteBook(ctx, b.ID)
	if err != nil {
		return Book{}, fmt.Errorf("deleting book %s: %w", key, err)
	}
	return b, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// notify runs detached from the request, so it gets its own deadline.
func (s *Service) notify(send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notificationsTimeout)
	defer cancel()
	if err := send(ctx); err != nil {
		s.logger.Warn("notification not delivered", "error", err)
	}
}
