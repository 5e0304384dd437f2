package inmemory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/shelf-service/cmd/api/book"
)

const (
	bookTable    = "book"
	libraryTable = "library"
)

// InMemoryStore keeps books and libraries in go-memdb. memdb allows a single write
// transaction at a time, so every check-then-write below runs inside one write txn.
type InMemoryStore struct {
	db *memdb.MemDB
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			bookTable: {
				Name: bookTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"code": {
						Name:    "code",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Code"},
					},
				},
			},
			libraryTable: {
				Name: libraryTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		slog.Error("schema validating error", "error", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db}, nil
}

// AdaptedBook is the memdb row: ids and codes are kept as text so they can be indexed.
type AdaptedBook struct {
	ID              string
	Code            string
	CodeNumber      book.Number
	Title           string
	Author          string
	Classification  string
	InventoryNumber book.Number
	Publisher       string
	Location        string
	Categories      []string
	Loanable        bool
	Image           *string
	InsertedAt      time.Time
	ModifiedAt      *time.Time
}

func adaptBookToRow(b book.Book) AdaptedBook {
	return AdaptedBook{
		ID:              b.ID.String(),
		Code:            b.Code.String(),
		CodeNumber:      b.Code,
		Title:           b.Title,
		Author:          b.Author,
		Classification:  b.Classification,
		InventoryNumber: b.InventoryNumber,
		Publisher:       b.Publisher,
		Location:        b.Location,
		Categories:      slices.Clone(b.Categories),
		Loanable:        bool(b.Loanable),
		Image:           cloneString(b.Image),
		InsertedAt:      b.InsertedAt,
		ModifiedAt:      cloneTime(b.ModifiedAt),
	}
}

func adaptRowToBook(row AdaptedBook) book.Book {
	categories := slices.Clone(row.Categories)
	if categories == nil {
		categories = []string{}
	}
	return book.Book{
		ID:              uuid.MustParse(row.ID),
		Code:            row.CodeNumber,
		Title:           row.Title,
		Author:          row.Author,
		Classification:  row.Classification,
		InventoryNumber: row.InventoryNumber,
		Publisher:       row.Publisher,
		Location:        row.Location,
		Categories:      categories,
		Loanable:        book.Loanable(row.Loanable),
		Image:           cloneString(row.Image),
		InsertedAt:      row.InsertedAt,
		ModifiedAt:      cloneTime(row.ModifiedAt),
	}
}

type AdaptedLibrary struct {
	ID       int
	Name     string
	Floor    int
	XPercent float64
	YPercent float64
	Books    []string
}

func adaptLibraryToRow(l book.Library) AdaptedLibrary {
	return AdaptedLibrary{
		ID:       l.ID,
		Name:     l.Name,
		Floor:    l.Floor,
		XPercent: l.XPercent,
		YPercent: l.YPercent,
		Books:    slices.Clone(l.Books),
	}
}

func adaptRowToLibrary(row AdaptedLibrary) book.Library {
	books := slices.Clone(row.Books)
	if books == nil {
		books = []string{}
	}
	return book.Library{
		ID:       row.ID,
		Name:     row.Name,
		Floor:    row.Floor,
		XPercent: row.XPercent,
		YPercent: row.YPercent,
		Books:    books,
	}
}

// -- Books --

func (store *InMemoryStore) ListBooks(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(bookTable, "id")
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := []book.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b := adaptRowToBook(obj.(AdaptedBook))
		if !filter.Match(b) {
			continue
		}
		books = append(books, b)
	}

	sort.SliceStable(books, func(i, j int) bool {
		if !books[i].InsertedAt.Equal(books[j].InsertedAt) {
			return books[i].InsertedAt.Before(books[j].InsertedAt)
		}
		return books[i].Code.String() < books[j].Code.String()
	})
	return books, nil
}

func (store *InMemoryStore) GetBook(ctx context.Context, key book.Key) (book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	row, err := firstBook(txn, key)
	if err != nil {
		return book.Book{}, fmt.Errorf("searching book by key: %w", err)
	}
	return adaptRowToBook(row), nil
}

func firstBook(txn *memdb.Txn, key book.Key) (AdaptedBook, error) {
	index, value := "code", key.CodeText()
	if key.IsSurrogateID() {
		index, value = "id", key.ID().String()
	}

	raw, err := txn.First(bookTable, index, value)
	if err != nil {
		return AdaptedBook{}, err
	}
	if raw == nil {
		return AdaptedBook{}, book.ErrResponseBookNotFound
	}
	return raw.(AdaptedBook), nil
}

func (store *InMemoryStore) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	row := adaptBookToRow(bookEntry)

	// memdb silently replaces entries of a unique secondary index, so the code is checked here.
	existing, err := txn.First(bookTable, "code", row.Code)
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}
	if existing != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", book.ErrResponseBookCodeConflict)
	}

	if err := txn.Insert(bookTable, row); err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}
	txn.Commit()

	return adaptRowToBook(row), nil
}

func (store *InMemoryStore) UpdateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(bookTable, "id", bookEntry.ID.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book on db: %w", err)
	}
	if raw == nil {
		return book.Book{}, fmt.Errorf("updating book on db: %w", book.ErrResponseBookNotFound)
	}

	current := raw.(AdaptedBook)
	updated := adaptBookToRow(bookEntry)
	// Code and insertion time never change.
	updated.Code = current.Code
	updated.CodeNumber = current.CodeNumber
	updated.InsertedAt = current.InsertedAt

	if err := txn.Insert(bookTable, updated); err != nil {
		return book.Book{}, fmt.Errorf("updating book on db: %w", err)
	}
	txn.Commit()

	return adaptRowToBook(updated), nil
}

func (store *InMemoryStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	count, err := txn.DeleteAll(bookTable, "id", id.String())
	if err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("deleting book from db: %w", book.ErrResponseBookNotFound)
	}
	txn.Commit()
	return nil
}

func (store *InMemoryStore) ListCategories(ctx context.Context) ([]string, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(bookTable, "id")
	if err != nil {
		return nil, fmt.Errorf("listing categories from db: %w", err)
	}

	seen := map[string]struct{}{}
	categories := []string{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		for _, c := range obj.(AdaptedBook).Categories {
			if _, ok := seen[c]; ok || c == "" {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// -- Libraries --

func (store *InMemoryStore) ListLibraries(ctx context.Context) ([]book.Library, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(libraryTable, "id")
	if err != nil {
		return nil, fmt.Errorf("listing libraries from db: %w", err)
	}

	libraries := []book.Library{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		libraries = append(libraries, adaptRowToLibrary(obj.(AdaptedLibrary)))
	}
	return libraries, nil
}

func (store *InMemoryStore) GetLibrary(ctx context.Context, id int) (book.Library, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	row, err := firstLibrary(txn, id)
	if err != nil {
		return book.Library{}, fmt.Errorf("searching library %d: %w", id, err)
	}
	return adaptRowToLibrary(row), nil
}

func firstLibrary(txn *memdb.Txn, id int) (AdaptedLibrary, error) {
	raw, err := txn.First(libraryTable, "id", id)
	if err != nil {
		return AdaptedLibrary{}, err
	}
	if raw == nil {
		return AdaptedLibrary{}, book.ErrResponseLibraryNotFound
	}
	return raw.(AdaptedLibrary), nil
}

/* Inserts or replaces every library in one transaction. */
func (store *InMemoryStore) SaveLibraries(ctx context.Context, libraries []book.Library) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	for _, l := range libraries {
		if err := txn.Insert(libraryTable, adaptLibraryToRow(l)); err != nil {
			return fmt.Errorf("saving library %d on db: %w", l.ID, err)
		}
	}
	txn.Commit()
	return nil
}

/* Inserts new libraries with their titles. Libraries already stored only get name, floor
and coordinates refreshed, their title list is left as it is. */
func (store *InMemoryStore) SaveLibraryDetails(ctx context.Context, libraries []book.Library) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	for _, l := range libraries {
		row := adaptLibraryToRow(l)
		existing, err := txn.First(libraryTable, "id", l.ID)
		if err != nil {
			return fmt.Errorf("saving library %d on db: %w", l.ID, err)
		}
		if existing != nil {
			row.Books = existing.(AdaptedLibrary).Books
		}
		if err := txn.Insert(libraryTable, row); err != nil {
			return fmt.Errorf("saving library %d on db: %w", l.ID, err)
		}
	}
	txn.Commit()
	return nil
}

func (store *InMemoryStore) AppendLibraryTitle(ctx context.Context, id int, title string) (book.Library, error) {
	return store.mutateLibrary(id, func(books []string) ([]string, error) {
		if slices.Contains(books, title) {
			return nil, book.ErrResponseTitleAlreadyPresent
		}
		return append(books, title), nil
	})
}

func (store *InMemoryStore) RemoveLibraryTitle(ctx context.Context, id int, title string) (book.Library, error) {
	return store.mutateLibrary(id, func(books []string) ([]string, error) {
		i := slices.Index(books, title)
		if i < 0 {
			return nil, book.ErrResponseTitleNotFound
		}
		return slices.Delete(books, i, i+1), nil
	})
}

func (store *InMemoryStore) ReplaceLibraryTitle(ctx context.Context, id int, oldTitle, newTitle string) (book.Library, error) {
	return store.mutateLibrary(id, func(books []string) ([]string, error) {
		if !slices.Contains(books, oldTitle) {
			return nil, book.ErrResponseTitleNotFound
		}
		if oldTitle != newTitle && slices.Contains(books, newTitle) {
			return nil, book.ErrResponseTitleAlreadyPresent
		}
		for i := range books {
			if books[i] == oldTitle {
				books[i] = newTitle
			}
		}
		return books, nil
	})
}

// mutateLibrary reads, checks and writes the title list of one library inside a single
// write transaction. The callback receives a private copy of the list.
func (store *InMemoryStore) mutateLibrary(id int, mutate func(books []string) ([]string, error)) (book.Library, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	row, err := firstLibrary(txn, id)
	if err != nil {
		return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, err)
	}

	books, err := mutate(slices.Clone(row.Books))
	if err != nil {
		return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, err)
	}
	row.Books = books

	if err := txn.Insert(libraryTable, row); err != nil {
		return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, err)
	}
	txn.Commit()

	return adaptRowToLibrary(row), nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
