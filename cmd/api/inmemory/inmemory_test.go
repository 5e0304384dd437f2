package inmemory_test

import (
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/is"
	"github.com/shelf-service/cmd/api/book"
	"github.com/shelf-service/cmd/api/inmemory"
)

var ctx context.Context = context.Background()

func newStore(t *testing.T) *inmemory.InMemoryStore {
	store, err := inmemory.NewInMemoryStore()
	if err != nil {
		log.Fatalln(err)
	}
	return store
}

func newBook(code int64, title, author string) book.Book {
	return book.Book{
		ID:         uuid.New(),
		Code:       book.IntNumber(code),
		Title:      title,
		Author:     author,
		Location:   "Sala A",
		Categories: []string{"Romanzo"},
		Loanable:   true,
		InsertedAt: time.Now().UTC().Round(time.Millisecond),
	}
}

func TestCreateBook(t *testing.T) {
	store := newStore(t)

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)

		b := newBook(100, "Amleto", "Shakespeare")
		created, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		is.Equal(created, b)
	})

	t.Run("a second book with the same code is a conflict", func(t *testing.T) {
		is := is.New(t)

		_, err := store.CreateBook(ctx, newBook(100, "Otello", "Shakespeare"))
		is.True(errors.Is(err, book.ErrResponseBookCodeConflict))

		all, err := store.ListBooks(ctx, book.Filter{})
		is.NoErr(err)
		is.Equal(len(all), 1)
	})

	t.Run("a non numeric code is stored as text", func(t *testing.T) {
		is := is.New(t)

		b := newBook(0, "Senza codice", "Anonimo")
		b.Code = book.ParseNumber("AB-12")
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)

		found, err := store.GetBook(ctx, book.RawKey("AB-12"))
		is.NoErr(err)
		is.Equal(found.Code, book.Number{Raw: "AB-12"})
	})
}

func TestGetBook(t *testing.T) {
	store := newStore(t)
	b := newBook(7, "Il nome della rosa", "Eco")
	_, err := store.CreateBook(ctx, b)
	if err != nil {
		log.Fatalln(err)
	}

	t.Run("by surrogate id and by code", func(t *testing.T) {
		is := is.New(t)

		byID, err := store.GetBook(ctx, book.SurrogateIDKey(b.ID))
		is.NoErr(err)
		is.Equal(byID.ID, b.ID)

		byCode, err := store.GetBook(ctx, book.CodeKey(7))
		is.NoErr(err)
		is.Equal(byCode.ID, b.ID)
	})

	t.Run("unknown keys are not found", func(t *testing.T) {
		is := is.New(t)

		_, err := store.GetBook(ctx, book.SurrogateIDKey(uuid.New()))
		is.True(errors.Is(err, book.ErrResponseBookNotFound))

		_, err = store.GetBook(ctx, book.CodeKey(8))
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestListBooks(t *testing.T) {
	is := is.New(t)
	store := newStore(t)

	hamlet := newBook(1, "Amleto", "William Shakespeare")
	rose := newBook(2, "Il nome della rosa", "Umberto Eco")
	rose.Categories = []string{"Giallo", "Storico"}
	rose.Location = "Sala B"
	rose.InsertedAt = hamlet.InsertedAt.Add(time.Second)
	for _, b := range []book.Book{hamlet, rose} {
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)
	}

	all, err := store.ListBooks(ctx, book.NewFilter("", "all", "all"))
	is.NoErr(err)
	is.Equal(len(all), 2)
	is.Equal(all[0].ID, hamlet.ID) // oldest first

	bySearch, err := store.ListBooks(ctx, book.NewFilter("shake", "", ""))
	is.NoErr(err)
	is.Equal(len(bySearch), 1)
	is.Equal(bySearch[0].ID, hamlet.ID)

	byCategory, err := store.ListBooks(ctx, book.NewFilter("", "Giallo", ""))
	is.NoErr(err)
	is.Equal(len(byCategory), 1)
	is.Equal(byCategory[0].ID, rose.ID)

	byLocation, err := store.ListBooks(ctx, book.NewFilter("", "", "Sala A"))
	is.NoErr(err)
	is.Equal(len(byLocation), 1)

	none, err := store.ListBooks(ctx, book.NewFilter("tolkien", "", ""))
	is.NoErr(err)
	is.Equal(len(none), 0)

	categories, err := store.ListCategories(ctx)
	is.NoErr(err)
	is.Equal(categories, []string{"Giallo", "Romanzo", "Storico"})
}

func TestListBooksSameInsertionTimeOrdersByCode(t *testing.T) {
	is := is.New(t)
	store := newStore(t)

	insertedAt := time.Now().UTC().Round(time.Millisecond)
	for _, code := range []int64{3, 1, 2} {
		b := newBook(code, "Titolo", "Autore")
		b.InsertedAt = insertedAt
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)
	}

	books, err := store.ListBooks(ctx, book.Filter{})
	is.NoErr(err)
	is.Equal(len(books), 3)
	for i, want := range []string{"1", "2", "3"} {
		is.Equal(books[i].Code.String(), want)
	}
}

func TestSaveLibraryDetailsKeepsTitles(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	_, err := store.AppendLibraryTitle(ctx, 2, "Y")
	is.NoErr(err)

	is.NoErr(store.SaveLibraryDetails(ctx, []book.Library{
		{ID: 2, Name: "Sala B bis", Floor: 2, Books: []string{"X"}},
		{ID: 4, Name: "Sala D", Books: []string{"Q"}},
	}))

	lib, err := store.GetLibrary(ctx, 2)
	is.NoErr(err)
	is.Equal(lib.Name, "Sala B bis")
	is.Equal(lib.Floor, 2)
	is.Equal(lib.Books, []string{"X", "Y"})

	added, err := store.GetLibrary(ctx, 4)
	is.NoErr(err)
	is.Equal(added.Books, []string{"Q"})
}

func TestUpdateBook(t *testing.T) {
	store := newStore(t)
	b := newBook(3, "Amleto", "Shakespeare")
	_, err := store.CreateBook(ctx, b)
	if err != nil {
		log.Fatalln(err)
	}

	t.Run("updates a book without errors", func(t *testing.T) {
		is := is.New(t)

		modifiedAt := time.Now().UTC().Round(time.Millisecond)
		changed := b
		changed.Title = "Hamlet"
		changed.Code = book.IntNumber(999) // ignored by the store
		changed.ModifiedAt = &modifiedAt

		updated, err := store.UpdateBook(ctx, changed)
		is.NoErr(err)
		is.Equal(updated.Title, "Hamlet")
		is.Equal(updated.Code, b.Code)
		is.Equal(*updated.ModifiedAt, modifiedAt)

		found, err := store.GetBook(ctx, book.CodeKey(3))
		is.NoErr(err)
		is.Equal(found.Title, "Hamlet")
	})

	t.Run("updating a non existing book returns a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := store.UpdateBook(ctx, newBook(4, "X", "Y"))
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestDeleteBook(t *testing.T) {
	is := is.New(t)
	store := newStore(t)
	b := newBook(5, "Amleto", "Shakespeare")
	_, err := store.CreateBook(ctx, b)
	is.NoErr(err)

	is.NoErr(store.DeleteBook(ctx, b.ID))

	_, err = store.GetBook(ctx, book.CodeKey(5))
	is.True(errors.Is(err, book.ErrResponseBookNotFound))

	err = store.DeleteBook(ctx, b.ID)
	is.True(errors.Is(err, book.ErrResponseBookNotFound))
}

func seededStore(t *testing.T) *inmemory.InMemoryStore {
	store := newStore(t)
	err := store.SaveLibraries(ctx, []book.Library{
		{ID: 1, Name: "Sala A", Floor: 0, XPercent: 10, YPercent: 20},
		{ID: 2, Name: "Sala B", Floor: 1, XPercent: 50, YPercent: 50, Books: []string{"X"}},
		{ID: 3, Name: "Sala C", Floor: 1, XPercent: 90, YPercent: 5, Books: []string{"X", "Z"}},
	})
	if err != nil {
		log.Fatalln(err)
	}
	return store
}

func TestLibraries(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	libraries, err := store.ListLibraries(ctx)
	is.NoErr(err)
	is.Equal(len(libraries), 3)
	is.Equal(libraries[0].Books, []string{})

	lib, err := store.GetLibrary(ctx, 2)
	is.NoErr(err)
	is.Equal(lib.Name, "Sala B")

	_, err = store.GetLibrary(ctx, 99)
	is.True(errors.Is(err, book.ErrResponseLibraryNotFound))

	// Saving again replaces the stored record.
	is.NoErr(store.SaveLibraries(ctx, []book.Library{{ID: 2, Name: "Sala B bis", Books: []string{"W"}}}))
	lib, err = store.GetLibrary(ctx, 2)
	is.NoErr(err)
	is.Equal(lib.Name, "Sala B bis")
	is.Equal(lib.Books, []string{"W"})
}

func TestAppendLibraryTitle(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	lib, err := store.AppendLibraryTitle(ctx, 2, "Y")
	is.NoErr(err)
	is.Equal(lib.Books, []string{"X", "Y"})

	_, err = store.AppendLibraryTitle(ctx, 2, "Y")
	is.True(errors.Is(err, book.ErrResponseTitleAlreadyPresent))

	_, err = store.AppendLibraryTitle(ctx, 99, "Y")
	is.True(errors.Is(err, book.ErrResponseLibraryNotFound))

	lib, err = store.GetLibrary(ctx, 2)
	is.NoErr(err)
	is.Equal(lib.Books, []string{"X", "Y"})
}

func TestAppendLibraryTitleConcurrently(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AppendLibraryTitle(ctx, 1, "Y")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, book.ErrResponseTitleAlreadyPresent):
				conflicts++
			}
		}()
	}
	wg.Wait()

	is.Equal(succeeded, 1)
	is.Equal(conflicts, writers-1)

	lib, err := store.GetLibrary(ctx, 1)
	is.NoErr(err)
	is.Equal(lib.Books, []string{"Y"})
}

func TestRemoveLibraryTitle(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	_, err := store.RemoveLibraryTitle(ctx, 3, "Nonexistent")
	is.True(errors.Is(err, book.ErrResponseTitleNotFound))

	_, err = store.RemoveLibraryTitle(ctx, 99, "X")
	is.True(errors.Is(err, book.ErrResponseLibraryNotFound))

	lib, err := store.RemoveLibraryTitle(ctx, 3, "X")
	is.NoErr(err)
	is.Equal(lib.Books, []string{"Z"})

	_, err = store.RemoveLibraryTitle(ctx, 3, "X")
	is.True(errors.Is(err, book.ErrResponseTitleNotFound))
}

func TestReplaceLibraryTitle(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	lib, err := store.ReplaceLibraryTitle(ctx, 3, "X", "Y")
	is.NoErr(err)
	is.Equal(lib.Books, []string{"Y", "Z"}) // position and length kept

	_, err = store.ReplaceLibraryTitle(ctx, 3, "Y", "Z")
	is.True(errors.Is(err, book.ErrResponseTitleAlreadyPresent))

	_, err = store.ReplaceLibraryTitle(ctx, 3, "X", "W")
	is.True(errors.Is(err, book.ErrResponseTitleNotFound))

	// Renaming back restores the original list.
	lib, err = store.ReplaceLibraryTitle(ctx, 3, "Y", "X")
	is.NoErr(err)
	is.Equal(lib.Books, []string{"X", "Z"})
}

func TestBookChangesDoNotTouchLibraries(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	b := newBook(10, "X", "Autore")
	_, err := store.CreateBook(ctx, b)
	is.NoErr(err)

	b.Title = "X rinominato"
	_, err = store.UpdateBook(ctx, b)
	is.NoErr(err)
	is.NoErr(store.DeleteBook(ctx, b.ID))

	lib, err := store.GetLibrary(ctx, 2)
	is.NoErr(err)
	is.Equal(lib.Books, []string{"X"})
}

func TestReturnedListsAreCopies(t *testing.T) {
	is := is.New(t)
	store := seededStore(t)

	lib, err := store.GetLibrary(ctx, 3)
	is.NoErr(err)
	lib.Books[0] = "changed by caller"

	again, err := store.GetLibrary(ctx, 3)
	is.NoErr(err)
	is.Equal(again.Books, []string{"X", "Z"})
}
