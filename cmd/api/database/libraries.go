package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shelf-service/cmd/api/book"
)

const libraryReturning = `id, name, floor, x_percent, y_percent, books`

type libraryRow struct {
	ID       int            `db:"id"`
	Name     string         `db:"name"`
	Floor    int            `db:"floor"`
	XPercent float64        `db:"x_percent"`
	YPercent float64        `db:"y_percent"`
	Books    pq.StringArray `db:"books"`
}

func (row libraryRow) toLibrary() book.Library {
	books := []string(row.Books)
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

func (store *Store) ListLibraries(ctx context.Context) (_ []book.Library, err error) {
	defer store.logQuery(ctx, "list libraries", time.Now(), &err)

	rows := []libraryRow{}
	err = sqlx.SelectContext(ctx, store.exc, &rows, `SELECT `+libraryReturning+` FROM libraries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing libraries from db: %w", err)
	}

	libraries := make([]book.Library, 0, len(rows))
	for _, row := range rows {
		libraries = append(libraries, row.toLibrary())
	}
	return libraries, nil
}

func (store *Store) GetLibrary(ctx context.Context, id int) (_ book.Library, err error) {
	defer store.logQuery(ctx, "get library", time.Now(), &err)

	var row libraryRow
	err = sqlx.GetContext(ctx, store.exc, &row, `SELECT `+libraryReturning+` FROM libraries WHERE id = $1`, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return book.Library{}, fmt.Errorf("searching library %d: %w", id, book.ErrResponseLibraryNotFound)
		default:
			return book.Library{}, fmt.Errorf("searching library %d: %w", id, err)
		}
	}
	return row.toLibrary(), nil
}

/* Inserts new libraries with their titles. On an existing id only name, floor and
coordinates are updated, books keeps what the linkage operations wrote. */
func (store *Store) SaveLibraryDetails(ctx context.Context, libraries []book.Library) error {
	sqlStatement := `
	INSERT INTO libraries (id, name, floor, x_percent, y_percent, books)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, floor = EXCLUDED.floor, x_percent = EXCLUDED.x_percent,
		y_percent = EXCLUDED.y_percent`

	return store.withTx(ctx, func(txStore *Store) (err error) {
		defer txStore.logQuery(ctx, "save library details", time.Now(), &err)

		for _, l := range libraries {
			_, err = txStore.exc.ExecContext(ctx, sqlStatement,
				l.ID, l.Name, l.Floor, l.XPercent, l.YPercent, categoriesArray(l.Books))
			if err != nil {
				return fmt.Errorf("saving library %d on db: %w", l.ID, err)
			}
		}
		return nil
	})
}

/* Inserts or replaces every library inside a single transaction. */
func (store *Store) SaveLibraries(ctx context.Context, libraries []book.Library) error {
	sqlStatement := `
	INSERT INTO libraries (id, name, floor, x_percent, y_percent, books)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, floor = EXCLUDED.floor, x_percent = EXCLUDED.x_percent,
		y_percent = EXCLUDED.y_percent, books = EXCLUDED.books`

	return store.withTx(ctx, func(txStore *Store) (err error) {
		defer txStore.logQuery(ctx, "save libraries", time.Now(), &err)

		for _, l := range libraries {
			_, err = txStore.exc.ExecContext(ctx, sqlStatement,
				l.ID, l.Name, l.Floor, l.XPercent, l.YPercent, categoriesArray(l.Books))
			if err != nil {
				return fmt.Errorf("saving library %d on db: %w", l.ID, err)
			}
		}
		return nil
	})
}

/* Appends title unless it is already on the list, in one conditional statement. */
func (store *Store) AppendLibraryTitle(ctx context.Context, id int, title string) (book.Library, error) {
	sqlStatement := `
	UPDATE libraries
	SET books = array_append(books, $2::text)
	WHERE id = $1 AND NOT ($2::text = ANY(books))
	RETURNING ` + libraryReturning

	return store.updateLibraryBooks(ctx, "append library title", sqlStatement, id, []any{id, title},
		func(current book.Library) error {
			return book.ErrResponseTitleAlreadyPresent
		})
}

/* Removes title when it is on the list, in one conditional statement. */
func (store *Store) RemoveLibraryTitle(ctx context.Context, id int, title string) (book.Library, error) {
	sqlStatement := `
	UPDATE libraries
	SET books = array_remove(books, $2::text)
	WHERE id = $1 AND $2::text = ANY(books)
	RETURNING ` + libraryReturning

	return store.updateLibraryBooks(ctx, "remove library title", sqlStatement, id, []any{id, title},
		func(current book.Library) error {
			return book.ErrResponseTitleNotFound
		})
}

/* Replaces oldTitle with newTitle in place when the first is present and the second is not. */
func (store *Store) ReplaceLibraryTitle(ctx context.Context, id int, oldTitle, newTitle string) (book.Library, error) {
	sqlStatement := `
	UPDATE libraries
	SET books = array_replace(books, $2::text, $3::text)
	WHERE id = $1 AND $2::text = ANY(books) AND ($2::text = $3::text OR NOT ($3::text = ANY(books)))
	RETURNING ` + libraryReturning

	return store.updateLibraryBooks(ctx, "replace library title", sqlStatement, id, []any{id, oldTitle, newTitle},
		func(current book.Library) error {
			if !slices.Contains(current.Books, oldTitle) {
				return book.ErrResponseTitleNotFound
			}
			return book.ErrResponseTitleAlreadyPresent
		})
}

// updateLibraryBooks runs a conditional UPDATE ... RETURNING. When no row comes back the
// library is read again and diagnose picks the error for the condition that failed.
func (store *Store) updateLibraryBooks(
	ctx context.Context,
	operation string,
	sqlStatement string,
	id int,
	args []any,
	diagnose func(current book.Library) error,
) (_ book.Library, err error) {
	defer store.logQuery(ctx, operation, time.Now(), &err)

	var row libraryRow
	err = sqlx.GetContext(ctx, store.exc, &row, sqlStatement, args...)
	if err == nil {
		return row.toLibrary(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, err)
	}

	current, err := store.GetLibrary(ctx, id)
	if err != nil {
		return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, err)
	}
	return book.Library{}, fmt.Errorf("updating library %d on db: %w", id, diagnose(current))
}
