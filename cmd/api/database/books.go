package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shelf-service/cmd/api/book"
)

const uniqueViolation = "23505"

const bookReturning = `id, code, title, author, classification, inventory_number, publisher,
	location, categories, loanable, image, inserted_at, modified_at`

type bookRow struct {
	ID              uuid.UUID      `db:"id"`
	Code            string         `db:"code"`
	Title           string         `db:"title"`
	Author          string         `db:"author"`
	Classification  string         `db:"classification"`
	InventoryNumber string         `db:"inventory_number"`
	Publisher       string         `db:"publisher"`
	Location        string         `db:"location"`
	Categories      pq.StringArray `db:"categories"`
	Loanable        bool           `db:"loanable"`
	Image           sql.NullString `db:"image"`
	InsertedAt      time.Time      `db:"inserted_at"`
	ModifiedAt      sql.NullTime   `db:"modified_at"`
}

func (row bookRow) toBook() book.Book {
	b := book.Book{
		ID:              row.ID,
		Code:            book.ParseNumber(row.Code),
		Title:           row.Title,
		Author:          row.Author,
		Classification:  row.Classification,
		InventoryNumber: book.ParseNumber(row.InventoryNumber),
		Publisher:       row.Publisher,
		Location:        row.Location,
		Categories:      []string(row.Categories),
		Loanable:        book.Loanable(row.Loanable),
		InsertedAt:      row.InsertedAt.UTC(),
	}
	if b.InventoryNumber.IsZero() {
		b.InventoryNumber = book.Number{}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if row.Image.Valid {
		image := row.Image.String
		b.Image = &image
	}
	if row.ModifiedAt.Valid {
		modifiedAt := row.ModifiedAt.Time.UTC()
		b.ModifiedAt = &modifiedAt
	}
	return b
}

func categoriesArray(categories []string) pq.StringArray {
	if categories == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(categories)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

/* Returns the books matching the filter, oldest first. */
func (store *Store) ListBooks(ctx context.Context, filter book.Filter) (_ []book.Book, err error) {
	defer store.logQuery(ctx, "list books", time.Now(), &err)

	query, args, err := buildListBooksQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	rows := []bookRow{}
	err = sqlx.SelectContext(ctx, store.exc, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := make([]book.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toBook())
	}
	return books, nil
}

/* Searches a book by surrogate id or by code and returns it if found. */
func (store *Store) GetBook(ctx context.Context, key book.Key) (_ book.Book, err error) {
	defer store.logQuery(ctx, "get book", time.Now(), &err)

	var arg any = key.CodeText()
	sqlStatement := `SELECT ` + bookReturning + ` FROM books WHERE code = $1`
	if key.IsSurrogateID() {
		arg = key.ID()
		sqlStatement = `SELECT ` + bookReturning + ` FROM books WHERE id = $1`
	}

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, sqlStatement, arg)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return book.Book{}, fmt.Errorf("searching book by key: %w", book.ErrResponseBookNotFound)
		default:
			return book.Book{}, fmt.Errorf("searching book by key: %w", err)
		}
	}
	return row.toBook(), nil
}

/* Stores the book into the database and returns it as stored. A taken code is a conflict. */
func (store *Store) CreateBook(ctx context.Context, bookEntry book.Book) (_ book.Book, err error) {
	defer store.logQuery(ctx, "create book", time.Now(), &err)

	sqlStatement := `
	INSERT INTO books (id, code, title, author, classification, inventory_number, publisher,
		location, categories, loanable, image, inserted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + bookReturning

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, sqlStatement,
		bookEntry.ID, bookEntry.Code.String(), bookEntry.Title, bookEntry.Author,
		bookEntry.Classification, bookEntry.InventoryNumber.String(), bookEntry.Publisher,
		bookEntry.Location, categoriesArray(bookEntry.Categories), bool(bookEntry.Loanable),
		nullString(bookEntry.Image), bookEntry.InsertedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return book.Book{}, fmt.Errorf("storing book on db: %w", book.ErrResponseBookCodeConflict)
		}
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}
	return row.toBook(), nil
}

/* Writes every mutable field of the book. Code and insertion time are left untouched. */
func (store *Store) UpdateBook(ctx context.Context, bookEntry book.Book) (_ book.Book, err error) {
	defer store.logQuery(ctx, "update book", time.Now(), &err)

	sqlStatement := `
	UPDATE books
	SET title = $2, author = $3, classification = $4, inventory_number = $5, publisher = $6,
		location = $7, categories = $8, loanable = $9, image = $10, modified_at = $11
	WHERE id = $1
	RETURNING ` + bookReturning

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, sqlStatement,
		bookEntry.ID, bookEntry.Title, bookEntry.Author, bookEntry.Classification,
		bookEntry.InventoryNumber.String(), bookEntry.Publisher, bookEntry.Location,
		categoriesArray(bookEntry.Categories), bool(bookEntry.Loanable),
		nullString(bookEntry.Image), nullTime(bookEntry.ModifiedAt))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return book.Book{}, fmt.Errorf("updating book on db: %w", book.ErrResponseBookNotFound)
		default:
			return book.Book{}, fmt.Errorf("updating book on db: %w", err)
		}
	}
	return row.toBook(), nil
}

func (store *Store) DeleteBook(ctx context.Context, id uuid.UUID) (err error) {
	defer store.logQuery(ctx, "delete book", time.Now(), &err)

	result, err := store.exc.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("deleting book from db: %w", book.ErrResponseBookNotFound)
	}
	return nil
}

func (store *Store) ListCategories(ctx context.Context) (_ []string, err error) {
	defer store.logQuery(ctx, "list categories", time.Now(), &err)

	query, args, err := buildCategoriesQuery()
	if err != nil {
		return nil, fmt.Errorf("listing categories from db: %w", err)
	}

	categories := []string{}
	err = sqlx.SelectContext(ctx, store.exc, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories from db: %w", err)
	}
	return categories, nil
}
