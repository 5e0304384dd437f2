package database

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/shelf-service/cmd/api/book"
)

const (
	booksTable     = "books"
	librariesTable = "libraries"
	colCategory    = "category"
)

var bookColumns = []any{
	"id", "code", "title", "author", "classification", "inventory_number", "publisher",
	"location", "categories", "loanable", "image", "inserted_at", "modified_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

/* Builds the SELECT for a filtered book listing. Every value travels as a bind argument. */
func buildListBooksQuery(filter book.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(driverName).
		From(booksTable).
		Select(bookColumns...).
		Order(goqu.I("inserted_at").Asc(), goqu.I("code").Asc()).
		Prepared(true)

	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		selectStmt = selectStmt.Where(goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
			goqu.C("code").ILike(pattern),
		))
	}
	if filter.Category != "" {
		selectStmt = selectStmt.Where(goqu.L("? = ANY(categories)", filter.Category))
	}
	if filter.Location != "" {
		selectStmt = selectStmt.Where(goqu.C("location").Eq(filter.Location))
	}

	query, args, err := selectStmt.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("building list query: %w", err)
	}
	return query, args, nil
}

/* Builds the SELECT of the distinct non-empty categories across every book, sorted. */
func buildCategoriesQuery() (string, []any, error) {
	selectStmt := goqu.Dialect(driverName).
		From(goqu.T(booksTable), goqu.L("unnest(categories)").As(colCategory)).
		Select(goqu.C(colCategory)).
		Distinct().
		Where(goqu.C(colCategory).Neq("")).
		Order(goqu.C(colCategory).Asc()).
		Prepared(true)

	query, args, err := selectStmt.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("building categories query: %w", err)
	}
	return query, args, nil
}
