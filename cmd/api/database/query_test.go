package database

import (
	"testing"

	"github.com/shelf-service/cmd/api/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListBooksQuery(t *testing.T) {
	t.Run("no filter selects every book", func(t *testing.T) {
		query, args, err := buildListBooksQuery(book.NewFilter("", "all", "all"))
		require.NoError(t, err)

		assert.Contains(t, query, `FROM "books"`)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, `ORDER BY "inserted_at" ASC, "code" ASC`)
		assert.Empty(t, args)
	})

	t.Run("search matches title, author or code", func(t *testing.T) {
		query, args, err := buildListBooksQuery(book.NewFilter("shake", "", ""))
		require.NoError(t, err)

		assert.Contains(t, query, `"title" ILIKE $1`)
		assert.Contains(t, query, `"author" ILIKE $2`)
		assert.Contains(t, query, `"code" ILIKE $3`)
		assert.Contains(t, query, " OR ")
		assert.Equal(t, []any{"%shake%", "%shake%", "%shake%"}, args)
	})

	t.Run("like wildcards in the search are escaped", func(t *testing.T) {
		_, args, err := buildListBooksQuery(book.NewFilter(`50%_off\`, "", ""))
		require.NoError(t, err)

		require.Len(t, args, 3)
		assert.Equal(t, `%50\%\_off\\%`, args[0])
	})

	t.Run("category and location are bound arguments", func(t *testing.T) {
		query, args, err := buildListBooksQuery(book.NewFilter("", "Giallo", "Sala B"))
		require.NoError(t, err)

		assert.Contains(t, query, "$1 = ANY(categories)")
		assert.Contains(t, query, `"location" = $2`)
		assert.Equal(t, []any{"Giallo", "Sala B"}, args)
	})

	t.Run("user input never reaches the statement text", func(t *testing.T) {
		query, _, err := buildListBooksQuery(book.NewFilter("'; DROP TABLE books; --", "x' OR '1'='1", ""))
		require.NoError(t, err)

		assert.NotContains(t, query, "DROP TABLE")
		assert.NotContains(t, query, "'1'='1")
	})
}

func TestBuildCategoriesQuery(t *testing.T) {
	query, args, err := buildCategoriesQuery()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT DISTINCT")
	assert.Contains(t, query, "unnest(categories)")
	assert.Contains(t, query, `ORDER BY "category" ASC`)
	assert.Equal(t, []any{""}, args)
}
