package book

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Book struct {
	ID              uuid.UUID
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
	InsertedAt      time.Time
	ModifiedAt      *time.Time
}

// Number is an integer field coming from loosely typed input. When the input is not an
// integer the raw text is kept instead of rejecting the request.
type Number struct {
	Value int64
	Raw   string
	Valid bool
}

/* Parses raw as a base 10 integer, falling back to the raw text when it is not one. */
func ParseNumber(raw string) Number {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Number{Raw: raw}
	}
	return Number{Value: n, Valid: true}
}

func IntNumber(n int64) Number {
	return Number{Value: n, Valid: true}
}

// IsZero reports whether no value at all was supplied.
func (n Number) IsZero() bool {
	return !n.Valid && strings.TrimSpace(n.Raw) == ""
}

func (n Number) String() string {
	if n.Valid {
		return strconv.FormatInt(n.Value, 10)
	}
	return n.Raw
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return []byte(strconv.FormatInt(n.Value, 10)), nil
	}
	if n.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Number{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseNumber(s)
		return nil
	default:
		*n = ParseNumber(string(data))
		return nil
	}
}

// Loanable renders as "VERO" or "FALSO" on the wire.
type Loanable bool

const (
	LoanableTrue  = "VERO"
	LoanableFalse = "FALSO"
)

func (l Loanable) String() string {
	if l {
		return LoanableTrue
	}
	return LoanableFalse
}

func (l Loanable) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON only accepts boolean true and the exact string "VERO" as true.
func (l *Loanable) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*l = Loanable(v)
	case string:
		*l = Loanable(v == LoanableTrue)
	default:
		*l = false
	}
	return nil
}

// Categories accepts either a single string or a list of strings.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Categories{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

/* Returns the categories as a list without repeated values, keeping the first occurrence. */
func NormalizeCategories(categories []string) []string {
	normalized := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		normalized = append(normalized, category)
	}
	return normalized
}

/* Verifies that code, title and author are filled. */
func FilledFields(req CreateBookRequest) error {
	if req.Code.IsZero() {
		return ErrResponseBookEntryBlankFields
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrResponseBookEntryBlankFields
	}
	if strings.TrimSpace(req.Author) == "" {
		return ErrResponseBookEntryBlankFields
	}
	return nil
}
