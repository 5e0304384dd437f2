package book

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type KeyKind int

const (
	KeySurrogateID KeyKind = iota + 1
	KeyCode
	KeyRaw
)

// Key addresses a single book. It is resolved once, at the edge, and stores never
// re-derive which kind of key they received.
type Key struct {
	kind KeyKind
	id   uuid.UUID
	code int64
	raw  string
}

func SurrogateIDKey(id uuid.UUID) Key { return Key{kind: KeySurrogateID, id: id} }
func CodeKey(code int64) Key { return Key{kind: KeyCode, code: code} }
func RawKey(raw string) Key { return Key{kind: KeyRaw, raw: raw} }

/* Resolves a path segment: surrogate id first, then numeric code, then the raw text. */
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, ErrResponseKeyInvalid
	}
	if id, err := uuid.Parse(s); err == nil {
		return SurrogateIDKey(id), nil
	}
	if code, err := strconv.ParseInt(s, 10, 64); err == nil {
		return CodeKey(code), nil
	}
	return RawKey(s), nil
}

// KeyForCode builds the key that looks a book up by its code.
func KeyForCode(code Number) Key {
	if code.Valid {
		return CodeKey(code.Value)
	}
	return RawKey(code.Raw)
}

func (k Key) Kind() KeyKind { return k.kind }
func (k Key) ID() uuid.UUID { return k.id }
func (k Key) IsSurrogateID() bool { return k.kind == KeySurrogateID }

// CodeText is the stored text form of the code the key refers to. It is empty for
// surrogate id keys.
func (k Key) CodeText() string {
	switch k.kind {
	case KeyCode:
		return strconv.FormatInt(k.code, 10)
	case KeyRaw:
		return k.raw
	default:
		return ""
	}
}

func (k Key) String() string {
	if k.kind == KeySurrogateID {
		return k.id.String()
	}
	return k.CodeText()
}
