package book

import (
	"fmt"
)

// Kind groups error responses by the way a client should react to them.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindTimeout
	KindStore
)

// ErrResponse is a comparable error value. Key is a message key, the text shown to
// clients comes from the http message catalog.
type ErrResponse struct {
	Code int
	Key  string
	Kind Kind
}

func (e ErrResponse) Error() string {
	return e.Key
}

var ErrResponseEntryInvalidJSON = ErrResponse{100, "request.invalid_json", KindValidation}
var ErrResponseBookEntryBlankFields = ErrResponse{101, "book.required_fields", KindValidation}
var ErrResponseBookNotFound = ErrResponse{102, "book.not_found", KindNotFound}
var ErrResponseBookCodeConflict = ErrResponse{103, "book.code_conflict", KindConflict}
var ErrResponseKeyInvalid = ErrResponse{104, "book.key_invalid", KindValidation}
var ErrResponseLibraryIDInvalid = ErrResponse{105, "library.id_invalid", KindValidation}
var ErrResponseLibraryNotFound = ErrResponse{106, "library.not_found", KindNotFound}
var ErrResponseTitleBlank = ErrResponse{107, "library.title_blank", KindValidation}
var ErrResponseTitleAlreadyPresent = ErrResponse{108, "library.title_present", KindConflict}
var ErrResponseRequestTimeout = ErrResponse{109, "request.timeout", KindTimeout}
var ErrResponseTitleNotFound = ErrResponse{110, "library.title_not_found", KindNotFound}
var ErrResponseTitleNotModified = ErrResponse{111, "library.title_not_modified", KindNotFound}
var ErrResponseRenameBlankFields = ErrResponse{112, "library.rename_blank", KindValidation}
var ErrResponseLibraryEntryInvalid = ErrResponse{113, "library.entry_invalid", KindValidation}
var ErrResponseFromRepository = ErrResponse{120, "store.failure", KindStore}

type ErrNotificationFailed struct {
	statusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 200 OK, got: %d", e.statusCode)
}

func NewErrNotificationFailed(statusCode int) ErrNotificationFailed {
	return ErrNotificationFailed{statusCode: statusCode}
}
