package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shelf-service/cmd/api/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	updateStatusUpdated   = "updated"
	updateStatusNoChanges = "no_changes"
)

type BookHandler struct {
	bookService book.ServiceAPI
	logger      *slog.Logger
	messages    Messages
}

func NewBookHandler(bookService book.ServiceAPI, logger *slog.Logger, messages Messages) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if messages == nil {
		messages = MessagesFor(defaultLang)
	}
	return &BookHandler{bookService: bookService, logger: logger, messages: messages}
}

/* Addresses a call to "/books/{key}" according to the requested action.  */
func (h *BookHandler) bookByKey(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	switch method {
	case http.MethodGet:
		h.getBook(w, r)
		return
	case http.MethodPut:
		h.updateBook(w, r)
		return
	case http.MethodDelete:
		h.deleteBook(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

/* Addresses a call to "/books" according to the requested action.  */
func (h *BookHandler) books(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	switch method {
	case http.MethodGet:
		h.listBooks(w, r)
		return
	case http.MethodPost:
		h.createBook(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

// BookEntry is the body of a create request.
type BookEntry struct {
	Code            book.Number     `json:"codiceLibro"`
	Title           string          `json:"titolo"`
	Author          string          `json:"autore"`
	Classification  string          `json:"CDD"`
	InventoryNumber book.Number     `json:"numeroInventario"`
	Publisher       string          `json:"casaEditrice"`
	Location        string          `json:"collocazione"`
	Categories      book.Categories `json:"categoria"`
	Loanable        book.Loanable   `json:"prestabile"`
	Image           *string         `json:"immagine"`
}

// UpdateBookEntry holds only what the client sent, absent and null fields stay nil.
// Image is kept raw so that an explicit null can be told apart from an absent field.
type UpdateBookEntry struct {
	Title           *string             `json:"titolo"`
	Author          *string             `json:"autore"`
	Classification  *string             `json:"CDD"`
	InventoryNumber *book.Number        `json:"numeroInventario"`
	Publisher       *string             `json:"casaEditrice"`
	Location        *string             `json:"collocazione"`
	Categories      *book.Categories    `json:"categoria"`
	Loanable        *book.Loanable      `json:"prestabile"`
	Image           jsoniter.RawMessage `json:"immagine"`
}

type BookResponse struct {
	ID              uuid.UUID     `json:"id"`
	Code            book.Number   `json:"codiceLibro"`
	Title           string        `json:"titolo"`
	Author          string        `json:"autore"`
	Classification  string        `json:"CDD"`
	InventoryNumber book.Number   `json:"numeroInventario"`
	Publisher       string        `json:"casaEditrice"`
	Location        string        `json:"collocazione"`
	Categories      []string      `json:"categoria"`
	Loanable        book.Loanable `json:"prestabile"`
	Image           *string       `json:"immagine"`
	InsertedAt      time.Time     `json:"dataInserimento"`
	ModifiedAt      *time.Time    `json:"dataModifica,omitempty"`
}

type UpdateBookResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Book    BookResponse `json:"book"`
}

/* Validates the entry, then stores the entry as a new book. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	var bookEntry BookEntry
	err := json.NewDecoder(r.Body).Decode(&bookEntry)
	if err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	storedBook, err := h.bookService.CreateBook(r.Context(), bookToCreateReq(bookEntry))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.responseJSON(w, http.StatusCreated, bookToResponse(storedBook))
}

/* Applies the sent fields to the book found by key. */
func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	key, err := book.ParseKey(r.PathValue("key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var updateEntry UpdateBookEntry
	err = json.NewDecoder(r.Body).Decode(&updateEntry)
	if err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	updateReq, err := bookToUpdateReq(updateEntry, key)
	if err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	result, err := h.bookService.UpdateBook(r.Context(), updateReq)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	status, messageKey := updateStatusUpdated, "book.updated"
	if !result.Changed {
		status, messageKey = updateStatusNoChanges, "book.no_changes"
	}
	h.responseJSON(w, http.StatusOK, UpdateBookResponse{
		Status:  status,
		Message: h.messages.Text(messageKey),
		Book:    bookToResponse(result.Book),
	})
}

/* Returns the book found by surrogate id or code. */
func (h *BookHandler) getBook(w http.ResponseWriter, r *http.Request) {
	key, err := book.ParseKey(r.PathValue("key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	returnedBook, err := h.bookService.GetBook(r.Context(), key)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

/* Removes the book and answers with the record as it was. */
func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	key, err := book.ParseKey(r.PathValue("key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	deletedBook, err := h.bookService.DeleteBook(r.Context(), key)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.responseJSON(w, http.StatusOK, bookToResponse(deletedBook))
}

/* Returns the books matching the search, category and library query parameters. */
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := book.NewFilter(query.Get("search"), query.Get("category"), query.Get("library"))

	books, err := h.bookService.ListBooks(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	results := make([]BookResponse, 0, len(books))
	for _, b := range books {
		results = append(results, bookToResponse(b))
	}
	h.responseJSON(w, http.StatusOK, results)
}

func (h *BookHandler) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.bookService.ListCategories(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	h.responseJSON(w, http.StatusOK, categories)
}

/* Converts from BookEntry type to CreateBookRequest type, with no json tags. */
func bookToCreateReq(b BookEntry) book.CreateBookRequest {
	return book.CreateBookRequest{
		Code:            b.Code,
		Title:           b.Title,
		Author:          b.Author,
		Classification:  b.Classification,
		InventoryNumber: b.InventoryNumber,
		Publisher:       b.Publisher,
		Location:        b.Location,
		Categories:      []string(b.Categories),
		Loanable:        b.Loanable,
		Image:           b.Image,
	}
}

/* Converts from UpdateBookEntry type to UpdateBookRequest type, with no json tags. */
func bookToUpdateReq(b UpdateBookEntry, key book.Key) (book.UpdateBookRequest, error) {
	req := book.UpdateBookRequest{
		Key:             key,
		Title:           b.Title,
		Author:          b.Author,
		Classification:  b.Classification,
		InventoryNumber: b.InventoryNumber,
		Publisher:       b.Publisher,
		Location:        b.Location,
		Loanable:        b.Loanable,
	}
	if b.Categories != nil {
		categories := []string(*b.Categories)
		req.Categories = &categories
	}
	switch {
	case len(b.Image) == 0:
	case string(b.Image) == "null":
		req.ClearImage = true
	default:
		var image string
		if err := json.Unmarshal(b.Image, &image); err != nil {
			return book.UpdateBookRequest{}, fmt.Errorf("immagine: %w", err)
		}
		req.Image = &image
	}
	return req, nil
}

/*Copy the fields of a book object to an http layer struct with json tags*/
func bookToResponse(b book.Book) BookResponse {
	categories := b.Categories
	if categories == nil {
		categories = []string{}
	}
	return BookResponse{
		ID:              b.ID,
		Code:            b.Code,
		Title:           b.Title,
		Author:          b.Author,
		Classification:  b.Classification,
		InventoryNumber: b.InventoryNumber,
		Publisher:       b.Publisher,
		Location:        b.Location,
		Categories:      categories,
		Loanable:        b.Loanable,
		Image:           b.Image,
		InsertedAt:      b.InsertedAt,
		ModifiedAt:      b.ModifiedAt,
	}
}

/*Writes a JSON response into a http.ResponseWriter. */
func (h *BookHandler) responseJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		h.logger.Warn("writing response", "error", err)
	}
}
