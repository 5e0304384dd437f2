package http

import (
	"net/http"
	"strings"

	"github.com/shelf-service/cmd/api/book"
)

type LibraryResponse struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Floor    int      `json:"floor"`
	XPercent float64  `json:"xPercent"`
	YPercent float64  `json:"yPercent"`
	Books    []string `json:"books"`
}

type LibrariesResponse struct {
	Data []LibraryResponse `json:"data"`
}

type TitleEntry struct {
	BookTitle string `json:"bookTitle"`
}

type RenameTitleEntry struct {
	OldTitle string `json:"oldTitle"`
	NewTitle string `json:"newTitle"`
}

type TitleAddedResponse struct {
	Message    string   `json:"message"`
	BookTitle  string   `json:"bookTitle"`
	TotalBooks int      `json:"totalBooks"`
	Books      []string `json:"books"`
}

type TitleRemovedResponse struct {
	Message   string `json:"message"`
	BookTitle string `json:"bookTitle"`
	LibraryID int    `json:"libraryId"`
}

type TitleRenamedResponse struct {
	Message  string   `json:"message"`
	OldTitle string   `json:"oldTitle"`
	NewTitle string   `json:"newTitle"`
	Books    []string `json:"books"`
}

/* Addresses a call to "/libraries".  */
func (h *BookHandler) libraries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	libraries, err := h.bookService.ListLibraries(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := LibrariesResponse{Data: make([]LibraryResponse, 0, len(libraries))}
	for _, l := range libraries {
		resp.Data = append(resp.Data, libraryToResponse(l))
	}
	h.responseJSON(w, http.StatusOK, resp)
}

/* Addresses a call to "/libraries/{id}/books" according to the requested action.  */
func (h *BookHandler) libraryBooks(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	switch method {
	case http.MethodGet:
		h.getLibrary(w, r)
		return
	case http.MethodPost:
		h.addTitle(w, r)
		return
	case http.MethodDelete:
		h.removeTitle(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

func (h *BookHandler) libraryUpdateTitle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var entry RenameTitleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	library, err := h.bookService.RenameTitle(r.Context(), book.RenameTitleRequest{
		LibraryID: r.PathValue("id"),
		OldTitle:  entry.OldTitle,
		NewTitle:  entry.NewTitle,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.responseJSON(w, http.StatusOK, TitleRenamedResponse{
		Message:  h.messages.Text("library.title_renamed"),
		OldTitle: strings.TrimSpace(entry.OldTitle),
		NewTitle: strings.TrimSpace(entry.NewTitle),
		Books:    booksOrEmpty(library.Books),
	})
}

func (h *BookHandler) getLibrary(w http.ResponseWriter, r *http.Request) {
	library, err := h.bookService.GetLibrary(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.responseJSON(w, http.StatusOK, libraryToResponse(library))
}

/* Shelves a title in the library and echoes the title as it was stored. */
func (h *BookHandler) addTitle(w http.ResponseWriter, r *http.Request) {
	var entry TitleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	library, err := h.bookService.AddTitle(r.Context(), book.TitleRequest{
		LibraryID: r.PathValue("id"),
		Title:     entry.BookTitle,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	books := booksOrEmpty(library.Books)
	h.responseJSON(w, http.StatusCreated, TitleAddedResponse{
		Message:    h.messages.Text("library.title_added"),
		BookTitle:  strings.TrimSpace(entry.BookTitle),
		TotalBooks: len(books),
		Books:      books,
	})
}

func (h *BookHandler) removeTitle(w http.ResponseWriter, r *http.Request) {
	var entry TitleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.handleInvalidJSON(w, r, err)
		return
	}

	removed, err := h.bookService.RemoveTitle(r.Context(), book.TitleRequest{
		LibraryID: r.PathValue("id"),
		Title:     entry.BookTitle,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.responseJSON(w, http.StatusOK, TitleRemovedResponse{
		Message:   h.messages.Text("library.title_removed"),
		BookTitle: removed.Title,
		LibraryID: removed.LibraryID,
	})
}

func libraryToResponse(l book.Library) LibraryResponse {
	return LibraryResponse{
		ID:       l.ID,
		Name:     l.Name,
		Floor:    l.Floor,
		XPercent: l.XPercent,
		YPercent: l.YPercent,
		Books:    booksOrEmpty(l.Books),
	}
}

func booksOrEmpty(books []string) []string {
	if books == nil {
		return []string{}
	}
	return books
}
