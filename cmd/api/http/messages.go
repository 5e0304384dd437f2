package http

import "strings"

// Messages maps a message key to its text in one language.
type Messages map[string]string

var catalogs = map[string]Messages{
	"it": {
		"request.invalid_json":       "Il corpo della richiesta non è un JSON valido",
		"request.timeout":            "La richiesta ha impiegato troppo tempo",
		"book.required_fields":       "Codice libro, titolo e autore sono obbligatori",
		"book.not_found":             "Libro non trovato",
		"book.code_conflict":         "Esiste già un libro con questo codice",
		"book.key_invalid":           "Identificativo del libro non valido",
		"book.updated":               "Libro aggiornato con successo",
		"book.no_changes":            "Nessuna modifica effettuata",
		"library.id_invalid":         "ID libreria non valido",
		"library.not_found":          "Libreria non trovata",
		"library.title_blank":        "Il titolo del libro è obbligatorio",
		"library.title_present":      "Il libro è già presente in questa libreria",
		"library.title_not_found":    "Libro non trovato nella libreria",
		"library.title_not_modified": "Nessun libro è stato aggiornato",
		"library.rename_blank":       "Il vecchio e il nuovo titolo sono obbligatori",
		"library.entry_invalid":      "Dati della libreria non validi",
		"library.title_added":        "Libro aggiunto alla libreria con successo",
		"library.title_removed":      "Libro rimosso dalla libreria con successo",
		"library.title_renamed":      "Titolo del libro aggiornato con successo",
		"store.failure":              "Errore interno del server",
	},
	"en": {
		"request.invalid_json":       "The request body is not valid JSON",
		"request.timeout":            "The request took too long",
		"book.required_fields":       "Book code, title and author are required",
		"book.not_found":             "Book not found",
		"book.code_conflict":         "A book with this code already exists",
		"book.key_invalid":           "Invalid book identifier",
		"book.updated":               "Book updated successfully",
		"book.no_changes":            "No changes made",
		"library.id_invalid":         "Invalid library ID",
		"library.not_found":          "Library not found",
		"library.title_blank":        "The book title is required",
		"library.title_present":      "The book is already in this library",
		"library.title_not_found":    "Book not found in the library",
		"library.title_not_modified": "No book was updated",
		"library.rename_blank":       "Both the old and the new title are required",
		"library.entry_invalid":      "Invalid library data",
		"library.title_added":        "Book added to the library successfully",
		"library.title_removed":      "Book removed from the library successfully",
		"library.title_renamed":      "Book title updated successfully",
		"store.failure":              "Internal server error",
	},
}

const defaultLang = "it"

/* Returns the catalog for lang, falling back to Italian. */
func MessagesFor(lang string) Messages {
	if m, ok := catalogs[strings.ToLower(lang)]; ok {
		return m
	}
	return catalogs[defaultLang]
}

// Text returns the key itself when the catalog has no entry for it.
func (m Messages) Text(key string) string {
	if text, ok := m[key]; ok {
		return text
	}
	return key
}
