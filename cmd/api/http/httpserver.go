package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=httpmock github.com/shelf-service/cmd/api/book ServiceAPI

type ServerConfig struct {
	Port           int
	RequestTimeout time.Duration
}

func NewServer(config ServerConfig, h *BookHandler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", ping)
	mux.HandleFunc("/books", h.books)
	mux.HandleFunc("/books/{key}", h.bookByKey)
	mux.HandleFunc("/categories", h.categories)
	mux.HandleFunc("/libraries", h.libraries)
	mux.HandleFunc("/libraries/{id}/books", h.libraryBooks)
	mux.HandleFunc("/libraries/{id}/books/update-title", h.libraryUpdateTitle)

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: withRequestTimeout(mux, config.RequestTimeout),
	}
	return &server
}

// withRequestTimeout bounds every request context. Handlers map the expired deadline to 504.
func withRequestTimeout(next http.Handler, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodGet {
		w.WriteHeader(http.StatusNoContent)
		return
	} else {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}
