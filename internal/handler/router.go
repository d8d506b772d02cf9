package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signin/github", h.SignInGitHub).Methods(http.MethodGet)
	auth.HandleFunc("/callback/github", h.CallbackGitHub).Methods(http.MethodGet)
	auth.HandleFunc("/session", h.GetSession).Methods(http.MethodGet)
	auth.HandleFunc("/signout", h.SignOut).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/startups", h.CreateStartup).Methods(http.MethodPost)
	api.HandleFunc("/startups/{id}", h.GetStartup).Methods(http.MethodGet)
	api.HandleFunc("/authors/{id}", h.GetAuthor).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Not found", http.StatusNotFound)
	})

	return r
}
