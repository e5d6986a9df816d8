package mux

import (
	"context"
	"net/http"

	"cheat-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/cheat").Handler(this.getCheatWS())
	r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())

	sr := r.PathPrefix("/session/{code:[A-Za-z]{4}}").Subrouter()
	sr.Use(this.sessionMiddleware)

	sr.Methods(http.MethodGet).Path("").Handler(this.getSession())
	sr.Methods(http.MethodGet).Path("/ws").Handler(this.getSessionWS())

	return this
}

func (m *Mux) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, found := m.pitBoss.Session(gmux.Vars(r)["code"])
		if !found {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
