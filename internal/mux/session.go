package mux

import (
	"errors"
	"net/http"

	"cheat-server/pkg/joincode"
	"cheat-server/pkg/room"
)

type postSessionResponse struct {
	Code string `json:"code"`
}

func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.CreateSession(r.Context())
		if err != nil {
			if errors.Is(err, joincode.ErrExhausted) {
				writeJSONError(w, http.StatusServiceUnavailable, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, postSessionResponse{Code: dealer.Code()})
	}
}

func (m *Mux) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		summary, err := dealer.Summary()
		if err != nil {
			if errors.Is(err, room.ErrSessionNotFound) {
				writeJSONError(w, http.StatusNotFound, nil)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
