package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quantum-shift/internal/app"
	"quantum-shift/internal/domain"
)

// NewRouter mounts health, bank and websocket endpoints.
func NewRouter(service *app.RoundService, defaultBank string) *http.ServeMux {
	wsHandler := NewWSHandler(service, defaultBank)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /banks/{id}", bankHandler(service))
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	return mux
}

// bankHandler serves the client view of a bank; correct answers are never exposed.
func bankHandler(service *app.RoundService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := service.Bank(r.Context(), r.PathValue("id"))
		if errors.Is(err, domain.ErrBankNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("load bank %s: %v", r.PathValue("id"), err)
			http.Error(w, "bank unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(bank.Public()); err != nil {
			log.Printf("encode bank: %v", err)
		}
	}
}
