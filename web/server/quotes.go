package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/starshine-sys/quotebot/quotes"
	"github.com/starshine-sys/quotebot/store"
)

type healthResponse struct {
	Status string `json:"status"`
	Quotes int    `json:"quotes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Quotes: s.Quotes.Count()})
}

// guildQuotes lists a guild's quotes, optionally filtered by quoter.
func (s *Server) guildQuotes(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")

	var list []store.Quote
	if quoter := r.URL.Query().Get("quoter"); quoter != "" {
		list = s.Quotes.ByQuoter(quoter, guildID)
	} else {
		list = s.Quotes.Guild(guildID)
	}

	render.JSON(w, r, list)
}

func (s *Server) randomQuote(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")

	q, ok := quotes.Random(s.Rand, s.Quotes.Search(guildID, r.URL.Query().Get("query")))
	if !ok {
		writeError(w, r, http.StatusNotFound, "no quotes found")
		return
	}

	render.JSON(w, r, q)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	q, ok := s.Quotes.ByID(chi.URLParam(r, "id"), chi.URLParam(r, "guildID"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "quote not found")
		return
	}

	render.JSON(w, r, q)
}
