// Package server is a small read-only HTTP API over the quote store.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/quotes"
)

// Server serves quotes over HTTP.
type Server struct {
	Quotes *quotes.Store
	Rand   quotes.RandomSource

	mux chi.Router
}

// New creates a new Server. rand is used for the random quote endpoint.
func New(q *quotes.Store, rand quotes.RandomSource) *Server {
	s := &Server{
		Quotes: q,
		Rand:   rand,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})

	r.Get("/health", s.health)

	r.Route("/v1/guilds/{guildID}/quotes", func(r chi.Router) {
		r.Get("/", s.guildQuotes)
		r.Get("/random", s.randomQuote)
		r.Get("/{id}", s.quote)
	})

	s.mux = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run listens on the given port until ctx is cancelled.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + strings.TrimPrefix(port, ":"),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutting down HTTP server: %v", err)
		}
	}()

	log.Infof("HTTP API listening on %v", srv.Addr)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving HTTP API")
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.Debugf("%s %s -> %d in %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
