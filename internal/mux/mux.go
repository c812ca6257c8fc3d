package mux

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"

	"pokerhall-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxTableKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	lastPlayerCreateLock sync.Mutex
	lastPlayerCreate     map[string]time.Time

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	pitBoss := room.NewPitBoss()
	pitBoss.StartShift()

	this := &Mux{
		Router:           gmux.NewRouter(),
		version:          version,
		pitBoss:          pitBoss,
		lastPlayerCreate: make(map[string]time.Time),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires an access token from POST /player
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		player, ok := m.pitBoss.Player(token)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		ctx := context.WithValue(r.Context(), ctxPlayerKey, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl, ok := m.pitBoss.Table(gmux.Vars(r)["uuid"])
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		ctx := context.WithValue(r.Context(), ctxTableKey, tbl)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
