package mux

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"pokerhall-server/internal/config"
	"pokerhall-server/internal/util"
)

type playerPayload struct {
	ScreenName string `json:"screenName"`
}

type playerCreatedResponse struct {
	ID         string `json:"id"`
	ScreenName string `json:"screenName"`
	Chips      int    `json:"chips"`
}

var validScreenNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !validScreenNameRx.MatchString(pp.ScreenName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("screen name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		addr := remoteAddr(r)
		if !m.mayCreatePlayer(addr) {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another player"))
			return
		}

		screenName := pp.ScreenName
		if screenName == "" {
			screenName = util.GetRandomName()
		}

		player, id, err := m.pitBoss.RegisterPlayer(screenName)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.recordPlayerCreate(addr)

		writeJSON(w, http.StatusCreated, &playerCreatedResponse{
			ID:         id,
			ScreenName: player.Public.Name,
			Chips:      player.Chips(),
		})
	}
}

func (m *Mux) mayCreatePlayer(addr string) bool {
	delay := time.Second * time.Duration(config.Instance().PlayerCreateDelay)

	m.lastPlayerCreateLock.Lock()
	defer m.lastPlayerCreateLock.Unlock()

	at, found := m.lastPlayerCreate[addr]
	return !found || time.Since(at) >= delay
}

func (m *Mux) recordPlayerCreate(addr string) {
	m.lastPlayerCreateLock.Lock()
	defer m.lastPlayerCreateLock.Unlock()
	m.lastPlayerCreate[addr] = time.Now()
}
