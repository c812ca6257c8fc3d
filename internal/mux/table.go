package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"pokerhall-server/pkg/table"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.Tables())
	}
}

type postTablePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postTable() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Name != "" && (!wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40) {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		tbl := m.pitBoss.CreateTable(pp.Name)
		writeJSON(w, http.StatusCreated, tableResponse(tbl))
	}
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		writeJSON(w, http.StatusOK, tableResponse(tbl))
	})
}

func tableResponse(tbl *table.Table) json.RawMessage {
	return json.RawMessage(tbl.State())
}
