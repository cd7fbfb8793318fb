package handlers

import (
	"net/http"

	"github.com/fomo-ops/fomobot/internal/interfaces/rest"
)

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteText(w, http.StatusOK, "ok")
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			rest.WriteText(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	rest.WriteText(w, http.StatusOK, "ok")
}
