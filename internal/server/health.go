package server

import (
	"net/http"
	"time"
)

// Health reports liveness, audio availability and uptime on /healthz.
type Health struct {
	started time.Time
	audio   func() bool
	now     func() time.Time
}

var _ Handler = (*Health)(nil)

// NewHealth creates a [Health] handler. audio reports whether an output device is open and may be nil.
func NewHealth(audio func() bool, now func() time.Time) *Health {
	if now == nil {
		now = time.Now
	}
	if audio == nil {
		audio = func() bool { return false }
	}
	return &Health{started: now(), audio: audio, now: now}
}

// HealthResponse is the body served by [Health].
type HealthResponse struct {
	Status string `json:"status"`
	Audio  bool   `json:"audio"`
	Uptime string `json:"uptime"`
}

func (h *Health) Routes() []string {
	return []string{"/healthz"}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Audio:  h.audio(),
		Uptime: h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}
