package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/repositories"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/desertthunder/comeback/internal/tasks"
	"github.com/gorilla/websocket"
)

// maxReportDays bounds the report window accepted over HTTP.
const maxReportDays = 366

// APIOpts holds the collaborators of an [API]. Tracker, History, Calm and Synth are required.
type APIOpts struct {
	Tracker     *repositories.Tracker
	History     *tasks.HistoryEngine
	Calm        *audio.CalmTimer
	Synth       *audio.Synth
	Preferences models.PreferenceStore
	Logger      *log.Logger
	FrameRate   int
	Now         func() time.Time
}

// API serves the tracker over JSON.
type API struct {
	tracker  *repositories.Tracker
	history  *tasks.HistoryEngine
	calm     *audio.CalmTimer
	synth    *audio.Synth
	prefs    models.PreferenceStore
	logger   *log.Logger
	interval time.Duration
	now      func() time.Time
	upgrader websocket.Upgrader

	// ctx outlives requests so a calm session started over HTTP keeps running.
	ctx context.Context
}

// NewAPI creates an [API]. Sessions started through it end when ctx is cancelled.
func NewAPI(ctx context.Context, opts APIOpts) *API {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = audio.DefaultFrameRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &API{
		tracker:  opts.Tracker,
		history:  opts.History,
		calm:     opts.Calm,
		synth:    opts.Synth,
		prefs:    opts.Preferences,
		logger:   opts.Logger,
		interval: time.Second / time.Duration(opts.FrameRate),
		now:      opts.Now,
		ctx:      ctx,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Register adds every API route to r.
func (a *API) Register(r Router) {
	r.Handle(http.MethodGet, "/api/today", http.HandlerFunc(a.today))
	r.Handle(http.MethodGet, "/api/days/{day}", http.HandlerFunc(a.day))
	r.Handle(http.MethodPost, "/api/mood", http.HandlerFunc(a.setMood))
	r.Handle(http.MethodPost, "/api/water", http.HandlerFunc(a.adjustWater))
	r.Handle(http.MethodPost, "/api/meals", http.HandlerFunc(a.toggleMeal))
	r.Handle(http.MethodPost, "/api/routine", http.HandlerFunc(a.toggleRoutine))
	r.Handle(http.MethodGet, "/api/report", http.HandlerFunc(a.report))
	r.Handle(http.MethodGet, "/api/moods", http.HandlerFunc(a.moods))
	r.Handle(http.MethodGet, "/api/phases", http.HandlerFunc(a.phases))
	r.Handle(http.MethodGet, "/api/calm", http.HandlerFunc(a.calmState))
	r.Handle(http.MethodPost, "/api/calm/start", http.HandlerFunc(a.calmStart))
	r.Handle(http.MethodPost, "/api/calm/stop", http.HandlerFunc(a.calmStop))
	r.Handle(http.MethodGet, "/api/calm/stream", http.HandlerFunc(a.calmStream))
	r.Handle(http.MethodGet, "/api/synth", http.HandlerFunc(a.synthState))
	r.Handle(http.MethodPost, "/api/synth/start", http.HandlerFunc(a.synthStart))
	r.Handle(http.MethodPost, "/api/synth/stop", http.HandlerFunc(a.synthStop))
	r.Handle(http.MethodPost, "/api/synth/volume", http.HandlerFunc(a.synthVolume))
	r.Handler(NewHealth(a.audioAvailable, a.now))
}

// audioAvailable reports whether the synth can reach an output device.
func (a *API) audioAvailable() bool {
	return a.synth.HasOutput()
}

// DayResponse is a record with its derived fields.
type DayResponse struct {
	*models.DailyRecord
	Completion int    `json:"completion"`
	Quote      string `json:"quote"`
}

func (a *API) dayResponse(day time.Time, record *models.DailyRecord) DayResponse {
	return DayResponse{DailyRecord: record, Completion: record.Completion(), Quote: models.QuoteFor(day)}
}

func (a *API) today(w http.ResponseWriter, r *http.Request) {
	now := a.now()
	writeJSON(w, http.StatusOK, a.dayResponse(now, a.tracker.Day(now)))
}

func (a *API) day(w http.ResponseWriter, r *http.Request) {
	day, err := shared.ParseDay(r.PathValue("day"), time.Local)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.dayResponse(day, a.tracker.Day(day)))
}

type moodRequest struct {
	Mood string `json:"mood"`
}

func (a *API) setMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	mood, err := models.ParseMood(req.Mood)
	if err != nil {
		writeError(w, err)
		return
	}
	now := a.now()
	writeJSON(w, http.StatusOK, a.dayResponse(now, a.tracker.SetMood(now, mood)))
}

type waterRequest struct {
	Delta int `json:"delta"`
}

func (a *API) adjustWater(w http.ResponseWriter, r *http.Request) {
	var req waterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	now := a.now()
	writeJSON(w, http.StatusOK, a.dayResponse(now, a.tracker.AdjustWater(now, req.Delta)))
}

type itemRequest struct {
	Item string `json:"item"`
}

func (a *API) toggleMeal(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !slices.Contains(models.MealItems, req.Item) {
		writeError(w, fmt.Errorf("%w: unknown meal %q", shared.ErrInvalidInput, req.Item))
		return
	}
	now := a.now()
	writeJSON(w, http.StatusOK, a.dayResponse(now, a.tracker.ToggleMeal(now, req.Item)))
}

func (a *API) toggleRoutine(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !slices.Contains(models.RoutineItems, req.Item) {
		writeError(w, fmt.Errorf("%w: unknown routine item %q", shared.ErrInvalidInput, req.Item))
		return
	}
	now := a.now()
	writeJSON(w, http.StatusOK, a.dayResponse(now, a.tracker.ToggleRoutine(now, req.Item)))
}

func (a *API) report(w http.ResponseWriter, r *http.Request) {
	n := tasks.DefaultWindow
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxReportDays {
			writeError(w, fmt.Errorf("%w: days must be between 1 and %d", shared.ErrInvalidArgument, maxReportDays))
			return
		}
		n = v
	}

	report, err := a.history.Report(r.Context(), a.now(), n, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// MoodInfo is one row of the mood table.
type MoodInfo struct {
	Mood      models.Mood `json:"mood"`
	Frequency float64     `json:"frequency"`
	Playlist  []string    `json:"playlist"`
}

func (a *API) moods(w http.ResponseWriter, r *http.Request) {
	out := make([]MoodInfo, 0, len(models.Moods))
	for _, m := range models.Moods {
		out = append(out, MoodInfo{Mood: m, Frequency: models.BaseFrequency(m), Playlist: models.Playlist(m)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) phases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Phases)
}

func (a *API) calmState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.calm.State())
}

func (a *API) calmStart(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if a.calm.Start(a.ctx) {
		status = http.StatusAccepted
	}
	writeJSON(w, status, a.calm.State())
}

func (a *API) calmStop(w http.ResponseWriter, r *http.Request) {
	a.calm.Stop()
	writeJSON(w, http.StatusOK, a.calm.State())
}

// calmStream pushes calm snapshots until the client disconnects.
func (a *API) calmStream(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(a.calm.State()); err != nil {
			a.logger.Debug("calm stream closed", "error", err)
			return
		}

		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-a.ctx.Done():
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"))
			return
		case <-ticker.C:
		}
	}
}

// SynthState is the synth as reported over HTTP.
type SynthState struct {
	Playing    bool        `json:"playing"`
	Mood       models.Mood `json:"mood"`
	Volume     float64     `json:"volume"`
	Frequency  float64     `json:"frequency"`
	Generators int         `json:"generators"`
	Playlist   []string    `json:"playlist"`
}

func (a *API) synthSnapshot() SynthState {
	mood := a.synth.Mood()
	return SynthState{
		Playing:    a.synth.Playing(),
		Mood:       mood,
		Volume:     a.synth.Volume(),
		Frequency:  a.synth.Frequency(),
		Generators: a.synth.ActiveGenerators(),
		Playlist:   models.Playlist(mood),
	}
}

func (a *API) synthState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.synthSnapshot())
}

func (a *API) synthStart(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	mood := a.synth.Mood()
	if req.Mood != "" {
		m, err := models.ParseMood(req.Mood)
		if err != nil {
			writeError(w, err)
			return
		}
		mood = m
	}

	if err := a.synth.Start(mood); err != nil {
		writeError(w, err)
		return
	}
	a.savePreference(repositories.PrefSynthMood, mood)
	writeJSON(w, http.StatusOK, a.synthSnapshot())
}

func (a *API) synthStop(w http.ResponseWriter, r *http.Request) {
	a.synth.Stop()
	writeJSON(w, http.StatusOK, a.synthSnapshot())
}

type volumeRequest struct {
	Volume *float64 `json:"volume"`
}

func (a *API) synthVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Volume == nil {
		writeError(w, fmt.Errorf("%w: volume", shared.ErrMissingArgument))
		return
	}

	v := a.synth.SetVolume(*req.Volume)
	a.savePreference(repositories.PrefSynthVolume, v)
	writeJSON(w, http.StatusOK, a.synthSnapshot())
}

func (a *API) savePreference(key string, v any) {
	if a.prefs == nil {
		return
	}
	if err := a.prefs.Set(key, v); err != nil {
		a.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrAudioUnavailable),
		errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", shared.ErrInvalidInput, err)
	}
	return nil
}
