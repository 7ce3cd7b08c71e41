package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/repositories"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/desertthunder/comeback/internal/tasks"
)

// ViewState represents the current tab in the TUI.
type ViewState int

const (
	TodayView ViewState = iota
	CalmView
	MusicView
	AnalyticsView
	PhasesView
)

var viewNames = []string{"Today", "Calm", "Music", "Analytics", "Phases"}

func (v ViewState) String() string {
	if int(v) < 0 || int(v) >= len(viewNames) {
		return ""
	}
	return viewNames[v]
}

const (
	volumeStep  = 0.01
	defaultSize = 16
)

// Options holds the collaborators of a [Model]. Tracker, Calm and Synth are required.
type Options struct {
	Tracker     *repositories.Tracker
	History     *tasks.HistoryEngine
	Calm        *audio.CalmTimer
	Synth       *audio.Synth
	Preferences models.PreferenceStore
	Logger      *log.Logger
	FrameRate   int
	Now         func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	tracker      *repositories.Tracker
	history      *tasks.HistoryEngine
	calm         *audio.CalmTimer
	synth        *audio.Synth
	prefs        models.PreferenceStore
	logger       *log.Logger
	interval     time.Duration
	now          func() time.Time
	width        int
	height       int
	record       *models.DailyRecord
	cursor       int
	calmState    audio.CalmState
	moodList     list.Model
	phaseList    list.Model
	phase        models.ProgramPhase
	progressChan chan tasks.ProgressUpdate
	resultChan   chan reportResult
	progress     tasks.ProgressUpdate
	loading      bool
	report       *models.Report
	bar          progress.Model
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = audio.DefaultFrameRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Model{
		ctx:       ctx,
		view:      TodayView,
		tracker:   opts.Tracker,
		history:   opts.History,
		calm:      opts.Calm,
		synth:     opts.Synth,
		prefs:     opts.Preferences,
		logger:    opts.Logger,
		interval:  time.Second / time.Duration(opts.FrameRate),
		now:       opts.Now,
		moodList:  newMoodList(),
		phaseList: newPhaseList(),
		phase:     models.Phases[0],
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.moodList.SetSize(60, defaultSize)
	m.phaseList.SetSize(60, defaultSize)
	m.restorePreferences()
	m.record = m.tracker.Day(m.now())
	m.calmState = m.calm.State()
	return m
}

// restorePreferences applies the saved synth volume, mood and phase.
func (m *Model) restorePreferences() {
	if m.prefs == nil {
		return
	}

	var volume float64
	if ok, err := m.prefs.Get(repositories.PrefSynthVolume, &volume); err != nil {
		m.logger.Debug("failed to load preference", "key", repositories.PrefSynthVolume, "error", err)
	} else if ok {
		m.synth.SetVolume(volume)
	}

	var mood models.Mood
	if ok, err := m.prefs.Get(repositories.PrefSynthMood, &mood); err == nil && ok && mood.Valid() {
		m.synth.SetMood(mood)
	}
	for i, candidate := range models.Moods {
		if candidate == m.synth.Mood() {
			m.moodList.Select(i)
		}
	}

	var phaseKey string
	if ok, err := m.prefs.Get(repositories.PrefPhase, &phaseKey); err == nil && ok {
		m.phase = models.PhaseByKey(phaseKey)
	}
	for i, p := range models.Phases {
		if p.Key == m.phase.Key {
			m.phaseList.Select(i)
		}
	}
}

// Init schedules the first frame and loads the weekly report.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.loadReport())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.moodList.SetSize(max(msg.Width-4, 20), max(msg.Height-12, 6))
		m.phaseList.SetSize(max(msg.Width/2, 20), max(msg.Height-12, 6))
		m.bar.Width = max(min(msg.Width-8, 60), 10)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgFrame:
			m.calmState = m.calm.State()
			if day := m.now(); shared.DayKey(day) != m.record.Day {
				m.record = m.tracker.Day(day)
			}
			return m, m.tick()
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()
		case MsgReportLoaded:
			result := msg.data.(reportResult)
			m.loading = false
			m.progressChan = nil
			m.resultChan = nil
			if result.err != nil {
				m.err = result.err
				return m, nil
			}
			m.report = result.report
			return m, nil
		}
	}

	return m.updateLists(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m.switchView(ViewState((int(m.view) + 1) % len(viewNames)))
	case key.Matches(msg, m.keys.prev):
		return m.switchView(ViewState((int(m.view) + len(viewNames) - 1) % len(viewNames)))
	}

	if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && int(msg.Runes[0]-'1') < len(viewNames) {
		return m.switchView(ViewState(msg.Runes[0] - '1'))
	}

	switch m.view {
	case TodayView:
		return m.handleTodayKeys(msg)
	case CalmView:
		return m.handleCalmKeys(msg)
	case MusicView:
		return m.handleMusicKeys(msg)
	case AnalyticsView:
		return m.handleAnalyticsKeys(msg)
	case PhasesView:
		return m.handlePhaseKeys(msg)
	}
	return m, nil
}

func (m *Model) switchView(v ViewState) (tea.Model, tea.Cmd) {
	m.view = v
	m.status = ""
	m.err = nil
	if v == AnalyticsView && !m.loading {
		return m, m.loadReport()
	}
	return m, nil
}

// todayRows is the number of selectable rows on the Today tab: mood, water, meals and routine.
func todayRows() int {
	return 2 + len(models.MealItems) + len(models.RoutineItems)
}

func (m *Model) handleTodayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day := m.now()
	switch {
	case key.Matches(msg, m.keys.up):
		m.cursor = (m.cursor + todayRows() - 1) % todayRows()
	case key.Matches(msg, m.keys.down):
		m.cursor = (m.cursor + 1) % todayRows()
	case key.Matches(msg, m.keys.more):
		m.record = m.tracker.AdjustWater(day, 1)
	case key.Matches(msg, m.keys.less):
		m.record = m.tracker.AdjustWater(day, -1)
	case key.Matches(msg, m.keys.left):
		if m.cursor == 0 {
			m.record = m.tracker.SetMood(day, models.NextMood(m.record.Mood, -1))
		} else if m.cursor == 1 {
			m.record = m.tracker.AdjustWater(day, -1)
		}
	case key.Matches(msg, m.keys.right), key.Matches(msg, m.keys.toggle):
		m.record = m.toggleRow(day)
	}
	return m, nil
}

// toggleRow applies the primary action of the row under the cursor.
func (m *Model) toggleRow(day time.Time) *models.DailyRecord {
	meals := len(models.MealItems)
	switch {
	case m.cursor == 0:
		return m.tracker.SetMood(day, models.NextMood(m.record.Mood, 1))
	case m.cursor == 1:
		return m.tracker.AdjustWater(day, 1)
	case m.cursor < 2+meals:
		return m.tracker.ToggleMeal(day, models.MealItems[m.cursor-2])
	default:
		return m.tracker.ToggleRoutine(day, models.RoutineItems[m.cursor-2-meals])
	}
}

func (m *Model) handleCalmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.start), key.Matches(msg, m.keys.toggle):
		if m.calm.Running() {
			m.calm.Stop()
			m.status = "Session stopped"
		} else {
			m.calm.Start(m.ctx)
			m.status = ""
		}
		m.calmState = m.calm.State()
	}
	return m, nil
}

func (m *Model) handleMusicKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.start):
		m.toggleSynth()
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.moodList.SelectedItem().(moodItem); ok {
			m.synth.SetMood(item.mood)
			m.savePreference(repositories.PrefSynthMood, item.mood)
		}
		return m, nil
	case key.Matches(msg, m.keys.more), key.Matches(msg, m.keys.right):
		m.adjustVolume(volumeStep)
		return m, nil
	case key.Matches(msg, m.keys.less), key.Matches(msg, m.keys.left):
		m.adjustVolume(-volumeStep)
		return m, nil
	}

	var cmd tea.Cmd
	m.moodList, cmd = m.moodList.Update(msg)
	return m, cmd
}

func (m *Model) toggleSynth() {
	m.err = nil
	if m.synth.Playing() {
		m.synth.Stop()
		m.status = "Music stopped"
		return
	}

	mood := m.synth.Mood()
	if item, ok := m.moodList.SelectedItem().(moodItem); ok {
		mood = item.mood
	}
	if err := m.synth.Start(mood); err != nil {
		if errors.Is(err, shared.ErrAudioUnavailable) {
			m.status = "Audio output is not available"
		} else {
			m.err = err
		}
		return
	}
	m.savePreference(repositories.PrefSynthMood, mood)
	m.status = "Playing " + mood.String()
}

func (m *Model) adjustVolume(delta float64) {
	v := m.synth.SetVolume(m.synth.Volume() + delta)
	m.savePreference(repositories.PrefSynthVolume, v)
}

func (m *Model) handleAnalyticsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.refresh) && !m.loading {
		return m, m.loadReport()
	}
	return m, nil
}

func (m *Model) handlePhaseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.toggle) {
		if item, ok := m.phaseList.SelectedItem().(phaseItem); ok {
			m.phase = item.phase
			m.savePreference(repositories.PrefPhase, item.phase.Key)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.phaseList, cmd = m.phaseList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MusicView:
		m.moodList, cmd = m.moodList.Update(msg)
	case PhasesView:
		m.phaseList, cmd = m.phaseList.Update(msg)
	}
	return m, cmd
}

func (m *Model) savePreference(key string, v any) {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.Set(key, v); err != nil {
		m.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) loadReport() tea.Cmd {
	if m.history == nil {
		return nil
	}

	m.loading = true
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.resultChan = make(chan reportResult, 1)

	progressChan, resultChan := m.progressChan, m.resultChan
	go func() {
		report, err := m.history.Report(m.ctx, m.now(), tasks.DefaultWindow, progressChan)
		resultChan <- reportResult{report: report, err: err}
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan, resultChan := m.progressChan, m.resultChan
	return func() tea.Msg {
		if progressChan == nil {
			return reportLoadedMsg(m.report, nil)
		}

		update, ok := <-progressChan
		if !ok {
			result := <-resultChan
			return reportLoadedMsg(result.report, result.err)
		}
		return progressUpdateMsg(update)
	}
}
