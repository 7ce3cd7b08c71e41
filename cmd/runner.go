package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/repositories"
	"github.com/desertthunder/comeback/internal/shared"
	"github.com/desertthunder/comeback/internal/tasks"
	"github.com/urfave/cli/v3"
)

// audioTimeout bounds how long we wait for the audio device before running silent.
const audioTimeout = 2 * time.Second

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time

	db     *sql.DB
	dbOnce sync.Once
	dbErr  error

	audio     audio.Output
	audioOnce sync.Once
}

// RunnerOpts contains configuration options for creating a Runner.
//
// DB and Audio are opened from Config on first use when nil.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
	Audio      audio.Output
	Now        func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Now,
		db:         opts.DB,
		audio:      opts.Audio,
	}
	if opts.DB != nil {
		r.dbOnce.Do(func() {})
	}
	if opts.Audio != nil {
		r.audioOnce.Do(func() {})
	}
	return r
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, todayCommand, moodCommand, waterCommand, mealCommand, routineCommand,
		statsCommand, exportCommand, calmCommand, synthCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database opens the configured database once, running pending migrations.
func (r *Runner) database() (*sql.DB, error) {
	r.dbOnce.Do(func() {
		r.logger.Debug("opening database", "path", r.config.Database.Path)
		r.db, r.dbErr = shared.OpenDatabase(r.config.Database)
	})
	return r.db, r.dbErr
}

// Close releases the database opened by the runner.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// audioOutput opens the audio device once. A nil output means audio is disabled or unavailable.
func (r *Runner) audioOutput() audio.Output {
	r.audioOnce.Do(func() {
		if !r.config.Audio.Enabled {
			r.logger.Debug("audio disabled by config")
			return
		}
		out, err := audio.NewOtoOutput(r.config.Audio.SampleRate, audioTimeout)
		if err != nil {
			r.logger.Debug("running without audio", "error", err)
			return
		}
		r.audio = out
	})
	return r.audio
}

// tracker builds a [repositories.Tracker] over the database. Without a database it keeps state in memory.
func (r *Runner) tracker() *repositories.Tracker {
	db, err := r.database()
	if err != nil {
		r.logger.Warn("database unavailable, changes will not be saved", "error", err)
		return repositories.NewTracker(nil, r.logger)
	}
	return repositories.NewTracker(repositories.NewDayRepository(db), r.logger)
}

// preferences returns the preference store, or nil without a database.
func (r *Runner) preferences() *repositories.PreferenceRepository {
	db, err := r.database()
	if err != nil {
		return nil
	}
	return repositories.NewPreferenceRepository(db)
}

// sessions returns the calm session log, or nil without a database.
func (r *Runner) sessions() *repositories.CalmSessionRepository {
	db, err := r.database()
	if err != nil {
		return nil
	}
	return repositories.NewCalmSessionRepository(db)
}

// history builds the analytics engine over tracker and the session log.
func (r *Runner) history(tracker *repositories.Tracker) *tasks.HistoryEngine {
	if sessions := r.sessions(); sessions != nil {
		return tasks.NewHistoryEngine(tracker, sessions, r.logger)
	}
	return tasks.NewHistoryEngine(tracker, nil, r.logger)
}

// calmTimer builds a [audio.CalmTimer] that logs finished sessions.
func (r *Runner) calmTimer(opts ...audio.CalmOption) *audio.CalmTimer {
	sessions := r.sessions()
	record := func(summary audio.CalmSummary) {
		if sessions == nil {
			return
		}
		if err := sessions.Create(summary.Session()); err != nil {
			r.logger.Warn("failed to record calm session", "error", err)
			return
		}
		r.logger.Debug("recorded calm session", "id", summary.ID, "seconds", summary.Seconds)
	}

	all := append([]audio.CalmOption{
		audio.WithCalmLogger(r.logger),
		audio.WithFrameRate(int(r.config.Calm.FrameRate)),
		audio.WithOnStop(record),
	}, opts...)
	return audio.NewCalmTimer(r.audioOutput(), all...)
}

// synth builds a [audio.Synth] with the saved volume and mood applied.
func (r *Runner) synth() *audio.Synth {
	s := audio.NewSynth(r.audioOutput(), r.logger)
	s.SetVolume(r.config.Audio.SynthVolume)

	prefs := r.preferences()
	if prefs == nil {
		return s
	}

	var volume float64
	if ok, err := prefs.Get(repositories.PrefSynthVolume, &volume); err != nil {
		r.logger.Debug("failed to load preference", "key", repositories.PrefSynthVolume, "error", err)
	} else if ok {
		s.SetVolume(volume)
	}

	var mood models.Mood
	if ok, err := prefs.Get(repositories.PrefSynthMood, &mood); err == nil && ok && mood.Valid() {
		s.SetMood(mood)
	}
	return s
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
