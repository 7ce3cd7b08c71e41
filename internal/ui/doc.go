// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// The dashboard has five tabs:
//  1. [TodayView] : mood, water, meals and routine for the current day
//  2. [CalmView] : the one minute breathing session with its countdown and breathing guide
//  3. [MusicView] : mood selection, ambient synth playback and volume
//  4. [AnalyticsView] : completion for the last seven days
//  5. [PhasesView] : the three program phases
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// A frame tick redraws the breathing guide; report loading streams progress updates through a channel.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l, tab, space) with contextual help displayed via charmbracelet/bubbles/help.
package ui
