// Package tui implements a terminal UI hosting the birth date field.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/agegate/internal/activity"
	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
	"github.com/twiced-technology-gmbh/agegate/internal/config"
	"github.com/twiced-technology-gmbh/agegate/internal/dom"
	"github.com/twiced-technology-gmbh/agegate/internal/page"
)

// view represents the current screen state.
type view int

const (
	viewField view = iota
	viewAlert
	viewHelp
)

// App is the top-level bubbletea model.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
	record bool
	plain  bool

	doc   *dom.Document
	field *birthdate.BirthDate

	view    view
	alert   birthdate.Outcome
	pressed *dom.Element
	keys    keyMap
	help    help.Model
	width   int
	height  int
	err     error
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the debug logger passed to the field.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock overrides the clock used by the field (for testing).
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithActivityLog records every outcome in the config directory's activity log.
func WithActivityLog() Option {
	return func(a *App) { a.record = true }
}

// WithPlainHelp renders the help screen without colours.
func WithPlainHelp() Option {
	return func(a *App) { a.plain = true }
}

// NewApp creates the model and mounts a field configured from cfg.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
		doc:    page.New(),
		keys:   newKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.mountField(); err != nil {
		return nil, err
	}
	return a, nil
}

// mountField replaces the current field with one built from a.cfg.
func (a *App) mountField() error {
	var rep birthdate.Reporter = birthdate.ReporterFunc(a.showOutcome)
	if a.record {
		rep = activity.NewRecorder(a.cfg.Dir(), rep)
	}
	field, err := birthdate.New(a.doc, a.cfg.BirthDate(),
		birthdate.WithReporter(rep),
		birthdate.WithClock(a.now),
		birthdate.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	if a.field != nil {
		a.field.Unmount()
	}
	a.field = field
	a.pressed = nil
	field.Mount(page.Target)
	if in := field.Input(); in != nil {
		in.Focus()
	}
	return nil
}

// Field returns the mounted field.
func (a *App) Field() *birthdate.BirthDate {
	return a.field
}

// WatchPaths returns the directory the config watcher should monitor.
func (a *App) WatchPaths() (string, []string) {
	return a.cfg.Dir(), []string{config.ConfigFileName}
}

func (a *App) showOutcome(o birthdate.Outcome) {
	a.alert = o
	a.view = viewAlert
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil
	case ReloadMsg:
		a.reload()
		return a, nil
	case errMsg:
		a.err = msg.err
		return a, nil
	}
	return a, nil
}

// reload re-reads the config and rebuilds the field. A broken config keeps
// the current field and shows the error.
func (a *App) reload() {
	cfg, err := config.Load(a.cfg.Dir())
	if err != nil {
		a.err = err
		return
	}
	prev := a.cfg
	a.cfg = cfg
	if err := a.mountField(); err != nil {
		a.cfg = prev
		a.err = err
		return
	}
	a.err = nil
	a.logger.Debug("config reloaded", zap.String("session", a.field.Session()))
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.view {
	case viewAlert:
		// Any key dismisses the alert.
		a.view = viewField
		return a, nil
	case viewHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Quit) {
			a.view = viewField
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.view = viewHelp
		return a, nil
	case key.Matches(msg, a.keys.Next):
		a.cycleFocus(1)
		return a, nil
	case key.Matches(msg, a.keys.Prev):
		a.cycleFocus(-1)
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		a.submit()
		return a, nil
	}

	active := a.doc.ActiveElement()
	if active == nil {
		return a, nil
	}
	if active.Tag() == dom.TagButton {
		if msg.Type == tea.KeySpace {
			active.Click()
		}
		return a, nil
	}
	a.editInput(active, msg)
	return a, nil
}

// editInput applies an editing key to the focused input.
func (a *App) editInput(in *dom.Element, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		in.InsertText(string(msg.Runes))
	case tea.KeySpace:
		in.InsertText(" ")
	case tea.KeyBackspace:
		in.DeleteBackward()
	case tea.KeyDelete:
		in.DeleteForward()
	case tea.KeyLeft:
		in.MoveCaret(-1)
	case tea.KeyRight:
		in.MoveCaret(1)
	case tea.KeyHome:
		in.SetCaret(0)
	case tea.KeyEnd:
		in.SetCaret(in.Len())
	case tea.KeyCtrlA:
		in.SelectAll()
	}
}

// submit presses enter on the focused element: a button is clicked, anything
// else submits the form implicitly.
func (a *App) submit() {
	if active := a.doc.ActiveElement(); active != nil && active.Tag() == dom.TagButton {
		active.Click()
		return
	}
	if ui := a.field.UI(); ui != nil {
		ui.RequestSubmit()
	}
}

// focusables returns the elements tab cycles through, in document order.
func (a *App) focusables() []*dom.Element {
	ui := a.field.UI()
	if ui == nil {
		return nil
	}
	var out []*dom.Element
	for _, sel := range []string{dom.TagInput, dom.TagButton} {
		out = append(out, ui.QuerySelectorAll(sel)...)
	}
	return out
}

func (a *App) cycleFocus(delta int) {
	els := a.focusables()
	if len(els) == 0 {
		return
	}
	idx := -1
	for i, el := range els {
		if el == a.doc.ActiveElement() {
			idx = i
			break
		}
	}
	next := (idx + delta + len(els)) % len(els)
	if idx < 0 && delta < 0 {
		next = len(els) - 1
	}
	els[next].Focus()
}

// handleMouse routes left-button presses and releases to the element under
// the pointer. A press focuses, a release over the input places the caret
// and a release over the button that was pressed clicks it.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.view == viewAlert && msg.Action == tea.MouseActionRelease {
		a.view = viewField
		return a, nil
	}
	if a.view != viewField {
		return a, nil
	}

	l := a.layout()
	target, offset := l.hit(msg.X, msg.Y)
	el := a.element(target)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		a.pressed = el
		if el != nil {
			el.PointerDown()
		} else if active := a.doc.ActiveElement(); active != nil {
			active.Blur()
		}
	case tea.MouseActionRelease:
		pressed := a.pressed
		a.pressed = nil
		if el == nil || el != pressed {
			return a, nil
		}
		if el.Tag() == dom.TagButton {
			el.Click()
			return a, nil
		}
		el.PointerUp(min(offset, el.Len()))
	}
	return a, nil
}

// element resolves a hit target to its live element.
func (a *App) element(t hitTarget) *dom.Element {
	ui := a.field.UI()
	if ui == nil {
		return nil
	}
	switch t {
	case hitInput:
		return a.field.Input()
	case hitButton:
		return ui.QuerySelector("." + birthdate.ClassContinue)
	}
	return nil
}

// ReloadMsg is sent by the config watcher to trigger a field rebuild.
type ReloadMsg struct{}

type errMsg struct{ err error }

// ErrMsg wraps an error reported outside the update loop, such as a watcher
// failure, for display in the status line.
func ErrMsg(err error) tea.Msg {
	return errMsg{err: err}
}
