package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/cclvocab/internal/config"
	"github.com/jask/cclvocab/internal/vocab"
)

// Loader fetches the word list.
type Loader interface {
	Load(ctx context.Context) (vocab.Mapping, error)
}

// App is the Bubble Tea model around a vocab.Navigator.
type App struct {
	ctx        context.Context
	cfg        config.Config
	loader     Loader
	nav        *vocab.Navigator
	log        *zap.Logger
	keys       *KeyRegistry
	help       help.Model
	saveConfig func(config.Config) error
	start      vocab.Category

	state         appState
	modal         modalState
	heroCollapsed bool
	loadErr       error
	status        string
	statusErr     bool
	width         int
	height        int
}

// Deps are the collaborators App needs.
type Deps struct {
	Loader Loader
	Store  vocab.Store
	Log    *zap.Logger
	// SaveConfig persists preference changes; nil disables saving.
	SaveConfig func(config.Config) error
	// Start, when set, is selected once the word list has loaded.
	Start vocab.Category
}

type appState string

const (
	stateLoading appState = "loading"
	stateFailed  appState = "failed"
	stateReady   appState = "ready"
)

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		loader:     deps.Loader,
		log:        log,
		keys:       DefaultKeyRegistry(),
		help:       help.New(),
		saveConfig: deps.SaveConfig,
		start:      deps.Start,
		state:      stateLoading,
		width:      80,
	}
	a.nav = vocab.NewNavigator(deps.Store,
		vocab.WithLogger(log.Named("navigator")),
		vocab.WithCollapse(func() { a.heroCollapsed = true }),
	)
	return a
}

// Navigator exposes the state machine for inspection.
func (a *App) Navigator() *vocab.Navigator { return a.nav }

func (a *App) Init() tea.Cmd {
	return a.loadVocab()
}

func (a *App) loadVocab() tea.Cmd {
	return func() tea.Msg {
		if a.loader == nil {
			return vocabFailedMsg{fmt.Errorf("no vocabulary loader configured")}
		}
		m, err := a.loader.Load(a.ctx)
		if err != nil {
			return vocabFailedMsg{err}
		}
		return vocabLoadedMsg{m}
	}
}

func (a *App) scope() string {
	if a.modal == modalConfirmReset {
		return scopeConfirm
	}
	switch a.state {
	case stateReady:
		return scopeReady
	case stateFailed:
		return scopeFailed
	default:
		return scopeLoading
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case vocabLoadedMsg:
		a.nav.Restore(m.mapping)
		if a.start != "" {
			a.nav.SelectCategory(a.start)
			a.start = ""
		}
		a.state = stateReady
		a.loadErr = nil
		a.setStatus("", false)
		a.warnIfDegraded()
	case vocabFailedMsg:
		a.state = stateFailed
		a.loadErr = m.err
		a.setStatus("error: "+m.err.Error(), true)
	case statusMsg:
		a.setStatus(string(m), false)
	case errMsg:
		a.setStatus("error: "+m.Error(), true)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	if a.keys.IsAction(m, actionQuit, scope) {
		return a, tea.Quit
	}
	switch scope {
	case scopeConfirm:
		return a.handleConfirmKey(m)
	case scopeFailed:
		switch {
		case a.keys.IsAction(m, actionRetry, scope):
			a.state = stateLoading
			a.setStatus("retrying...", false)
			return a, a.loadVocab()
		case a.keys.IsAction(m, actionLanguage, scope):
			return a, a.toggleLanguage()
		case a.keys.IsAction(m, actionHelp, scope):
			a.help.ShowAll = !a.help.ShowAll
		}
		return a, nil
	case scopeReady:
		return a.handleReadyKey(m)
	}
	return a, nil
}

func (a *App) handleReadyKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := scopeReady
	switch {
	case a.keys.IsAction(m, actionPrev, scope):
		a.nav.HandleSignal(vocab.SignalPrevious)
	case a.keys.IsAction(m, actionNext, scope):
		a.nav.HandleSignal(vocab.SignalNext)
	case a.keys.IsAction(m, actionNextCategory, scope):
		a.nav.SelectCategory(a.nav.Category().Offset(1))
	case a.keys.IsAction(m, actionPrevCategory, scope):
		a.nav.SelectCategory(a.nav.Category().Offset(-1))
	case a.keys.IsAction(m, actionSelectCategory, scope):
		pos := int(m.String()[0] - '1')
		if pos >= 0 && pos < len(vocab.Categories) {
			a.nav.SelectCategory(vocab.Categories[pos])
		}
	case a.keys.IsAction(m, actionBookmark, scope):
		if a.nav.BookmarkOnly() {
			a.setStatus("leave bookmarks-only mode to add bookmarks", false)
			break
		}
		a.nav.BookmarkCurrentWord()
		if a.nav.IsBookmarked() {
			a.setStatus("bookmarked", false)
		}
	case a.keys.IsAction(m, actionBookmarkOnly, scope):
		a.nav.ToggleBookmarkOnly()
		if a.nav.BookmarkOnly() {
			a.setStatus("showing bookmarks only", false)
		} else {
			a.setStatus("showing all words", false)
		}
	case a.keys.IsAction(m, actionStart, scope):
		a.heroCollapsed = true
	case a.keys.IsAction(m, actionLanguage, scope):
		return a, a.toggleLanguage()
	case a.keys.IsAction(m, actionReset, scope):
		a.modal = modalConfirmReset
	case a.keys.IsAction(m, actionHelp, scope):
		a.help.ShowAll = !a.help.ShowAll
	}
	a.warnIfDegraded()
	return a, nil
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.IsAction(m, actionConfirm, scopeConfirm):
		a.modal = modalNone
		a.nav.Reset()
		a.log.Info("progress reset")
		a.setStatus("progress reset", false)
		a.warnIfDegraded()
	case a.keys.IsAction(m, actionCancel, scopeConfirm):
		a.modal = modalNone
	}
	return a, nil
}

func (a *App) toggleLanguage() tea.Cmd {
	langs := vocab.Languages()
	next := langs[(slices.Index(langs, a.cfg.UI.Language)+1)%len(langs)]
	a.cfg.UI.Language = next
	if a.saveConfig == nil {
		return nil
	}
	cfg := a.cfg
	return func() tea.Msg {
		if err := a.saveConfig(cfg); err != nil {
			a.log.Warn("save config failed", zap.Error(err))
			return errMsg{err}
		}
		return statusMsg("language saved: " + next)
	}
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) warnIfDegraded() {
	if a.nav.Degraded() && !a.statusErr {
		a.setStatus("progress could not be saved; changes kept for this session only", true)
	}
}

type vocabLoadedMsg struct{ mapping vocab.Mapping }

type vocabFailedMsg struct{ err error }

type statusMsg string

type errMsg struct{ error }
