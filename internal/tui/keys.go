package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeGlobal  = "*"
	scopeReady   = "ready"
	scopeFailed  = "failed"
	scopeLoading = "loading"
	scopeConfirm = "confirm"
)

const (
	actionQuit           = "quit"
	actionPrev           = "prev"
	actionNext           = "next"
	actionNextCategory   = "nextCategory"
	actionPrevCategory   = "prevCategory"
	actionSelectCategory = "selectCategory"
	actionBookmark       = "bookmark"
	actionBookmarkOnly   = "bookmarkOnly"
	actionLanguage       = "language"
	actionReset          = "reset"
	actionHelp           = "help"
	actionStart          = "start"
	actionRetry          = "retry"
	actionConfirm        = "confirm"
	actionCancel         = "cancel"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
	// HelpKey overrides the first key in hints, for ranges like 1-6.
	HelpKey string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyRegistry() *KeyRegistry {
	return NewKeyRegistry([]KeyBinding{
		{Keys: []string{"left", "h"}, Action: actionPrev, Description: "prev", Scopes: []string{scopeReady}},
		{Keys: []string{"right", "l"}, Action: actionNext, Description: "next", Scopes: []string{scopeReady}},
		{Keys: []string{"tab"}, Action: actionNextCategory, Description: "next topic", Scopes: []string{scopeReady}},
		{Keys: []string{"shift+tab"}, Action: actionPrevCategory, Description: "prev topic", Scopes: []string{scopeReady}},
		{Keys: []string{"1", "2", "3", "4", "5", "6"}, Action: actionSelectCategory, Description: "topic", Scopes: []string{scopeReady}, HelpKey: "1-6"},
		{Keys: []string{"b"}, Action: actionBookmark, Description: "bookmark", Scopes: []string{scopeReady}},
		{Keys: []string{"f"}, Action: actionBookmarkOnly, Description: "bookmarks only", Scopes: []string{scopeReady}},
		{Keys: []string{"enter"}, Action: actionStart, Description: "start", Scopes: []string{scopeReady}},
		{Keys: []string{"L"}, Action: actionLanguage, Description: "language", Scopes: []string{scopeReady, scopeFailed}},
		{Keys: []string{"X"}, Action: actionReset, Description: "reset progress", Scopes: []string{scopeReady}},
		{Keys: []string{"r"}, Action: actionRetry, Description: "retry", Scopes: []string{scopeFailed}},
		{Keys: []string{"y"}, Action: actionConfirm, Description: "yes", Scopes: []string{scopeConfirm}},
		{Keys: []string{"n", "esc"}, Action: actionCancel, Description: "no", Scopes: []string{scopeConfirm}},
		{Keys: []string{"?"}, Action: actionHelp, Description: "help", Scopes: []string{scopeReady, scopeFailed}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeGlobal}},
	})
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

// HelpBindings converts the scope's bindings for bubbles/help.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		helpKey := b.HelpKey
		if helpKey == "" {
			helpKey = b.Keys[0]
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Description)))
	}
	return out
}

// Keys are case sensitive: "L" and "l" are different actions.
func normalizeKey(k string) string {
	return strings.TrimSpace(k)
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == scopeGlobal || s == scope {
			return true
		}
	}
	return false
}

// helpKeyMap adapts a scope to help.KeyMap.
type helpKeyMap struct {
	bindings []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding {
	if len(k.bindings) <= 6 {
		return k.bindings
	}
	return append(slices.Clone(k.bindings[:5]), k.bindings[len(k.bindings)-1])
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for i := 0; i < len(k.bindings); i += 4 {
		end := min(i+4, len(k.bindings))
		cols = append(cols, k.bindings[i:end])
	}
	return cols
}
