package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/cclvocab/internal/vocab"
)

var heroText = map[string][3]string{
	"zh": {"免费在线", "CCL VOCAB PRACTICE", "时间宝贵，本服务无需注册。按 enter 或选择词库即可开始练习。"},
	"en": {"Free online", "CCL VOCAB PRACTICE", "No sign-up needed. Press enter or pick a topic to start practising."},
}

func (a *App) View() string {
	var sections []string
	if !a.heroCollapsed {
		sections = append(sections, a.renderHero())
	}
	switch a.state {
	case stateLoading:
		sections = append(sections, counterStyle.Render("Loading vocabulary..."))
	case stateFailed:
		sections = append(sections, a.renderFailed())
	default:
		sections = append(sections, a.renderWorkspace())
	}
	if a.modal == modalConfirmReset {
		sections = append(sections, modalStyle.Render(titleStyle.Render("Reset progress?")+
			"\nThis forgets every saved position and bookmark.\n[y] Yes  [n] No"))
	}
	sections = append(sections, a.renderStatusBar(), a.help.View(helpKeyMap{bindings: a.keys.HelpBindings(a.scope())}))
	return strings.Join(sections, "\n\n")
}

func (a *App) renderHero() string {
	text, ok := heroText[a.cfg.UI.Language]
	if !ok {
		text = heroText["en"]
	}
	return heroStyle.Render(strings.Join([]string{
		heroEmStyle.Render(text[0]),
		heroTitleStyle.Render(text[1]),
		text[2],
	}, "\n"))
}

func (a *App) renderFailed() string {
	msg := "The word list could not be loaded."
	if a.loadErr != nil {
		msg += "\n" + a.loadErr.Error()
	}
	return msg + "\n[r] Retry"
}

func (a *App) renderWorkspace() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		"",
		a.renderWord(),
		a.renderCounter(),
	)
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(vocab.Categories))
	for i, c := range vocab.Categories {
		label := fmt.Sprintf("%d %s", i+1, c.Label(a.cfg.UI.Language))
		if c == a.nav.Category() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderWord() string {
	if a.nav.Total() == 0 {
		return emptyWordStyle.Render(a.nav.Word())
	}
	return wordStyle.Render(a.nav.Word())
}

func (a *App) renderCounter() string {
	pos := 0
	if a.nav.Total() > 0 {
		pos = a.nav.Index() + 1
	}
	out := counterStyle.Render(fmt.Sprintf("◀  %d / %d  ▶", pos, a.nav.Total()))
	if a.nav.IsBookmarked() {
		out += " " + markStyle.Render("★")
	}
	if a.nav.BookmarkOnly() {
		out += "  " + modeStyle.Render("[bookmarks only]")
	}
	return out
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	width := max(1, a.width)
	if a.statusErr {
		return renderBar(statusErrBarStyle, width, msg, colorSurface0)
	}
	return renderBar(statusBarStyle, width, msg, colorSurface0)
}
