package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
	"github.com/dmoraes/agenda/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if msg.String() == "esc" {
		return m.handleEscape()
	}

	switch {
	case m.drag.Phase == drag.PhasePendingConfirm:
		return m.handleConfirmKeys(msg)
	case m.actionMenu != nil:
		return m.handleActionMenuKeys(msg)
	case m.createMenu != nil:
		return m.handleCreateMenuKeys(msg)
	case m.blockForm != nil:
		return m.handleBlockFormKeys(msg)
	case m.detail != nil:
		return m.handleDetailKeys(msg)
	case m.viewMenu:
		return m.handleViewMenuKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleEscape dispatches Escape to whichever transient state is active,
// first match wins: drag, confirmation modal, action menu, create menu,
// block modal, detail, view-options menu.
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.drag.Phase == drag.PhaseDragging, m.drag.Phase == drag.PhasePendingConfirm:
		m.drag, _ = drag.Transition(m.drag, drag.Escape{})
	case m.actionMenu != nil:
		m.actionMenu = nil
	case m.createMenu != nil:
		m.createMenu = nil
	case m.blockForm != nil:
		m.blockForm = nil
	case m.detail != nil:
		m.detail = nil
	case m.viewMenu:
		m.viewMenu = false
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y", "s":
		next, effect := drag.Transition(m.drag, drag.Confirm{})
		m.drag = next
		if effect == drag.EffectCommit {
			return m, m.startCommit()
		}
	case "n":
		m.drag, _ = drag.Transition(m.drag, drag.Cancel{})
	}
	return m, nil
}

func (m Model) handleActionMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu := m.actionMenu
	items := m.actionMenuItems(menu)

	switch msg.String() {
	case "up", "k":
		if menu.cursor > 0 {
			menu.cursor--
		}
	case "down", "j":
		if menu.cursor < len(items)-1 {
			menu.cursor++
		}
	case "enter":
		m.actionMenu = nil
		switch items[menu.cursor] {
		case "Detalhes":
			m.openDetail(menu.itemID, menu.itemType)
		case "Excluir bloco":
			return m, commands.DeleteBlock(m.blocks, menu.itemID)
		}
	}
	return m, nil
}

func (m *Model) actionMenuItems(menu *actionMenuState) []string {
	if menu.itemType == drag.ItemBlock {
		return []string{"Detalhes", "Excluir bloco"}
	}
	return []string{"Detalhes"}
}

func (m *Model) openDetail(id int64, itemType drag.ItemType) {
	if itemType == drag.ItemSession {
		if s, ok := m.index.SessionByID(id); ok {
			m.detail = &detailState{session: &s}
		}
		return
	}
	if b, ok := m.index.BlockByID(id); ok {
		m.detail = &detailState{block: &b}
	}
}

func (m Model) handleCreateMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		menu := m.createMenu
		m.createMenu = nil
		m.blockForm = m.newBlockForm(menu.day, menu.start)
	}
	return m, nil
}

func (m Model) handleBlockFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.blockForm

	if form.emojiPicker {
		switch msg.String() {
		case "left", "h":
			form.emojiIdx = (form.emojiIdx + len(blockEmojis) - 1) % len(blockEmojis)
		case "right", "l":
			form.emojiIdx = (form.emojiIdx + 1) % len(blockEmojis)
		case "enter":
			form.emojiPicker = false
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		form.focus = (form.focus + 1) % 4
	case "shift+tab", "up":
		form.focus = (form.focus + 3) % 4
	case "left":
		m.cycleFormField(form, -1)
	case "right":
		m.cycleFormField(form, 1)
	case "enter":
		if form.focus == 2 {
			form.emojiPicker = true
			return m, nil
		}
		return m.submitBlockForm(form)
	}

	if form.focus == 0 {
		var cmd tea.Cmd
		form.title, cmd = form.title.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) cycleFormField(form *blockFormState, dir int) {
	switch form.focus {
	case 1:
		form.durationIdx = (form.durationIdx + len(blockDurations) + dir) % len(blockDurations)
	case 2:
		form.emojiIdx = (form.emojiIdx + len(blockEmojis) + dir) % len(blockEmojis)
	case 3:
		n := len(m.blockColors())
		form.colorIdx = (form.colorIdx + n + dir) % n
	}
}

func (m Model) submitBlockForm(form *blockFormState) (tea.Model, tea.Cmd) {
	start := timegrid.TimeToMinutes(form.start)
	end := start + blockDurations[form.durationIdx]

	block, err := schedule.NewTimeBlock(form.title.Value(), form.day, form.start, timegrid.MinutesToTime(end))
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Erro: %v", err))
	}
	block.Emoji = blockEmojis[form.emojiIdx]
	block.Color = m.blockColors()[form.colorIdx]

	m.blockForm = nil
	return m, commands.SaveBlock(m.blocks, *block)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.detail = nil
	case "y":
		text := m.detailSummary()
		if err := clipboard.WriteAll(text); err != nil {
			return m, m.setStatus("Erro ao copiar")
		}
		return m, m.setStatus("Copiado")
	}
	return m, nil
}

func (m *Model) detailSummary() string {
	d := m.detail
	if d.session != nil {
		s := d.session
		return fmt.Sprintf("%s %s-%s %s (%s, %s, %s)",
			s.Day, s.StartTime, s.EndTime, s.Client, s.Type, s.PaymentStatus, s.Status)
	}
	b := d.block
	return fmt.Sprintf("%s %s-%s %s %s", b.Day, b.Time, b.EndTime, b.Emoji, b.Title)
}

var viewMenuItems = []string{"5 dias", "7 dias", "Ocultar canceladas", "Semana", "Dia", "Mês"}

func (m Model) handleViewMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.viewCursor > 0 {
			m.viewCursor--
		}
	case "down", "j":
		if m.viewCursor < len(viewMenuItems)-1 {
			m.viewCursor++
		}
	case "enter":
		switch viewMenuItems[m.viewCursor] {
		case "5 dias":
			m.weekDays = 5
		case "7 dias":
			m.weekDays = 7
		case "Ocultar canceladas":
			m.index = m.index.WithHideCancelled(!m.index.HideCancelled())
		case "Semana":
			m.projector.SetMode(calview.ModeWeek)
		case "Dia":
			m.projector.SetMode(calview.ModeDaily)
		case "Mês":
			m.projector.SetMode(calview.ModeMonthly)
		}
		m.viewMenu = false
		m.calculateLayout()
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.projector.Prev()
	case "right", "l":
		m.projector.Next()
	case "t":
		m.projector.Today()
	case "w":
		m.projector.SetMode(calview.ModeWeek)
		m.calculateLayout()
	case "d":
		m.projector.SetMode(calview.ModeDaily)
		m.calculateLayout()
	case "m":
		m.projector.SetMode(calview.ModeMonthly)
	case "v":
		m.viewMenu = true
		m.viewCursor = 0
	case "r":
		m.loading = true
		return m, commands.ReloadSessions(m.sessions)
	}
	return m, nil
}
