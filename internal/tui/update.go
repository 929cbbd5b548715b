package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()
		return m, nil

	case commands.InitialLoadMsg:
		m.index = schedule.NewIndex(msg.Sessions, msg.Blocks).
			WithHideCancelled(m.index.HideCancelled())
		m.loading = false
		return m, nil

	case commands.SessionsReloadedMsg:
		m.index = schedule.NewIndex(msg.Sessions, m.index.Blocks()).
			WithHideCancelled(m.index.HideCancelled())
		m.loading = false
		return m, nil

	case commands.SessionRescheduledMsg:
		// Commit succeeded: update the index locally without waiting for a
		// full reload.
		m.drag, _ = drag.Transition(m.drag, drag.Committed{})
		m.index = m.index.Reschedule(msg.ID, msg.Day, msg.Start, msg.End)
		return m, m.setStatus("Sessão remarcada")

	case commands.BlockMovedMsg:
		m.drag, _ = drag.Transition(m.drag, drag.Committed{})
		m.index = m.index.RescheduleBlock(msg.ID, msg.Day, msg.Start, msg.End)
		return m, m.setStatus("Bloco movido")

	case commands.CommitFailedMsg:
		// The drag state resets regardless; the grid keeps the stale
		// pre-drag placement until the next reload.
		m.drag, _ = drag.Transition(m.drag, drag.CommitFailed{Err: msg.Err})
		m.err = msg.Err
		return m, m.setStatus(fmt.Sprintf("Falha ao remarcar: %v", msg.Err))

	case commands.BlockSavedMsg:
		m.index = m.index.AddBlock(msg.Block)
		return m, m.setStatus("Bloco criado")

	case commands.BlockDeletedMsg:
		m.index = m.index.RemoveBlock(msg.ID)
		return m, m.setStatus("Bloco excluído")

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		return m, m.setStatus(fmt.Sprintf("Erro: %v", msg.Err))

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}
