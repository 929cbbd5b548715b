package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
)

// View renders the calendar.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	if m.projector.Mode() == calview.ModeMonthly {
		b.WriteString(m.renderMonth())
	} else {
		b.WriteString(m.renderDayHeader())
		b.WriteString("\n")
		b.WriteString(m.renderGrid())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTitle() string {
	var label string
	switch m.projector.Mode() {
	case calview.ModeDaily:
		e := m.projector.DailyDay()
		label = fmt.Sprintf("%s %s", e.Label, e.Date)
	case calview.ModeMonthly:
		label = m.projector.MonthLabel()
	default:
		days := m.projector.WeekDays()
		label = fmt.Sprintf("semana %s – %s", days[0].Date, days[6].Date)
	}
	title := m.styles.Title.Render("agenda") + "  " + label
	if m.loading {
		title += "  " + m.styles.Status.Render("carregando…")
	}
	return title
}

func (m Model) renderDayHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for _, e := range m.displayedDays() {
		head := fmt.Sprintf("%s %s", e.Label, e.Date)
		style := m.styles.DayHeader
		if m.projector.IsToday(e) {
			style = m.styles.TodayHead
		}
		b.WriteString(style.Render(padCell(head, m.colWidth)))
	}
	return b.String()
}

func (m Model) renderGrid() string {
	if overlay := m.renderOverlay(); overlay != "" {
		return lipgloss.Place(m.width, m.gridRows(), lipgloss.Center, lipgloss.Center, overlay)
	}

	days := m.displayedDays()
	var b strings.Builder
	for row := 0; row < m.gridRows(); row++ {
		rowStart := m.rowStartMinutes(row)

		gutter := strings.Repeat(" ", gutterWidth)
		if rowStart%60 == 0 {
			gutter = m.styles.Gutter.Render(padCell(timegrid.MinutesToTime(rowStart), gutterWidth))
		}
		b.WriteString(gutter)

		for _, e := range days {
			b.WriteString(m.renderCell(e.Key, row, rowStart))
		}
		if row < m.gridRows()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCell renders one day-column cell, with the drag ghost taking
// precedence over whatever is placed there.
func (m Model) renderCell(day schedule.Day, row, rowStart int) string {
	if m.drag.Active() && m.drag.NewDay == day {
		target := timegrid.TimeToMinutes(m.drag.NewTime)
		if target <= rowStart && rowStart < target+m.drag.Duration {
			label := ""
			if rowStart-target < m.rowMinutes {
				label = fmt.Sprintf("» %s", m.drag.NewTime)
			}
			return m.styles.DragGhost.Render(padCell(label, m.colWidth))
		}
	}

	session, block := m.itemAt(day, rowStart)
	switch {
	case session != nil:
		return m.renderSessionCell(session, rowStart)
	case block != nil:
		return m.renderBlockCell(block, rowStart)
	default:
		return m.styles.EmptyCell.Render(padCell("·", m.colWidth))
	}
}

func (m Model) renderSessionCell(s *schedule.Session, rowStart int) string {
	style := m.styles.Presencial
	if s.Type == schedule.TypeOnline {
		style = m.styles.Online
	}
	if s.IsCancelled() {
		style = m.styles.Cancelled
	}

	label := ""
	if m.rowFor(timegrid.TimeToMinutes(s.StartTime)) == m.rowFor(rowStart) {
		label = fmt.Sprintf("%s %s ⋮", s.StartTime, s.Client)
	}
	return style.Render(padCell(label, m.colWidth))
}

func (m Model) renderBlockCell(b *schedule.TimeBlock, rowStart int) string {
	style := m.styles.Block
	if b.Color != "" {
		style = style.Background(lipgloss.Color(b.Color))
	}

	label := ""
	if m.rowFor(timegrid.TimeToMinutes(b.Time)) == m.rowFor(rowStart) {
		label = fmt.Sprintf("%s %s ⋮", b.Emoji, b.Title)
	}
	return style.Render(padCell(label, m.colWidth))
}

func (m Model) renderMonth() string {
	days := m.projector.MonthDays()
	var b strings.Builder

	// Weekday header, Monday first.
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for _, d := range []schedule.Day{schedule.Monday, schedule.Tuesday, schedule.Wednesday,
		schedule.Thursday, schedule.Friday, schedule.Saturday, schedule.Sunday} {
		b.WriteString(m.styles.DayHeader.Render(padCell(calview.LabelFor(d), 8)))
	}
	b.WriteString("\n")

	// Leading blanks up to the month's first weekday.
	first := days[0].Time
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat(" ", gutterWidth))
	b.WriteString(strings.Repeat(" ", offset*8))

	col := offset
	for _, e := range days {
		count := 0
		for _, s := range m.index.Sessions() {
			if !s.IsCancelled() && sameDate(s, e) {
				count++
			}
		}
		cell := fmt.Sprintf("%2d", e.Time.Day())
		if count > 0 {
			cell = fmt.Sprintf("%2d(%d)", e.Time.Day(), count)
		}
		style := m.styles.MenuItem
		if m.projector.IsToday(e) {
			style = m.styles.TodayHead
		}
		b.WriteString(style.Render(padCell(cell, 8)))

		col++
		if col == 7 {
			col = 0
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", gutterWidth))
		}
	}
	return b.String()
}

func sameDate(s schedule.Session, e calview.DayEntry) bool {
	return !s.Date.IsZero() &&
		s.Date.Year() == e.Time.Year() && s.Date.YearDay() == e.Time.YearDay()
}

// renderOverlay renders the active modal or menu, or "" when none is
// open. The grid is hidden while an overlay is up.
func (m Model) renderOverlay() string {
	switch {
	case m.drag.Phase == drag.PhasePendingConfirm:
		return m.renderConfirmModal()
	case m.actionMenu != nil:
		return m.renderActionMenu()
	case m.createMenu != nil:
		return m.renderCreateMenu()
	case m.blockForm != nil:
		return m.renderBlockForm()
	case m.detail != nil:
		return m.renderDetail()
	case m.viewMenu:
		return m.renderViewMenu()
	}
	return ""
}

func (m Model) renderConfirmModal() string {
	s := m.drag
	what := "sessão"
	if s.ItemType == drag.ItemBlock {
		what = "bloco"
	}
	endMin := timegrid.TimeToMinutes(s.NewTime) + s.Duration

	body := fmt.Sprintf("Remarcar %s?\n\n%s %s  →  %s %s–%s\n\n", what,
		calview.LabelFor(s.OriginalDay), s.OriginalTime,
		calview.LabelFor(s.NewDay), s.NewTime, timegrid.MinutesToTime(endMin))
	body += m.styles.Help.Render("[enter] confirmar  [n/esc] cancelar")

	return m.styles.Modal.Render(m.styles.ModalTitle.Render("Confirmar") + "\n\n" + body)
}

func (m Model) renderActionMenu() string {
	items := m.actionMenuItems(m.actionMenu)
	var b strings.Builder
	for i, item := range items {
		style := m.styles.MenuItem
		if i == m.actionMenu.cursor {
			style = m.styles.MenuCursor
		}
		b.WriteString(style.Render(" " + item + " "))
		b.WriteString("\n")
	}
	return m.styles.Modal.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderCreateMenu() string {
	body := m.styles.MenuCursor.Render(" Novo bloco ") + "\n" +
		m.styles.Help.Render(fmt.Sprintf("%s às %s", calview.LabelFor(m.createMenu.day), m.createMenu.start))
	return m.styles.Modal.Render(body)
}

func (m Model) renderBlockForm() string {
	f := m.blockForm
	focus := func(i int, s string) string {
		if f.focus == i {
			return m.styles.MenuCursor.Render(s)
		}
		return m.styles.MenuItem.Render(s)
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Novo bloco"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n\n", calview.LabelFor(f.day), f.start))
	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(focus(1, fmt.Sprintf("Duração: %s", schedule.FormatDuration(blockDurations[f.durationIdx]))))
	b.WriteString("\n")
	emoji := fmt.Sprintf("Emoji: %s", blockEmojis[f.emojiIdx])
	if f.emojiPicker {
		emoji = "Emoji: " + strings.Join(blockEmojis, " ")
	}
	b.WriteString(focus(2, emoji))
	b.WriteString("\n")
	b.WriteString(focus(3, fmt.Sprintf("Cor: %s", m.blockColors()[f.colorIdx])))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("[tab] campo  [←/→] opção  [enter] salvar  [esc] cancelar"))
	return m.styles.Modal.Render(b.String())
}

func (m Model) renderDetail() string {
	d := m.detail
	var b strings.Builder

	if d.session != nil {
		s := d.session
		b.WriteString(m.styles.ModalTitle.Render(s.Client))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s–%s (%s)\n", calview.LabelFor(s.Day), s.StartTime, s.EndTime,
			schedule.FormatDuration(s.Duration)))
		b.WriteString(fmt.Sprintf("Tipo: %s\n", s.Type))
		pay := m.styles.Pending.Render(string(s.PaymentStatus))
		if s.PaymentStatus == schedule.PaymentPago {
			pay = m.styles.Paid.Render(string(s.PaymentStatus))
		}
		b.WriteString("Pagamento: " + pay + "\n")
		b.WriteString(fmt.Sprintf("Status: %s\n", s.Status))
		if s.ClientEmail != "" {
			b.WriteString(s.ClientEmail + "\n")
		}
	} else {
		blk := d.block
		b.WriteString(m.styles.ModalTitle.Render(blk.Emoji + " " + blk.Title))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s–%s (%s)\n", calview.LabelFor(blk.Day), blk.Time, blk.EndTime, blk.Duration))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("[y] copiar  [enter/esc] fechar"))
	return m.styles.Modal.Render(b.String())
}

func (m Model) renderViewMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Exibição"))
	b.WriteString("\n\n")
	for i, item := range viewMenuItems {
		style := m.styles.MenuItem
		if i == m.viewCursor {
			style = m.styles.MenuCursor
		}
		check := "  "
		switch {
		case item == "5 dias" && m.weekDays == 5,
			item == "7 dias" && m.weekDays == 7,
			item == "Ocultar canceladas" && m.index.HideCancelled():
			check = "✓ "
		}
		b.WriteString(style.Render(check + item))
		b.WriteString("\n")
	}
	return m.styles.Modal.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	style := m.styles.Status
	if m.err != nil && status != "" && strings.HasPrefix(status, "Falha") {
		style = m.styles.StatusErr
	}

	help := m.styles.Help.Render("←/→ navegar  t hoje  w/d/m visão  v exibição  r recarregar  q sair")
	return style.Render(status) + "\n" + help
}

// padCell truncates or pads a string to a fixed display width.
func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return truncateTo(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

func truncateTo(s string, width int) string {
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + strings.Repeat(" ", width-w)
}
