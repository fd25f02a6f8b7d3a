package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rabbitcare/internal/game"
)

var styles = struct {
	title   lipgloss.Style
	stats   lipgloss.Style
	message lipgloss.Style
	help    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFB7C5")).
		Padding(0, 1),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFB7C5")).
		Width(40),

	message: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87D7AF")),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),
}

const bunny = `
 (\(\
 ( -.-)
 o_(")(")`

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return "See you soon!\n"
	}

	title := styles.title.Render("♥ Rabbit Care ♥")

	var messageView string
	if m.message != "" && time.Now().Before(m.messageExpires) {
		messageView = styles.message.Render(m.message)
	}

	sections := []string{
		title,
		bunny,
		"",
		m.renderStats(),
		"",
		m.renderScene(),
	}
	if messageView != "" {
		sections = append(sections, "", messageView)
	}
	sections = append(sections,
		"",
		styles.help.Render("[f]eed  [c]lean  [p]et  [s]coop  [g]ift  [b]ackground  [q]uit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStats() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Hunger: %s  Clean: %s  Happy: %s\n",
		careBar(m.st.HungerLevel), careBar(m.st.CleanLevel), careBar(m.st.HappyLevel)))
	s.WriteString(fmt.Sprintf("Hearts: %d  Level: %d (%d earned all-time)",
		m.st.Hearts, m.st.Level, m.st.TotalHeartsEarned))
	return styles.stats.Render(s.String())
}

func (m Model) renderScene() string {
	var s strings.Builder
	s.WriteString("Scene: " + m.backgroundName(m.st.CurrentBackground))

	var worn []string
	for _, slot := range []game.Slot{game.SlotHead, game.SlotBody, game.SlotHand} {
		if id := m.st.Equipment.Get(slot); id != "" {
			if it, ok := m.catalog.Item(id); ok {
				worn = append(worn, it.Name)
			} else {
				worn = append(worn, id)
			}
		}
	}
	if len(worn) > 0 {
		s.WriteString("\nWearing: " + strings.Join(worn, ", "))
	}

	if n := len(m.st.Poops); n > 0 {
		s.WriteString(fmt.Sprintf("\nPoops to scoop: %d", n))
	}
	return styles.stats.Render(s.String())
}

func careBar(level int) string {
	var b strings.Builder
	for i := 0; i < game.MaxCareLevel; i++ {
		if i < level {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}
