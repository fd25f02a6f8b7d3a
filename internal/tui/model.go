// Package tui is the terminal play screen: a live view of the pet with
// single-key care actions. All game rules live in the engine; the model
// only dispatches actions and re-renders snapshots.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rabbitcare/internal/catalog"
	"rabbitcare/internal/game"
)

const messageDuration = 3 * time.Second

// Model is the Bubble Tea model for the care screen.
type Model struct {
	engine  *game.Engine
	catalog *catalog.Catalog

	st             game.State
	message        string
	messageExpires time.Time
	quitting       bool
}

type tickMsg time.Time

func NewModel(engine *game.Engine, cat *catalog.Catalog) Model {
	if cat == nil {
		cat = catalog.Default()
	}
	return Model{
		engine:  engine,
		catalog: cat,
		st:      engine.Snapshot(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "f":
			res := m.engine.Feed()
			m.setMessage(actionMessage("Yum!", res))

		case "c":
			res := m.engine.Clean()
			m.setMessage(actionMessage("All tidy!", res))

		case "p":
			res := m.engine.Pet()
			m.setMessage(actionMessage("So happy!", res))

		case "s":
			if len(m.st.Poops) == 0 {
				m.setMessage("Nothing to scoop.")
				break
			}
			res := m.engine.ScoopPoop(m.st.Poops[0].ID)
			m.setMessage(actionMessage("Scooped!", res))

		case "g":
			res := m.engine.ClaimDailyGift()
			if res.Amount == 0 {
				m.setMessage("The gift box is empty, come back tomorrow.")
			} else {
				m.setMessage(fmt.Sprintf("A gift! +%d hearts", res.Amount))
			}

		case "b":
			if next := m.nextBackground(); next != "" {
				m.engine.SetBackground(next)
				m.setMessage("Moved to the " + m.backgroundName(next))
			}
		}
		m.st = m.engine.Snapshot()
		return m, nil

	case tickMsg:
		m.st = m.engine.Snapshot()
		return m, tick()
	}

	return m, nil
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageExpires = time.Now().Add(messageDuration)
}

func actionMessage(text string, res game.ActionResult) string {
	if res.LeveledUp {
		return fmt.Sprintf("%s +%d hearts. Level up! Now level %d", text, res.HeartsDelta, res.Level)
	}
	return fmt.Sprintf("%s +%d hearts", text, res.HeartsDelta)
}

// nextBackground returns the unlocked background after the current one in
// catalog order, or "" when only one is unlocked.
func (m Model) nextBackground() string {
	unlocked := make([]string, 0, len(m.st.UnlockedBackgrounds))
	for _, bg := range m.catalog.Backgrounds() {
		if m.st.HasUnlockedBackground(bg.ID) {
			unlocked = append(unlocked, bg.ID)
		}
	}
	if len(unlocked) < 2 {
		return ""
	}
	for i, id := range unlocked {
		if id == m.st.CurrentBackground {
			return unlocked[(i+1)%len(unlocked)]
		}
	}
	return unlocked[0]
}

func (m Model) backgroundName(id string) string {
	if bg, ok := m.catalog.Background(id); ok {
		return bg.Name
	}
	return id
}

// Run starts the interactive care screen and blocks until quit.
func Run(engine *game.Engine, cat *catalog.Catalog) error {
	program := tea.NewProgram(NewModel(engine, cat), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
