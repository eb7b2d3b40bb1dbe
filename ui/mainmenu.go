package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MainMenu is the title screen: a menu card with one button per game mode.
type MainMenu struct {
	*MenuCard
	buttons []*MenuButton
	focus   int
}

// NewMainMenu creates an empty menu card with the given title.
func NewMainMenu(title string) *MainMenu {
	menu := &MainMenu{
		MenuCard: NewMenuCard(title),
	}
	menu.SetFocused(true)
	return menu
}

// AddItem appends a button to the menu.
func (m *MainMenu) AddItem(label string, onSelect func()) {
	button := NewMenuButton(label, onSelect)
	button.SetFocused(len(m.buttons) == 0)
	m.buttons = append(m.buttons, button)
}

func (m *MainMenu) setFocusIndex(idx int) {
	if len(m.buttons) == 0 {
		return
	}
	m.buttons[m.focus].SetFocused(false)
	m.focus = (idx + len(m.buttons)) % len(m.buttons)
	m.buttons[m.focus].SetFocused(true)
}

// Draw renders the card and the button column.
func (m *MainMenu) Draw(screen tcell.Screen) {
	m.MenuCard.Draw(screen)

	x, y, width, height := m.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	row := y + 6
	for _, button := range m.buttons {
		button.Draw(screen, x+(width-button.Width())/2, row)
		row += 2
	}

	hint := "↑/↓ select   Enter confirm"
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	hx := x + (width-len([]rune(hint)))/2
	for i, ch := range hint {
		screen.SetContent(hx+i, y+height-2, ch, nil, hintStyle)
	}
}

// InputHandler routes arrow keys and Enter to the button column.
func (m *MainMenu) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return m.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyBacktab:
			m.setFocusIndex(m.focus - 1)
		case tcell.KeyDown, tcell.KeyTab:
			m.setFocusIndex(m.focus + 1)
		case tcell.KeyEnter:
			m.buttons[m.focus].Select()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'k':
				m.setFocusIndex(m.focus - 1)
			case 'j':
				m.setFocusIndex(m.focus + 1)
			}
		}
	})
}

// Height returns the card height needed for the button column.
func (m *MainMenu) Height() int {
	return 6 + len(m.buttons)*2 + 3
}

// CenteredCard wraps a primitive in spacers so it renders at a fixed size in
// the middle of the screen.
func CenteredCard(p tview.Primitive, width, height int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)
	row.AddItem(p, width, 0, true)
	row.AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(row, height, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}
