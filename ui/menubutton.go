package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button component drawn directly onto the screen.
type MenuButton struct {
	label    string
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button.
func NewMenuButton(label string, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// Select activates the button.
func (b *MenuButton) Select() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyEnter:
		b.Select()
		return true
	}
	return false
}

// Draw renders the button at the given position and returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.label
	width := len([]rune(label)) + 2

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	} else {
		dimStyle := tcell.StyleDefault.
			Foreground(MenuColors.Hint).
			Background(MenuColors.CardBG)
		bracketStyle := tcell.StyleDefault.
			Foreground(MenuColors.Border).
			Background(MenuColors.CardBG)

		screen.SetContent(x, y, '[', nil, bracketStyle)
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, dimStyle)
			col++
		}
		screen.SetContent(col, y, ']', nil, bracketStyle)
	}

	return width
}

// Width returns the button width including padding.
func (b *MenuButton) Width() int {
	return len([]rune(b.label)) + 2
}
