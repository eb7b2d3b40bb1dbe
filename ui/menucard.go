package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders and a title.
type MenuCard struct {
	*tview.Box
	title   string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	card := &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
	return card
}

// Draw renders the menu card with rounded borders.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	borderStyle := tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	// Fill background
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// Rounded border: ╭───╮ / ╰───╯
	screen.SetContent(x, y, '╭', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)

	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}

	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)

	// Title centered with a block decoration: ▣ T E R M T R I S
	if c.title != "" {
		titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
		accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)

		fullTitle := "▣  " + c.title
		titleLen := len([]rune(fullTitle))
		titleX := x + (width-titleLen)/2
		titleY := y + 2

		screen.SetContent(titleX, titleY, '▣', nil, accentStyle)
		screen.SetContent(titleX+1, titleY, ' ', nil, bgStyle)
		screen.SetContent(titleX+2, titleY, ' ', nil, bgStyle)
		for i, ch := range c.title {
			screen.SetContent(titleX+3+i, titleY, ch, nil, titleStyle)
		}

		c.DrawDivider(screen, y+4)
	}
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	borderStyle := tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
