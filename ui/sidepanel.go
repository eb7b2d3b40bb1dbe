package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/tetris"
)

// SidePanel displays one board's stats and its next/held piece previews.
type SidePanel struct {
	box   *tview.TextView
	board *tetris.Board
	cfg   *config.Config
}

// NewSidePanel creates a panel bound to the given board.
func NewSidePanel(board *tetris.Board, c *config.Config) *SidePanel {
	panel := &SidePanel{
		box:   tview.NewTextView(),
		board: board,
		cfg:   c,
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	panel.Refresh()
	return panel
}

// Box returns the underlying tview component.
func (p *SidePanel) Box() *tview.TextView {
	return p.box
}

// Refresh rebuilds the panel text from the board's current state.
func (p *SidePanel) Refresh() {
	stats := p.board.Stats()

	var text strings.Builder
	text.WriteString("[white::b]Stats[-:-:-]\n")
	text.WriteString("[dimgray]────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Score:[-:-:-] %d\n", stats.Score)
	fmt.Fprintf(&text, "[white]Level:[-:-:-] %d\n", stats.Level)
	fmt.Fprintf(&text, "[white]Lines:[-:-:-] %d\n", stats.LinesCleared)
	fmt.Fprintf(&text, "[white]Sent:[-:-:-]  %d\n", stats.LinesSent)

	text.WriteString("\n[white::b]Next[-:-:-]\n")
	text.WriteString(p.preview(p.board.NextPiece()))

	held := "\n[white::b]Held[-:-:-]"
	if !p.board.CanHold() {
		held += " [dimgray](used)[-]"
	}
	text.WriteString(held + "\n")
	text.WriteString(p.preview(p.board.HeldPiece()))

	p.box.SetText(text.String())
}

// preview renders a piece's spawn-rotation shape as a 4x4 block grid.
func (p *SidePanel) preview(piece *tetris.Piece) string {
	if piece == nil {
		return "[dimgray]  (none)[-]\n\n\n\n"
	}
	occupied := map[tetris.Cell]bool{}
	for _, c := range (&tetris.Piece{Kind: piece.Kind}).Cells() {
		occupied[c] = true
	}

	tag := p.colorTag(piece.Color)
	var out strings.Builder
	for row := 0; row < 4; row++ {
		out.WriteString(tag)
		for col := 0; col < 4; col++ {
			if occupied[tetris.Cell{X: col, Y: row}] {
				out.WriteString("██")
			} else {
				out.WriteString("  ")
			}
		}
		out.WriteString("[-]\n")
	}
	return out.String()
}

// colorTag converts a palette index to a tview color tag.
func (p *SidePanel) colorTag(color int) string {
	if color < 1 || color > len(p.cfg.Theme.Colors.Blocks) {
		return "[white]"
	}
	hex := tcell.PaletteColor(p.cfg.Theme.Colors.Blocks[color-1]).Hex()
	return fmt.Sprintf("[#%06x]", hex)
}

const panelWidth = 14

// PlayerColumn is one board view with its side panel, sized for layout.
type PlayerColumn struct {
	Flex  *tview.Flex
	Width int
}

// NewPlayerColumn composes a board view and its side panel.
func NewPlayerColumn(view *BoardView, panel *SidePanel) PlayerColumn {
	column := tview.NewFlex().SetDirection(tview.FlexColumn)
	column.AddItem(view.Box, view.ScreenWidth(), 0, true)
	column.AddItem(panel.Box(), panelWidth, 0, false)
	return PlayerColumn{
		Flex:  column,
		Width: view.ScreenWidth() + panelWidth,
	}
}

// BuildGameLayout fills the game frame with the player columns, centered,
// and a compact hint bar docked at the bottom.
func BuildGameLayout(gameFrame *tview.Flex, hint *tview.TextView, columns ...PlayerColumn) {
	gameFrame.Clear()

	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)
	for i, column := range columns {
		row.AddItem(column.Flex, column.Width, 0, i == 0)
		if i < len(columns)-1 {
			row.AddItem(nil, 4, 0, false)
		}
	}
	row.AddItem(nil, 0, 1, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(row, 0, 1, true)
	gameFrame.AddItem(hint, 2, 0, false)
}
