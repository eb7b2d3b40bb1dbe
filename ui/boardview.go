// Package ui specifies custom controls for tview to render termtris boards
// and menus in the terminal.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/tetris"
)

// BoardView renders one player's playfield: the locked stack, the active
// piece, the ghost landing preview, and pause/game-over banners. Blocks are
// drawn two screen cells wide for a square appearance.
type BoardView struct {
	Box   *tview.Box
	board *tetris.Board
	cfg   *config.Config

	blockStyles []tcell.Style // indexed by grid value, 0 = empty
	ghostStyle  tcell.Style
	bannerStyle tcell.Style
}

// NewBoardView creates a view for the given board.
func NewBoardView(board *tetris.Board, c *config.Config, title string) *BoardView {
	v := &BoardView{
		Box:   tview.NewBox(),
		board: board,
	}
	v.Box.SetBorder(true)
	v.Box.SetTitle(" " + title + " ")
	v.Box.SetTitleAlign(tview.AlignCenter)
	v.SetConfig(c)
	v.Box.SetDrawFunc(v.draw)
	return v
}

// SetConfig applies the theme and rebuilds the style table.
func (v *BoardView) SetConfig(c *config.Config) {
	v.cfg = c
	bg := tcell.PaletteColor(c.Theme.Colors.Background)

	v.blockStyles = make([]tcell.Style, tetris.GarbageColor+1)
	v.blockStyles[0] = tcell.StyleDefault.Background(bg)
	for i, col := range c.Theme.Colors.Blocks {
		v.blockStyles[i+1] = tcell.StyleDefault.Foreground(tcell.PaletteColor(col)).Background(bg)
	}
	v.blockStyles[tetris.GarbageColor] = tcell.StyleDefault.
		Foreground(tcell.PaletteColor(c.Theme.Colors.Garbage)).Background(bg)

	v.ghostStyle = tcell.StyleDefault.
		Foreground(tcell.PaletteColor(c.Theme.Colors.Ghost)).Background(bg)
	v.bannerStyle = tcell.StyleDefault.
		Foreground(tcell.PaletteColor(c.Theme.Colors.Text)).Background(bg).Bold(true)
}

// ScreenWidth returns the widget width in screen cells, border included.
func (v *BoardView) ScreenWidth() int {
	return v.board.Width()*2 + 2
}

// ScreenHeight returns the widget height in screen cells, border included.
func (v *BoardView) ScreenHeight() int {
	return v.board.Height() + 2
}

func (v *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// The draw func receives the outer rect; the border and title live
	// there, so all drawing is offset to the inner rect.
	x, y, width, height = v.Box.GetInnerRect()

	grid := v.board.Grid()

	// Overlay the ghost below the active piece so the piece wins ties.
	if v.cfg.Theme.DrawGhost {
		if ghost := v.board.Ghost(); ghost != nil {
			for _, c := range ghost.Cells() {
				if c.Y >= 0 && c.Y < v.board.Height() && grid[c.Y][c.X] == 0 {
					grid[c.Y][c.X] = -1
				}
			}
		}
	}
	if piece := v.board.CurrentPiece(); piece != nil {
		for _, c := range piece.Cells() {
			if c.Y >= 0 && c.Y < v.board.Height() && c.X >= 0 && c.X < v.board.Width() {
				grid[c.Y][c.X] = piece.Color
			}
		}
	}

	for boardY := 0; boardY < v.board.Height(); boardY++ {
		if boardY >= height {
			break
		}
		for boardX := 0; boardX < v.board.Width(); boardX++ {
			cell := grid[boardY][boardX]
			style := v.blockStyles[0]
			drawRune := v.cfg.Theme.Symbols.Empty
			switch {
			case cell > 0:
				style = v.blockStyles[cell]
				drawRune = v.cfg.Theme.Symbols.Block
			case cell == -1:
				style = v.ghostStyle
				drawRune = v.cfg.Theme.Symbols.Ghost
			}
			screen.SetContent(x+boardX*2, y+boardY, drawRune, nil, style)
			screen.SetContent(x+boardX*2+1, y+boardY, drawRune, nil, style)
		}
	}

	switch {
	case v.board.GameOver():
		v.drawBanner(screen, x, y, width, height, "GAME OVER")
	case v.board.Paused():
		v.drawBanner(screen, x, y, width, height, "PAUSED")
	}

	return x, y, width, height
}

// drawBanner writes centered text over the playfield.
func (v *BoardView) drawBanner(screen tcell.Screen, x, y, width, height int, text string) {
	runes := []rune(text)
	bx := x + (width-len(runes))/2
	by := y + height/2
	for i, ch := range runes {
		screen.SetContent(bx+i, by, ch, nil, v.bannerStyle)
	}
}
