package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
)

// ColorConfigUI lets the player pick a block palette and a playfield
// background, with a live preview of a small stack. Confirming a palette
// saves the config and leaves the screen; confirming a background saves
// and switches back to palette selection.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedPalette    int
	selectedBackground int
	editingBackground  bool
}

// blockPalettes are preset color sets for the seven piece colors.
var blockPalettes = []struct {
	name   string
	colors [7]int
}{
	{"Classic", [7]int{203, 220, 112, 32, 97, 208, 205}},
	{"Neon", [7]int{197, 226, 118, 51, 135, 214, 213}},
	{"Pastel", [7]int{217, 229, 157, 110, 146, 216, 218}},
	{"Ocean", [7]int{45, 51, 87, 33, 75, 123, 159}},
	{"Mono", [7]int{255, 252, 249, 246, 243, 240, 237}},
}

// backgroundColors are playfield backgrounds dark enough to keep the
// blocks readable.
var backgroundColors = []struct {
	code int
	name string
}{
	{234, "Charcoal"},
	{232, "Near Black"},
	{16, "True Black"},
	{236, "Dark Gray"},
	{17, "Navy"},
	{22, "Dark Green"},
	{52, "Maroon"},
	{53, "Plum"},
	{58, "Olive"},
	{235, "Graphite"},
}

func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedPalette:    matchPalette(cfg.Theme.Colors.Blocks),
		selectedBackground: cfg.Theme.Colors.Background,
	}

	cc.colorList = tview.NewList().ShowSecondaryText(false)
	cc.colorList.SetBorder(true)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingBackground {
			if index >= 0 && index < len(backgroundColors) {
				cc.selectedBackground = backgroundColors[index].code
			}
		} else {
			if index >= 0 && index < len(blockPalettes) {
				cc.selectedPalette = index
			}
		}
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingBackground {
			cc.applyBackground(index)
			cc.cfg.Save()
			cc.editingBackground = false
			cc.populateColorList()
			return
		}
		cc.applyPalette(index)
		cc.cfg.Save()
		if cc.onDone != nil {
			cc.onDone()
		}
	})
	cc.populateColorList()

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)
	return cc
}

// matchPalette finds the preset matching the configured block colors,
// falling back to the first preset.
func matchPalette(blocks [7]int) int {
	for i, p := range blockPalettes {
		if p.colors == blocks {
			return i
		}
	}
	return 0
}

func (cc *ColorConfigUI) applyPalette(index int) {
	if index < 0 || index >= len(blockPalettes) {
		return
	}
	cc.selectedPalette = index
	cc.cfg.Theme.Colors.Blocks = blockPalettes[index].colors
}

func (cc *ColorConfigUI) applyBackground(index int) {
	if index < 0 || index >= len(backgroundColors) {
		return
	}
	cc.selectedBackground = backgroundColors[index].code
	cc.cfg.Theme.Colors.Background = cc.selectedBackground
}

func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()
	if cc.editingBackground {
		cc.colorList.SetTitle(" Background (Tab: palettes) ")
		for i, c := range backgroundColors {
			label := fmt.Sprintf("[#%06x]████[-] %s (%d)",
				tcell.PaletteColor(c.code).Hex(), c.name, c.code)
			cc.colorList.AddItem(label, "", rune('a'+i), nil)
			if c.code == cc.cfg.Theme.Colors.Background {
				cc.colorList.SetCurrentItem(i)
			}
		}
		return
	}
	cc.colorList.SetTitle(" Block palette (Tab: background) ")
	for i, p := range blockPalettes {
		swatch := ""
		for _, code := range p.colors {
			swatch += fmt.Sprintf("[#%06x]█[-]", tcell.PaletteColor(code).Hex())
		}
		cc.colorList.AddItem(fmt.Sprintf("%s %s", swatch, p.name), "", rune('a'+i), nil)
	}
	cc.colorList.SetCurrentItem(cc.selectedPalette)
}

// ToggleMode switches the list between palette and background selection.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingBackground = !cc.editingBackground
	cc.populateColorList()
}

func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.flex.SetInputCapture(capture)
}

// drawPreview renders a small stack so color choices can be judged in
// place. Layout per row, bottom up: a garbage row with a hole, two rows
// cycling the palette, and a floating piece with its ghost below it.
func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	x, y, width, height = cc.preview.GetInnerRect()

	const cols, rows = 8, 8
	if width < cols*2 || height < rows {
		return x, y, width, height
	}
	offX := x + (width-cols*2)/2
	offY := y + (height-rows)/2

	bg := tcell.PaletteColor(cc.selectedBackground)
	palette := blockPalettes[cc.selectedPalette].colors
	bgStyle := tcell.StyleDefault.Background(bg)
	block := cc.cfg.Theme.Symbols.Block
	ghost := cc.cfg.Theme.Symbols.Ghost
	empty := cc.cfg.Theme.Symbols.Empty

	put := func(col, row int, r rune, style tcell.Style) {
		screen.SetContent(offX+col*2, offY+row, r, nil, style)
		screen.SetContent(offX+col*2+1, offY+row, r, nil, style)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			put(col, row, empty, bgStyle)
		}
	}
	for col := 0; col < cols; col++ {
		if col == 3 {
			continue
		}
		put(col, rows-1, block, bgStyle.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.Garbage)))
	}
	for row := rows - 3; row < rows-1; row++ {
		for col := 0; col < cols; col++ {
			style := bgStyle.Foreground(tcell.PaletteColor(palette[(col+row)%len(palette)]))
			put(col, row, block, style)
		}
	}
	pieceStyle := bgStyle.Foreground(tcell.PaletteColor(palette[0]))
	ghostStyle := bgStyle.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.Ghost))
	for _, col := range []int{3, 4} {
		put(col, 1, block, pieceStyle)
		put(col, 2, block, pieceStyle)
		if cc.cfg.Theme.DrawGhost {
			put(col, rows-5, ghost, ghostStyle)
			put(col, rows-4, ghost, ghostStyle)
		}
	}
	return x, y, width, height
}
