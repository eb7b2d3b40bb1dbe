// termtris is a terminal falling-block puzzle game for one or two players
// sharing a keyboard.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/tetris"
	"termtris/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagPlay    = flag.Bool("play", false, "Start a single-player game immediately")
	flagVersus  = flag.Bool("versus", false, "Start a two-player game immediately")
	flagSeed    = flag.Int64("seed", 0, "Piece sequence seed (0 = time-based)")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var game *session

// session is one running game: the boards, their widgets, and the per-board
// gravity tick counters.
type session struct {
	versus bool
	match  *tetris.Match
	boards []*tetris.Board
	views  []*ui.BoardView
	panels []*ui.SidePanel
	frames []int
	ended  bool // the game-over modal has been shown
}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termtris %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	quickStart := *flagPlay || *flagVersus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▣ termtris ")

	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetTextAlign(tview.AlignCenter)

	gameFrame = tview.NewFlex()
	gameFrame.SetInputCapture(gameInput)

	colors := ui.NewColorConfig(cfg, func() {
		applyTheme()
		rootPage.SwitchToPage("menu")
	})
	colors.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyTab:
			colors.ToggleMode()
			return nil
		case event.Key() == tcell.KeyEsc,
			event.Key() == tcell.KeyRune && (event.Rune() == 'q' || event.Rune() == 'Q'):
			applyTheme()
			rootPage.SwitchToPage("menu")
			return nil
		}
		return event
	})

	menu := ui.NewMainMenu("T E R M T R I S")
	menu.AddItem("Single Player", func() { startGame(false) })
	menu.AddItem("Versus", func() { startGame(true) })
	menu.AddItem("Colors", func() { rootPage.SwitchToPage("colors") })
	menu.AddItem("Quit", func() { app.Stop() })

	rootPage.AddPage("menu", ui.CenteredCard(menu, 40, menu.Height()), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colors.Flex(), true, false)

	if quickStart {
		startGame(*flagVersus)
	}

	go runTicker()

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
}

// runTicker drives gravity: one update per frame, boards drop every
// DropSpeed frames.
func runTicker() {
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Game.FPS))
	defer ticker.Stop()
	for range ticker.C {
		app.QueueUpdateDraw(step)
	}
}

// step advances every board by one frame and refreshes the panels.
func step() {
	if game == nil {
		return
	}
	for i, board := range game.boards {
		if board.Paused() || board.GameOver() {
			continue
		}
		game.frames[i]++
		if game.frames[i] >= board.DropSpeed() {
			game.frames[i] = 0
			board.Drop()
		}
	}
	game.refresh()
	checkGameOver()
}

// startGame builds a fresh session and switches to the game view.
func startGame(versus bool) {
	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &session{versus: versus}
	players := 1
	if versus {
		players = 2
	}
	for i := 0; i < players; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		g.boards = append(g.boards,
			tetris.NewBoard(cfg.Game.BoardWidth, cfg.Game.BoardHeight, i+1, rng))
	}

	if versus {
		g.match = tetris.NewMatch(g.boards[0], g.boards[1])
		g.match.Start()
	} else {
		g.boards[0].Reset()
	}

	columns := make([]ui.PlayerColumn, players)
	g.frames = make([]int, players)
	for i, board := range g.boards {
		title := "Player 1"
		if i == 1 {
			title = "Player 2"
		}
		view := ui.NewBoardView(board, cfg, title)
		panel := ui.NewSidePanel(board, cfg)
		g.views = append(g.views, view)
		g.panels = append(g.panels, panel)
		columns[i] = ui.NewPlayerColumn(view, panel)
	}

	ui.BuildGameLayout(gameFrame, gameHint, columns...)
	if versus {
		gameHint.SetText("[dimgray]P1: ←/→/↓ move  ↑ rotate  Space drop  C hold   P2: A/D/S move  W rotate  Tab drop  Q hold   P pause  R restart  Esc menu[-]")
	} else {
		gameHint.SetText("[dimgray]←/→/↓ move   ↑ rotate   Space hard drop   C hold   P pause   R restart   Esc menu[-]")
	}

	game = g
	rootPage.SwitchToPage("gameview")
}

// gameInput maps key events to board operations for both players.
func gameInput(event *tcell.EventKey) *tcell.EventKey {
	if game == nil {
		return event
	}
	one := game.boards[0]

	switch event.Key() {
	case tcell.KeyLeft:
		one.Move(-1, 0)
	case tcell.KeyRight:
		one.Move(1, 0)
	case tcell.KeyDown:
		softDrop(0)
	case tcell.KeyUp:
		one.Rotate()
	case tcell.KeyTab:
		if game.versus {
			game.boards[1].HardDrop()
		}
	case tcell.KeyEsc:
		openPauseMenu()
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			one.HardDrop()
		case 'c', 'C':
			one.Hold()
		case 'p', 'P':
			togglePause()
		case 'r', 'R':
			restartGame()
			return nil
		case 'm', 'M':
			leaveToMenu()
			return nil
		case 'a', 'A':
			if game.versus {
				game.boards[1].Move(-1, 0)
			}
		case 'd', 'D':
			if game.versus {
				game.boards[1].Move(1, 0)
			}
		case 's', 'S':
			if game.versus {
				softDrop(1)
			}
		case 'w', 'W':
			if game.versus {
				game.boards[1].Rotate()
			}
		case 'q', 'Q':
			if game.versus {
				game.boards[1].Hold()
			}
		}
	}

	game.refresh()
	checkGameOver()
	return nil
}

// softDrop drops one row by hand and re-arms the gravity counter so manual
// and automatic drops do not double up.
func softDrop(i int) {
	if game.boards[i].Drop() {
		game.frames[i] = 0
	}
}

func togglePause() {
	if game.match != nil {
		game.match.TogglePause()
	} else {
		game.boards[0].TogglePause()
	}
}

func (g *session) refresh() {
	for _, panel := range g.panels {
		panel.Refresh()
	}
}

// applyTheme pushes the current theme to a running session's widgets.
func applyTheme() {
	if game == nil {
		return
	}
	for _, view := range game.views {
		view.SetConfig(cfg)
	}
	game.refresh()
}

// paused reports whether the session is currently paused.
func (g *session) paused() bool {
	return g.boards[0].Paused()
}

// openPauseMenu pauses the game and shows the resume/restart/menu modal.
func openPauseMenu() {
	if game.ended {
		return
	}
	if !game.paused() {
		togglePause()
	}
	modal := tview.NewModal().
		SetText("Paused").
		AddButtons([]string{"Resume", "Restart", "Main Menu"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("pause")
			switch buttonIndex {
			case 1:
				restartGame()
				return
			case 2:
				leaveToMenu()
				return
			}
			if game.paused() {
				togglePause()
			}
		})
	rootPage.AddPage("pause", modal, true, true)
}

// checkGameOver shows the end-of-game modal once per session.
func checkGameOver() {
	if game == nil || game.ended {
		return
	}

	var text string
	if game.versus {
		if game.match == nil || !game.match.Over() {
			return
		}
		if winner := game.match.Winner(); winner != nil {
			text = fmt.Sprintf("Player %d wins!", winner.PlayerID())
		} else {
			text = "Draw!"
		}
	} else {
		if !game.boards[0].GameOver() {
			return
		}
		stats := game.boards[0].Stats()
		text = fmt.Sprintf("Game over\n\nScore: %d\nLines: %d\nLevel: %d",
			stats.Score, stats.LinesCleared, stats.Level)
	}

	game.ended = true
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Play Again", "Main Menu"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("gameover")
			if buttonIndex == 0 {
				restartGame()
			} else {
				leaveToMenu()
			}
		})
	rootPage.AddPage("gameover", modal, true, true)
}

func restartGame() {
	versus := game.versus
	game = nil
	startGame(versus)
}

func leaveToMenu() {
	game = nil
	rootPage.SwitchToPage("menu")
}
