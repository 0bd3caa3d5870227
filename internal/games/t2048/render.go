package t2048

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/b2048/internal/core"
	"github.com/vovakirdan/b2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3
)

// tileColors is indexed by power; larger powers reuse the last entry.
var tileColors = []core.Color{
	0:            core.ColorGray,
	1:            core.ColorWhite,
	2:            core.ColorBrightWhite,
	3:            core.ColorYellow,
	4:            core.ColorOrange,
	5:            core.ColorBrightRed,
	6:            core.ColorRed,
	7:            core.ColorBrightYellow,
	8:            core.ColorBrightGreen,
	9:            core.ColorGreen,
	10:           core.ColorBrightCyan,
	11:           core.ColorBrightMagenta,
	12:           core.ColorMagenta,
}

func tileColor(p engine.Power) core.Color {
	if int(p) < len(tileColors) {
		return tileColors[p]
	}
	return tileColors[len(tileColors)-1]
}

func (g *Game) boardSize() (w, h int) {
	return g.shape.Columns*cellWidth + 1, g.shape.Rows*cellHeight + 1
}

// minSize is the smallest screen that fits the HUD, board and hint line.
func (g *Game) minSize() (w, h int) {
	bw, bh := g.boardSize()
	return max(bw, 30), hudHeight + 1 + bh + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	board := core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, board)
	g.renderBoard(dst, board)
	g.renderHint(dst, board)
	g.renderOverlays(dst, board)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	dst.DrawTextCenteredColored(0, "2048", core.ColorBrightYellow)

	dst.DrawText(board.X, 1, fmt.Sprintf("Score: %d", g.ctrl.Score()))

	best := fmt.Sprintf("Max: %d", g.ctrl.Grid().MaxPower().Value())
	dst.DrawText(max(board.X, board.Right()-utf8.RuneCountInString(best)), 1, best)

	status := fmt.Sprintf("Moves: %d", g.ctrl.Moves())
	if g.ctrl.Congratulation() == engine.Congratulated {
		status += "  * 2048 reached"
	}
	dst.DrawText(board.X, 2, status)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	rows, cols := g.shape.Rows, g.shape.Columns
	frame := core.ColorGray

	for y := range rows + 1 {
		for x := range cols + 1 {
			px := board.X + x*cellWidth
			py := board.Y + y*cellHeight

			dst.SetColored(px, py, junction(x, y, cols, rows), frame)
			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', frame)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', frame)
				}
			}
		}
	}

	grid := g.ctrl.Grid()
	for i, p := range grid {
		row, col := g.shape.Coords(i)
		cellX := board.X + col*cellWidth + 1
		cellY := board.Y + row*cellHeight + 1

		text := "·"
		if p != engine.Empty {
			text = strconv.Itoa(p.Value())
		}
		pad := max(0, (cellWidth-1-utf8.RuneCountInString(text))/2)
		dst.DrawTextColored(cellX+pad, cellY, text, tileColor(p))
	}
}

// junction picks the box-drawing rune for grid intersection (x, y).
func junction(x, y, cols, rows int) rune {
	top, bottom := y == 0, y == rows
	left, right := x == 0, x == cols

	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderHint(dst *core.Screen, board core.Rect) {
	y := board.Bottom() + 1
	if g.stuck && g.ctrl.State() != engine.Lost {
		dst.DrawTextCenteredColored(y, "No moves left - R to restart", core.ColorBrightRed)
		return
	}
	dst.DrawTextCenteredColored(y, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.ctrl.State() == engine.Lost:
		drawOverlay(dst, board, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.ctrl.Score()),
			fmt.Sprintf("Max tile: %d", g.ctrl.Grid().MaxPower().Value()),
			"R to restart  Q to quit")
	case g.ctrl.Congratulation() == engine.Pending:
		drawOverlay(dst, board, core.ColorBrightMagenta,
			"YOU WIN!",
			"You reached the 2048 tile",
			"Press any key to keep going")
	case g.paused:
		drawOverlay(dst, board, core.ColorCyan,
			"PAUSED",
			"P to resume",
			"R to restart  Q to quit")
	}
}

// drawOverlay draws a boxed message centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, color core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	box := board.Centered(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	cx, _ := box.Center()
	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(cx-utf8.RuneCountInString(line)/2, box.Y+1+i, line, c)
	}
}
