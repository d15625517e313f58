package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/merge2048/internal/core"
)

const (
	minCellWidth = 5 // Width of each cell including its left border
	cellHeight   = 2 // Height of each cell including its top border
	hudHeight    = 3
)

// cellWidth fits the largest value of the block table.
func (g *Game) cellWidth() int {
	if g.machine == nil {
		return minCellWidth
	}
	return max(minCellWidth, len(strconv.Itoa(g.machine.Blocks().MaxValue()))+2)
}

// boardSize returns the lattice size in characters.
func (g *Game) boardSize() (w, h int) {
	cfg := g.levelConfig()
	return cfg.Width*g.cellWidth() + 1, cfg.Height*cellHeight + 1
}

// layoutSize returns the screen size the HUD and board need.
func (g *Game) layoutSize() (w, h int) {
	bw, bh := g.boardSize()
	return max(bw, 25) + 2, hudHeight + 1 + bh + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.machine == nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderError shows why the game could not start.
func (g *Game) renderError(dst *core.Screen) {
	msg := "Configuration error"
	y := g.screenH / 2
	dst.DrawTextColored((g.screenW-len(msg))/2, y, msg, core.ColorBrightRed)
	if g.err != nil {
		detail := g.err.Error()
		dst.DrawText(max(0, (g.screenW-len(detail))/2), y+1, detail)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawText((g.screenW-len(msg))/2, y, msg)

	w, h := g.layoutSize()
	hint := fmt.Sprintf("Need %dx%d", w, h)
	dst.DrawText((g.screenW-len(hint))/2, y+1, hint)
}

// renderHUD draws score, best and level info above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score()))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.machine.Config().WinValue)
	} else {
		info = fmt.Sprintf("Max: %d", g.machine.Board().MaxValue())
	}
	dst.DrawText(max(boardX, boardX+boardW-len(info)), 1, info)

	best := fmt.Sprintf("Best: %d", g.BestScore())
	dst.DrawTextColored(boardX+(boardW-len(best))/2, 2, best, core.ColorGray)
}

// renderBoard draws the lattice and the tiles. Engine Y grows upward, so
// row 0 on screen is the top row of the board.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	grid := g.machine.Grid()
	w, h := grid.Width(), grid.Height()
	cw := g.cellWidth()

	for row := range h + 1 {
		for col := range w + 1 {
			px := boardX + col*cw
			py := boardY + row*cellHeight
			dst.SetColored(px, py, latticeCorner(col, row, w, h), core.ColorGray)

			if col < w {
				for i := 1; i < cw; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if row < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	if g.animationPhase == PhaseSlide {
		for i := range g.animations {
			a := &g.animations[i]
			fx, fy := a.interpolatePosition()
			px := boardX + int(math.Round(fx*float64(cw))) + 1
			py := boardY + int(math.Round((float64(h-1)-fy)*cellHeight)) + 1
			g.drawValue(dst, px, py, a.Value)
		}
		return
	}

	for _, t := range g.machine.Board().Tiles() {
		px := boardX + t.Cell.X*cw + 1
		py := boardY + (h-1-t.Cell.Y)*cellHeight + 1

		if a, ok := g.spawnedAt(t.Cell); ok && a.Progress < 0.5 {
			dst.SetColored(px+(cw-1)/2, py, '·', core.ColorGray)
			continue
		}
		g.drawValue(dst, px, py, t.Value)
	}
}

// drawValue centers value in a cell interior starting at (px, py).
func (g *Game) drawValue(dst *core.Screen, px, py, value int) {
	s := strconv.Itoa(value)
	pad := max(0, (g.cellWidth()-1-len(s))/2)

	color := core.ColorDefault
	if bt, err := g.machine.Blocks().Lookup(value); err == nil {
		color = bt.Color
	}
	dst.DrawTextColored(px+pad, py, s, color)
}

func latticeCorner(col, row, w, h int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == w:
		return '┐'
	case row == h && col == 0:
		return '└'
	case row == h && col == w:
		return '┘'
	case row == 0:
		return '┬'
	case row == h:
		return '┴'
	case col == 0:
		return '├'
	case col == w:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.levelCleared:
		target := fmt.Sprintf("Target %d reached!", g.machine.Config().WinValue)
		if g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, board, target, "Final level complete!")
		} else {
			drawOverlay(dst, board, target, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	case g.won && g.mode == ModeCampaign:
		drawOverlay(dst, board, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
	case g.won:
		drawOverlay(dst, board, "YOU WIN!", fmt.Sprintf("Reached %d", g.over.MaxTile), "Press R to restart")
	case g.err != nil:
		drawOverlay(dst, board, "GAME ERROR", g.err.Error(), "Press R to restart")
	case g.gameOver && !g.animating:
		maxStr := fmt.Sprintf("Max tile: %d", g.machine.Board().MaxValue())
		drawOverlay(dst, board, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	cx, _ := area.Center()
	for i, line := range lines {
		dst.DrawTextColored(cx-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
