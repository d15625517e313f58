package t2048

import "github.com/vovakirdan/merge2048/internal/merge"

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation is one tile drawn between two board cells.
type TileAnimation struct {
	Value    int
	From     merge.Pos
	To       merge.Pos
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Moving into a merge target
	IsNew    bool    // Spawned tile (pop effect)
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// startSlideAnimation animates every tile of a computed move. The engine
// stays in Moving until the slide ends.
func (g *Game) startSlideAnimation(moves []merge.TileMove) {
	g.animations = g.animations[:0]
	for _, m := range moves {
		g.animations = append(g.animations, TileAnimation{
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	}
	g.setPhase(PhaseSlide)
}

// startPopAnimation animates freshly spawned tiles.
func (g *Game) startPopAnimation(spawned []merge.SpawnEvent) {
	g.animations = g.animations[:0]
	for _, s := range spawned {
		g.animations = append(g.animations, TileAnimation{
			Value: s.Value,
			From:  s.Cell,
			To:    s.Cell,
			IsNew: true,
		})
	}
	g.setPhase(PhasePop)
}

func (g *Game) setPhase(p AnimationPhase) {
	g.animating = true
	g.animationPhase = p
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		g.stopAnimation()
		return false
	}

	progress := min(float64(g.animationTicks)/float64(duration), 1.0)
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return g.animating
	}
	return true
}

// finishAnimation completes the current phase. The end of a slide
// commits the move and chains into the pop of the spawned tiles.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide {
		g.commitMove()
		spawned := g.pendingSpawn
		g.pendingSpawn = nil
		if len(spawned) > 0 && g.err == nil {
			g.startPopAnimation(spawned)
			return
		}
	}
	g.stopAnimation()
}

func (g *Game) stopAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animations = nil
}

// spawnedAt reports whether the pop animation covers cell.
func (g *Game) spawnedAt(cell merge.Pos) (TileAnimation, bool) {
	if g.animationPhase != PhasePop {
		return TileAnimation{}, false
	}
	for _, a := range g.animations {
		if a.IsNew && a.To == cell {
			return a, true
		}
	}
	return TileAnimation{}, false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition returns the tile position in board cells.
func (a *TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = float64(a.From.X) + float64(a.To.X-a.From.X)*t
	y = float64(a.From.Y) + float64(a.To.Y-a.From.Y)*t
	return x, y
}
