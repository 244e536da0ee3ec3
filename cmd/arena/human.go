package main

import (
	"github.com/Kravenark/SplatterGameUnity/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// humanController reads WASD for movement, the cursor for aim and the left
// mouse button for the trigger.
type humanController struct {
	view *view
}

func (h *humanController) Intent(_ *game.Match, p *game.Player, _ float64) game.Intent {
	if !p.Active() {
		return game.Intent{}
	}
	cx, cy := ebiten.CursorPosition()
	return humanIntent(
		ebiten.IsKeyPressed(ebiten.KeyW),
		ebiten.IsKeyPressed(ebiten.KeyS),
		ebiten.IsKeyPressed(ebiten.KeyA),
		ebiten.IsKeyPressed(ebiten.KeyD),
		p.Pos,
		h.view.toWorld(cx, cy),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	)
}

// humanIntent turns raw input into an intent. Opposing keys cancel; the
// trigger without an aim offset fires nothing.
func humanIntent(up, down, left, right bool, pos, cursor game.Vec2, trigger bool) game.Intent {
	var in game.Intent
	if up {
		in.Move.Y--
	}
	if down {
		in.Move.Y++
	}
	if left {
		in.Move.X--
	}
	if right {
		in.Move.X++
	}
	in.Move = in.Move.Normalize()
	in.Aim = cursor.Sub(pos)
	in.Trigger = trigger && !in.Aim.IsZero()
	return in
}
