package main

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Kravenark/SplatterGameUnity/internal/game"
)

// spectator is the ebiten host for one match: it steps the sim once per
// frame at the tuning tick rate and paints the city, players and a side
// panel with standings and the event feed.
type spectator struct {
	match *game.Match
	view  *view
	human *humanController
	dt    float64

	width, height int
	worldW        int

	simSpeed  float64
	tickAccum float64
	prevKeys  map[ebiten.Key]bool
	showHUD   bool

	feed        []string
	status      string
	statusTimer int
}

func newSpectator(m *game.Match, v *view, hc *humanController) *spectator {
	worldW := int(m.City.Width*v.scale) + 2*borderWidth
	worldH := int(m.City.Height*v.scale) + 2*borderWidth
	height := worldH
	if minH := (feedLines + 18) * lineH; height < minH {
		height = minH
	}
	return &spectator{
		match:    m,
		view:     v,
		human:    hc,
		dt:       m.Tuning.TickDuration(),
		width:    worldW + panelWidth,
		height:   height,
		worldW:   worldW,
		simSpeed: 1,
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
	}
}

func (s *spectator) Update() error {
	s.handleInput()
	if s.statusTimer > 0 {
		s.statusTimer--
	}
	if s.simSpeed <= 0 || s.match.Over() {
		return nil
	}
	s.tickAccum += s.simSpeed
	for s.tickAccum >= 1.0 && !s.match.Over() {
		s.tickAccum -= 1.0
		s.match.Tick(s.dt)
		for _, e := range s.match.DrainEvents() {
			s.feed = pushLine(s.feed, describe(e), feedLines)
		}
	}
	return nil
}

// pressed reports a key going down this frame.
func (s *spectator) pressed(k ebiten.Key, cur map[ebiten.Key]bool) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !s.prevKeys[k]
}

func (s *spectator) handleInput() {
	cur := map[ebiten.Key]bool{}

	if s.pressed(ebiten.KeySpace, cur) {
		if s.simSpeed > 0 {
			s.simSpeed = 0
		} else {
			s.simSpeed = 1
		}
	}
	if s.pressed(ebiten.KeyPeriod, cur) && s.simSpeed > 0 && s.simSpeed < 4 {
		s.simSpeed *= 2
	}
	if s.pressed(ebiten.KeyComma, cur) && s.simSpeed > 0.25 {
		s.simSpeed /= 2
	}
	if s.pressed(ebiten.KeyH, cur) {
		s.showHUD = !s.showHUD
	}
	if s.pressed(ebiten.KeyC, cur) {
		report := game.FormatReport(game.BuildReport(s.match))
		if err := clipboard.WriteAll(report); err != nil {
			s.setStatus(fmt.Sprintf("clipboard: %v", err))
		} else {
			s.setStatus("report copied to clipboard")
		}
	}

	s.prevKeys = cur
}

func (s *spectator) setStatus(msg string) {
	s.status = msg
	s.statusTimer = statusFrames
}

func (s *spectator) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	w, h := s.view.length(s.match.City.Width), s.view.length(s.match.City.Height)
	ox, oy := s.view.toScreen(game.Vec2{})
	vector.FillRect(screen, ox, oy, w, h, colStreet, false)

	for _, bv := range s.match.BlockViews() {
		s.drawBlock(screen, bv)
	}
	for _, pv := range s.match.PlayerViews() {
		s.drawPlayer(screen, pv)
	}
	s.drawPanel(screen)
	if s.showHUD {
		s.drawHUD(screen)
	}
}

func (s *spectator) drawBlock(screen *ebiten.Image, bv game.BlockView) {
	x, y := s.view.toScreen(game.Vec2{X: bv.Bounds.X, Y: bv.Bounds.Y})
	w, h := s.view.length(bv.Bounds.W), s.view.length(bv.Bounds.H)
	vector.FillRect(screen, x, y, w, h, tint(bv.Colour), false)
	vector.StrokeRect(screen, x, y, w, h, 2, colourRGBA(bv.Colour), false)

	for _, bd := range bv.Buildings {
		bx, by := s.view.toScreen(game.Vec2{X: bd.Bounds.X, Y: bd.Bounds.Y})
		bw, bh := s.view.length(bd.Bounds.W), s.view.length(bd.Bounds.H)
		vector.FillRect(screen, bx, by, bw, bh, buildingRGBA(bd), false)
		vector.StrokeRect(screen, bx, by, bw, bh, 1, colOutline, false)
		if bd.Target != game.ColourNone {
			vector.FillRect(screen, bx, by+bh-3, bw, 3, colOutline, false)
			vector.FillRect(screen, bx, by+bh-3, bw*float32(bd.Progress), 3, colourRGBA(bd.Target), false)
		}
	}

	label := fmt.Sprintf("B%02d %s", bv.ID, blockShareLabel(bv))
	text.Draw(screen, label, basicfont.Face7x13, int(x)+3, int(y)+12, colText)
}

// blockShareLabel names the leading colour and its share, or the grey share
// when no team holds a building.
func blockShareLabel(bv game.BlockView) string {
	c := bv.Shares.Dominant()
	if c == game.ColourNone {
		return fmt.Sprintf("grey %.0f%%", bv.Shares.Percent(game.ColourGrey))
	}
	return fmt.Sprintf("%s %.0f%%", c, bv.Shares.Percent(c))
}

func (s *spectator) drawPlayer(screen *ebiten.Image, pv game.PlayerView) {
	if pv.Colour == game.ColourNone {
		return
	}
	cx, cy := s.view.toScreen(pv.Pos)
	r := s.view.length(pv.Radius)
	col := colourRGBA(pv.Colour)

	if !pv.Active {
		ghost := color.RGBA{R: col.R, G: col.G, B: col.B, A: 90}
		vector.StrokeCircle(screen, cx, cy, r, 1, ghost, true)
		if pv.Awaiting {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f", pv.RespawnIn), int(cx)-8, int(cy)-6)
		}
		return
	}

	if pv.Target.Kind != game.TargetNone {
		tx, ty := s.view.toScreen(pv.Target.Point)
		vector.StrokeLine(screen, cx, cy, tx, ty, 2, color.RGBA{R: col.R, G: col.G, B: col.B, A: 200}, true)
	}
	vector.FillCircle(screen, cx, cy, r, col, true)
	vector.StrokeCircle(screen, cx, cy, r, 1.5, colOutline, true)
	fx, fy := s.view.toScreen(pv.Pos.Add(pv.Facing.Scale(pv.Radius * 1.6)))
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colOutline, true)

	barW := r * 2
	frac := float32(0)
	if pv.MaxHealth > 0 {
		frac = float32(pv.Health / pv.MaxHealth)
	}
	vector.FillRect(screen, cx-r, cy-r-6, barW, 3, colHealthBack, false)
	vector.FillRect(screen, cx-r, cy-r-6, barW*frac, 3, colHealth, false)
	text.Draw(screen, pv.Label, basicfont.Face7x13, int(cx+r)+2, int(cy-r), colText)
}

func (s *spectator) drawPanel(screen *ebiten.Image) {
	px := float32(s.worldW)
	vector.FillRect(screen, px, 0, panelWidth, float32(s.height), colPanel, false)
	vector.StrokeLine(screen, px, 0, px, float32(s.height), 1, colPanelEdge, false)

	x := s.worldW + 10
	y := 20
	line := func(str string, clr color.Color) {
		text.Draw(screen, str, basicfont.Face7x13, x, y, clr)
		y += lineH
	}

	m := s.match
	r := game.BuildReport(m)
	clock := fmt.Sprintf("t=%.1fs", m.Now())
	if d := m.Tuning.MatchDuration; d > 0 {
		clock = fmt.Sprintf("t=%.1f / %.0fs", m.Now(), d)
	}
	line(clock, colText)
	if m.Over() {
		line("MATCH OVER  leader: "+leaderName(r.Leader), colText)
	}
	y += lineH / 2

	line("colour  blocks bldgs  share", colDim)
	for _, st := range r.Standings {
		line(fmt.Sprintf("%-7s %6d %5d %5.0f%%", st.Colour, st.Blocks, st.Buildings, st.BuildingShare*100),
			colourRGBA(st.Colour))
	}
	y += lineH / 2

	line("player  hp    block  state", colDim)
	for _, pv := range m.PlayerViews() {
		if pv.Colour == game.ColourNone {
			line(fmt.Sprintf("%-7s spectating", pv.Label), colDim)
			continue
		}
		line(fmt.Sprintf("%-7s %-5.0f %-6s %s", pv.Label, pv.Health, blockName(pv), playerState(pv)), colourRGBA(pv.Colour))
	}
	y += lineH / 2

	line("events", colDim)
	for _, f := range s.feed {
		line(f, colText)
	}
}

func (s *spectator) drawHUD(screen *ebiten.Image) {
	speed := "PAUSED"
	if s.simSpeed > 0 {
		speed = fmt.Sprintf("%gx", s.simSpeed)
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  Space=pause  ,/. speed", speed),
		"C=copy report  H=toggle HUD",
	}
	if s.human != nil {
		lines = append(lines, "P1: WASD move  mouse aim  LMB spray")
	}
	if s.statusTimer > 0 {
		lines = append(lines, s.status)
	}

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*6 + hudPadX*2)
	boxH := float32(len(lines)*hudLineH + hudPadY*2)
	bx := float32(borderWidth + 4)
	by := float32(s.height) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 10, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, colPanelEdge, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(bx)+hudPadX, int(by)+hudPadY+i*hudLineH)
	}
}

func (s *spectator) Layout(_, _ int) (int, int) {
	return s.width, s.height
}

func blockName(pv game.PlayerView) string {
	if !pv.InBlock {
		return "street"
	}
	return fmt.Sprintf("B%02d", pv.Block)
}

func playerState(pv game.PlayerView) string {
	switch {
	case pv.Awaiting:
		return fmt.Sprintf("dead %.1fs", pv.RespawnIn)
	case !pv.Active:
		return "inactive"
	case len(pv.Attackers) > 0:
		return fmt.Sprintf("hit x%d", len(pv.Attackers))
	case pv.Target.Kind != game.TargetNone:
		return "spraying"
	default:
		return "ok"
	}
}

func leaderName(c game.Colour) string {
	if c == game.ColourNone {
		return "tie"
	}
	return c.String()
}

// describe is the feed line for one event.
func describe(e game.Event) string {
	switch e.Kind {
	case game.EventBuildingColoured:
		return fmt.Sprintf("%5d W%02d %s->%s P%d", e.Tick, e.Building, e.From, e.Colour, e.Attacker)
	case game.EventBlockColoured:
		return fmt.Sprintf("%5d B%02d now %s", e.Tick, e.Block, e.Colour)
	case game.EventPlayerHit:
		return fmt.Sprintf("%5d P%d hit by P%d", e.Tick, e.Player, e.Attacker)
	case game.EventPlayerDied:
		return fmt.Sprintf("%5d P%d died", e.Tick, e.Player)
	case game.EventPlayerRespawned:
		return fmt.Sprintf("%5d P%d respawned", e.Tick, e.Player)
	default:
		return fmt.Sprintf("%5d P%d %s", e.Tick, e.Player, e.Kind)
	}
}
