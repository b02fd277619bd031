package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/game"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	pathColor       = color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	slotColor       = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	slotBorderColor = color.RGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
	rangeColor      = color.NRGBA{R: 0x67, G: 0xe8, B: 0xf9, A: 0x40}
	aimColor        = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0x60}
	hudColor        = color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	healthBarBack   = color.RGBA{R: 0x7f, G: 0x1d, B: 0x1d, A: 0xff}
	healthBarFront  = color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	projectileColor = color.RGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	overlayColor    = color.RGBA{A: 0xb0}
)

var towerColors = map[types.TowerType]color.RGBA{
	types.TowerCircle:   {R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
	types.TowerSquare:   {R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	types.TowerTriangle: {R: 0x34, G: 0xd3, B: 0x99, A: 0xff},
	types.TowerFire:     {R: 0xf9, G: 0x73, B: 0x16, A: 0xff},
	types.TowerCold:     {R: 0x7d, G: 0xd3, B: 0xfc, A: 0xff},
	types.TowerElectric: {R: 0xfd, G: 0xe0, B: 0x47, A: 0xff},
}

var enemyColors = map[types.EnemyType]color.RGBA{
	types.EnemyTriangle: {R: 0xf8, G: 0x71, B: 0x71, A: 0xff},
	types.EnemySquare:   {R: 0xfb, G: 0x92, B: 0x3c, A: 0xff},
	types.EnemyPentagon: {R: 0xe8, G: 0x79, B: 0xf9, A: 0xff},
	types.EnemyBoss:     {R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
	types.EnemyCritter:  {R: 0xfc, G: 0xa5, B: 0xa5, A: 0xff},
}

// Draw 绘制游戏画面
// 只读取 Session.Snapshot()，不修改任何对局状态
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.session.Snapshot()
	screen.Fill(backgroundColor)

	drawPath(screen, snap.Path)
	drawSlots(screen, snap.Slots)

	snap.World.Towers.Each(func(_ ecs.EntityID, t components.TowerComponent) bool {
		if target, ok := aimTarget(t, snap.World.Enemies); ok {
			vector.StrokeLine(screen, float32(t.Position.X), float32(t.Position.Y), float32(target.X), float32(target.Y), 1, aimColor, true)
		}
		drawTower(screen, t, t.Type == a.selected)
		return true
	})
	snap.World.Enemies.Each(func(_ ecs.EntityID, e components.EnemyComponent) bool {
		drawEnemy(screen, e)
		return true
	})
	snap.World.Projectiles.Each(func(_ ecs.EntityID, p components.ProjectileComponent) bool {
		vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y), 3, projectileColor, true)
		return true
	})
	snap.World.Effects.Each(func(_ ecs.EntityID, e components.EffectComponent) bool {
		drawEffect(screen, e)
		return true
	})

	a.drawHUD(screen, snap)
	if snap.GameOver {
		a.drawGameOver(screen, snap)
	}
}

func drawPath(screen *ebiten.Image, waypoints []types.Vector) {
	if len(waypoints) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(waypoints[0].X), float32(waypoints[0].Y))
	for _, p := range waypoints[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	var scale ebiten.ColorScale
	scale.ScaleWithColor(pathColor)
	vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: float32(config.TileSize), LineJoin: vector.LineJoinMiter}, &vector.DrawPathOptions{ColorScale: scale})
}

func drawSlots(screen *ebiten.Image, slots []types.Vector) {
	const half = config.TileSize/2 - 2
	for _, s := range slots {
		x, y := float32(s.X-half), float32(s.Y-half)
		vector.DrawFilledRect(screen, x, y, half*2, half*2, slotColor, false)
		vector.StrokeRect(screen, x, y, half*2, half*2, 1, slotBorderColor, false)
	}
}

// aimTarget 防御塔最近一次射击的目标位置，目标已不在场上时返回 false
func aimTarget(t components.TowerComponent, enemies *ecs.Store[components.EnemyComponent]) (types.Vector, bool) {
	if t.TargetID == ecs.InvalidEntity {
		return types.Vector{}, false
	}
	e, ok := enemies.Get(t.TargetID)
	if !ok {
		return types.Vector{}, false
	}
	return e.Position, true
}

func drawTower(screen *ebiten.Image, t components.TowerComponent, selected bool) {
	x, y := float32(t.Position.X), float32(t.Position.Y)
	clr := towerColors[t.Type]
	if selected {
		vector.StrokeCircle(screen, x, y, float32(t.Range), 1, rangeColor, true)
	}

	switch t.Type {
	case types.TowerSquare:
		vector.DrawFilledRect(screen, x-14, y-14, 28, 28, clr, false)
	case types.TowerTriangle:
		var path vector.Path
		path.MoveTo(x, y-16)
		path.LineTo(x+15, y+12)
		path.LineTo(x-15, y+12)
		path.Close()
		var scale ebiten.ColorScale
		scale.ScaleWithColor(clr)
		vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: 3, LineJoin: vector.LineJoinRound}, &vector.DrawPathOptions{AntiAlias: true, ColorScale: scale})
	default:
		vector.DrawFilledCircle(screen, x, y, 15, clr, true)
	}
}

func drawEnemy(screen *ebiten.Image, e components.EnemyComponent) {
	x, y := float32(e.Position.X), float32(e.Position.Y)
	radius := float32(8)
	if e.IsBoss() {
		radius = 20
	} else if e.Type == types.EnemyCritter {
		radius = 5
	}
	vector.DrawFilledCircle(screen, x, y, radius, enemyColors[e.Type], true)
	if e.Slow != nil {
		vector.StrokeCircle(screen, x, y, radius+2, 2, towerColors[types.TowerCold], true)
	}
	if len(e.Burns) > 0 {
		vector.StrokeCircle(screen, x, y, radius+4, 1, towerColors[types.TowerFire], true)
	}

	if e.MaxHealth > 0 && e.Health < e.MaxHealth {
		w := radius * 2
		vector.DrawFilledRect(screen, x-radius, y-radius-6, w, 3, healthBarBack, false)
		vector.DrawFilledRect(screen, x-radius, y-radius-6, w*float32(e.Health/e.MaxHealth), 3, healthBarFront, false)
	}
}

func drawEffect(screen *ebiten.Image, e components.EffectComponent) {
	p := float32(e.Progress())
	clr := color.NRGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: uint8(float32(0xff) * (1 - p))}
	radius := 6 + 10*p
	if e.Kind == components.EffectCritHit {
		radius *= 1.5
	}
	vector.StrokeCircle(screen, float32(e.Position.X), float32(e.Position.Y), radius, 2, clr, true)
}

func (a *App) drawHUD(screen *ebiten.Image, snap game.SessionSnapshot) {
	top := float32(config.MapHeight)
	vector.DrawFilledRect(screen, 0, top, float32(config.MapWidth), config.HUDHeight, hudColor, false)

	wave := snap.WaveIndex + 1
	if wave < 0 {
		wave = 0
	}
	status := fmt.Sprintf("Money %.0f  Health %.0f  Wave %d/%d  Speed %dx  RP +%d  [%s]",
		snap.Money, snap.Health, wave, snap.TotalWaves, snap.Speed, snap.ResearchPoints, snap.Phase)
	if snap.Phase == game.PhaseWaveCountdown {
		status += fmt.Sprintf("  next wave in %d (Space: +%.0f)", snap.Countdown, config.EarlyWaveBonus)
	}
	ebitenutil.DebugPrintAt(screen, status, 8, int(top)+6)
	ebitenutil.DebugPrintAt(screen, a.towerBar(), 8, int(top)+26)

	if snap.Boss != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BOSS %s  %.0f/%.0f", snap.Boss.Boss.NameKey, snap.Boss.Health, snap.Boss.MaxHealth), 8, 8)
	}
}

// towerBar 防御塔选择栏：编号、名称、当前价格
func (a *App) towerBar() string {
	settings := a.session.Resolved().Settings
	var b strings.Builder
	for i, t := range types.AllTowerTypes() {
		if !settings.IsTowerUnlocked(t) {
			continue
		}
		cost, _ := a.session.TowerCost(t)
		marker := " "
		if t == a.selected {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%d %s %.0f  ", marker, i+1, t, cost)
	}
	return b.String()
}

// drawGameOver 结束画面：结果、研究点和可解锁的研究节点
func (a *App) drawGameOver(screen *ebiten.Image, snap game.SessionSnapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(config.MapWidth), float32(config.MapHeight), overlayColor, false)
	title := "DEFEAT"
	if snap.Victory {
		title = "VICTORY"
	}
	cx, cy := int(config.MapWidth/2)-120, int(config.MapHeight/2)-160
	ebitenutil.DebugPrintAt(screen, title, cx, cy)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Research points earned: %d", snap.ResearchPoints), cx, cy+20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Research points available: %d", a.unlocks.ResearchPoints()), cx, cy+40)

	y := cy + 70
	for i, node := range researchChoices(a.unlocks) {
		marker := " "
		if a.unlocks.CanUnlock(node.ID) {
			marker = "*"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%d %s (%d RP)", marker, i+1, node.ID, node.Cost), cx, y)
		y += 16
	}
	ebitenutil.DebugPrintAt(screen, "1-9: research  Enter: continue", cx, y+10)
}
