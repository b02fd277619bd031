package game

import (
	"fmt"
	"log"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/entities"
	"github.com/gonewx/geotd/pkg/systems"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
	"github.com/google/uuid"
)

// Phase 对局阶段
type Phase int

const (
	PhasePlacing        Phase = iota // 首波开始前
	PhaseWaveInProgress              // 波次进行中，只有这个阶段推进模拟
	PhaseWaveCountdown               // 波次间倒计时
	PhaseGameOver                    // 结束（胜利或失败）
)

// String 返回阶段名
func (p Phase) String() string {
	switch p {
	case PhasePlacing:
		return "placing"
	case PhaseWaveInProgress:
		return "wave_in_progress"
	case PhaseWaveCountdown:
		return "wave_countdown"
	case PhaseGameOver:
		return "game_over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Session 一局对局
//
// 职责：
//   - 阶段状态机（布置 → 波次 ↔ 倒计时 → 结束）
//   - 玩家操作（放置、出售、开波、调速），非法操作是无副作用的空操作
//   - 每帧推进模拟并把 TickReport 结算到金币、生命和研究点
//
// 所有状态只由 Update 和玩家操作修改，两者都在帧之间同步执行。
type Session struct {
	ID         uuid.UUID
	StageIndex int
	Events     *EventBus

	stage    *config.StageConfig
	slots    []types.Vector
	resolved ResolvedStats
	sim      *systems.Simulation
	world    *systems.World

	phase           Phase
	money           float64
	health          float64
	speed           int
	researchPoints  int
	postBossCounter int
	buildCounts     map[types.TowerType]int
	waveTimer       components.WaveTimerComponent
	revealTimer     float64
	victory         bool
}

// NewSession 创建对局
//
// 参数：
//   - data: 全部游戏数据
//   - stageIndex: 关卡序号（0-based）
//   - resolved: 升级解析结果，对局期间只读
//   - rng: 随机源，nil 时使用按时间播种的随机源
func NewSession(data *config.GameData, stageIndex int, resolved ResolvedStats, rng utils.RandomSource) (*Session, error) {
	stage, err := data.Stage(stageIndex)
	if err != nil {
		return nil, err
	}
	if resolved.Towers == nil {
		return nil, fmt.Errorf("resolved tower stats are required")
	}
	if rng == nil {
		rng = utils.NewRandomSource(0)
	}

	path := stage.PathWorld()
	settings := resolved.Settings
	sim := systems.NewSimulation(data, path, systems.SimulationSettings{
		ProjectileSpeedModifier: settings.ProjectileSpeedModifier,
		CritChance:              settings.CritChance,
		CritDamage:              settings.CritDamage,
		BossModifiers:           resolved.BossModifiers,
	}, rng)

	s := &Session{
		ID:          uuid.New(),
		StageIndex:  stageIndex,
		Events:      NewEventBus(),
		stage:       stage,
		slots:       stage.SlotsWorld(),
		resolved:    resolved,
		sim:         sim,
		world:       systems.NewWorld(),
		phase:       PhasePlacing,
		money:       settings.StartMoney,
		health:      settings.StartHealth,
		speed:       config.MinGameSpeed,
		buildCounts: make(map[types.TowerType]int),
		waveTimer:   components.NewWaveTimer(len(stage.Waves)),
	}
	log.Printf("[Session] %s started on %s: money=%.0f health=%.0f waves=%d", s.ID, stage.ID, s.money, s.health, len(stage.Waves))
	return s, nil
}

// Update 推进一帧
// deltaTime 为未缩放的帧间隔；模拟使用 deltaTime × 游戏速度，倒计时和结束延迟使用原始值
func (s *Session) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	switch s.phase {
	case PhaseWaveInProgress:
		s.tick(deltaTime * float64(s.speed))
	case PhaseWaveCountdown:
		s.advanceCountdown(deltaTime)
	case PhaseGameOver:
		s.revealTimer += deltaTime
	}
}

// tick 执行一次模拟并结算
func (s *Session) tick(scaled float64) {
	next, report := s.sim.Step(s.world, systems.TickInput{
		DeltaTime:       scaled,
		WaveIndex:       s.waveTimer.CurrentWaveIndex,
		PostBossCounter: s.postBossCounter,
	})
	s.world = next
	s.applyReport(report)

	if s.phase != PhaseWaveInProgress || !s.world.IsWaveCleared() {
		return
	}
	if s.waveTimer.CurrentWaveIndex >= len(s.stage.Waves)-1 {
		s.endSession()
		return
	}
	s.phase = PhaseWaveCountdown
	s.waveTimer.CountdownTicks = config.WaveCountdownTicks
	s.waveTimer.AccumulatedSeconds = 0
	log.Printf("[Session] Wave %d cleared, next wave in %d", s.waveTimer.CurrentWaveIndex+1, config.WaveCountdownTicks)
	s.Events.Dispatch(Event{Type: EventWaveCleared, Data: WaveClearedEvent{WaveIndex: s.waveTimer.CurrentWaveIndex}})
}

// applyReport 把一个 tick 的击杀和漏怪结算到对局状态
func (s *Session) applyReport(report systems.TickReport) {
	difficulty := s.sim.Difficulty()

	for _, k := range report.Killed {
		gained := k.Enemy.Reward + s.resolved.Settings.KillBonus
		s.money += gained
		points := 0
		if k.Enemy.Boss != nil {
			points = difficulty.ResearchPointsForBoss(k.Enemy.Boss.BossIndex, s.resolved.Settings.ResearchPointModifier)
			s.researchPoints += points
			s.postBossCounter = difficulty.CounterAfterBossKill()
			log.Printf("[Session] Boss %s defeated: +%d research points", k.Enemy.Boss.NameKey, points)
		}
		s.Events.Dispatch(Event{Type: EventEnemyKilled, Data: EnemyKilledEvent{
			ID:             k.ID,
			Enemy:          k.Enemy,
			Money:          gained,
			ResearchPoints: points,
		}})
	}

	for _, r := range report.ReachedEnd {
		damage := config.DefaultBaseDamage
		if r.Enemy.IsBoss() {
			damage = config.BossBaseDamage
		}
		s.health = max(0, s.health-damage)
		s.Events.Dispatch(Event{Type: EventEnemyReachedEnd, Data: EnemyReachedEndEvent{
			ID:     r.ID,
			Enemy:  r.Enemy,
			Damage: damage,
			Health: s.health,
		}})
		if s.health <= 0 && s.phase != PhaseGameOver {
			s.endSession()
		}
	}
}

// advanceCountdown 推进波次间倒计时，归零时自动开始下一波
func (s *Session) advanceCountdown(deltaTime float64) {
	s.waveTimer.AccumulatedSeconds += deltaTime
	for s.waveTimer.AccumulatedSeconds >= 1 && s.waveTimer.CountdownTicks > 0 {
		s.waveTimer.AccumulatedSeconds--
		s.waveTimer.CountdownTicks--
	}
	if s.waveTimer.CountdownTicks <= 0 {
		s.startWave(false)
	}
}

// startWave 开始下一波
// 没有下一波时直接结束对局
func (s *Session) startWave(early bool) bool {
	index := s.waveTimer.CurrentWaveIndex + 1
	if s.phase == PhasePlacing {
		index = 0
	}
	if index < 0 || index >= len(s.stage.Waves) {
		log.Printf("[Session] Wave %d does not exist, ending session", index+1)
		s.endSession()
		return false
	}

	counter := s.postBossCounter
	s.postBossCounter = s.sim.Difficulty().CounterOnWaveStart(counter)
	s.waveTimer.CurrentWaveIndex = index
	s.waveTimer.CountdownTicks = 0
	s.waveTimer.AccumulatedSeconds = 0

	next := s.world.Clone()
	s.sim.Waves().StartWave(next, s.stage.Waves[index], index, counter)
	s.world = next
	s.phase = PhaseWaveInProgress

	s.Events.Dispatch(Event{Type: EventWaveStarted, Data: WaveStartedEvent{WaveIndex: index, Early: early}})
	return true
}

// endSession 进入结束阶段，SessionEnded 只发送一次
func (s *Session) endSession() {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.victory = s.health > 0
	s.revealTimer = 0
	log.Printf("[Session] %s ended: victory=%v research points=%d", s.ID, s.victory, s.researchPoints)
	s.Events.Dispatch(Event{Type: EventSessionEnded, Data: SessionEndedEvent{
		SessionID:      s.ID,
		StageIndex:     s.StageIndex,
		Victory:        s.victory,
		ResearchPoints: s.researchPoints,
	}})
}

// StartWave 在布置阶段开始第一波
func (s *Session) StartWave() bool {
	if s.phase != PhasePlacing {
		return false
	}
	return s.startWave(false)
}

// StartWaveEarly 在倒计时中提前开始下一波，获得额外金币
func (s *Session) StartWaveEarly() bool {
	if s.phase != PhaseWaveCountdown {
		return false
	}
	s.money += config.EarlyWaveBonus
	return s.startWave(true)
}

// SetSpeed 设置游戏速度（1~3），非法值不生效
func (s *Session) SetSpeed(speed int) bool {
	if speed < config.MinGameSpeed || speed > config.MaxGameSpeed {
		return false
	}
	s.speed = speed
	return true
}

// TowerCost 下一座该类型防御塔的价格
// 价格 = 解析后的价格 × (1 + 本局已建造数量 × 0.15)
func (s *Session) TowerCost(towerType types.TowerType) (float64, bool) {
	stats, ok := s.resolved.Towers.Get(towerType)
	if !ok {
		return 0, false
	}
	n := float64(s.buildCounts[towerType])
	return stats.Cost * (1 + n*config.TowerPriceIncreaseRate), true
}

// SellValue 出售防御塔可获得的金币
func (s *Session) SellValue(id ecs.EntityID) (float64, bool) {
	tower, ok := s.world.Towers.Get(id)
	if !ok {
		return 0, false
	}
	return tower.PurchaseCost * (config.TowerSellRatio + s.resolved.Settings.SellRatioModifier), true
}

// PlaceTower 在格子上放置防御塔
//
// 以下情况不生效并返回 false：对局已结束、格子不存在或已被占用、
// 防御塔未解锁、金币不足
func (s *Session) PlaceTower(slotIndex int, towerType types.TowerType) (ecs.EntityID, bool) {
	if s.phase == PhaseGameOver {
		return ecs.InvalidEntity, false
	}
	if slotIndex < 0 || slotIndex >= len(s.slots) || s.world.SlotOccupied(slotIndex) {
		return ecs.InvalidEntity, false
	}
	if !s.resolved.Settings.IsTowerUnlocked(towerType) {
		return ecs.InvalidEntity, false
	}
	stats, ok := s.resolved.Towers.Get(towerType)
	if !ok {
		return ecs.InvalidEntity, false
	}
	cost, _ := s.TowerCost(towerType)
	if s.money < cost {
		return ecs.InvalidEntity, false
	}

	next := s.world.Clone()
	id, err := entities.NewTowerEntity(next.Entities, next.Towers, stats, slotIndex, s.slots[slotIndex], cost)
	if err != nil {
		log.Printf("[Session] ERROR: failed to place %s: %v", towerType, err)
		return ecs.InvalidEntity, false
	}
	s.world = next
	s.money -= cost
	s.buildCounts[towerType]++

	s.Events.Dispatch(Event{Type: EventTowerPlaced, Data: TowerPlacedEvent{ID: id, Type: towerType, SlotIndex: slotIndex, Cost: cost}})
	return id, true
}

// SellTower 出售防御塔，格子立即变为可建造
// 建造计数不回退，下一座同类型塔的价格不变
func (s *Session) SellTower(id ecs.EntityID) (float64, bool) {
	if s.phase == PhaseGameOver {
		return 0, false
	}
	refund, ok := s.SellValue(id)
	if !ok {
		return 0, false
	}
	tower, _ := s.world.Towers.Get(id)

	next := s.world.Clone()
	next.Towers.Remove(id)
	s.world = next
	s.money += refund

	s.Events.Dispatch(Event{Type: EventTowerSold, Data: TowerSoldEvent{ID: id, Type: tower.Type, SlotIndex: tower.SlotIndex, Refund: refund}})
	return refund, true
}

// Phase 当前阶段
func (s *Session) Phase() Phase { return s.phase }

// Money 当前金币
func (s *Session) Money() float64 { return s.money }

// Health 当前生命
func (s *Session) Health() float64 { return s.health }

// Speed 当前游戏速度
func (s *Session) Speed() int { return s.speed }

// ResearchPointsEarned 本局获得的研究点
func (s *Session) ResearchPointsEarned() int { return s.researchPoints }

// PostBossCounter 击杀 Boss 后的难度计数器
func (s *Session) PostBossCounter() int { return s.postBossCounter }

// WaveIndex 当前波次（0-based），首波开始前为 -1
func (s *Session) WaveIndex() int { return s.waveTimer.CurrentWaveIndex }

// Countdown 距离下一波的剩余 tick 数，不在倒计时阶段时为 0
func (s *Session) Countdown() int {
	if s.phase != PhaseWaveCountdown {
		return 0
	}
	return s.waveTimer.CountdownTicks
}

// Victory 对局是否胜利（仅在结束阶段有意义）
func (s *Session) Victory() bool { return s.victory }

// GameOverVisible 结束画面是否应该显示
func (s *Session) GameOverVisible() bool {
	return s.phase == PhaseGameOver && s.revealTimer >= config.GameOverRevealDelay
}

// World 当前已提交的对局状态（只读）
func (s *Session) World() *systems.World { return s.world }

// Stage 当前关卡
func (s *Session) Stage() *config.StageConfig { return s.stage }

// Resolved 本局使用的升级解析结果
func (s *Session) Resolved() ResolvedStats { return s.resolved }
