// Package app 提供游戏应用的核心包装器
//
// 该包负责把对局（game.Session）接到 Ebitengine 的帧循环上：
// 每帧把固定的帧间隔交给 Session.Update，把键盘/鼠标输入翻译成玩家操作，
// 并在对局结束时把研究点交回局外成长存档。渲染只读取 Session.Snapshot()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/game"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存档使用的应用名
const AppName = "geotd"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Stage 首个对局的关卡序号（0-based）
	Stage int
	// Speed 初始游戏速度（1~3），非法值保持 1
	Speed int
	// Seed 随机种子，0 表示按时间播种
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	data        *config.GameData
	saveManager *game.SaveManager
	unlocks     *game.UpgradeUnlockManager
	session     *game.Session

	selected types.TowerType
	seed     int64
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	data, err := config.LoadGameData()
	if err != nil {
		return nil, fmt.Errorf("游戏数据加载失败: %w", err)
	}

	saveManager := game.NewSaveManager(game.OpenStorage(AppName))
	unlocks := game.NewUpgradeUnlockManager(data.Upgrades)
	unlocks.Restore(saveManager.Progress())

	a := &App{
		data:        data,
		saveManager: saveManager,
		unlocks:     unlocks,
		seed:        cfg.Seed,
		verbose:     cfg.Verbose,
	}
	if err := a.startSession(cfg.Stage); err != nil {
		return nil, err
	}
	if cfg.Speed != 0 && !a.session.SetSpeed(cfg.Speed) {
		log.Printf("[App] Ignoring invalid speed %d", cfg.Speed)
	}
	return a, nil
}

// startSession 按当前解锁的升级开始一局新对局
func (a *App) startSession(stageIndex int) error {
	resolved := game.NewStatResolver(a.data.Towers, a.data.Upgrades).Resolve(a.unlocks.Unlocked())

	session, err := game.NewSession(a.data, stageIndex, resolved, utils.NewRandomSource(a.seed))
	if err != nil {
		return fmt.Errorf("对局创建失败: %w", err)
	}
	session.Events.Subscribe(game.EventSessionEnded, game.ListenerFunc(func(ev game.Event) {
		if ended, ok := ev.Data.(game.SessionEndedEvent); ok {
			recordSessionEnd(a.unlocks, a.saveManager, ended)
		}
	}))

	a.session = session
	a.selected = firstUnlockedTower(resolved.Settings)
	log.Printf("[App] Stage %d started (session %s)", stageIndex+1, session.ID)
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if err := a.handleInput(); err != nil {
		return err
	}

	deltaTime := 1.0 / 60.0
	a.session.Update(deltaTime)
	return nil
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Session 返回当前对局
func (a *App) Session() *game.Session {
	return a.session
}

// SaveProgress 退出前保存存档
func (a *App) SaveProgress() error {
	a.saveManager.SetProgress(a.unlocks.Export())
	return a.saveManager.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
