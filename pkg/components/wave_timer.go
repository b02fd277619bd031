package components

// WaveTimerComponent 波次计时状态
// 由 Session 推进：倒计时以整数 tick 表示，每累计 1 秒真实时间减 1
//
// 倒计时不受游戏速度影响，使用未缩放的帧间隔累计
type WaveTimerComponent struct {
	// CurrentWaveIndex 当前（或最近一次）波次索引，0-based
	// 首波开始前为 -1
	CurrentWaveIndex int

	// TotalWaves 关卡总波次数
	TotalWaves int

	// CountdownTicks 距离下一波开始的剩余 tick 数
	CountdownTicks int

	// AccumulatedSeconds 不足 1 秒的累计时间
	AccumulatedSeconds float64
}

// NewWaveTimer 创建首波开始前的计时器
func NewWaveTimer(totalWaves int) WaveTimerComponent {
	return WaveTimerComponent{CurrentWaveIndex: -1, TotalWaves: totalWaves}
}
