package config

import (
	"math"

	"github.com/gonewx/geotd/pkg/types"
)

// 关卡默认尺寸与波次数
const (
	DefaultGridWidth  = 20
	DefaultGridHeight = 15
	DefaultWaveCount  = 20
)

// GenerateWaves 按难度曲线生成波次
// 每第 5 波为单个 Boss；其余波次按 i+offset 的难度逐步加入方形和五边形敌人。
func GenerateWaves(count, difficultyOffset int) []Wave {
	waves := make([]Wave, 0, count)
	for i := 1; i <= count; i++ {
		if i%BossWaveInterval == 0 {
			waves = append(waves, Wave{Groups: []SpawnGroup{{Type: types.EnemyBoss, Count: 1, Interval: 0}}})
			continue
		}

		difficulty := i + difficultyOffset
		fi := float64(i)
		var groups []SpawnGroup

		if difficulty > 0 {
			groups = append(groups, SpawnGroup{
				Type:     types.EnemyTriangle,
				Count:    min(35, 5+int(math.Floor(fi*2.2))),
				Interval: math.Max(0.15, 0.8-fi*0.02),
			})
		}
		if difficulty > 5 {
			groups = append(groups, SpawnGroup{
				Type:     types.EnemySquare,
				Count:    min(25, 3+int(math.Floor(fi*1.2))),
				Interval: math.Max(0.7, 1.5-fi*0.05),
			})
		}
		if difficulty > 10 {
			groups = append(groups, SpawnGroup{
				Type:     types.EnemyPentagon,
				Count:    min(20, 2+int(math.Floor(fi*0.9))),
				Interval: math.Max(0.5, 1.2-fi*0.04),
			})
		}

		waves = append(waves, Wave{Groups: groups})
	}
	return waves
}
