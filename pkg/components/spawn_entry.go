package components

import "github.com/gonewx/geotd/pkg/types"

// SpawnEntry 波次生成队列中的一项
type SpawnEntry struct {
	EnemyType types.EnemyType
	Time      float64 // 相对波次开始的时间（秒）
}
