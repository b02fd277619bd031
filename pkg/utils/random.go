// Package utils 提供与引擎无关的通用工具
package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
// 暴击判定和小怪偏移都通过它取随机数，测试可注入固定序列
type RandomSource interface {
	// Float64 返回 [0, 1) 区间的随机数
	Float64() float64
}

// NewRandomSource 创建基于 math/rand 的随机源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SequenceRandom 按固定序列循环返回值的随机源（测试用）
type SequenceRandom struct {
	Values []float64
	index  int
}

// NewSequenceRandom 创建固定序列随机源
func NewSequenceRandom(values ...float64) *SequenceRandom {
	return &SequenceRandom{Values: values}
}

// Float64 返回序列中的下一个值，序列为空时返回 0.5
func (r *SequenceRandom) Float64() float64 {
	if len(r.Values) == 0 {
		return 0.5
	}
	v := r.Values[r.index%len(r.Values)]
	r.index++
	return v
}
