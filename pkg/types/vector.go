package types

import "math"

// Vector 二维世界坐标（像素）
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Sub 返回 v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add 返回 v + o
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// DistanceSq 返回到 o 的距离平方
// 目标选择和范围判断都比较距离平方，避免开方
func (v Vector) DistanceSq(o Vector) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

// Distance 返回到 o 的距离
func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.DistanceSq(o))
}

// MoveToward 朝 target 前进 step 距离
// 调用方负责处理 step 超过剩余距离的情况（本函数不做吸附）
func (v Vector) MoveToward(target Vector, step float64) Vector {
	dist := v.Distance(target)
	if dist == 0 {
		return v
	}
	return Vector{
		X: v.X + (target.X-v.X)/dist*step,
		Y: v.Y + (target.Y-v.Y)/dist*step,
	}
}
