package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerButton 本帧按下的指针按键
type PointerButton int

const (
	PointerNone PointerButton = iota
	PointerPrimary
	PointerSecondary
)

// InputState 存储当前帧的指针输入
// 同时支持鼠标和触摸，触摸视为主键
type InputState struct {
	Button PointerButton
	X, Y   int
}

// JustPressed 本帧是否有新的点击/触摸
func (s InputState) JustPressed() bool {
	return s.Button != PointerNone
}

// pointerState 获取当前帧的指针输入，优先检测触摸
func pointerState() InputState {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return InputState{Button: PointerPrimary, X: x, Y: y}
	}

	x, y := ebiten.CursorPosition()
	state := InputState{X: x, Y: y}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		state.Button = PointerPrimary
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		state.Button = PointerSecondary
	}
	return state
}
