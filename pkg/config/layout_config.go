package config

// 布局配置常量
// 地图按 TileSize 划分网格，HUD 放在地图下方
const (
	MapColumns = DefaultGridWidth
	MapRows    = DefaultGridHeight

	// MapWidth 地图区域宽度（像素）
	MapWidth = MapColumns * TileSize // 1000

	// MapHeight 地图区域高度（像素）
	MapHeight = MapRows * TileSize // 750

	// HUDHeight 底部信息栏高度
	HUDHeight = 50

	// GameWindowWidth 游戏逻辑屏幕宽度
	GameWindowWidth = int(MapWidth)

	// GameWindowHeight 游戏逻辑屏幕高度
	GameWindowHeight = int(MapHeight) + HUDHeight
)

// ScreenToGrid 把屏幕坐标转换为网格坐标
// 落在地图区域之外时返回 false
func ScreenToGrid(x, y int) (GridPoint, bool) {
	if x < 0 || y < 0 || float64(x) >= MapWidth || float64(y) >= MapHeight {
		return GridPoint{}, false
	}
	return GridPoint{X: int(float64(x) / TileSize), Y: int(float64(y) / TileSize)}, true
}

// SlotIndexAt 返回屏幕坐标所在的可建造格子编号，不在任何格子上时返回 -1
func (s *StageConfig) SlotIndexAt(x, y int) int {
	cell, ok := ScreenToGrid(x, y)
	if !ok {
		return -1
	}
	for i, slot := range s.Slots {
		if slot == cell {
			return i
		}
	}
	return -1
}
