package game

import (
	"log"
	"sort"

	"github.com/gonewx/geotd/pkg/config"
)

// UpgradeUnlockManager 管理研究点和升级树的解锁进度
//
// 解锁是受保护的空操作：节点不存在、已解锁、依赖未全部解锁或研究点不足时
// TryUnlock 返回 false，状态不变。ROOT 始终视为已解锁。
type UpgradeUnlockManager struct {
	tree            *config.UpgradeTreeConfig
	researchPoints  int
	unlocked        map[string]bool
	order           []string // 解锁顺序（ROOT 在最前）
	completedStages map[int]bool
}

// NewUpgradeUnlockManager 创建只解锁了 ROOT 的管理器
func NewUpgradeUnlockManager(tree *config.UpgradeTreeConfig) *UpgradeUnlockManager {
	m := &UpgradeUnlockManager{tree: tree}
	m.Reset()
	return m
}

// Reset 清空全部进度
func (m *UpgradeUnlockManager) Reset() {
	m.researchPoints = 0
	m.unlocked = map[string]bool{config.RootNodeID: true}
	m.order = []string{config.RootNodeID}
	m.completedStages = make(map[int]bool)
}

// ResearchPoints 返回当前研究点
func (m *UpgradeUnlockManager) ResearchPoints() int {
	return m.researchPoints
}

// AddResearchPoints 增加研究点，负数被忽略
func (m *UpgradeUnlockManager) AddResearchPoints(amount int) {
	if amount <= 0 {
		return
	}
	m.researchPoints += amount
}

// IsUnlocked 检查节点是否已解锁
func (m *UpgradeUnlockManager) IsUnlocked(id string) bool {
	return m.unlocked[id]
}

// CanUnlock 检查节点当前是否可以解锁
func (m *UpgradeUnlockManager) CanUnlock(id string) bool {
	node, ok := m.tree.Node(id)
	if !ok || m.unlocked[id] {
		return false
	}
	if m.researchPoints < node.Cost {
		return false
	}
	for _, dep := range node.Dependencies {
		if !m.unlocked[dep] {
			return false
		}
	}
	return true
}

// Available 返回依赖已满足但尚未解锁的节点（不检查研究点），按升级树顺序
func (m *UpgradeUnlockManager) Available() []config.UpgradeNode {
	var out []config.UpgradeNode
	for _, node := range m.tree.Nodes {
		if m.unlocked[node.ID] {
			continue
		}
		ready := true
		for _, dep := range node.Dependencies {
			if !m.unlocked[dep] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, node)
		}
	}
	return out
}

// TryUnlock 尝试解锁节点，成功时扣除研究点并返回 true
func (m *UpgradeUnlockManager) TryUnlock(id string) bool {
	if !m.CanUnlock(id) {
		return false
	}
	node, _ := m.tree.Node(id)
	m.researchPoints -= node.Cost
	m.unlocked[id] = true
	m.order = append(m.order, id)
	log.Printf("[UpgradeUnlockManager] Unlocked %s (cost %d, %d points left)", id, node.Cost, m.researchPoints)
	return true
}

// Unlocked 按解锁顺序返回已解锁的节点（副本）
func (m *UpgradeUnlockManager) Unlocked() []string {
	return append([]string(nil), m.order...)
}

// TotalSpent 已花费的研究点（不含 ROOT）
func (m *UpgradeUnlockManager) TotalSpent() int {
	total := 0
	for _, id := range m.order {
		if id == config.RootNodeID {
			continue
		}
		if node, ok := m.tree.Node(id); ok {
			total += node.Cost
		}
	}
	return total
}

// CompleteStage 记录关卡通关
func (m *UpgradeUnlockManager) CompleteStage(stageIndex int) {
	m.completedStages[stageIndex] = true
}

// IsStageCompleted 检查关卡是否已通关
func (m *UpgradeUnlockManager) IsStageCompleted(stageIndex int) bool {
	return m.completedStages[stageIndex]
}

// CompletedStages 返回已通关的关卡（升序）
func (m *UpgradeUnlockManager) CompletedStages() []int {
	stages := make([]int, 0, len(m.completedStages))
	for s := range m.completedStages {
		stages = append(stages, s)
	}
	sort.Ints(stages)
	return stages
}

// Restore 从存档恢复进度
// 未知节点被丢弃；ROOT 无论存档里有没有都会保留
func (m *UpgradeUnlockManager) Restore(data ProgressData) {
	m.Reset()
	m.researchPoints = max(data.ResearchPoints, 0)
	for _, id := range data.UnlockedUpgrades {
		if m.unlocked[id] {
			continue
		}
		if _, ok := m.tree.Node(id); !ok {
			log.Printf("[UpgradeUnlockManager] WARNING: saved upgrade %q no longer exists, dropped", id)
			continue
		}
		m.unlocked[id] = true
		m.order = append(m.order, id)
	}
	for _, s := range data.CompletedStages {
		m.completedStages[s] = true
	}
}

// Export 导出当前进度（不含会话历史）
func (m *UpgradeUnlockManager) Export() ProgressData {
	return ProgressData{
		ResearchPoints:   m.researchPoints,
		UnlockedUpgrades: m.Unlocked(),
		CompletedStages:  m.CompletedStages(),
	}
}
