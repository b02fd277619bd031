package config

import (
	"fmt"
	"strings"

	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"gopkg.in/yaml.v3"
)

// RootNodeID 升级树根节点 ID
// 根节点始终视为已解锁，不计入累计花费
const RootNodeID = "ROOT"

// TreePosition 节点在研究界面中的位置（百分比坐标）
type TreePosition struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UpgradeNode 升级树中的一个节点
type UpgradeNode struct {
	ID             string         `yaml:"id"`
	NameKey        string         `yaml:"nameKey"`
	DescriptionKey string         `yaml:"descriptionKey"`
	Cost           int            `yaml:"cost"`         // 研究点价格
	Dependencies   []string       `yaml:"dependencies"` // 全部依赖均已解锁后才能解锁本节点
	Position       TreePosition   `yaml:"position"`
	Type           types.NodeType `yaml:"type"`

	// TOWER_MOD 节点
	Tower types.TowerType `yaml:"tower,omitempty"`
	Stat  types.NodeStat  `yaml:"stat,omitempty"`

	// ECONOMY / GLOBAL 节点
	GlobalStat types.GlobalStat `yaml:"globalStat,omitempty"`

	Value     float64         `yaml:"value,omitempty"`
	Operation types.Operation `yaml:"operation,omitempty"`

	// 解锁防御塔的节点
	UnlocksTower types.TowerType `yaml:"unlocksTower,omitempty"`
}

// UpgradeTreeConfig 升级树配置文件结构
type UpgradeTreeConfig struct {
	Nodes []UpgradeNode `yaml:"nodes"`

	index map[string]int
}

// Node 按 ID 查找节点
func (c *UpgradeTreeConfig) Node(id string) (UpgradeNode, bool) {
	if c.index == nil {
		c.buildIndex()
	}
	i, ok := c.index[id]
	if !ok {
		return UpgradeNode{}, false
	}
	return c.Nodes[i], true
}

func (c *UpgradeTreeConfig) buildIndex() {
	c.index = make(map[string]int, len(c.Nodes))
	for i, node := range c.Nodes {
		c.index[node.ID] = i
	}
}

// LoadUpgradeTree 从 YAML 文件加载升级树
func LoadUpgradeTree(filepath string) (*UpgradeTreeConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read upgrade tree file %s: %w", filepath, err)
	}

	var config UpgradeTreeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse upgrade tree YAML from %s: %w", filepath, err)
	}

	applyUpgradeDefaults(&config)

	if err := ValidateUpgradeTree(&config); err != nil {
		return nil, fmt.Errorf("invalid upgrade tree in %s: %w", filepath, err)
	}

	return &config, nil
}

// applyUpgradeDefaults 补全本地化键和运算方式
func applyUpgradeDefaults(config *UpgradeTreeConfig) {
	for i := range config.Nodes {
		node := &config.Nodes[i]
		if node.NameKey == "" {
			node.NameKey = UpgradeNameKey(node.ID)
		}
		if node.DescriptionKey == "" {
			node.DescriptionKey = UpgradeDescriptionKey(node.ID)
		}
		if node.Operation == "" && (node.Stat != "" || node.GlobalStat != "") {
			node.Operation = types.OpAdd
		}
	}
	config.buildIndex()
}

// ValidateUpgradeTree 校验升级树结构
// 要求：ID 唯一、存在根节点、依赖均存在、无环，且修正节点的字段与类型匹配
func ValidateUpgradeTree(config *UpgradeTreeConfig) error {
	ids := make(map[string]bool, len(config.Nodes))
	for _, node := range config.Nodes {
		if node.ID == "" {
			return fmt.Errorf("node id cannot be empty")
		}
		if ids[node.ID] {
			return fmt.Errorf("duplicate node id %q", node.ID)
		}
		ids[node.ID] = true
	}
	if !ids[RootNodeID] {
		return fmt.Errorf("root node %q is missing", RootNodeID)
	}

	for _, node := range config.Nodes {
		if err := validateUpgradeNode(node, ids); err != nil {
			return err
		}
	}

	return checkUpgradeCycles(config)
}

func validateUpgradeNode(node UpgradeNode, ids map[string]bool) error {
	if !node.Type.IsValid() {
		return fmt.Errorf("node %s: unknown type %q", node.ID, node.Type)
	}
	if node.Cost < 0 {
		return fmt.Errorf("node %s: cost cannot be negative", node.ID)
	}
	if node.ID != RootNodeID && len(node.Dependencies) == 0 {
		return fmt.Errorf("node %s: non-root node needs at least one dependency", node.ID)
	}
	for _, dep := range node.Dependencies {
		if !ids[dep] {
			return fmt.Errorf("node %s: dependency %q does not exist", node.ID, dep)
		}
	}
	if node.Operation != "" && node.Operation != types.OpAdd && node.Operation != types.OpMultiply {
		return fmt.Errorf("node %s: unknown operation %q", node.ID, node.Operation)
	}
	if node.UnlocksTower != "" && !node.UnlocksTower.IsValid() {
		return fmt.Errorf("node %s: unknown unlocksTower %q", node.ID, node.UnlocksTower)
	}

	switch node.Type {
	case types.NodeTowerMod:
		if !node.Tower.IsValid() {
			return fmt.Errorf("node %s: TOWER_MOD needs a valid tower, got %q", node.ID, node.Tower)
		}
		if !node.Stat.IsValid() {
			return fmt.Errorf("node %s: TOWER_MOD needs a valid stat, got %q", node.ID, node.Stat)
		}
	default:
		if node.GlobalStat != "" && !node.GlobalStat.IsValid() {
			return fmt.Errorf("node %s: unknown globalStat %q", node.ID, node.GlobalStat)
		}
	}
	return nil
}

// checkUpgradeCycles 三色 DFS 检测依赖环
func checkUpgradeCycles(config *UpgradeTreeConfig) error {
	const (
		white = iota
		grey
		black
	)
	deps := make(map[string][]string, len(config.Nodes))
	for _, node := range config.Nodes {
		deps[node.ID] = node.Dependencies
	}
	color := make(map[string]int, len(config.Nodes))

	var visit func(id string) error
	visit = func(id string) error {
		switch color[id] {
		case grey:
			return fmt.Errorf("dependency cycle detected at node %q", id)
		case black:
			return nil
		}
		color[id] = grey
		for _, dep := range deps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[id] = black
		return nil
	}

	for _, node := range config.Nodes {
		if err := visit(node.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpgradeNameKey 节点名称的本地化键
func UpgradeNameKey(id string) string {
	return "upgrade_" + strings.ToLower(id) + "_name"
}

// UpgradeDescriptionKey 节点描述的本地化键
func UpgradeDescriptionKey(id string) string {
	return "upgrade_" + strings.ToLower(id) + "_desc"
}
