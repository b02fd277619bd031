package game

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxSessionHistory 存档中保留的对局记录条数
const MaxSessionHistory = 20

// SessionRecord 一局对局的结果
type SessionRecord struct {
	ID             string    `yaml:"id"` // 会话 UUID
	Stage          int       `yaml:"stage"`
	Victory        bool      `yaml:"victory"`
	ResearchPoints int       `yaml:"researchPoints"`
	EndedAt        time.Time `yaml:"endedAt"`
}

// NewSessionRecord 根据 SessionEnded 事件生成对局记录
func NewSessionRecord(ev SessionEndedEvent, endedAt time.Time) SessionRecord {
	id := ev.SessionID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return SessionRecord{
		ID:             id.String(),
		Stage:          ev.StageIndex,
		Victory:        ev.Victory,
		ResearchPoints: ev.ResearchPoints,
		EndedAt:        endedAt,
	}
}

// ProgressData 局外成长存档
type ProgressData struct {
	ResearchPoints   int             `yaml:"researchPoints"`
	UnlockedUpgrades []string        `yaml:"unlockedUpgrades"`
	CompletedStages  []int           `yaml:"completedStages"`
	Sessions         []SessionRecord `yaml:"sessions,omitempty"` // 最近的对局，最新的在最后
}

// SaveManager 局外成长存档管理器
//
// 存档以 YAML 写入 gdata 的对象属性；gdataManager 为 nil 时只在内存中保存（降级模式）
type SaveManager struct {
	gdataManager *gdata.Manager
	data         ProgressData
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "research"
)

// OpenStorage 打开 gdata 存储
// 打开失败时返回 nil，调用方以降级模式运行
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SaveManager] Warning: gdata unavailable: %v (progress will not be persisted)", err)
		return nil
	}
	return manager
}

// NewSaveManager 创建存档管理器并尝试加载已有存档
//
// 参数：
//   - gdataManager: gdata 存储，可为 nil（降级模式）
//
// 加载失败不是致命错误，记录警告后使用空存档
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	sm := &SaveManager{gdataManager: gdataManager}
	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return sm
}

// Load 从 gdata 加载存档
// 没有存档时使用空存档并返回 nil
func (sm *SaveManager) Load() error {
	sm.data = ProgressData{}
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	data, err := DecodeProgress(raw)
	if err != nil {
		return err
	}

	sm.data = data
	log.Printf("[SaveManager] Progress loaded: %d research points, %d upgrades, %d sessions",
		data.ResearchPoints, len(data.UnlockedUpgrades), len(data.Sessions))
	return nil
}

// Save 把当前存档写入 gdata
// 降级模式下直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	raw, err := EncodeProgress(sm.data)
	if err != nil {
		return err
	}
	if err := sm.gdataManager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	log.Printf("[SaveManager] Progress saved")
	return nil
}

// Progress 返回当前存档（切片为副本）
func (sm *SaveManager) Progress() ProgressData {
	return ProgressData{
		ResearchPoints:   sm.data.ResearchPoints,
		UnlockedUpgrades: append([]string(nil), sm.data.UnlockedUpgrades...),
		CompletedStages:  append([]int(nil), sm.data.CompletedStages...),
		Sessions:         append([]SessionRecord(nil), sm.data.Sessions...),
	}
}

// SetProgress 用解锁管理器导出的进度覆盖存档，保留对局历史
func (sm *SaveManager) SetProgress(p ProgressData) {
	sessions := sm.data.Sessions
	sm.data = p
	sm.data.Sessions = sessions
}

// AppendSession 追加一条对局记录，超出上限时丢弃最旧的
func (sm *SaveManager) AppendSession(record SessionRecord) {
	sm.data.Sessions = append(sm.data.Sessions, record)
	if n := len(sm.data.Sessions); n > MaxSessionHistory {
		sm.data.Sessions = append([]SessionRecord(nil), sm.data.Sessions[n-MaxSessionHistory:]...)
	}
}

// EncodeProgress 序列化存档
func EncodeProgress(p ProgressData) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}
	return data, nil
}

// DecodeProgress 反序列化存档
func DecodeProgress(raw []byte) (ProgressData, error) {
	var p ProgressData
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return ProgressData{}, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return p, nil
}
