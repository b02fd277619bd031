package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建测试专用的 gdata Manager，不可用时返回 nil
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("geotd_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})
	return manager
}

func TestSaveManager_MemoryOnly(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.SetProgress(ProgressData{ResearchPoints: 12, UnlockedUpgrades: []string{"ROOT", "ECO"}})
	if err := sm.Save(); err != nil {
		t.Fatalf("Save in memory-only mode should not fail: %v", err)
	}
	if got := sm.Progress(); got.ResearchPoints != 12 || len(got.UnlockedUpgrades) != 2 {
		t.Errorf("Unexpected progress: %+v", got)
	}
}

func TestSaveManager_SessionHistoryCapped(t *testing.T) {
	sm := NewSaveManager(nil)
	for i := 0; i < MaxSessionHistory+5; i++ {
		sm.AppendSession(SessionRecord{ID: fmt.Sprintf("s%d", i), Stage: i})
	}

	sessions := sm.Progress().Sessions
	if len(sessions) != MaxSessionHistory {
		t.Fatalf("Expected %d sessions, got %d", MaxSessionHistory, len(sessions))
	}
	if sessions[0].ID != "s5" || sessions[len(sessions)-1].ID != fmt.Sprintf("s%d", MaxSessionHistory+4) {
		t.Errorf("Oldest sessions should be dropped, got first=%s last=%s", sessions[0].ID, sessions[len(sessions)-1].ID)
	}

	// 覆盖进度不影响历史
	sm.SetProgress(ProgressData{ResearchPoints: 1})
	if len(sm.Progress().Sessions) != MaxSessionHistory {
		t.Error("SetProgress should keep session history")
	}
}

func TestNewSessionRecord(t *testing.T) {
	id := uuid.New()
	ended := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := NewSessionRecord(SessionEndedEvent{SessionID: id, StageIndex: 1, Victory: true, ResearchPoints: 7}, ended)
	if rec.ID != id.String() || rec.Stage != 1 || !rec.Victory || rec.ResearchPoints != 7 || !rec.EndedAt.Equal(ended) {
		t.Errorf("Unexpected record: %+v", rec)
	}

	if anon := NewSessionRecord(SessionEndedEvent{}, ended); anon.ID == "" || anon.ID == uuid.Nil.String() {
		t.Errorf("Record without session id should get a fresh id, got %q", anon.ID)
	}
}

func TestDecodeProgress_Invalid(t *testing.T) {
	if _, err := DecodeProgress([]byte("researchPoints: [not a number")); err == nil {
		t.Error("Expected error for malformed progress data")
	}
}

func TestSaveManager_PersistsThroughGdata(t *testing.T) {
	manager := createTestGdataManager(t, "persist")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm := NewSaveManager(manager)
	sm.SetProgress(ProgressData{ResearchPoints: 9, UnlockedUpgrades: []string{"ROOT", "ECO"}, CompletedStages: []int{0}})
	sm.AppendSession(SessionRecord{ID: "abc", Stage: 0, Victory: true, ResearchPoints: 3})
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewSaveManager(manager)
	got := reloaded.Progress()
	if got.ResearchPoints != 9 || len(got.UnlockedUpgrades) != 2 || len(got.CompletedStages) != 1 {
		t.Errorf("Unexpected reloaded progress: %+v", got)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].ID != "abc" {
		t.Errorf("Unexpected reloaded sessions: %+v", got.Sessions)
	}
}
