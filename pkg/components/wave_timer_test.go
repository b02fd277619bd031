package components

import "testing"

func TestNewWaveTimer(t *testing.T) {
	timer := NewWaveTimer(20)

	if timer.CurrentWaveIndex != -1 {
		t.Errorf("Expected CurrentWaveIndex = -1 before first wave, got %d", timer.CurrentWaveIndex)
	}
	if timer.TotalWaves != 20 {
		t.Errorf("Expected TotalWaves = 20, got %d", timer.TotalWaves)
	}
	if timer.CountdownTicks != 0 || timer.AccumulatedSeconds != 0 {
		t.Errorf("Expected idle countdown, got %d ticks / %f s", timer.CountdownTicks, timer.AccumulatedSeconds)
	}
}
