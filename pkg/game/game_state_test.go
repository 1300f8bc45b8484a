package game

import (
	"errors"
	"testing"

	"github.com/gonewx/lostkingdom/pkg/battle"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/types"
)

func testPiece(id string, cost int) *config.PieceDefinition {
	return &config.PieceDefinition{
		ID:       id,
		Name:     id,
		Category: types.CategoryTroop,
		Shape:    [][]int{{1}},
		Cost:     cost,
		Damage:   50,
		Health:   100,
	}
}

// TestGameStateSingleton 多次调用 GetGameState() 返回同一个实例
func TestGameStateSingleton(t *testing.T) {
	original := globalGameState
	defer func() { globalGameState = original }()
	globalGameState = nil

	gs1 := GetGameState()
	gs2 := GetGameState()
	if gs1 != gs2 {
		t.Error("GetGameState() should return the same instance")
	}
	if gs1.GetSettingsManager() == nil {
		t.Error("SettingsManager should never be nil")
	}
}

func TestInitialState(t *testing.T) {
	gs := NewGameState(nil)

	if gs.Gold() != 500 {
		t.Errorf("Expected initial gold 500, got %d", gs.Gold())
	}
	if gs.Phase() != PhaseMenu {
		t.Errorf("Expected menu phase, got %s", gs.Phase())
	}
	if gs.Roster() != nil {
		t.Error("Roster should be nil before preparation")
	}
}

func TestGoldWallet(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		op     func(gs *GameState)
		expect int
	}{
		{"增加金币", 100, func(gs *GameState) { gs.AddGold(50) }, 150},
		{"扣减不低于 0", 100, func(gs *GameState) { gs.AddGold(-300) }, 0},
		{"设置负数按 0", 100, func(gs *GameState) { gs.SetGold(-1) }, 0},
		{"余额充足时花费", 100, func(gs *GameState) { gs.SpendGold(60) }, 40},
		{"余额不足时不扣除", 100, func(gs *GameState) { gs.SpendGold(101) }, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState(nil)
			gs.SetGold(tt.start)
			tt.op(gs)
			if gs.Gold() != tt.expect {
				t.Errorf("Expected %d gold, got %d", tt.expect, gs.Gold())
			}
		})
	}

	gs := NewGameState(nil)
	if gs.SpendGold(-5) {
		t.Error("negative spend should be rejected")
	}
}

func TestStartBattleValidation(t *testing.T) {
	gs := NewGameState(nil)

	if _, err := gs.StartBattle(nil); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase from menu, got %v", err)
	}

	roster := gs.BeginPreparation(config.BattlePrepRoster)
	if gs.Phase() != PhasePreparation {
		t.Fatalf("Expected preparation phase, got %s", gs.Phase())
	}

	if _, err := gs.StartBattle(nil); !errors.Is(err, inventory.ErrEmptyRoster) {
		t.Errorf("Expected ErrEmptyRoster, got %v", err)
	}
	if gs.Phase() != PhasePreparation {
		t.Error("rejected start must keep the preparation phase")
	}

	if _, err := roster.Add(testPiece("knight", 4)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	roster.Grid().Clear()
	if _, err := gs.StartBattle(nil); !errors.Is(err, inventory.ErrNoPiecesPlaced) {
		t.Errorf("Expected ErrNoPiecesPlaced, got %v", err)
	}
}

func TestBattleRoundTrip(t *testing.T) {
	gs := NewGameState(nil)
	roster := gs.BeginPreparation(config.BattlePrepRoster)
	if _, err := roster.Add(testPiece("knight", 4)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	sim, err := gs.StartBattle(nil)
	if err != nil {
		t.Fatalf("StartBattle failed: %v", err)
	}
	if gs.Phase() != PhaseBattle {
		t.Errorf("Expected battle phase, got %s", gs.Phase())
	}

	// 战斗使用网格副本
	roster.Remove("knight")
	if sim.Frame().AttackersAlive != 20 {
		t.Errorf("editing the roster must not affect a running battle")
	}

	sim.Run()
	report, ok := sim.Report()
	if !ok {
		t.Fatal("report should be available")
	}

	gold := gs.FinishBattle(report)
	if gold != 500+report.Reward {
		t.Errorf("Expected gold %d, got %d", 500+report.Reward, gold)
	}
	if gs.Phase() != PhaseMenu {
		t.Errorf("Expected menu phase after battle, got %s", gs.Phase())
	}
	last, ok := gs.LastReport()
	if !ok || last.Outcome != report.Outcome {
		t.Error("last report should be kept")
	}
}

func TestFinishBattleRewards(t *testing.T) {
	tests := []struct {
		name   string
		report battle.Report
		expect int
	}{
		{"胜利", battle.Report{Outcome: battle.Outcome{Result: types.ResultVictory}, Reward: 150}, 650},
		{"失败", battle.Report{Outcome: battle.Outcome{Result: types.ResultDefeat}, Reward: 50}, 550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState(nil)
			gs.BeginPreparation(config.BattlePrepRoster)
			if got := gs.FinishBattle(tt.report); got != tt.expect {
				t.Errorf("Expected %d gold, got %d", tt.expect, got)
			}
			if gs.Phase() != PhaseMenu {
				t.Error("FinishBattle must always return to the menu")
			}
		})
	}
}

func TestBeginPreparationUsesPlacementSetting(t *testing.T) {
	gs := NewGameState(nil)
	gs.GetSettingsManager().SetLegacyPlacement(true)

	roster := gs.BeginPreparation(config.DefenseSetupRoster)
	if roster.Grid().Mode != inventory.PlacementLegacy {
		t.Error("grid should use the legacy placement mode from settings")
	}
	if roster.Limits() != config.DefenseSetupRoster {
		t.Error("roster should use the requested limits")
	}
}
