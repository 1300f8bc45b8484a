package main

import (
	"fmt"

	"github.com/gonewx/lostkingdom/pkg/battle"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// setup 一组战斗共用的阵容和参数
type setup struct {
	catalog *config.PieceCatalog
	cfg     *config.BattleConfig
	roster  *inventory.Roster
}

// result 单场战斗的结果
type result struct {
	Seed    int64
	Outcome battle.Outcome
	Log     []string
}

// summary 多场战斗的统计
type summary struct {
	Runs      int
	Victories int
	Timeouts  int
	Gold      int
	AvgTicks  float64
}

// loadSetup 加载卡牌目录和战斗参数，按 ids 组建战前阵容并自动放置
func loadSetup(ids []string) (*setup, error) {
	catalog, err := config.LoadPieceCatalog(config.DefaultPieceCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("卡牌目录加载失败: %w", err)
	}
	cfg, err := config.LoadBattleConfig(config.DefaultBattleConfigPath)
	if err != nil {
		return nil, fmt.Errorf("战斗参数加载失败: %w", err)
	}
	return newSetup(catalog, cfg, ids)
}

func newSetup(catalog *config.PieceCatalog, cfg *config.BattleConfig, ids []string) (*setup, error) {
	roster := inventory.NewRoster(inventory.NewShapeGrid(inventory.PlacementAtomic), config.BattlePrepRoster)
	for _, id := range ids {
		piece, ok := catalog.Get(id)
		if !ok {
			return nil, fmt.Errorf("未知卡牌: %s", id)
		}
		if _, err := roster.Add(piece); err != nil {
			return nil, fmt.Errorf("无法加入 %s: %w", id, err)
		}
	}
	if err := roster.ValidateForBattle(); err != nil {
		return nil, err
	}
	return &setup{catalog: catalog, cfg: cfg, roster: roster}, nil
}

// runSkirmish 从 firstSeed 开始连续跑 runs 场，每场使用网格的副本
func runSkirmish(s *setup, firstSeed int64, runs int) ([]result, error) {
	if runs < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}

	results := make([]result, 0, runs)
	for i := 0; i < runs; i++ {
		seed := firstSeed + int64(i)
		sim, err := battle.NewSimulator(s.roster.Grid().Clone(), s.cfg, seed)
		if err != nil {
			return nil, err
		}
		outcome := sim.Run()
		report, _ := sim.Report()
		results = append(results, result{Seed: seed, Outcome: outcome, Log: report.Log})
	}
	return results, nil
}

func summarize(results []result) summary {
	var sum summary
	totalTicks := 0
	for _, r := range results {
		sum.Runs++
		sum.Gold += r.Outcome.Reward
		totalTicks += r.Outcome.Ticks
		if r.Outcome.Result == types.ResultVictory {
			sum.Victories++
		}
		if r.Outcome.Reason == battle.ReasonTimeout {
			sum.Timeouts++
		}
	}
	if sum.Runs > 0 {
		sum.AvgTicks = float64(totalTicks) / float64(sum.Runs)
	}
	return sum
}

// WinRate 胜率（0~1）
func (s summary) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.Runs)
}
