// validate_data 检查 data/ 下的卡牌目录和战斗参数
//
// 除了加载时的格式校验，还检查数据之间的配合：形状能否放进空网格、
// 单张费用是否超出战前预算、颜色能否解析。
//
// 用法: go run ./cmd/validate_data [-root .]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/embedded"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/utils"
)

var (
	rootDir = flag.String("root", ".", "包含 data/ 目录的项目根目录")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	embedded.Init(os.DirFS(*rootDir))

	catalog, err := config.LoadPieceCatalog(config.DefaultPieceCatalogPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 卡牌目录格式正确，共 %d 张\n", len(catalog.Pieces))

	cfg, err := config.LoadBattleConfig(config.DefaultBattleConfigPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 战斗参数格式正确，敌方 %d 个单位\n", cfg.DefenderCount())

	errs, warnings := checkData(catalog, cfg)
	for _, w := range warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	for _, e := range errs {
		fmt.Printf("❌ %s\n", e)
	}
	if len(errs) > 0 {
		fmt.Printf("❌ 发现 %d 个错误\n", len(errs))
		os.Exit(1)
	}
	fmt.Println("✅ 数据检查通过")
}

// checkData 返回必须修正的错误和仅供参考的警告
func checkData(catalog *config.PieceCatalog, cfg *config.BattleConfig) (errs, warnings []string) {
	budget := config.BattlePrepRoster.Budget

	for _, p := range catalog.Pieces {
		if !inventory.NewShapeGrid(inventory.PlacementAtomic).CanPlace(p, 0, 0) {
			errs = append(errs, fmt.Sprintf("%s: %dx%d 的形状放不进 %dx%d 网格",
				p.ID, p.Rows(), p.Cols(), inventory.GridSize, inventory.GridSize))
		}
		if budget > 0 && p.Cost > budget {
			warnings = append(warnings, fmt.Sprintf("%s: 费用 %d 超过战前预算 %d", p.ID, p.Cost, budget))
		}
		if _, err := utils.ParseHexColor(p.Color); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: 颜色无法解析，将使用默认颜色 (%v)", p.ID, err))
		}
		if p.Name == "" {
			warnings = append(warnings, fmt.Sprintf("%s: 缺少显示名称，战斗日志将使用 \"单位\"", p.ID))
		}
	}

	for _, d := range cfg.Defenders {
		if _, err := utils.ParseHexColor(d.Color); err != nil {
			warnings = append(warnings, fmt.Sprintf("defender %s: 颜色无法解析，将使用默认颜色 (%v)", d.Type, err))
		}
	}
	return errs, warnings
}
