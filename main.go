package main

import (
	"flag"
	"log"
	"strings"

	"github.com/gonewx/lostkingdom/pkg/app"
	"github.com/gonewx/lostkingdom/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	seed := flag.Int64("seed", 0, "战斗随机种子（0 表示使用设置中的种子）")
	pieces := flag.String("pieces", "", "开局阵容，逗号分隔的卡牌 ID，如 knight,archer,cannon")
	flag.Parse()

	embedded.Init(dataFS)

	var ids []string
	if *pieces != "" {
		for _, id := range strings.Split(*pieces, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Seed:    *seed,
		Pieces:  ids,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("失落王国 - 战斗观战")

	// ESC 返回 ebiten.Termination，RunGame 正常返回 nil
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
