// skirmish 无界面地连续跑多场战斗并输出汇总报告
//
// 用法:
//
//	go run ./cmd/skirmish -pieces knight,archer,cannon -seed 1 -runs 10
//	go run ./cmd/skirmish -copy   # 同时把报告复制到剪贴板
//
// 需要在项目根目录运行（或用 -root 指定包含 data/ 的目录）。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gonewx/lostkingdom/pkg/embedded"
)

var (
	rootDir = flag.String("root", ".", "包含 data/ 目录的项目根目录")
	pieces  = flag.String("pieces", "knight,archer,cannon", "阵容，逗号分隔的卡牌 ID")
	seed    = flag.Int64("seed", 1, "第一场的随机种子，之后每场加 1")
	runs    = flag.Int("runs", 10, "战斗场数")
	showLog = flag.Bool("log", false, "输出第一场的完整战斗日志")
	copyOut = flag.Bool("copy", false, "把报告复制到剪贴板")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*rootDir))

	setup, err := loadSetup(splitIDs(*pieces))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	results, err := runSkirmish(setup, *seed, *runs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	report := renderReport(setup, results, *showLog)
	fmt.Println(report)

	if *copyOut {
		if err := clipboard.WriteAll(plainReport(setup, results)); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  复制到剪贴板失败: %v\n", err)
			return
		}
		fmt.Println("📋 报告已复制到剪贴板")
	}
}

// splitIDs 解析逗号分隔的卡牌 ID，忽略空项
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
