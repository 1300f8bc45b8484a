// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// PieceCategory 定义卡牌（拼块）的类别
type PieceCategory int

const (
	// CategoryUnknown 未知类别
	CategoryUnknown PieceCategory = iota
	// CategoryTroop 可移动的部队单位
	CategoryTroop
	// CategorySpell 范围效果法术
	CategorySpell
	// CategoryBuilding 固定建筑
	CategoryBuilding
)

// String 返回类别的字符串表示（与 YAML 配置中的取值一致）
func (c PieceCategory) String() string {
	switch c {
	case CategoryTroop:
		return "troop"
	case CategorySpell:
		return "spell"
	case CategoryBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// IsMobile 部队单位可以移动，法术和建筑原地不动
func (c PieceCategory) IsMobile() bool {
	return c == CategoryTroop
}

// ParsePieceCategory 将配置字符串解析为类别
func ParsePieceCategory(s string) (PieceCategory, error) {
	switch s {
	case "troop":
		return CategoryTroop, nil
	case "spell":
		return CategorySpell, nil
	case "building":
		return CategoryBuilding, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown piece category %q (expected troop, spell or building)", s)
	}
}

// MarshalText 实现 encoding.TextMarshaler，供 YAML 序列化使用
func (c PieceCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，yaml.v3 会对标量调用它
func (c *PieceCategory) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
