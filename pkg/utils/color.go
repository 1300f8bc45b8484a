package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor 解析 "#rrggbb" 或 "#rgb" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ColorOr 解析颜色，失败时返回 fallback
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// WithAlpha 按比例缩放颜色的不透明度（预乘 alpha）
func WithAlpha(c color.RGBA, ratio float64) color.RGBA {
	ratio = min(max(ratio, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R) * ratio),
		G: uint8(float64(c.G) * ratio),
		B: uint8(float64(c.B) * ratio),
		A: uint8(float64(c.A) * ratio),
	}
}
