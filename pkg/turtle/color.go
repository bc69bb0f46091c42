package turtle

import (
	"image/color"
	"strconv"
	"strings"
)

// ColorFromInt は 0xRRGGBB 形式の整数を color.RGBA に変換する
//   - Bits 16-23: 赤
//   - Bits 8-15: 緑
//   - Bits 0-7: 青
func ColorFromInt(c int) color.RGBA {
	return color.RGBA{
		R: uint8((c >> 16) & 0xFF),
		G: uint8((c >> 8) & 0xFF),
		B: uint8(c & 0xFF),
		A: 0xFF,
	}
}

// ColorToInt は色を 0xRRGGBB 形式の整数に変換する
func ColorToInt(c color.Color) int {
	r, g, b, _ := c.RGBA()
	// RGBA() は16ビット値を返すため、8ビットに戻す
	return int(r>>8)<<16 | int(g>>8)<<8 | int(b>>8)
}

// namedColors は色名（小文字）と RGB の対応表
var namedColors = map[string]int{
	"black":     0x000000,
	"white":     0xFFFFFF,
	"red":       0xFF0000,
	"green":     0x008000,
	"blue":      0x0000FF,
	"yellow":    0xFFFF00,
	"cyan":      0x00FFFF,
	"magenta":   0xFF00FF,
	"orange":    0xFFA500,
	"purple":    0x800080,
	"pink":      0xFFC0CB,
	"brown":     0x8B4513,
	"gray":      0x808080,
	"grey":      0x808080,
	"lime":      0x00FF00,
	"navy":      0x000080,
	"teal":      0x008080,
	"maroon":    0x800000,
	"olive":     0x808000,
	"aqua":      0x00FFFF,
	"silver":    0xC0C0C0,
	"gold":      0xFFD700,
	"violet":    0xEE82EE,
	"indigo":    0x4B0082,
	"coral":     0xFF7F50,
	"turquoise": 0x40E0D0,
}

// palette は番号指定（0-15）で使う標準パレット
var palette = [16]int{
	0x000000, // 0 black
	0x0000FF, // 1 blue
	0x00FF00, // 2 green
	0x00FFFF, // 3 cyan
	0xFF0000, // 4 red
	0xFF00FF, // 5 magenta
	0xFFFF00, // 6 yellow
	0xFFFFFF, // 7 white
	0x9B603B, // 8 brown
	0xC58812, // 9 tan
	0x64A240, // 10 forest
	0x78BBBB, // 11 aqua
	0xFF9577, // 12 salmon
	0x9071D0, // 13 purple
	0xFFA300, // 14 orange
	0xB7B7B7, // 15 grey
}

// NamedColor は色名から色を返す（大文字小文字は区別しない）
func NamedColor(name string) (color.RGBA, bool) {
	v, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, false
	}
	return ColorFromInt(v), true
}

// PaletteColor はパレット番号から色を返す
func PaletteColor(index int) (color.RGBA, bool) {
	if index < 0 || index >= len(palette) {
		return color.RGBA{}, false
	}
	return ColorFromInt(palette[index]), true
}

// ParseHexColor は "#rrggbb" または "#rgb" 形式の文字列を解析する
func ParseHexColor(s string) (color.RGBA, bool) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return ColorFromInt(int(v)), true
}

// RGB は 0-255 の成分から不透明色を作成する（範囲外はクランプ）
func RGB(r, g, b float64) color.RGBA {
	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 0xFF}
}

func clampByte(v float64) uint8 {
	if v != v || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
