package window

import (
	"strings"
	"sync"
)

// DefaultConsoleLines はコンソールが保持する行数の上限
const DefaultConsoleLines = 200

// Console はプログラムの出力を保持するスレッドセーフなバッファ
// インタプリタのゴルーチンから書き込まれ、描画ループから読み出される
type Console struct {
	mu       sync.Mutex
	lines    []string
	partial  bool // 最後の行が改行で終わっていない
	maxLines int
}

// NewConsole は最大 maxLines 行を保持する Console を作成する
func NewConsole(maxLines int) *Console {
	if maxLines <= 0 {
		maxLines = DefaultConsoleLines
	}
	return &Console{maxLines: maxLines}
}

// Print は1行を追加する
func (c *Console) Print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(s)
	c.partial = false
}

// Type は改行せずに文字列を追加する
func (c *Console) Type(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(s)
	c.partial = true
}

// Error はエラーメッセージを1行追加する
func (c *Console) Error(s string) {
	c.Print("! " + s)
}

func (c *Console) write(s string) {
	parts := strings.Split(s, "\n")
	if c.partial && len(c.lines) > 0 {
		c.lines[len(c.lines)-1] += parts[0]
		parts = parts[1:]
	}
	c.lines = append(c.lines, parts...)
	if over := len(c.lines) - c.maxLines; over > 0 {
		c.lines = append(c.lines[:0], c.lines[over:]...)
	}
}

// Tail は最後の n 行を返す
func (c *Console) Tail(n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.lines) {
		n = len(c.lines)
	}
	out := make([]string, n)
	copy(out, c.lines[len(c.lines)-n:])
	return out
}

// Clear はすべての行を消去する
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.partial = false
}
