package graphics

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/zurustar/kame/pkg/turtle"
)

// OperationRecord は描画操作の記録を表す
type OperationRecord struct {
	Operation string
	Args      map[string]any
}

// HeadlessSurface はヘッドレスモード用の Surface
// 描画操作をログと履歴に記録し、next が設定されていればそちらにも転送する
type HeadlessSurface struct {
	width, height int
	next          turtle.Surface

	log              *slog.Logger
	logOperations    bool // 描画操作をログに記録するかどうか
	recordHistory    bool // 操作履歴を保持するかどうか
	operationHistory []OperationRecord
	historyMu        sync.RWMutex
}

// HeadlessOption は HeadlessSurface のオプションを設定する関数型
type HeadlessOption func(*HeadlessSurface)

// WithHeadlessLogger はロガーを設定する
func WithHeadlessLogger(log *slog.Logger) HeadlessOption {
	return func(hs *HeadlessSurface) {
		hs.log = log
	}
}

// WithHeadlessSize は仮想キャンバスのサイズを設定する
func WithHeadlessSize(width, height int) HeadlessOption {
	return func(hs *HeadlessSurface) {
		hs.width = width
		hs.height = height
	}
}

// WithForward は描画を転送する Surface を設定する
// 転送先がある場合、サイズは転送先のものを使う
func WithForward(next turtle.Surface) HeadlessOption {
	return func(hs *HeadlessSurface) {
		hs.next = next
	}
}

// WithLogOperations は描画操作のログ記録を有効/無効にする
func WithLogOperations(enabled bool) HeadlessOption {
	return func(hs *HeadlessSurface) {
		hs.logOperations = enabled
	}
}

// WithRecordHistory は操作履歴の記録を有効/無効にする
func WithRecordHistory(enabled bool) HeadlessOption {
	return func(hs *HeadlessSurface) {
		hs.recordHistory = enabled
	}
}

// NewHeadlessSurface は新しいヘッドレスモード用 Surface を作成する
func NewHeadlessSurface(opts ...HeadlessOption) *HeadlessSurface {
	hs := &HeadlessSurface{
		width:            turtle.DefaultWidth,
		height:           turtle.DefaultHeight,
		log:              slog.Default(),
		logOperations:    true,
		operationHistory: make([]OperationRecord, 0),
	}
	for _, opt := range opts {
		opt(hs)
	}
	if hs.next != nil {
		hs.width, hs.height = hs.next.Size()
	}
	return hs
}

// logOperation は描画操作をログに記録する
func (hs *HeadlessSurface) logOperation(operation string, args ...any) {
	if hs.logOperations {
		hs.log.Debug(fmt.Sprintf("[Headless] %s", operation), args...)
	}

	if hs.recordHistory {
		record := OperationRecord{
			Operation: operation,
			Args:      make(map[string]any),
		}
		for i := 0; i < len(args)-1; i += 2 {
			if key, ok := args[i].(string); ok {
				record.Args[key] = args[i+1]
			}
		}
		hs.historyMu.Lock()
		hs.operationHistory = append(hs.operationHistory, record)
		hs.historyMu.Unlock()
	}
}

// GetOperationHistory は操作履歴のコピーを返す
func (hs *HeadlessSurface) GetOperationHistory() []OperationRecord {
	hs.historyMu.RLock()
	defer hs.historyMu.RUnlock()
	result := make([]OperationRecord, len(hs.operationHistory))
	copy(result, hs.operationHistory)
	return result
}

// ClearOperationHistory は操作履歴をクリアする
func (hs *HeadlessSurface) ClearOperationHistory() {
	hs.historyMu.Lock()
	defer hs.historyMu.Unlock()
	hs.operationHistory = make([]OperationRecord, 0)
}

// GetOperationCount は操作履歴の件数を返す
func (hs *HeadlessSurface) GetOperationCount() int {
	hs.historyMu.RLock()
	defer hs.historyMu.RUnlock()
	return len(hs.operationHistory)
}

// Size は仮想キャンバスのサイズを返す
func (hs *HeadlessSurface) Size() (int, int) {
	return hs.width, hs.height
}

// Clear は背景色での消去を記録する
func (hs *HeadlessSurface) Clear(bg color.Color) {
	hs.logOperation("Clear", "color", turtle.ColorToInt(bg))
	if hs.next != nil {
		hs.next.Clear(bg)
	}
}

// DrawLine は線分の描画を記録する
func (hs *HeadlessSurface) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	hs.logOperation("DrawLine",
		"x1", x1, "y1", y1, "x2", x2, "y2", y2,
		"color", turtle.ColorToInt(c), "width", width)
	if hs.next != nil {
		hs.next.DrawLine(x1, y1, x2, y2, c, width)
	}
}

// DrawArc は円弧の描画を記録する
func (hs *HeadlessSurface) DrawArc(cx, cy, radius, startAngle, endAngle float64, clockwise bool, c color.Color, width float64) {
	hs.logOperation("DrawArc",
		"cx", cx, "cy", cy, "radius", radius,
		"start", startAngle, "end", endAngle, "clockwise", clockwise,
		"color", turtle.ColorToInt(c), "width", width)
	if hs.next != nil {
		hs.next.DrawArc(cx, cy, radius, startAngle, endAngle, clockwise, c, width)
	}
}

// FillPath は塗りつぶしを記録する
func (hs *HeadlessSurface) FillPath(start turtle.Point, segs []turtle.PathSegment, c color.Color) {
	hs.logOperation("FillPath",
		"x", start.X, "y", start.Y, "segments", len(segs),
		"color", turtle.ColorToInt(c))
	if hs.next != nil {
		hs.next.FillPath(start, segs, c)
	}
}
