// Package graphics は turtle.Surface の実装と画像の書き出しを提供する
//
//   - EbitenSurface: ウィンドウ表示用（ebiten の vector パッケージで描画）
//   - RasterSurface: GPU を使わない描画（golang.org/x/image/vector）
//   - HeadlessSurface: 描画操作をログと履歴に記録する
package graphics
