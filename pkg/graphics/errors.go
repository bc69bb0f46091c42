package graphics

import "errors"

var (
	// ErrUnsupportedFormat は書き出し先の拡張子に対応していない場合のエラー
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidSize は画像サイズが不正な場合のエラー
	ErrInvalidSize = errors.New("invalid image size")
)
