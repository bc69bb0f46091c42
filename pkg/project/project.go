// Package project はプロジェクトファイルの読み込みと保存を行う
//
// 保存形式は {name, code, created, version} のJSON。
// この形式でないファイルはそのままソースとして扱う。
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FormatVersion は保存形式のバージョン
const FormatVersion = "1.0"

// Extension はプロジェクトファイルの拡張子
const Extension = ".logo"

// Project はプロジェクトファイルを表す
type Project struct {
	Name    string    `json:"name"`
	Code    string    `json:"code"`
	Created time.Time `json:"created"`
	Version string    `json:"version"`
}

// New は現在時刻で Project を作成する
func New(name, code string) *Project {
	return &Project{
		Name:    name,
		Code:    code,
		Created: time.Now().UTC(),
		Version: FormatVersion,
	}
}

// Load はファイルを読み込む
// パスが見つからない場合は同じディレクトリを大文字小文字を無視して探す
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if found, ferr := findFileCaseInsensitive(filepath.Dir(path), filepath.Base(path)); ferr == nil {
			path = found
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return Parse(baseName(path), content), nil
}

// envelope は読み込み時の保存形式
// code 以外の項目は型が違っても読み込みを失敗させない
type envelope struct {
	Name    json.RawMessage `json:"name"`
	Code    json.RawMessage `json:"code"`
	Created json.RawMessage `json:"created"`
	Version json.RawMessage `json:"version"`
}

// Parse は内容を解析する
// code を持つJSONであればその内容を、そうでなければ content 全体をソースとして使う
func Parse(name, content string) *Project {
	var env envelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return &Project{Name: name, Code: content}
	}
	var code string
	if err := json.Unmarshal(env.Code, &code); err != nil || code == "" {
		return &Project{Name: name, Code: content}
	}

	p := &Project{
		Name:    name,
		Code:    code,
		Created: parseCreated(env.Created),
		Version: parseVersion(env.Version),
	}
	var n string
	if err := json.Unmarshal(env.Name, &n); err == nil && n != "" {
		p.Name = n
	}
	return p
}

// parseCreated は RFC3339 文字列またはエポックミリ秒を受け付ける
func parseCreated(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		return time.Time{}
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}

// parseVersion は文字列または数値のバージョンを文字列にする
func parseVersion(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Save はプロジェクトをJSONで保存する
func Save(path string, p *Project) error {
	out := *p
	if out.Created.IsZero() {
		out.Created = time.Now().UTC()
	}
	if out.Version == "" {
		out.Version = FormatVersion
	}
	if out.Name == "" {
		out.Name = baseName(path)
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// DecodeText はバイト列をUTF-8文字列に変換する
// BOM があればそれに従い（UTF-8 / UTF-16）、なければUTF-8、不正なUTF-8はShift-JISとして扱う
func DecodeText(data []byte) (string, error) {
	if hasBOM(data) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("failed to decode text with BOM: %w", err)
		}
		return string(decoded), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	// Shift-JISからUTF-8に変換
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift-JIS: %w", err)
	}
	return string(decoded), nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// baseName は拡張子を除いたファイル名を返す
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// findFileCaseInsensitive は dir から大文字小文字を無視して filename を探す
func findFileCaseInsensitive(dir, filename string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), filename) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}
