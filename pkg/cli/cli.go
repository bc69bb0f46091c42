package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/kame/pkg/turtle"
)

// Config はコマンドライン引数・環境変数・設定ファイルから解析された設定を保持する
type Config struct {
	ProjectPath string        // プロジェクトファイルのパス
	Eval        string        // --eval で与えられたソース
	Speed       time.Duration // 文ごとの待ち時間
	Timeout     time.Duration // タイムアウト時間（0は無制限）
	LogLevel    string        // ログレベル（debug, info, warn, error）
	Headless    bool          // ヘッドレスモード
	Export      string        // 実行後に書き出す画像のパス（.png / .bmp）
	Width       int           // キャンバスの幅
	Height      int           // キャンバスの高さ
	ConfigPath  string        // YAML設定ファイルのパス
	ShowHelp    bool          // ヘルプ表示フラグ
}

// FileConfig はYAML設定ファイルの内容
// 未指定の項目は nil / 空文字のまま残る
type FileConfig struct {
	Speed    *int   `yaml:"speed"`
	Timeout  *int   `yaml:"timeout"`
	LogLevel string `yaml:"log_level"`
	Headless *bool  `yaml:"headless"`
	Width    *int   `yaml:"width"`
	Height   *int   `yaml:"height"`
	Export   string `yaml:"export"`
}

// 短縮形のフラグ名を正式名に対応付ける
var flagAliases = map[string]string{
	"s": "speed",
	"t": "timeout",
	"l": "log-level",
	"o": "export",
	"e": "eval",
	"c": "config",
	"h": "help",
}

// 値を取らないフラグ
var boolFlags = map[string]bool{
	"headless": true,
	"help":     true,
	"h":        true,
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Width:    turtle.DefaultWidth,
		Height:   turtle.DefaultHeight,
	}
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 優先順位: フラグ > 環境変数 > 設定ファイル > デフォルト
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("kame", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		speedMs    int
		timeoutSec int
		logLevel   string
		headless   bool
		export     string
		width      int
		height     int
		eval       string
		configPath string
		showHelp   bool
	)
	fs.IntVar(&speedMs, "speed", 0, "文ごとの待ち時間（ミリ秒）")
	fs.IntVar(&speedMs, "s", 0, "文ごとの待ち時間（短縮形）")
	fs.IntVar(&timeoutSec, "timeout", 0, "タイムアウト時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "タイムアウト時間（秒）（短縮形）")
	fs.StringVar(&logLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&logLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&headless, "headless", false, "ヘッドレスモード")
	fs.StringVar(&export, "export", "", "実行後に画像を書き出すパス")
	fs.StringVar(&export, "o", "", "実行後に画像を書き出すパス（短縮形）")
	fs.IntVar(&width, "width", turtle.DefaultWidth, "キャンバスの幅")
	fs.IntVar(&height, "height", turtle.DefaultHeight, "キャンバスの高さ")
	fs.StringVar(&eval, "eval", "", "実行するソース")
	fs.StringVar(&eval, "e", "", "実行するソース（短縮形）")
	fs.StringVar(&configPath, "config", "", "YAML設定ファイル")
	fs.StringVar(&configPath, "c", "", "YAML設定ファイル（短縮形）")
	fs.BoolVar(&showHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&showHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 明示的に指定されたフラグ（短縮形は正式名にまとめる）
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		set[name] = true
	})

	config := DefaultConfig()
	config.ConfigPath = configPath
	config.Eval = eval
	config.ShowHelp = showHelp

	// 設定ファイル
	if configPath != "" {
		fc, err := LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := fc.apply(config); err != nil {
			return nil, err
		}
	}

	// 環境変数（コマンドラインフラグが優先）
	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// コマンドラインフラグ
	if set["speed"] {
		if speedMs < 0 {
			return nil, fmt.Errorf("speed must be non-negative, got %d", speedMs)
		}
		config.Speed = time.Duration(speedMs) * time.Millisecond
	}
	if set["timeout"] {
		if timeoutSec < 0 {
			return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
		}
		config.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if set["log-level"] {
		config.LogLevel = strings.ToLower(logLevel)
	}
	if set["headless"] {
		config.Headless = headless
	}
	if set["export"] {
		config.Export = export
	}
	if set["width"] {
		config.Width = width
	}
	if set["height"] {
		config.Height = height
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 位置引数（プロジェクトファイルのパス）
	if fs.NArg() > 0 {
		config.ProjectPath = fs.Arg(0)
	}

	return config, nil
}

// Validate は設定値を検証する
func (c *Config) Validate() error {
	if c.Speed < 0 {
		return fmt.Errorf("speed must be non-negative, got %v", c.Speed)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// LoadFile はYAML設定ファイルを読み込む
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	fc := &FileConfig{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// apply は設定ファイルの値を config に反映する
func (fc *FileConfig) apply(config *Config) error {
	if fc.Speed != nil {
		config.Speed = time.Duration(*fc.Speed) * time.Millisecond
	}
	if fc.Timeout != nil {
		config.Timeout = time.Duration(*fc.Timeout) * time.Second
	}
	if fc.LogLevel != "" {
		config.LogLevel = strings.ToLower(fc.LogLevel)
	}
	if fc.Headless != nil {
		config.Headless = *fc.Headless
	}
	if fc.Width != nil {
		config.Width = *fc.Width
	}
	if fc.Height != nil {
		config.Height = *fc.Height
	}
	if fc.Export != "" {
		config.Export = fc.Export
	}
	return config.Validate()
}

// applyEnv は環境変数の値を config に反映する
func applyEnv(config *Config) error {
	if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
		config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
	}

	if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
		if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
			config.Timeout = time.Duration(t) * time.Second
		}
	}

	if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
		config.LogLevel = strings.ToLower(logLevelEnv)
	}

	if speedEnv := os.Getenv("KAME_SPEED"); speedEnv != "" {
		s, err := strconv.Atoi(speedEnv)
		if err != nil {
			return fmt.Errorf("invalid KAME_SPEED: %q", speedEnv)
		}
		config.Speed = time.Duration(s) * time.Millisecond
	}
	return nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") || boolFlags[name] {
				continue
			}
			// 次の引数は値（-t 5 や -e "FD -10" のような場合）
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `kame - Logo turtle graphics interpreter

Usage:
  kame [options] [project-file]

Arguments:
  project-file  実行するプロジェクトファイル（.logo のJSON形式、またはテキスト）
                省略して --eval もない場合は対話モード（REPL）で起動

Options:
  -e, --eval <source>         指定したソースを実行
  -s, --speed <ms>            文ごとの待ち時間（ミリ秒、デフォルト: 0）
  -t, --timeout <seconds>     指定秒数後に実行を停止（デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  -o, --export <path>         実行後にキャンバスを画像で保存（.png または .bmp）
  --width <pixels>            キャンバスの幅（デフォルト: 800）
  --height <pixels>           キャンバスの高さ（デフォルト: 600）
  --headless                  ヘッドレスモード（GUIなし）
  -c, --config <path>         YAML設定ファイル
  -h, --help                  このヘルプを表示

Environment Variables:
  HEADLESS=1                  ヘッドレスモードを有効化
  TIMEOUT=<seconds>           タイムアウト時間（秒）
  LOG_LEVEL=<level>           ログレベル
  KAME_SPEED=<ms>             文ごとの待ち時間（ミリ秒）

Examples:
  kame square.logo                         ウィンドウで実行
  kame --headless -o out.png square.logo   画像に書き出して終了
  kame -e "REPEAT 4 [FD 100 RT 90]"        ソースを直接実行
  kame                                     対話モード
`)
}
