package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/zurustar/kame/pkg/cli"
	"github.com/zurustar/kame/pkg/graphics"
	"github.com/zurustar/kame/pkg/interp"
	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/project"
	"github.com/zurustar/kame/pkg/turtle"
	"github.com/zurustar/kame/pkg/window"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	mu     sync.Mutex
	model  *turtle.Model
	interp *interp.Interpreter
}

// Option は Application のオプションを設定する関数型
type Option func(*Application)

// WithIO は標準入出力を差し替える
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(app *Application) {
		app.stdin = stdin
		app.stdout = stdout
		app.stderr = stderr
	}
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化（標準出力はプログラムの出力に使う）
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.stderr); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()
	app.log.Info("Application started")

	// 3. ソースの読み込み
	proj, err := app.loadSource()
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	// 4. 割り込み（Ctrl-C）の処理
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopSignals := app.handleInterrupt(ctx, cancel)
	defer stopSignals()

	// 5. 実行
	switch {
	case proj == nil:
		err = app.runREPL(ctx)
	case app.config.Headless:
		err = app.runHeadless(ctx, proj)
	default:
		err = app.runWindow(ctx, proj)
	}
	if err != nil {
		return err
	}

	// 6. 画像の書き出し
	if app.config.Export != "" {
		if err := app.export(); err != nil {
			return err
		}
	}

	app.log.Info("Application terminated normally")
	return nil
}

// loadSource は --eval またはプロジェクトファイルからソースを得る
// どちらもなければ nil を返す（対話モード）
func (app *Application) loadSource() (*project.Project, error) {
	if app.config.Eval != "" {
		return &project.Project{Name: "eval", Code: app.config.Eval}, nil
	}
	if app.config.ProjectPath == "" {
		return nil, nil
	}

	proj, err := project.Load(app.config.ProjectPath)
	if err != nil {
		return nil, err
	}
	app.log.Info("Project loaded", "name", proj.Name, "path", app.config.ProjectPath, "size", len(proj.Code))
	app.log.Debug("Project source preview", "preview", truncate(proj.Code, 100))
	return proj, nil
}

// newInterpreter はタートルモデルとインタプリタを作成する
func (app *Application) newInterpreter(out interp.OutputFunc, onError interp.ErrorFunc, p interp.Prompter) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.model = turtle.NewModel(
		turtle.WithLogger(app.log),
		turtle.WithCanvasSize(app.config.Width, app.config.Height),
	)
	app.interp = interp.New(app.model,
		interp.WithOutput(out),
		interp.WithErrorHandler(onError),
		interp.WithPrompter(p),
		interp.WithLogger(app.log),
		interp.WithSpeed(int(app.config.Speed.Milliseconds())),
	)
}

// withTimeout はタイムアウトが設定されていればそれを適用する
func (app *Application) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if app.config.Timeout > 0 {
		return context.WithTimeout(ctx, app.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// runHeadless はウィンドウを開かずにプログラムを実行する
func (app *Application) runHeadless(ctx context.Context, proj *project.Project) error {
	app.log.Info("Headless mode", "project", proj.Name)
	app.newInterpreter(writerOutput(app.stdout), nil, newLinePrompter(app.stdin, app.stdout))

	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	err := app.interp.Execute(ctx, proj.Code)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		app.log.Info("Timeout reached, terminating")
	case errors.Is(err, context.Canceled):
		app.log.Info("Interrupted, terminating")
	case err != nil:
		return fmt.Errorf("program failed: %w", err)
	}

	app.replayHeadless()
	return nil
}

// replayHeadless は描画ログを HeadlessSurface で再生してログに記録する
func (app *Application) replayHeadless() {
	s := graphics.NewHeadlessSurface(
		graphics.WithHeadlessLogger(app.log),
		graphics.WithHeadlessSize(app.model.CanvasSize()),
		graphics.WithRecordHistory(true),
	)
	app.model.Redraw(s, turtle.RedrawOptions{HideTurtles: true})
	app.log.Info("Drawing replayed", "operations", s.GetOperationCount())
}

// runWindow はウィンドウでプログラムを実行する
func (app *Application) runWindow(ctx context.Context, proj *project.Project) error {
	app.log.Info("Starting window", "project", proj.Name)

	console := window.NewConsole(window.DefaultConsoleLines)
	out := func(text string, mode interp.OutputMode) {
		if mode == interp.OutputInline {
			console.Type(text)
		} else {
			console.Print(text)
		}
		writerOutput(app.stdout)(text, mode)
	}
	app.newInterpreter(out, console.Error, newLinePrompter(app.stdin, app.stdout))

	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	game := window.NewGame(app.model, console, app.config.Timeout)
	game.SetRunner(app.interp)
	game.SetStartFunc(func() {
		go func() {
			if err := app.interp.Execute(ctx, proj.Code); err != nil {
				app.log.Debug("Program ended with error", "error", err)
			}
		}()
	})

	err := window.Run(game, "kame - "+proj.Name)
	app.interp.Stop()
	return err
}

// runREPL は対話モードで実行する
func (app *Application) runREPL(ctx context.Context) error {
	app.log.Info("Starting REPL")

	r := newREPL(app.stdin, app.stdout)

	app.newInterpreter(writerOutput(r.Writer()), func(msg string) {
		fmt.Fprintln(app.stderr, msg)
	}, r)

	return r.Run(ctx, app.interp)
}

// export はキャンバスを画像として保存する
func (app *Application) export() error {
	if app.model == nil {
		return nil
	}
	if err := graphics.SaveImage(app.config.Export, app.model, 0, 0, turtle.RedrawOptions{HideTurtles: true}); err != nil {
		return fmt.Errorf("failed to export image: %w", err)
	}
	app.log.Info("Image exported", "path", app.config.Export)
	return nil
}

// handleInterrupt は Ctrl-C で実行中のプログラムを停止する
// 実行中でなければ cancel を呼んで全体を終了する
func (app *Application) handleInterrupt(ctx context.Context, cancel context.CancelFunc) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				app.mu.Lock()
				in := app.interp
				app.mu.Unlock()
				if in != nil && in.IsRunning() {
					app.log.Info("Interrupt received, stopping program")
					in.Stop()
					continue
				}
				cancel()
				return
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// writerOutput は w に書き出す OutputFunc を返す
func writerOutput(w io.Writer) interp.OutputFunc {
	return func(text string, mode interp.OutputMode) {
		if mode == interp.OutputInline {
			fmt.Fprint(w, text)
			return
		}
		fmt.Fprintln(w, text)
	}
}

// truncate 文字列を指定した文字数で切り詰める（文字の途中では切らない）
func truncate(s string, maxLen int) string {
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
