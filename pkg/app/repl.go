package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zurustar/kame/pkg/interp"
	"github.com/zurustar/kame/pkg/logo/lexer"
	"github.com/zurustar/kame/pkg/logo/token"
)

const (
	promptMain     = "? "
	promptContinue = "> "
)

// lineReader は1行ずつ入力を返す
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// scannerLines は端末でない入力（パイプ、ファイル）を読む
type scannerLines struct {
	s *bufio.Scanner
}

func (l *scannerLines) ReadLine() (string, error) {
	if !l.s.Scan() {
		if err := l.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.s.Text(), nil
}

// 端末でなければプロンプトは表示しない
func (l *scannerLines) SetPrompt(string) {}

// terminalLines は行編集と履歴つきで端末から読む
// 読み込み中だけ raw モードにし、実行中は Ctrl-C でシグナルが届くようにする
type terminalLines struct {
	t  *term.Terminal
	fd int
}

func (l *terminalLines) ReadLine() (string, error) {
	state, err := term.MakeRaw(l.fd)
	if err != nil {
		return "", fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(l.fd, state)
	return l.t.ReadLine()
}

func (l *terminalLines) SetPrompt(prompt string) {
	l.t.SetPrompt(prompt)
}

// repl は対話モードの読み込み・実行ループ
type repl struct {
	lines lineReader
	out   io.Writer
}

func newREPL(in io.Reader, out io.Writer) *repl {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, promptMain)
		return &repl{lines: &terminalLines{t: t, fd: int(f.Fd())}, out: t}
	}
	return &repl{lines: &scannerLines{s: bufio.NewScanner(in)}, out: out}
}

// Writer はプログラムの出力先を返す
func (r *repl) Writer() io.Writer {
	return r.out
}

// Prompt は READWORD / READLIST の入力を読む
func (r *repl) Prompt(_ context.Context, prompt string) (string, error) {
	r.lines.SetPrompt(prompt + " ")
	line, err := r.lines.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

// Run は入力が終わるか BYE が入力されるまで読み込みと実行を繰り返す
// TO ... END や閉じていない [ ] は続きの行とまとめて実行する
func (r *repl) Run(ctx context.Context, in *interp.Interpreter) error {
	var pending []string
	for ctx.Err() == nil {
		if len(pending) > 0 {
			r.lines.SetPrompt(promptContinue)
		} else {
			r.lines.SetPrompt(promptMain)
		}

		line, err := r.lines.ReadLine()
		if errors.Is(err, io.EOF) {
			if len(pending) > 0 {
				r.execute(ctx, in, strings.Join(pending, "\n"))
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if len(pending) == 0 && isBye(line) {
			return nil
		}
		pending = append(pending, line)
		source := strings.Join(pending, "\n")
		if needsMore(source) {
			continue
		}
		pending = nil
		r.execute(ctx, in, source)
	}
	return nil
}

// execute はひとまとまりのソースを実行する
// エラーはインタプリタのエラーハンドラが表示する
func (r *repl) execute(ctx context.Context, in *interp.Interpreter, source string) {
	if strings.TrimSpace(source) == "" {
		return
	}
	_ = in.Execute(ctx, source)
}

func isBye(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "BYE")
}

// needsMore は source が TO の END や ] を待っているかどうかを返す
func needsMore(source string) bool {
	var brackets, procedures int
	for _, t := range lexer.Tokenize(source) {
		switch {
		case t.Kind == token.LBRACKET:
			brackets++
		case t.Kind == token.RBRACKET:
			brackets--
		case t.Is(token.WORD, "TO") && brackets == 0:
			procedures++
		case t.Is(token.WORD, "END") && brackets == 0:
			procedures--
		}
	}
	return brackets > 0 || procedures > 0
}
