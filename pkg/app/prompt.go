package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// linePrompter は READWORD / READLIST の入力を1行ずつ読み込む
type linePrompter struct {
	r *bufio.Reader
	w io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{r: bufio.NewReader(in), w: out}
}

type readResult struct {
	line string
	err  error
}

// Prompt はプロンプトを表示して1行読み込む
// 入力の終わりでは空文字列を返す
func (p *linePrompter) Prompt(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.w, prompt+" ")

	ch := make(chan readResult, 1)
	go func() {
		line, err := p.r.ReadString('\n')
		ch <- readResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
