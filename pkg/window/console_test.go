package window

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_PrintAndType(t *testing.T) {
	c := NewConsole(10)
	c.Print("hello")
	c.Type("a ")
	c.Type("b")
	c.Print(" c")
	c.Print("x\ny")

	assert.Equal(t, []string{"hello", "a b c", "x", "y"}, c.Tail(10))
}

func TestConsole_Error(t *testing.T) {
	c := NewConsole(10)
	c.Error("Oops! You can't divide by zero.")
	assert.Equal(t, []string{"! Oops! You can't divide by zero."}, c.Tail(1))
}

func TestConsole_MaxLines(t *testing.T) {
	c := NewConsole(3)
	for i := range 5 {
		c.Print(fmt.Sprint(i))
	}
	assert.Equal(t, []string{"2", "3", "4"}, c.Tail(10))
	assert.Equal(t, []string{"4"}, c.Tail(1))
}

func TestConsole_DefaultSize(t *testing.T) {
	c := NewConsole(0)
	assert.Equal(t, DefaultConsoleLines, c.maxLines)
}

func TestConsole_Clear(t *testing.T) {
	c := NewConsole(5)
	c.Type("partial")
	c.Clear()
	c.Print("fresh")
	assert.Equal(t, []string{"fresh"}, c.Tail(5))
}

func TestConsole_Concurrent(t *testing.T) {
	c := NewConsole(1000)
	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				c.Print(fmt.Sprintf("%d-%d", i, j))
				_ = c.Tail(3)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, c.Tail(1000), 200)
}
