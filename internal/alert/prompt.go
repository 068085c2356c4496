package alert

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// PromptFacade is the synchronous implementation: each call blocks the
// calling goroutine until the user answers on in.
type PromptFacade struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewPromptFacade(in io.Reader, out io.Writer) *PromptFacade {
	return &PromptFacade{in: bufio.NewReader(in), out: out}
}

func (p *PromptFacade) Alert(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\n[%s]\n", title)
	if message != "" {
		fmt.Fprintln(p.out, message)
	}
	fmt.Fprint(p.out, "Pressione Enter para continuar...")
	p.readLine()
	fmt.Fprintln(p.out)
}

func (p *PromptFacade) Confirm(title, message string, onConfirm, onCancel func()) {
	p.mu.Lock()
	fmt.Fprintf(p.out, "\n[%s]\n%s\nConfirmar? [s/N] ", title, message)
	answer, ok := p.readLine()
	p.mu.Unlock()

	// callbacks run outside the lock so they may raise further dialogs
	if ok && isYes(answer) {
		if onConfirm != nil {
			onConfirm()
		}
		return
	}
	if onCancel != nil {
		onCancel()
	}
}

// readLine returns false on EOF or read error, which counts as dismissal.
func (p *PromptFacade) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
