package alert

import (
	"golang.org/x/term"
)

// Facade shows blocking notifications and confirmations. Callers never
// branch on which implementation they hold.
type Facade interface {
	// Alert shows a notification; message may be empty.
	Alert(title, message string)
	// Confirm asks a yes/no question. Exactly one of onConfirm or onCancel is
	// called, exactly once. onCancel may be nil; dismissal then does nothing.
	Confirm(title, message string, onConfirm, onCancel func())
}

// Kind selects a Facade implementation
type Kind string

const (
	KindPrompt Kind = "prompt"
	KindModal  Kind = "modal"
)

// Detect resolves the configured mode. "auto" picks modal dialogs when fd is
// an interactive terminal (the TUI hosts them) and synchronous prompts otherwise.
func Detect(mode string, fd uintptr) Kind {
	switch mode {
	case string(KindPrompt):
		return KindPrompt
	case string(KindModal):
		return KindModal
	}
	if term.IsTerminal(int(fd)) {
		return KindModal
	}
	return KindPrompt
}
