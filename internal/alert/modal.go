package alert

import (
	"context"
	"sync"
)

// ModalType distinguishes notifications from confirmations
type ModalType int

const (
	ModalAlert ModalType = iota
	ModalConfirm
)

// Modal is one pending dialog. The host resolves it with exactly one of
// Confirm, Cancel or Dismiss; later calls are ignored.
type Modal struct {
	Type    ModalType
	Title   string
	Message string

	once      sync.Once
	onConfirm func()
	onCancel  func()
}

// Confirm accepts a confirmation (or acknowledges an alert).
func (m *Modal) Confirm() {
	m.once.Do(func() {
		if m.onConfirm != nil {
			m.onConfirm()
		}
	})
}

// Cancel rejects a confirmation.
func (m *Modal) Cancel() {
	m.once.Do(func() {
		if m.onCancel != nil {
			m.onCancel()
		}
	})
}

// Dismiss closes the dialog without a choice; it maps to Cancel.
func (m *Modal) Dismiss() {
	m.Cancel()
}

// ModalFacade is the asynchronous implementation: calls return immediately
// and the dialog is queued for a UI host, which resolves it later.
type ModalFacade struct {
	mu     sync.Mutex
	queue  []*Modal
	notify chan struct{}
}

func NewModalFacade() *ModalFacade {
	return &ModalFacade{notify: make(chan struct{}, 1)}
}

func (f *ModalFacade) Alert(title, message string) {
	f.push(&Modal{Type: ModalAlert, Title: title, Message: message})
}

func (f *ModalFacade) Confirm(title, message string, onConfirm, onCancel func()) {
	f.push(&Modal{Type: ModalConfirm, Title: title, Message: message, onConfirm: onConfirm, onCancel: onCancel})
}

func (f *ModalFacade) push(m *Modal) {
	f.mu.Lock()
	f.queue = append(f.queue, m)
	f.mu.Unlock()

	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Next blocks until a dialog is queued or ctx ends.
func (f *ModalFacade) Next(ctx context.Context) (*Modal, error) {
	for {
		f.mu.Lock()
		if len(f.queue) > 0 {
			m := f.queue[0]
			f.queue = f.queue[1:]
			f.mu.Unlock()
			return m, nil
		}
		f.mu.Unlock()

		select {
		case <-f.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Pending returns the number of queued dialogs
func (f *ModalFacade) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
