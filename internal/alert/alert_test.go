package alert

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	mu        sync.Mutex
	confirmed int
	cancelled int
}

func (o *outcome) confirm() { o.mu.Lock(); o.confirmed++; o.mu.Unlock() }
func (o *outcome) cancel()  { o.mu.Lock(); o.cancelled++; o.mu.Unlock() }

// TestPromptFacade_Confirm tests answers, including EOF dismissal
func TestPromptFacade_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		confirmed int
		cancelled int
	}{
		{"sim", "s\n", 1, 0},
		{"yes uppercase", "YES\n", 1, 0},
		{"no", "n\n", 0, 1},
		{"empty line", "\n", 0, 1},
		{"eof", "", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			o := &outcome{}
			NewPromptFacade(strings.NewReader(tt.input), &out).Confirm("Sair", "Deseja sair?", o.confirm, o.cancel)

			assert.Equal(t, tt.confirmed, o.confirmed)
			assert.Equal(t, tt.cancelled, o.cancelled)
			assert.Contains(t, out.String(), "Deseja sair?")
		})
	}
}

// TestPromptFacade_DismissWithoutCancel tests nil onCancel is a no-op
func TestPromptFacade_DismissWithoutCancel(t *testing.T) {
	o := &outcome{}
	assert.NotPanics(t, func() {
		NewPromptFacade(strings.NewReader(""), &bytes.Buffer{}).Confirm("t", "m", o.confirm, nil)
	})
	assert.Zero(t, o.confirmed)
}

// TestPromptFacade_AlertBlocksUntilEnter tests the alert output
func TestPromptFacade_AlertBlocksUntilEnter(t *testing.T) {
	var out bytes.Buffer
	NewPromptFacade(strings.NewReader("\n"), &out).Alert("Erro", "Não foi possível carregar os dados")

	assert.Contains(t, out.String(), "[Erro]")
	assert.Contains(t, out.String(), "Não foi possível carregar os dados")
}

// TestModalFacade_ReturnsImmediately tests the asynchronous path
func TestModalFacade_ReturnsImmediately(t *testing.T) {
	f := NewModalFacade()
	o := &outcome{}

	f.Confirm("Sair", "Deseja sair?", o.confirm, o.cancel)
	assert.Equal(t, 1, f.Pending())
	assert.Zero(t, o.confirmed+o.cancelled, "nothing resolves until the host acts")

	m, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModalConfirm, m.Type)

	m.Confirm()
	m.Cancel()
	m.Confirm()
	assert.Equal(t, 1, o.confirmed)
	assert.Equal(t, 0, o.cancelled)
}

// TestModal_DismissMapsToCancel tests dismissal semantics
func TestModal_DismissMapsToCancel(t *testing.T) {
	f := NewModalFacade()
	o := &outcome{}
	f.Confirm("t", "m", o.confirm, o.cancel)
	f.Confirm("t", "m", o.confirm, nil)

	first, _ := f.Next(context.Background())
	first.Dismiss()
	second, _ := f.Next(context.Background())
	second.Dismiss()

	assert.Equal(t, 0, o.confirmed)
	assert.Equal(t, 1, o.cancelled)
}

// TestModal_ExactlyOnceUnderRace tests concurrent resolution
func TestModal_ExactlyOnceUnderRace(t *testing.T) {
	f := NewModalFacade()
	o := &outcome{}
	f.Confirm("t", "m", o.confirm, o.cancel)
	m, _ := f.Next(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); m.Confirm() }()
		go func() { defer wg.Done(); m.Dismiss() }()
	}
	wg.Wait()

	assert.Equal(t, 1, o.confirmed+o.cancelled)
}

// TestModalFacade_NextWaitsAndCancels tests blocking delivery
func TestModalFacade_NextWaitsAndCancels(t *testing.T) {
	f := NewModalFacade()

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Alert("Aviso", "")
	}()
	m, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Aviso", m.Title)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestDetect_ExplicitModes tests configuration overrides
func TestDetect_ExplicitModes(t *testing.T) {
	assert.Equal(t, KindPrompt, Detect("prompt", 0))
	assert.Equal(t, KindModal, Detect("modal", 0))
	// a fd that is not a terminal falls back to prompts
	assert.Equal(t, KindPrompt, Detect("auto", ^uintptr(0)>>1))
}
