package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/apiclient"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

type formKind int

const (
	formLogin formKind = iota
	formRegister
)

// form is the login or sign-up form
type form struct {
	kind     formKind
	inputs   []textinput.Model
	focus    int
	userType user.Type
	busy     bool
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newLoginForm() *form {
	f := &form{
		kind: formLogin,
		inputs: []textinput.Model{
			newInput("Email", false),
			newInput("Senha", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newRegisterForm() *form {
	f := &form{
		kind: formRegister,
		inputs: []textinput.Model{
			newInput("Nome completo", false),
			newInput("Email", false),
			newInput("Telefone (opcional)", false),
			newInput("Senha", true),
		},
		userType: user.TypePassenger,
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) loginRequest() (email, password string) {
	return f.value(0), f.value(1)
}

func (f *form) registerRequest() apiclient.RegisterRequest {
	return apiclient.RegisterRequest{
		Name:     f.value(0),
		Email:    f.value(1),
		Phone:    strings.TrimSpace(f.value(2)),
		Password: f.value(3),
		UserType: f.userType,
	}
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// toggleType switches the sign-up account type between passenger and driver
func (f *form) toggleType() {
	if f.userType == user.TypePassenger {
		f.userType = user.TypeDriver
	} else {
		f.userType = user.TypePassenger
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	if f.kind == formLogin {
		b.WriteString(titleStyle.Render("Entrar") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Criar conta") + "\n\n")
	}
	for _, in := range f.inputs {
		b.WriteString(in.View() + "\n")
	}
	if f.kind == formRegister {
		b.WriteString("\nTipo de conta: " + statValueStyle.Render(f.userType.Label()) + helpStyle.Render("  (ctrl+t alterna)") + "\n")
	}
	if f.busy {
		b.WriteString("\n" + subtitleStyle.Render("Enviando...") + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab próximo campo • enter enviar • esc voltar"))
	return b.String()
}
