package screen

import (
	"context"
	"net/mail"
	"strings"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/apiclient"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

const minPasswordLength = 6

// AuthAPI is the backend surface of the login and sign-up forms
type AuthAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
}

// Auth backs the login and sign-up forms. On success the session pair is
// written and the user is routed to their dashboard.
type Auth struct {
	api    AuthAPI
	deps   Deps
	logger *logger.Logger
}

func NewAuth(api AuthAPI, deps Deps) *Auth {
	deps = withDefaults(deps)
	return &Auth{
		api:    api,
		deps:   deps,
		logger: deps.Logger.ForScreen("auth"),
	}
}

// Login submits the login form. Every failure is reported through an alert;
// the returned error is for callers that need to know the outcome.
func (a *Auth) Login(ctx context.Context, email, password string) (navigation.Result, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return a.reject("Preencha email e senha.")
	}

	resp, err := a.api.Login(ctx, apiclient.LoginRequest{Email: email, Password: password})
	if err != nil {
		a.logger.Warn("Login failed", logger.Err(err))
		msg := apperrors.UserMessage(err)
		if apperrors.GetAppError(err).Code == "UNAUTHORIZED" {
			msg = "Email ou senha incorretos."
		}
		a.deps.Alerts.Alert(alertTitleError, msg)
		return navigation.Result{State: navigation.StateUnauthenticated}, err
	}
	return a.signIn(ctx, resp)
}

// Register submits the sign-up form
func (a *Auth) Register(ctx context.Context, req apiclient.RegisterRequest) (navigation.Result, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "" || req.Email == "" || req.Password == "":
		return a.reject("Preencha todos os campos obrigatórios.")
	case !validEmail(req.Email):
		return a.reject("Email inválido.")
	case len(req.Password) < minPasswordLength:
		return a.reject("A senha deve ter pelo menos 6 caracteres.")
	case !req.UserType.IsValid() || req.UserType == user.TypeAdmin:
		return a.reject("Selecione o tipo de conta.")
	}

	resp, err := a.api.Register(ctx, req)
	if err != nil {
		a.logger.Warn("Registration failed", logger.Err(err))
		msg := apperrors.UserMessage(err)
		if apperrors.GetAppError(err).Code == "CONFLICT" {
			msg = "Este email já está cadastrado."
		}
		a.deps.Alerts.Alert(alertTitleError, msg)
		return navigation.Result{State: navigation.StateUnauthenticated}, err
	}
	a.deps.Alerts.Alert("Sucesso", "Conta criada com sucesso!")
	return a.signIn(ctx, resp)
}

func (a *Auth) signIn(ctx context.Context, resp *apiclient.AuthResponse) (navigation.Result, error) {
	if err := a.deps.Sessions.Write(ctx, resp.AccessToken, resp.User); err != nil {
		a.logger.Error("Failed to persist session", logger.Err(err))
		a.deps.Alerts.Alert(alertTitleError, "Não foi possível salvar a sessão. Tente novamente.")
		return navigation.Result{State: navigation.StateUnauthenticated}, err
	}
	res := a.deps.gate().Check(ctx)
	a.deps.Monitor.RecordSessionRoute(string(res.State))
	return res, nil
}

func (a *Auth) reject(msg string) (navigation.Result, error) {
	a.deps.Alerts.Alert(alertTitleError, msg)
	return navigation.Result{State: navigation.StateUnauthenticated}, apperrors.BadRequest(msg, nil)
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
