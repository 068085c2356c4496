package screen

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

const (
	logoutTitle   = "Sair"
	logoutMessage = "Tem certeza que deseja sair?"
)

// ConfirmLogout asks before signing out. Cancelling leaves everything as is.
func ConfirmLogout(ctx context.Context, deps Deps) {
	deps.Alerts.Confirm(logoutTitle, logoutMessage, func() { SignOut(ctx, deps) }, nil)
}

// SignOut clears the session and resets navigation to the landing. The
// navigation happens even if clearing fails or panics.
func SignOut(ctx context.Context, deps Deps) {
	deps = withDefaults(deps)
	log := deps.Logger.Named("screen")
	defer deps.Nav.Reset(navigation.RouteIndex)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Session clear panicked", logger.Any("panic", r))
		}
	}()

	if err := deps.Sessions.Clear(ctx); err != nil {
		log.Error("Failed to clear session on logout", logger.Err(err))
		return
	}
	log.Info("Signed out")
}
