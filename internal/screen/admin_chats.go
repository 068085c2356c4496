package screen

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

// AdminChats is the standalone chat tab; it refreshes independently of the dashboard.
type AdminChats struct {
	*Controller

	chats []chat.Summary
}

func NewAdminChats(api AdminAPI, deps Deps) *AdminChats {
	c := &AdminChats{
		Controller: newController("admin_chats", user.TypeAdmin,
			"Não foi possível carregar as conversas.", deps),
	}
	c.fetches = []Fetch{
		Collect(FetchChats, api.AdminChats, func(s []chat.Summary) { c.chats = s }),
	}
	return c
}

// Chats returns the state and the last loaded summaries
func (c *AdminChats) Chats() (LoadState, []chat.Summary) {
	var (
		state LoadState
		out   []chat.Summary
	)
	c.View(func(s LoadState) {
		state = s
		out = append([]chat.Summary(nil), c.chats...)
	})
	return state, out
}

// ShowEmpty reports whether "no conversations" should render
func (c *AdminChats) ShowEmpty() bool {
	state, chats := c.Chats()
	return state.ShowEmpty(FetchChats, len(chats))
}

func (c *AdminChats) Logout(ctx context.Context) {
	ConfirmLogout(ctx, c.deps)
}
