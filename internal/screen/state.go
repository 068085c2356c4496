package screen

// Phase of a screen's data
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// LoadState is what a renderer needs to pick between the full-screen
// spinner, the refresh indicator, lists and empty states.
type LoadState struct {
	Phase Phase
	// Loading drives the full-screen indicator. It is only set while no
	// collection has ever loaded.
	Loading bool
	// Refreshing drives the pull-to-refresh indicator. Data stays visible.
	Refreshing bool
	// Loaded names the fetches that have completed successfully at least once.
	Loaded map[string]bool
	// Err is the last batch error, for diagnostics; never shown raw.
	Err error
	// Version increments every time results are committed.
	Version int
}

// HasData reports whether any collection has been loaded
func (s LoadState) HasData() bool {
	return len(s.Loaded) > 0
}

// ShowEmpty reports whether the empty state of a collection should render:
// it has loaded successfully and holds zero items.
func (s LoadState) ShowEmpty(name string, count int) bool {
	return !s.Loading && s.Loaded[name] && count == 0
}

// ShowList reports whether the items of a collection should render.
func (s LoadState) ShowList(name string, count int) bool {
	return s.Loaded[name] && count > 0
}

// EmptyState is the placeholder a collection renders when it loaded with
// zero items.
type EmptyState struct {
	Icon    string
	Title   string
	Subtext string
}

var emptyStates = map[string]EmptyState{
	FetchUsers:   {Icon: "👥", Title: "Nenhum usuário encontrado", Subtext: "Os usuários cadastrados aparecerão aqui."},
	FetchTrips:   {Icon: "🚗", Title: "Nenhuma viagem encontrada", Subtext: "As viagens mais recentes aparecerão aqui."},
	FetchChats:   {Icon: "💬", Title: "Nenhuma conversa encontrada", Subtext: "As conversas entre passageiros e motoristas aparecerão aqui."},
	FetchHistory: {Icon: "🧾", Title: EmptyHistoryTitle, Subtext: EmptyHistorySubtext},
}

// EmptyStateFor returns the placeholder copy for a collection.
func EmptyStateFor(name string) EmptyState {
	if es, ok := emptyStates[name]; ok {
		return es
	}
	return EmptyState{Icon: "📭", Title: "Nada por aqui"}
}

func (s LoadState) clone() LoadState {
	loaded := make(map[string]bool, len(s.Loaded))
	for k, v := range s.Loaded {
		loaded[k] = v
	}
	s.Loaded = loaded
	return s
}
