package toolbar

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/inamate/inamate/editor-go/internal/selection"
)

// Definition maps an (element type, arity) pair to the actions a plugin
// offers for it.
type Definition struct {
	ElementTypes []selection.ElementType
	Arities      []selection.Arity
	Actions      []Action

	// Build, when set, constructs additional actions bound to the
	// selection being resolved. Its result follows Actions.
	Build func(selection.Snapshot) []Action

	// Priority orders definitions, not actions.
	Priority int

	// PluginID is stamped by RegisterPlugin.
	PluginID string
}

func (d Definition) matches(types []selection.ElementType, arity selection.Arity) bool {
	if !slices.Contains(d.Arities, arity) {
		return false
	}
	for _, t := range types {
		if slices.Contains(d.ElementTypes, t) {
			return true
		}
	}
	return false
}

// Manager owns the registered action definitions and the toolbar profiles.
// Construct one per editor and hand it to whoever renders the toolbar.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string][]Definition
	order   []string // plugin ids in registration order
	config  Config
	logger  *slog.Logger
}

// NewManager creates an empty Manager.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		plugins: make(map[string][]Definition),
		config:  cfg,
		logger:  logger,
	}
}

// RegisterPlugin stores the plugin's definitions. Registering the same
// plugin id again replaces what it registered before.
func (m *Manager) RegisterPlugin(pluginID string, defs ...Definition) {
	tagged := make([]Definition, len(defs))
	for i, d := range defs {
		d.PluginID = pluginID
		tagged[i] = d
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[pluginID]; ok {
		m.logger.Debug("replacing toolbar plugin", "plugin", pluginID)
	} else {
		m.order = append(m.order, pluginID)
	}
	m.plugins[pluginID] = tagged
}

// UnregisterPlugin removes every definition the plugin registered and
// reports whether the plugin was known.
func (m *Manager) UnregisterPlugin(pluginID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[pluginID]; !ok {
		return false
	}
	delete(m.plugins, pluginID)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == pluginID })
	return true
}

// Plugins returns the registered plugin ids in registration order.
func (m *Manager) Plugins() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Definitions returns every registered definition, highest priority first.
// Equal priorities keep registration order.
func (m *Manager) Definitions() []Definition {
	m.mu.RLock()
	var all []Definition
	for _, id := range m.order {
		all = append(all, m.plugins[id]...)
	}
	m.mu.RUnlock()

	slices.SortStableFunc(all, func(a, b Definition) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return all
}

// ActionsForSelection resolves the actions to show for s. Every matching
// definition contributes; duplicates by id keep the higher priority
// instance; destructive actions go last. Visibility is not evaluated here.
func (m *Manager) ActionsForSelection(s selection.Snapshot) []Action {
	if s.IsEmpty() {
		return nil
	}

	types := s.ElementTypes()
	arity := s.Arity()

	var matched []Action
	for _, d := range m.Definitions() {
		if !d.matches(types, arity) {
			continue
		}
		actions := d.Actions
		if d.Build != nil {
			actions = append(slices.Clone(actions), d.Build(s)...)
		}
		for _, a := range actions {
			if !a.Disabled {
				matched = append(matched, a)
			}
		}
	}

	resolved := dedupe(matched)
	sortActions(resolved)
	return resolved
}

// dedupe keeps one action per id, the one with the higher priority. On a
// tie the first one seen wins. The kept action takes the position of the
// first occurrence of its id.
func dedupe(actions []Action) []Action {
	index := make(map[string]int, len(actions))
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		i, ok := index[a.ID]
		if !ok {
			index[a.ID] = len(out)
			out = append(out, a)
			continue
		}
		if a.Priority > out[i].Priority {
			out[i] = a
		}
	}
	return out
}

// sortActions puts non-destructive actions before destructive ones and
// orders each group by priority, highest first.
func sortActions(actions []Action) {
	slices.SortStableFunc(actions, func(a, b Action) int {
		if a.Destructive != b.Destructive {
			if a.Destructive {
				return 1
			}
			return -1
		}
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// Config returns the current toolbar configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// UpdateConfig merges p into the configuration, one profile at a time.
func (m *Manager) UpdateConfig(p ConfigPatch) Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = m.config.Merge(p)
	return m.config
}
