package dashboard

import (
	"fmt"
	"sync"
)

// PageHook lets packages register or override pages during init().
type PageHook func(reg *PageRegistry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PageHook
)

// RegisterPageHook registers a hook executed against new registries.
func RegisterPageHook(h PageHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// PageRegistry maps page keys to factories.
type PageRegistry struct {
	mu        sync.RWMutex
	factories map[PageKey]PageFactory
}

// NewPageRegistry builds a registry holding the built-in pages and applies
// global hooks.
func NewPageRegistry() (*PageRegistry, error) {
	reg := &PageRegistry{factories: map[PageKey]PageFactory{}}
	reg.registerDefaults()
	if err := reg.ApplyHooks(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *PageRegistry) registerDefaults() {
	_ = r.Register(PageHome, NewHomeView)
	_ = r.Register(PageAnalytics, NewAnalyticsView)
	_ = r.Register(PageCalendar, NewCalendarView)
	_ = r.Register(PageUsers, NewUsersView)
	_ = r.Register(PageNotifications, NewNotificationsView)
	_ = r.Register(PageSettings, NewSettingsView)
}

// ApplyHooks executes registered page hooks.
func (r *PageRegistry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores or replaces the factory for a page.
func (r *PageRegistry) Register(key PageKey, factory PageFactory) error {
	if key == "" {
		return fmt.Errorf("dashboard: page key is required")
	}
	if factory == nil {
		return fmt.Errorf("dashboard: page %s factory cannot be nil", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
	return nil
}

// Factory fetches the factory registered for a page.
func (r *PageRegistry) Factory(key PageKey) (PageFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[key]
	return factory, ok
}

// Mount builds a page view.
func (r *PageRegistry) Mount(key PageKey, mount MountContext) (PageView, error) {
	factory, ok := r.Factory(key)
	if !ok {
		return nil, fmt.Errorf("%w: no page registered for %s", ErrUnknownRoute, key)
	}
	view, err := factory(mount)
	if err != nil {
		return nil, fmt.Errorf("dashboard: mount %s: %w", key, err)
	}
	return view, nil
}
