package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// DefaultShellTTL is how long an untouched shell survives before eviction.
const DefaultShellTTL = 30 * time.Minute

var errMissingShellID = errors.New("dashboard: shell id is required")

// PageMounter builds page views. *PageRegistry satisfies it.
type PageMounter interface {
	Mount(key PageKey, mount MountContext) (PageView, error)
}

// Options configures the dashboard Service. Every collaborator is optional;
// NewService fills in in-memory defaults.
type Options struct {
	Store           ShellStore
	Pages           PageMounter
	Routes          RouteTable
	Dataset         *Dataset
	Events          EventPublisher
	Telemetry       Telemetry
	RefreshInterval time.Duration
	ShellTTL        time.Duration
	Now             func() time.Time
	NewID           func() string
	NewRand         func() *rand.Rand
}

// Service owns the shells of every open browser tab.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		opts.Store = NewInMemoryShellStore()
	}
	if opts.Pages == nil {
		reg, err := NewPageRegistry()
		if err != nil {
			return nil, err
		}
		opts.Pages = reg
	}
	if len(opts.Routes) == 0 {
		opts.Routes = DefaultRoutes()
	}
	if opts.Dataset == nil {
		data := DefaultDataset()
		opts.Dataset = &data
	}
	if opts.Events == nil {
		opts.Events = NewEventHub()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.ShellTTL <= 0 {
		opts.ShellTTL = DefaultShellTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return &Service{opts: opts}, nil
}

// Routes returns the route table served by the service.
func (s *Service) Routes() RouteTable {
	return append(RouteTable(nil), s.opts.Routes...)
}

// Dataset returns the mock records pages mount with.
func (s *Service) Dataset() Dataset {
	return *s.opts.Dataset
}

// Events exposes the publisher, typically an *EventHub.
func (s *Service) Events() EventPublisher {
	return s.opts.Events
}

// CreateShell opens a fresh shell at entryPath with default layout state.
func (s *Service) CreateShell(ctx context.Context, entryPath string) (ShellSnapshot, error) {
	id := s.opts.NewID()
	shell, err := NewShell(id, s.opts.Routes, entryPath, s.mounter(id), s.opts.Now)
	if err != nil {
		return ShellSnapshot{}, err
	}
	if err := s.opts.Store.Put(shell); err != nil {
		shell.Teardown()
		return ShellSnapshot{}, err
	}
	snap, err := shell.Snapshot()
	if err != nil {
		return ShellSnapshot{}, err
	}
	s.recordTelemetry(ctx, "dashboard.shell.create", map[string]any{
		"shell_id": id,
		"page":     string(snap.Route.Page),
	})
	return snap, nil
}

// Shell fetches a live shell.
func (s *Service) Shell(id string) (*Shell, error) {
	if id == "" {
		return nil, errMissingShellID
	}
	shell, ok := s.opts.Store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShellNotFound, id)
	}
	return shell, nil
}

// Navigate moves a shell to the page serving path.
func (s *Service) Navigate(ctx context.Context, id, path string) (ShellSnapshot, error) {
	shell, err := s.Shell(id)
	if err != nil {
		return ShellSnapshot{}, err
	}
	route, err := shell.Navigate(path)
	if err != nil {
		return ShellSnapshot{}, err
	}
	s.recordTelemetry(ctx, "dashboard.shell.navigate", map[string]any{
		"shell_id": id,
		"page":     string(route.Page),
	})
	return shell.Snapshot()
}

// Dispatch applies an action to a shell and returns the new state.
func (s *Service) Dispatch(ctx context.Context, id string, action Action) (ShellSnapshot, error) {
	shell, err := s.Shell(id)
	if err != nil {
		return ShellSnapshot{}, err
	}
	if err := shell.Dispatch(ctx, action); err != nil {
		return ShellSnapshot{}, err
	}
	s.recordTelemetry(ctx, "dashboard.shell.action", map[string]any{
		"shell_id": id,
		"kind":     string(action.Kind),
	})
	return shell.Snapshot()
}

// Snapshot returns the current state of a shell.
func (s *Service) Snapshot(_ context.Context, id string) (ShellSnapshot, error) {
	shell, err := s.Shell(id)
	if err != nil {
		return ShellSnapshot{}, err
	}
	return shell.Snapshot()
}

// Unmount tears a shell down and ends its event subscriptions.
func (s *Service) Unmount(ctx context.Context, id string) error {
	if id == "" {
		return errMissingShellID
	}
	shell, ok := s.opts.Store.Remove(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrShellNotFound, id)
	}
	s.teardown(shell)
	s.recordTelemetry(ctx, "dashboard.shell.unmount", map[string]any{"shell_id": id})
	return nil
}

// Sweep evicts shells idle longer than the TTL and reports how many went.
func (s *Service) Sweep(ctx context.Context) int {
	cutoff := s.opts.Now().Add(-s.opts.ShellTTL)
	evicted := 0
	for _, shell := range s.opts.Store.Idle(cutoff) {
		if _, ok := s.opts.Store.Remove(shell.ID()); !ok {
			continue
		}
		s.teardown(shell)
		evicted++
	}
	if evicted > 0 {
		s.recordTelemetry(ctx, "dashboard.shell.evict", map[string]any{
			"count":     evicted,
			"remaining": s.opts.Store.Len(),
		})
	}
	return evicted
}

// RunJanitor sweeps on every interval until ctx is cancelled.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Close tears down every shell.
func (s *Service) Close(ctx context.Context) {
	for _, shell := range s.opts.Store.List() {
		if _, ok := s.opts.Store.Remove(shell.ID()); ok {
			s.teardown(shell)
		}
	}
	s.recordTelemetry(ctx, "dashboard.service.close", nil)
}

func (s *Service) teardown(shell *Shell) {
	shell.Teardown()
	if closer, ok := s.opts.Events.(interface{ CloseShell(string) }); ok {
		closer.CloseShell(shell.ID())
	}
}

// publishes outlive the request that mounted the page
func (s *Service) mounter(shellID string) MountFunc {
	return func(page PageKey) (PageView, error) {
		return s.opts.Pages.Mount(page, MountContext{
			ShellID:         shellID,
			Data:            *s.opts.Dataset,
			Now:             s.opts.Now,
			Rand:            s.opts.NewRand(),
			RefreshInterval: s.opts.RefreshInterval,
			Publish: func(event ViewEvent) {
				_ = s.opts.Events.Publish(context.Background(), event)
			},
			Telemetry: s.opts.Telemetry,
		})
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
