package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupportedAction is returned when the mounted page does not handle an action kind.
	ErrUnsupportedAction = errors.New("dashboard: unsupported action")
	// ErrInvalidTab is returned for a tab the page does not define.
	ErrInvalidTab = errors.New("dashboard: invalid tab")
	// ErrInvalidDate is returned when a calendar date cannot be parsed.
	ErrInvalidDate = errors.New("dashboard: invalid date")
	// ErrInvalidAction is returned when an action payload is malformed.
	ErrInvalidAction = errors.New("dashboard: invalid action")
	// ErrShellNotFound is returned for unknown or evicted shells.
	ErrShellNotFound = errors.New("dashboard: shell not found")
	// ErrUnknownRoute is returned for paths outside the route table.
	ErrUnknownRoute = errors.New("dashboard: unknown route")
)

// ActionKind names a discrete UI transition.
type ActionKind string

const (
	ActionToggleSidebar  ActionKind = "toggle_sidebar"
	ActionToggleTheme    ActionKind = "toggle_theme"
	ActionSelectTab      ActionKind = "select_tab"
	ActionOpenDialog     ActionKind = "open_dialog"
	ActionCloseDialog    ActionKind = "close_dialog"
	ActionSubmitDialog   ActionKind = "submit_dialog"
	ActionExpandChart    ActionKind = "expand_chart"
	ActionSelectDate     ActionKind = "select_date"
	ActionShiftMonth     ActionKind = "shift_month"
	ActionToggleSetting  ActionKind = "toggle_setting"
	ActionSaveSettings   ActionKind = "save_settings"
	ActionCancelSettings ActionKind = "cancel_settings"
)

// ShellLevel reports whether the shell handles the kind itself.
func (k ActionKind) ShellLevel() bool {
	return k == ActionToggleSidebar || k == ActionToggleTheme
}

// Dialog identifiers.
const (
	DialogExpandChart = "expand_chart"
	DialogAddEvent    = "add_event"
	DialogAddAdmin    = "add_admin"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Action is one user interaction forwarded to a shell.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Tab     string     `json:"tab,omitempty"`
	Dialog  string     `json:"dialog,omitempty"`
	Date    string     `json:"date,omitempty"`
	Setting string     `json:"setting,omitempty"`
	Months  int        `json:"months,omitempty"`
}

// ParseActionForm decodes an action from submitted form values.
func ParseActionForm(values url.Values) (Action, error) {
	action := Action{
		Kind:    ActionKind(strings.TrimSpace(values.Get("kind"))),
		Tab:     strings.TrimSpace(values.Get("tab")),
		Dialog:  strings.TrimSpace(values.Get("dialog")),
		Date:    strings.TrimSpace(values.Get("date")),
		Setting: strings.TrimSpace(values.Get("setting")),
	}
	if raw := strings.TrimSpace(values.Get("months")); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			return Action{}, fmt.Errorf("%w: months %q", ErrInvalidAction, raw)
		}
		action.Months = months
	}
	if action.Kind == "" {
		return Action{}, fmt.Errorf("%w: kind is required", ErrInvalidAction)
	}
	return action, nil
}

// PageView is the contract every page variant implements. Methods are called
// with the owning shell locked.
type PageView interface {
	Key() PageKey
	Snapshot() PageSnapshot
	Dispatch(ctx context.Context, action Action) error
	// Teardown releases timers. It must be safe to call more than once.
	Teardown()
}

// PageSnapshot is the state of the mounted page. Exactly one variant pointer
// is set, matching Key.
type PageSnapshot struct {
	Key           PageKey                `json:"key"`
	Home          *HomeSnapshot          `json:"home,omitempty"`
	Analytics     *AnalyticsSnapshot     `json:"analytics,omitempty"`
	Calendar      *CalendarSnapshot      `json:"calendar,omitempty"`
	Users         *UsersSnapshot         `json:"users,omitempty"`
	Notifications *NotificationsSnapshot `json:"notifications,omitempty"`
	Settings      *SettingsSnapshot      `json:"settings,omitempty"`
}

// MountContext carries everything a page factory may use while mounting.
type MountContext struct {
	ShellID         string
	Data            Dataset
	Now             func() time.Time
	Rand            *rand.Rand
	RefreshInterval time.Duration
	Publish         func(ViewEvent)
	Telemetry       Telemetry
}

func (m MountContext) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m MountContext) publish(event ViewEvent) {
	if m.Publish != nil {
		m.Publish(event)
	}
}

// PageFactory mounts a fresh page view.
type PageFactory func(mount MountContext) (PageView, error)

// tabSet validates tab selections for a page.
type tabSet []string

func (t tabSet) validate(tab string) error {
	for _, candidate := range t {
		if candidate == tab {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidTab, tab)
}

func unsupported(page PageKey, action Action) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, action.Kind, page)
}
