package dashboard

import (
	"context"
	"time"
)

// ShellStore keeps mounted shells in memory. Implementations ensure thread
// safety; nothing is persisted.
type ShellStore interface {
	Put(shell *Shell) error
	Get(id string) (*Shell, bool)
	Remove(id string) (*Shell, bool)
	Idle(cutoff time.Time) []*Shell
	List() []*Shell
	Len() int
}

// EventPublisher fans view events out to transports (SSE/WebSocket).
type EventPublisher interface {
	Publish(ctx context.Context, event ViewEvent) error
}

// Trend is the direction of a metric change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Metric is a single headline number rendered by a metric card.
type Metric struct {
	Title       string  `json:"title" yaml:"title"`
	Value       string  `json:"value" yaml:"value"`
	Change      float64 `json:"change" yaml:"change"`
	Trend       Trend   `json:"trend" yaml:"trend"`
	Description string  `json:"description" yaml:"description"`
}

// ChartSeries pairs ordered category labels with their values. Labels and
// Data are expected to have the same length; nothing enforces it.
type ChartSeries struct {
	Labels []string  `json:"labels" yaml:"labels"`
	Data   []float64 `json:"data" yaml:"data"`
}

// CalendarEvent is an upcoming event on the calendar page.
type CalendarEvent struct {
	Title     string `json:"title" yaml:"title"`
	Time      string `json:"time" yaml:"time"`
	Duration  string `json:"duration" yaml:"duration"`
	Attendees int    `json:"attendees" yaml:"attendees"`
}

// NotificationCategory drives notification styling.
type NotificationCategory string

const (
	NotificationMessage  NotificationCategory = "message"
	NotificationFollow   NotificationCategory = "follow"
	NotificationReminder NotificationCategory = "reminder"
	NotificationAlert    NotificationCategory = "alert"
)

// Notification is a single entry in the notifications feed.
type Notification struct {
	Category    NotificationCategory `json:"category" yaml:"category"`
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Time        string               `json:"time" yaml:"time"`
}

// UserStatus is the presence badge shown in the users table.
type UserStatus string

const (
	UserActive  UserStatus = "Active"
	UserOffline UserStatus = "Offline"
)

// UserRow is one row of the users table.
type UserRow struct {
	Name       string     `json:"name" yaml:"name"`
	Email      string     `json:"email" yaml:"email"`
	Role       string     `json:"role" yaml:"role"`
	Status     UserStatus `json:"status" yaml:"status"`
	LastActive string     `json:"last_active" yaml:"last_active"`
}

// ChartPanel is a titled chart on the analytics page.
type ChartPanel struct {
	Title  string      `json:"title" yaml:"title"`
	Kind   ChartKind   `json:"kind" yaml:"kind"`
	Series ChartSeries `json:"series" yaml:"series"`
}

// SettingToggle is a labelled switch on the settings page.
type SettingToggle struct {
	Key         string `json:"key" yaml:"key"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Profile is the signed-in administrator shown in the sidebar and settings.
type Profile struct {
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email" yaml:"email"`
	AvatarSeed string `json:"avatar_seed" yaml:"avatar_seed"`
}

// Dataset groups every mock record the pages render.
type Dataset struct {
	Profile         Profile                   `json:"profile" yaml:"profile"`
	HomeMetrics     []Metric                  `json:"home_metrics" yaml:"home_metrics"`
	HomeCharts      map[string]ChartSeries    `json:"home_charts" yaml:"home_charts"`
	LiveMetrics     []Metric                  `json:"live_metrics" yaml:"live_metrics"`
	AnalyticsPanels map[string][]ChartPanel   `json:"analytics_panels" yaml:"analytics_panels"`
	Events          []CalendarEvent           `json:"events" yaml:"events"`
	Notifications   map[string][]Notification `json:"notifications" yaml:"notifications"`
	Users           []UserRow                 `json:"users" yaml:"users"`
	Settings        []SettingToggle           `json:"settings" yaml:"settings"`
}

// ViewEvent describes a change transports might push to an open tab.
type ViewEvent struct {
	ShellID string    `json:"shell_id"`
	Page    PageKey   `json:"page"`
	Kind    string    `json:"kind"`
	Metrics []Metric  `json:"metrics,omitempty"`
	At      time.Time `json:"at"`
}
