package dashboard

import "context"

var notificationTabs = tabSet{"all", "unread", "mentions"}

// NotificationView is a feed entry with its category styling.
type NotificationView struct {
	Notification
	Icon       string `json:"icon"`
	BadgeClass string `json:"badge_class"`
}

// NotificationsSnapshot is the notifications page state. Items is empty for
// tabs without content.
type NotificationsSnapshot struct {
	Tabs      []string           `json:"tabs"`
	ActiveTab string             `json:"active_tab"`
	Items     []NotificationView `json:"items"`
}

// NotificationsView renders the tabbed notifications feed.
type NotificationsView struct {
	feeds     map[string][]Notification
	activeTab string
	telemetry Telemetry
}

// NewNotificationsView mounts the notifications page on the "all" tab.
func NewNotificationsView(mount MountContext) (PageView, error) {
	return &NotificationsView{
		feeds:     mount.Data.Notifications,
		activeTab: notificationTabs[0],
		telemetry: normalizeTelemetry(mount.Telemetry),
	}, nil
}

func (v *NotificationsView) Key() PageKey { return PageNotifications }

func (v *NotificationsView) Snapshot() PageSnapshot {
	feed := v.feeds[v.activeTab]
	items := make([]NotificationView, 0, len(feed))
	for _, n := range feed {
		items = append(items, NotificationView{
			Notification: n,
			Icon:         categoryIcon(n.Category),
			BadgeClass:   CategoryClass(n.Category),
		})
	}
	return PageSnapshot{Key: PageNotifications, Notifications: &NotificationsSnapshot{
		Tabs:      append([]string(nil), notificationTabs...),
		ActiveTab: v.activeTab,
		Items:     items,
	}}
}

func (v *NotificationsView) Dispatch(ctx context.Context, action Action) error {
	if action.Kind != ActionSelectTab {
		return unsupported(PageNotifications, action)
	}
	if err := notificationTabs.validate(action.Tab); err != nil {
		return err
	}
	v.activeTab = action.Tab
	v.telemetry.Record(ctx, "dashboard.notifications.tab", map[string]any{"tab": action.Tab})
	return nil
}

func (v *NotificationsView) Teardown() {}

// CategoryClass styles a notification badge. Unknown categories render as
// alerts.
func CategoryClass(category NotificationCategory) string {
	switch category {
	case NotificationMessage:
		return "bg-blue-100 text-blue-600"
	case NotificationFollow:
		return "bg-green-100 text-green-600"
	case NotificationReminder:
		return "bg-yellow-100 text-yellow-600"
	default:
		return "bg-red-100 text-red-600"
	}
}

func categoryIcon(category NotificationCategory) string {
	switch category {
	case NotificationMessage:
		return "message-square"
	case NotificationFollow:
		return "user-plus"
	case NotificationReminder:
		return "bell"
	default:
		return "alert-circle"
	}
}
