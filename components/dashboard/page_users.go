package dashboard

import "context"

// UserRowView is a users table row with derived display fields.
type UserRowView struct {
	UserRow
	AvatarURL   string `json:"avatar_url"`
	StatusClass string `json:"status_class"`
}

// UsersSnapshot is the users page state.
type UsersSnapshot struct {
	Rows       []UserRowView `json:"rows"`
	DialogOpen bool          `json:"dialog_open"`
	Roles      []string      `json:"roles"`
}

var adminRoles = []string{"Admin", "Editor", "Viewer"}

// UsersView renders the users table and the Add Admin dialog.
type UsersView struct {
	users      []UserRow
	dialogOpen bool
	telemetry  Telemetry
}

// NewUsersView mounts the users page.
func NewUsersView(mount MountContext) (PageView, error) {
	return &UsersView{
		users:     append([]UserRow(nil), mount.Data.Users...),
		telemetry: normalizeTelemetry(mount.Telemetry),
	}, nil
}

func (v *UsersView) Key() PageKey { return PageUsers }

func (v *UsersView) Snapshot() PageSnapshot {
	rows := make([]UserRowView, 0, len(v.users))
	for _, user := range v.users {
		rows = append(rows, UserRowView{
			UserRow:     user,
			AvatarURL:   AvatarURL(user.Name),
			StatusClass: StatusClass(user.Status),
		})
	}
	return PageSnapshot{Key: PageUsers, Users: &UsersSnapshot{
		Rows:       rows,
		DialogOpen: v.dialogOpen,
		Roles:      append([]string(nil), adminRoles...),
	}}
}

func (v *UsersView) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionOpenDialog:
		if action.Dialog != DialogAddAdmin {
			return unsupported(PageUsers, action)
		}
		v.dialogOpen = true
	case ActionCloseDialog, ActionSubmitDialog:
		v.dialogOpen = false
	default:
		return unsupported(PageUsers, action)
	}
	v.telemetry.Record(ctx, "dashboard.users.action", map[string]any{"kind": string(action.Kind)})
	return nil
}

func (v *UsersView) Teardown() {}

// StatusClass styles the presence badge.
func StatusClass(status UserStatus) string {
	if status == UserActive {
		return "bg-green-100 text-green-700"
	}
	return "bg-gray-100 text-gray-700"
}
