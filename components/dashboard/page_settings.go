package dashboard

import "context"

// SettingDarkMode is the key of the page-local dark mode switch. It never
// touches the shell theme.
const SettingDarkMode = "dark_mode"

// SettingSwitchView is one rendered switch.
type SettingSwitchView struct {
	SettingToggle
	On bool `json:"on"`
}

// SettingsSnapshot is the settings page state.
type SettingsSnapshot struct {
	Profile   Profile             `json:"profile"`
	AvatarURL string              `json:"avatar_url"`
	Switches  []SettingSwitchView `json:"switches"`
	DarkMode  bool                `json:"dark_mode"`
	Saves     int                 `json:"saves"`
	Cancels   int                 `json:"cancels"`
}

// SettingsView holds the local switches of the settings page.
type SettingsView struct {
	profile   Profile
	toggles   []SettingToggle
	on        map[string]bool
	darkMode  bool
	saves     int
	cancels   int
	telemetry Telemetry
}

// NewSettingsView mounts the settings page with every switch off.
func NewSettingsView(mount MountContext) (PageView, error) {
	return &SettingsView{
		profile:   mount.Data.Profile,
		toggles:   append([]SettingToggle(nil), mount.Data.Settings...),
		on:        map[string]bool{},
		telemetry: normalizeTelemetry(mount.Telemetry),
	}, nil
}

func (v *SettingsView) Key() PageKey { return PageSettings }

func (v *SettingsView) Snapshot() PageSnapshot {
	switches := make([]SettingSwitchView, 0, len(v.toggles))
	for _, toggle := range v.toggles {
		switches = append(switches, SettingSwitchView{SettingToggle: toggle, On: v.on[toggle.Key]})
	}
	return PageSnapshot{Key: PageSettings, Settings: &SettingsSnapshot{
		Profile:   v.profile,
		AvatarURL: AvatarURL(v.profile.AvatarSeed),
		Switches:  switches,
		DarkMode:  v.darkMode,
		Saves:     v.saves,
		Cancels:   v.cancels,
	}}
}

func (v *SettingsView) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionToggleSetting:
		if action.Setting == SettingDarkMode {
			v.darkMode = !v.darkMode
			break
		}
		if !v.known(action.Setting) {
			return unsupported(PageSettings, action)
		}
		v.on[action.Setting] = !v.on[action.Setting]
	case ActionSaveSettings:
		v.saves++
		v.telemetry.Record(ctx, "dashboard.settings.save", v.payload())
	case ActionCancelSettings:
		v.cancels++
		v.telemetry.Record(ctx, "dashboard.settings.cancel", v.payload())
	default:
		return unsupported(PageSettings, action)
	}
	return nil
}

func (v *SettingsView) Teardown() {}

func (v *SettingsView) known(key string) bool {
	for _, toggle := range v.toggles {
		if toggle.Key == key {
			return true
		}
	}
	return false
}

func (v *SettingsView) payload() map[string]any {
	payload := map[string]any{SettingDarkMode: v.darkMode}
	for _, toggle := range v.toggles {
		payload[toggle.Key] = v.on[toggle.Key]
	}
	return payload
}
