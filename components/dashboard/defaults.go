package dashboard

import "net/url"

const (
	defaultAvatarSeed = "admin"
	avatarBaseURL     = "https://api.dicebear.com/7.x/avataaars/svg?seed="
)

// DefaultDataset returns the mock records shipped with the console.
func DefaultDataset() Dataset {
	return Dataset{
		Profile: Profile{
			Name:       "Admin User",
			Email:      "admin@example.com",
			AvatarSeed: defaultAvatarSeed,
		},
		HomeMetrics: []Metric{
			{Title: "Total Revenue", Value: "$12,345", Change: 12.5, Trend: TrendUp, Description: "Compared to last month"},
			{Title: "Active Users", Value: "1,234", Change: -5.2, Trend: TrendDown, Description: "Compared to last week"},
			{Title: "Conversion Rate", Value: "2.4%", Change: 8.7, Trend: TrendUp, Description: "30-day average"},
			{Title: "Total Orders", Value: "856", Change: 3.2, Trend: TrendUp, Description: "Past 24 hours"},
		},
		HomeCharts: map[string]ChartSeries{
			"daily": {
				Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
				Data:   []float64{65, 59, 80, 81, 56, 55, 40},
			},
			"weekly": {
				Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4"},
				Data:   []float64{100, 120, 140, 160},
			},
			"monthly": {
				Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
				Data:   []float64{200, 300, 250, 400, 380, 420},
			},
		},
		LiveMetrics: []Metric{
			{Title: LiveUsersMetric, Value: "1,234", Change: 12.5, Trend: TrendUp, Description: "Registered accounts"},
			{Title: "Active Sessions", Value: "342", Change: 4.1, Trend: TrendUp, Description: "Right now"},
			{Title: "Avg. Session", Value: "4m 12s", Change: -1.8, Trend: TrendDown, Description: "Last 24 hours"},
			{Title: "Bounce Rate", Value: "38.2%", Change: -2.4, Trend: TrendDown, Description: "Last 7 days"},
		},
		AnalyticsPanels: map[string][]ChartPanel{
			"overview": {
				{Title: "Traffic Sources", Kind: ChartPie, Series: ChartSeries{
					Labels: []string{"Direct", "Search", "Social", "Referral"},
					Data:   []float64{420, 310, 180, 90},
				}},
				{Title: "User Growth", Kind: ChartLine, Series: ChartSeries{
					Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
					Data:   []float64{820, 932, 901, 1034, 1190, 1234},
				}},
			},
			"performance": {
				{Title: "Revenue Analytics", Kind: ChartBar, Series: ChartSeries{
					Labels: []string{"Q1", "Q2", "Q3", "Q4"},
					Data:   []float64{12000, 15400, 13800, 17900},
				}},
				{Title: "Conversion Rates", Kind: ChartLine, Series: ChartSeries{
					Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
					Data:   []float64{2.1, 2.4, 2.2, 2.8, 3.1, 2.6, 2.4},
				}},
			},
			"engagement": {
				{Title: "Session Duration", Kind: ChartBar, Series: ChartSeries{
					Labels: []string{"<1m", "1-3m", "3-10m", "10m+"},
					Data:   []float64{240, 410, 290, 110},
				}},
				{Title: "Returning Visitors", Kind: ChartLine, Series: ChartSeries{
					Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4"},
					Data:   []float64{31, 34, 38, 41},
				}},
			},
		},
		Events: []CalendarEvent{
			{Title: "Team Meeting", Time: "10:00 AM", Duration: "1h", Attendees: 5},
			{Title: "Project Review", Time: "2:00 PM", Duration: "2h", Attendees: 3},
			{Title: "Client Call", Time: "4:00 PM", Duration: "30m", Attendees: 2},
		},
		Notifications: map[string][]Notification{
			"all": {
				{Category: NotificationMessage, Title: "New Message", Description: "You have a new message from Jane Smith", Time: "2 mins ago"},
				{Category: NotificationFollow, Title: "New Follower", Description: "Bob Johnson started following you", Time: "5 mins ago"},
				{Category: NotificationReminder, Title: "Reminder", Description: "Team meeting in 30 minutes", Time: "30 mins ago"},
				{Category: NotificationAlert, Title: "System Alert", Description: "System maintenance scheduled for tonight", Time: "1 hour ago"},
			},
		},
		Users: []UserRow{
			{Name: "John Doe", Email: "john@example.com", Role: "Admin", Status: UserActive, LastActive: "2 mins ago"},
			{Name: "Jane Smith", Email: "jane@example.com", Role: "User", Status: UserOffline, LastActive: "2 hours ago"},
			{Name: "Bob Johnson", Email: "bob@example.com", Role: "User", Status: UserActive, LastActive: "5 mins ago"},
		},
		Settings: []SettingToggle{
			{Key: "email_notifications", Label: "Email Notifications", Description: "Receive email updates"},
			{Key: "push_notifications", Label: "Push Notifications", Description: "Receive push notifications"},
			{Key: "weekly_digest", Label: "Weekly Digest", Description: "Receive weekly summary"},
		},
	}
}

// AvatarURL builds the seeded avatar image URL. Load failures are left to the
// browser.
func AvatarURL(seed string) string {
	if seed == "" {
		seed = defaultAvatarSeed
	}
	return avatarBaseURL + url.QueryEscape(seed)
}
