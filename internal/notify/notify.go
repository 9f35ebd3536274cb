// Package notify delivers user-facing notifications through a Gateway.
package notify

import "fmt"

const (
	TagReminder     = "water-reminder"
	TagGoalComplete = "goal-complete"
	TagStreak       = "streak"
	TagTest         = "test"

	// StreakMilestoneDays is the streak length (and its multiples) that
	// earns a streak notification.
	StreakMilestoneDays = 7
)

type Notification struct {
	Title string
	Body  string
	// Tag groups notifications; a newer one replaces an older one with the
	// same tag where the platform supports it.
	Tag                string
	RequireInteraction bool
	Sound              bool
}

// Gateway is the host's notification facility. Show is fire-and-forget.
type Gateway interface {
	RequestPermission() bool
	Show(n Notification)
}

func Reminder() Notification {
	return Notification{
		Title: "💧 Time to Hydrate!",
		Body:  "Don't forget to drink some water and stay healthy!",
		Tag:   TagReminder,
		Sound: true,
	}
}

func GoalComplete() Notification {
	return Notification{
		Title: "🎉 Daily Goal Achieved!",
		Body:  "Congratulations! You've reached your daily water intake goal.",
		Tag:   TagGoalComplete,
		Sound: true,
	}
}

func Streak(days int) Notification {
	return Notification{
		Title: fmt.Sprintf("🔥 %d Day Streak!", days),
		Body:  fmt.Sprintf("Amazing! You've maintained your hydration goal for %d consecutive days.", days),
		Tag:   TagStreak,
		Sound: true,
	}
}

func Test() Notification {
	return Notification{
		Title: "🧪 Test Notification",
		Body:  "This is how your water reminders will look and sound!",
		Tag:   TagTest,
		Sound: true,
	}
}

// Send shows n when the gateway grants permission and reports whether it did.
func Send(gw Gateway, n Notification) bool {
	if gw == nil || !gw.RequestPermission() {
		return false
	}
	gw.Show(n)
	return true
}

// AfterIntake announces a goal that the latest write just completed, plus a
// streak milestone when the new streak is a multiple of StreakMilestoneDays.
func AfterIntake(gw Gateway, goalJustReached bool, streak int) {
	if !goalJustReached {
		return
	}
	Send(gw, GoalComplete())
	if streak > 0 && streak%StreakMilestoneDays == 0 {
		Send(gw, Streak(streak))
	}
}
