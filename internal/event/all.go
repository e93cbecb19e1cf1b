package event

import (
	"time"
)

var appStartTime time.Time

func AppInitialized() {
	appStartTime = time.Now()
	send("app initialized")
}

func AppExited() {
	duration := time.Since(appStartTime).Truncate(time.Second)
	send(
		"app exited",
		"app duration pretty", duration.String(),
		"app duration in seconds", int64(duration.Seconds()),
	)
	Flush()
}

func PageSwitched(page string) {
	send("page switched", "page", page)
}

func ComponentOpened(title string) {
	send("component opened", "component", title)
}

func PlaygroundEdited(op string) {
	send("playground edited", "operation", op)
}
