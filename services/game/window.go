package game

import (
	"fmt"
	"os"
	"time"
)

// WindowStatus tells whether the game currently accepts play, with a
// user-facing message when it does not.
type WindowStatus struct {
	Open    bool   `json:"open"`
	Message string `json:"message,omitempty"`
}

// WindowPolicy decides whether the game is open at a given instant. It is
// injected into the controllers so deployments can swap the schedule without
// code changes.
type WindowPolicy func(now time.Time) WindowStatus

// Window returns a policy that opens the game between start and end.
func Window(start, end time.Time) WindowPolicy {
	return func(now time.Time) WindowStatus {
		if now.Before(start) {
			return WindowStatus{
				Open:    false,
				Message: fmt.Sprintf("The game opens on %s", start.Format("02/01/2006 15:04")),
			}
		}
		if now.After(end) {
			return WindowStatus{Open: false, Message: "The game is over!"}
		}
		return WindowStatus{Open: true}
	}
}

// AlwaysOpen is the policy when no schedule is configured.
func AlwaysOpen() WindowPolicy {
	return func(time.Time) WindowStatus {
		return WindowStatus{Open: true}
	}
}

// WindowFromEnv builds the policy from GAME_START_DATE / GAME_END_DATE
// (RFC 3339). Missing or malformed dates leave the game always open.
func WindowFromEnv() WindowPolicy {
	start, err1 := time.Parse(time.RFC3339, os.Getenv("GAME_START_DATE"))
	end, err2 := time.Parse(time.RFC3339, os.Getenv("GAME_END_DATE"))
	if err1 != nil || err2 != nil {
		return AlwaysOpen()
	}
	return Window(start, end)
}
