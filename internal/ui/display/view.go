package display

import (
	"errors"
	"fmt"

	"countdown/internal/core/countdown"
	"countdown/internal/core/timekeeper"
)

// Cell is one numeric unit on the countdown grid.
type Cell struct {
	Label string
	Value int
}

// ViewState is everything the window shows for a session.
type ViewState struct {
	SubmitLabel    string
	SubmitDisabled bool
	StopVisible    bool
	StopDisabled   bool
	ErrorText      string
	PanelVisible   bool
	Expired        bool
	Cells          []Cell
}

// Render maps a session to what should be on screen. Years and months are
// left out when the source did not supply them.
func Render(session timekeeper.Session) ViewState {
	state := ViewState{
		SubmitLabel:  "Start Countdown",
		StopVisible:  session.Exists(),
		PanelVisible: session.HasBreakdown(),
		Expired:      session.HasBreakdown() && session.Breakdown.Expired,
	}
	if session.Loading() {
		state.SubmitLabel = "Loading..."
		state.SubmitDisabled = true
		state.StopDisabled = true
	}
	if session.Err != nil {
		state.ErrorText = errorText(session)
	}
	if state.PanelVisible && !state.Expired {
		state.Cells = cells(session)
	}
	return state
}

func cells(session timekeeper.Session) []Cell {
	breakdown := session.Breakdown
	result := make([]Cell, 0, 6)
	if session.Fields.Years {
		result = append(result, Cell{Label: "Years", Value: breakdown.Years})
	}
	if session.Fields.Months {
		result = append(result, Cell{Label: "Months", Value: breakdown.Months})
	}
	return append(result,
		Cell{Label: "Days", Value: breakdown.Days},
		Cell{Label: "Hours", Value: breakdown.Hours},
		Cell{Label: "Minutes", Value: breakdown.Minutes},
		Cell{Label: "Seconds", Value: breakdown.Seconds},
	)
}

func errorText(session timekeeper.Session) string {
	if errors.Is(session.Err, countdown.ErrInvalidTarget) {
		return fmt.Sprintf("%q is not a valid date. Use YYYY-MM-DD.", session.TargetText)
	}
	return fmt.Sprintf("Could not start the countdown: %v", session.Err)
}
