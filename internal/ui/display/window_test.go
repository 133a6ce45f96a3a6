package display

import (
	"testing"

	"countdown/internal/core/countdown"
	"countdown/internal/core/timekeeper"
	"countdown/internal/remote"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestWindowSubmitAndStop(t *testing.T) {
	app := test.NewTempApp(t)
	var submitted []string
	stops := 0
	view := New(app, "2030-01-01", Callbacks{
		OnSubmit: func(date string) { submitted = append(submitted, date) },
		OnStop:   func() { stops++ },
	})

	assert.False(t, view.stopButton.Visible())
	test.Tap(view.submitButton)
	assert.Equal(t, []string{"2030-01-01"}, submitted)

	view.Apply(timekeeper.Session{ID: "s", Phase: timekeeper.PhasePending})
	assert.True(t, view.submitButton.Disabled())
	assert.Equal(t, "Loading...", view.submitButton.Text)
	assert.True(t, view.stopButton.Visible())
	test.Tap(view.submitButton)
	assert.Len(t, submitted, 1, "submit is ignored while loading")

	view.Apply(timekeeper.Session{
		ID: "s", Phase: timekeeper.PhaseActive, Source: timekeeper.SourceLocal,
		Breakdown: countdown.Breakdown{Minutes: 1, Seconds: 30}, Fields: remote.AllFields(),
	})
	assert.False(t, view.submitButton.Disabled())
	assert.True(t, view.panel.Visible())
	assert.Equal(t, "30", view.cells["Seconds"].value.Text)
	assert.Equal(t, "1", view.cells["Minutes"].value.Text)

	test.Tap(view.stopButton)
	assert.Equal(t, 1, stops)
}

func TestWindowOmitsMissingUnitsAndShowsExpiry(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, "", Callbacks{})

	view.Apply(timekeeper.Session{
		ID: "s", Phase: timekeeper.PhaseActive, Source: timekeeper.SourceRemote,
		Breakdown: countdown.Breakdown{Days: 2},
	})
	assert.False(t, view.cells["Years"].root.Visible())
	assert.False(t, view.cells["Months"].root.Visible())
	assert.True(t, view.cells["Days"].root.Visible())
	assert.Equal(t, "2", view.cells["Days"].value.Text)
	assert.Equal(t, 4, view.columns)

	view.Apply(timekeeper.Session{
		ID: "s", Phase: timekeeper.PhaseExpired, Source: timekeeper.SourceLocal,
		Breakdown: countdown.ExpiredBreakdown(),
	})
	assert.True(t, view.expiredPanel.Visible())
	assert.False(t, view.grid.Visible())

	view.Apply(timekeeper.Session{Phase: timekeeper.PhaseInactive})
	assert.False(t, view.panel.Visible())
	assert.False(t, view.stopButton.Visible())
}

func TestWindowShowsInputError(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, "nope", Callbacks{})

	_, err := countdown.ParseTarget("nope")
	view.Apply(timekeeper.Session{TargetText: "nope", Phase: timekeeper.PhaseInactive, Err: err})

	assert.True(t, view.errorBanner.Visible())
	assert.Contains(t, view.errorText.Text, `"nope"`)
	assert.False(t, view.panel.Visible())
}
