package display

import (
	"image/color"
	"strconv"

	"countdown/internal/core/countdown"
	"countdown/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnSubmit func(date string)
	OnStop   func()
	OnClosed func()
}

// Window manages the countdown UI.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	dateEntry    *widget.Entry
	submitButton *widget.Button
	stopButton   *widget.Button
	errorText    *canvas.Text
	errorBanner  *fyne.Container
	heading      *canvas.Text
	cells        map[string]*cellView
	grid         *fyne.Container
	expiredPanel *fyne.Container
	panel        *fyne.Container
	columns      int
	state        ViewState
}

type cellView struct {
	root  *fyne.Container
	value *canvas.Text
}

var (
	textColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	mutedColor = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
	errorColor = color.NRGBA{R: 254, G: 226, B: 226, A: 255}
	errorFill  = color.NRGBA{R: 239, G: 68, B: 68, A: 51}
	panelFill  = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	cellFill   = color.NRGBA{R: 168, G: 85, B: 247, A: 77}
	cellOrder  = []string{"Years", "Months", "Days", "Hours", "Minutes", "Seconds"}
)

const windowTitle = "Countdown Timer"

// New creates the countdown window with the picker pre-filled.
func New(app fyne.App, initialDate string, callbacks Callbacks) *Window {
	window := app.NewWindow(windowTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder(countdown.DateLayout)
	dateEntry.SetText(initialDate)
	dateEntry.Validator = func(value string) error {
		_, err := countdown.ParseTarget(value)
		return err
	}

	submitButton := widget.NewButton("Start Countdown", nil)
	submitButton.Importance = widget.HighImportance
	stopButton := widget.NewButton("Stop Countdown", nil)
	stopButton.Hide()

	errorText := canvas.NewText("", errorColor)
	errorBanner := container.NewStack(canvas.NewRectangle(errorFill), container.NewPadded(errorText))
	errorBanner.Hide()

	heading := canvas.NewText("Time Remaining", textColor)
	heading.Alignment = fyne.TextAlignCenter
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.TextSize = 22

	cells := make(map[string]*cellView, len(cellOrder))
	gridObjects := make([]fyne.CanvasObject, 0, len(cellOrder))
	for _, label := range cellOrder {
		cell := newCellView(label)
		cells[label] = cell
		gridObjects = append(gridObjects, cell.root)
	}
	grid := container.NewGridWithColumns(len(cellOrder), gridObjects...)

	expiredTitle := canvas.NewText("Time's Up!", textColor)
	expiredTitle.Alignment = fyne.TextAlignCenter
	expiredTitle.TextStyle = fyne.TextStyle{Bold: true}
	expiredTitle.TextSize = 28
	expiredMessage := canvas.NewText("The countdown has reached zero!", mutedColor)
	expiredMessage.Alignment = fyne.TextAlignCenter
	expiredPanel := container.NewVBox(expiredTitle, expiredMessage)
	expiredPanel.Hide()

	panel := container.NewStack(
		canvas.NewRectangle(panelFill),
		container.NewPadded(container.NewVBox(heading, grid, expiredPanel)),
	)
	panel.Hide()

	picker := container.NewBorder(nil, nil, nil, submitButton, dateEntry)
	content := container.NewVBox(
		widget.NewLabelWithStyle("Choose a target date:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		picker,
		errorBanner,
		panel,
		container.NewHBox(stopButton, layout.NewSpacer()),
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(640, 320))

	view := &Window{
		window:       window,
		callbacks:    callbacks,
		dateEntry:    dateEntry,
		submitButton: submitButton,
		stopButton:   stopButton,
		errorText:    errorText,
		errorBanner:  errorBanner,
		heading:      heading,
		cells:        cells,
		grid:         grid,
		expiredPanel: expiredPanel,
		panel:        panel,
		columns:      len(cellOrder),
	}

	submitButton.OnTapped = view.handleSubmit
	dateEntry.OnSubmitted = func(string) { view.handleSubmit() }
	stopButton.OnTapped = func() {
		if view.callbacks.OnStop != nil {
			view.callbacks.OnStop()
		}
	}
	window.SetOnClosed(func() {
		if view.callbacks.OnClosed != nil {
			view.callbacks.OnClosed()
		}
	})

	view.Apply(timekeeper.Session{Phase: timekeeper.PhaseInactive})
	return view
}

func newCellView(label string) *cellView {
	value := canvas.NewText("0", textColor)
	value.Alignment = fyne.TextAlignCenter
	value.TextStyle = fyne.TextStyle{Bold: true}
	value.TextSize = 30

	caption := canvas.NewText(label, mutedColor)
	caption.Alignment = fyne.TextAlignCenter
	caption.TextSize = 13

	root := container.NewStack(canvas.NewRectangle(cellFill), container.NewPadded(container.NewVBox(value, caption)))
	return &cellView{root: root, value: value}
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window exposes the underlying fyne window, e.g. for the tray.
func (view *Window) Window() fyne.Window {
	return view.window
}

// State returns what the window currently shows.
func (view *Window) State() ViewState {
	return view.state
}

// Update schedules Apply on the UI goroutine.
func (view *Window) Update(session timekeeper.Session) {
	fyne.Do(func() {
		view.Apply(session)
	})
}

// Apply renders the session. It must run on the UI goroutine.
func (view *Window) Apply(session timekeeper.Session) {
	state := Render(session)
	view.state = state

	view.submitButton.SetText(state.SubmitLabel)
	setEnabled(view.submitButton, !state.SubmitDisabled)
	setEnabled(view.stopButton, !state.StopDisabled)
	setVisible(view.stopButton, state.StopVisible)

	view.errorText.Text = state.ErrorText
	view.errorText.Refresh()
	setVisible(view.errorBanner, state.ErrorText != "")

	setVisible(view.panel, state.PanelVisible)
	setVisible(view.heading, !state.Expired)
	setVisible(view.grid, !state.Expired)
	setVisible(view.expiredPanel, state.Expired)

	if columns := len(state.Cells); columns > 0 && columns != view.columns {
		view.columns = columns
		view.grid.Layout = layout.NewGridLayoutWithColumns(columns)
		view.grid.Refresh()
	}

	shown := make(map[string]int, len(state.Cells))
	for _, cell := range state.Cells {
		shown[cell.Label] = cell.Value
	}
	for label, cell := range view.cells {
		value, ok := shown[label]
		setVisible(cell.root, ok)
		if ok && cell.value.Text != strconv.Itoa(value) {
			cell.value.Text = strconv.Itoa(value)
			cell.value.Refresh()
		}
	}
}

func (view *Window) handleSubmit() {
	if view.state.SubmitDisabled || view.callbacks.OnSubmit == nil {
		return
	}
	view.callbacks.OnSubmit(view.dateEntry.Text)
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(object disableable, enabled bool) {
	if enabled {
		object.Enable()
		return
	}
	object.Disable()
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible == object.Visible() {
		return
	}
	if visible {
		object.Show()
		return
	}
	object.Hide()
}
