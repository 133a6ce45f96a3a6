package preferences

import (
	"errors"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var errEndpoint = errors.New("endpoint must be an http(s) URL")

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	endpoint    *widget.Entry
	remote      *widget.Check
	chime       *widget.Check
	trayStatus  *widget.Check
	saveButton  *widget.Button
	statusLabel *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Countdown Settings")

	endpoint := widget.NewEntry()
	endpoint.SetPlaceHolder(DefaultEndpoint)
	endpoint.Validator = validateEndpoint

	remote := widget.NewCheck("Ask the remote countdown service first", nil)
	chime := widget.NewCheck("Play a chime when the countdown ends", nil)
	trayStatus := widget.NewCheck("Show remaining time in the tray menu", nil)
	statusLabel := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Remote lookup", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		remote,
		widget.NewLabel("Endpoint base URL (the date is appended)"),
		endpoint,
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		chime,
		trayStatus,
		statusLabel,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 320))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		endpoint:    endpoint,
		remote:      remote,
		chime:       chime,
		trayStatus:  trayStatus,
		saveButton:  saveButton,
		statusLabel: statusLabel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.endpoint.SetText(settings.Endpoint)
	prefs.remote.SetChecked(settings.RemoteEnabled)
	prefs.chime.SetChecked(settings.ChimeOnExpiry)
	prefs.trayStatus.SetChecked(settings.TrayStatus)
	prefs.statusLabel.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	endpoint := strings.TrimSpace(prefs.endpoint.Text)
	if err := validateEndpoint(endpoint); err != nil {
		prefs.statusLabel.SetText(err.Error())
		return
	}
	settings.Endpoint = endpoint
	settings.RemoteEnabled = prefs.remote.Checked
	settings.ChimeOnExpiry = prefs.chime.Checked
	settings.TrayStatus = prefs.trayStatus.Checked

	prefs.settings = settings
	prefs.statusLabel.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func validateEndpoint(value string) error {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errEndpoint
	}
	return nil
}
