package terminal

import (
	"context"
	"fmt"
	"strings"

	"countdown/internal/core/countdown"
	"countdown/internal/core/timekeeper"
	"countdown/internal/ui/display"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Keeper is the part of the TimeKeeper the terminal front-end drives.
type Keeper interface {
	Submit(ctx context.Context, value string) (countdown.Breakdown, error)
	Cancel()
	Subscribe(buffer int) <-chan timekeeper.Event
	Session() timekeeper.Session
}

// Action is what a key press asks for.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCancel
	ActionRestart
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleValue   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleExpired = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// App renders a countdown session in a terminal.
type App struct {
	screen  tcell.Screen
	keeper  Keeper
	target  string
	session timekeeper.Session
	log     *logrus.Entry
}

// New creates a terminal front-end for target.
func New(screen tcell.Screen, keeper Keeper, target string, logger *logrus.Entry) *App {
	return &App{
		screen:  screen,
		keeper:  keeper,
		target:  target,
		session: keeper.Session(),
		log:     logger.WithField("component", "terminal"),
	}
}

// Run submits the target and redraws on every keeper event until the user
// quits or ctx is done. The caller owns screen initialisation and Fini.
func (app *App) Run(ctx context.Context) error {
	events := app.keeper.Subscribe(16)

	input := make(chan tcell.Event, 16)
	go func() {
		for {
			event := app.screen.PollEvent()
			if event == nil {
				close(input)
				return
			}
			input <- event
		}
	}()

	app.submit(ctx)
	app.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-input:
			if !ok {
				return nil
			}
			switch KeyAction(event) {
			case ActionQuit:
				return nil
			case ActionCancel:
				app.keeper.Cancel()
			case ActionRestart:
				app.submit(ctx)
			}
			if _, resized := event.(*tcell.EventResize); resized {
				app.screen.Sync()
			}
			app.draw()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			app.session = event.Session
			app.draw()
		}
	}
}

func (app *App) submit(ctx context.Context) {
	go func() {
		if _, err := app.keeper.Submit(ctx, app.target); err != nil {
			app.log.Debugf("submit %s: %v", app.target, err)
		}
	}()
}

func (app *App) draw() {
	Draw(app.screen, app.target, app.session)
	app.screen.Show()
}

// KeyAction maps a terminal event to an action.
func KeyAction(event tcell.Event) Action {
	key, ok := event.(*tcell.EventKey)
	if !ok {
		return ActionNone
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'c', 'C', 's', 'S':
			return ActionCancel
		case 'r', 'R':
			return ActionRestart
		}
	}
	return ActionNone
}

// Draw renders the session onto screen without showing it.
func Draw(screen tcell.Screen, target string, session timekeeper.Session) {
	screen.Clear()
	width, _ := screen.Size()
	state := display.Render(session)

	row := 1
	drawCentered(screen, width, row, "Countdown Timer", styleTitle)
	row += 2
	drawCentered(screen, width, row, fmt.Sprintf("Target: %s", target), styleDefault)
	row += 2

	switch {
	case state.ErrorText != "":
		drawCentered(screen, width, row, state.ErrorText, styleError)
	case session.Loading():
		drawCentered(screen, width, row, "Loading...", styleLabel)
	case state.Expired:
		drawCentered(screen, width, row, "Time's Up!", styleExpired)
		drawCentered(screen, width, row+1, "The countdown has reached zero!", styleLabel)
	case state.PanelVisible:
		drawCells(screen, width, row, state.Cells)
	default:
		drawCentered(screen, width, row, "Stopped", styleLabel)
	}

	drawCentered(screen, width, row+4, "r restart  c stop  q quit", styleHint)
}

const cellWidth = 10

func drawCells(screen tcell.Screen, width, row int, cells []display.Cell) {
	values := make([]string, 0, len(cells))
	labels := make([]string, 0, len(cells))
	for _, cell := range cells {
		values = append(values, pad(fmt.Sprintf("%d", cell.Value)))
		labels = append(labels, pad(cell.Label))
	}
	drawCentered(screen, width, row, strings.Join(values, ""), styleValue)
	drawCentered(screen, width, row+1, strings.Join(labels, ""), styleLabel)
}

func pad(text string) string {
	if len(text) >= cellWidth {
		return text
	}
	left := (cellWidth - len(text)) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", cellWidth-len(text)-left)
}

func drawCentered(screen tcell.Screen, width, row int, text string, style tcell.Style) {
	runes := []rune(text)
	x := (width - len(runes)) / 2
	if x < 0 {
		x = 0
	}
	for i, r := range runes {
		screen.SetContent(x+i, row, r, nil, style)
	}
}
