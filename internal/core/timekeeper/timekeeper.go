package timekeeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/metrics"
	"countdown/internal/remote"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSuperseded indicates the submission was cancelled or replaced before it resolved.
	ErrSuperseded = errors.New("submission superseded")
	// ErrClosed indicates the TimeKeeper was torn down.
	ErrClosed = errors.New("timekeeper closed")
	// ErrComputation indicates local computation failed unexpectedly.
	ErrComputation = errors.New("countdown computation failed")
)

// Lookup resolves a date against a remote authority.
type Lookup interface {
	Lookup(ctx context.Context, date string) remote.Outcome
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        countdown.Clock
}

// TimeKeeper owns the single countdown session: it resolves submissions
// through the remote lookup or local computation and ticks local
// breakdowns until expiry, cancellation or teardown.
type TimeKeeper struct {
	mu       sync.Mutex
	config   model.CountdownConfig
	options  Config
	lookup   Lookup
	recorder *metrics.Recorder
	log      *logrus.Entry
	session  Session
	stopTick context.CancelFunc
	events   []chan Event
	closed   bool
	compute  func(target, now time.Time) countdown.Breakdown
}

// New creates a TimeKeeper. lookup may be nil, in which case every
// submission is computed locally.
func New(config model.CountdownConfig, options Config, lookup Lookup) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = model.DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = countdown.SystemClock{}
	}

	return &TimeKeeper{
		config:  config,
		options: options,
		lookup:  lookup,
		log:     logrus.NewEntry(logrus.StandardLogger()).WithField("component", "timekeeper"),
		session: Session{Phase: PhaseInactive},
		compute: countdown.Compute,
	}
}

// SetLogger replaces the logger.
func (keeper *TimeKeeper) SetLogger(logger *logrus.Entry) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.log = logger.WithField("component", "timekeeper")
}

// SetRecorder attaches metrics.
func (keeper *TimeKeeper) SetRecorder(recorder *metrics.Recorder) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.recorder = recorder
}

// SetLookup swaps the remote collaborator, e.g. after the endpoint changed.
func (keeper *TimeKeeper) SetLookup(lookup Lookup) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.lookup = lookup
}

// UpdateConfig updates runtime configuration. It applies from the next submission.
func (keeper *TimeKeeper) UpdateConfig(config model.CountdownConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.config = config
}

// Config returns the current runtime configuration.
func (keeper *TimeKeeper) Config() model.CountdownConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Session returns a copy of the current session.
func (keeper *TimeKeeper) Session() Session {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.session
}

// Submit starts a countdown towards value. An unparseable value is the only
// error surfaced to the user; remote failures fall back to local
// computation silently.
func (keeper *TimeKeeper) Submit(ctx context.Context, value string) (countdown.Breakdown, error) {
	target, parseErr := countdown.ParseTarget(value)

	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return countdown.Breakdown{}, ErrClosed
	}
	keeper.stopTickLocked()

	if parseErr != nil {
		keeper.session = Session{TargetText: value, Phase: PhaseInactive, Err: parseErr}
		keeper.recorder.ObserveSession(metrics.SessionInvalid)
		keeper.emitLocked(Event{Type: EventError, Session: keeper.session, Message: parseErr.Error(), At: keeper.options.Clock.Now()})
		keeper.emitLocked(keeper.stateEventLocked())
		keeper.mu.Unlock()
		return countdown.Breakdown{}, parseErr
	}

	id := uuid.NewString()
	keeper.session = Session{ID: id, TargetText: value, Target: target, Phase: PhasePending}
	lookup := keeper.lookup
	remoteEnabled := keeper.config.RemoteEnabled && lookup != nil
	logger := keeper.log.WithFields(logrus.Fields{"session": id, "target": value})
	keeper.emitLocked(keeper.stateEventLocked())
	keeper.mu.Unlock()

	// Loading must clear on every exit path, including a panic below.
	defer keeper.abandonIfPending(id)

	outcome := remote.Unavailable(remote.ErrDisabled)
	if remoteEnabled {
		outcome = lookup.Lookup(ctx, countdown.FormatDate(target))
	}
	if err := ctx.Err(); err != nil {
		return countdown.Breakdown{}, fmt.Errorf("submit %s: %w", value, err)
	}

	resolved := Session{ID: id, TargetText: value, Target: target}
	if outcome.Available() {
		resolved.Breakdown = outcome.Breakdown
		resolved.Source = SourceRemote
		resolved.Fields = outcome.Fields
	} else {
		if !errors.Is(outcome.Reason, remote.ErrDisabled) {
			logger.Warnf("remote lookup unavailable, computing locally: %v", outcome.Reason)
		}
		breakdown, err := keeper.computeLocal(target)
		if err != nil {
			logger.Errorf("local computation failed: %v", err)
			keeper.fail(id, err)
			return countdown.Breakdown{}, err
		}
		resolved.Breakdown = breakdown
		resolved.Source = SourceLocal
		resolved.Fields = remote.AllFields()
	}
	resolved.Phase = PhaseActive
	if resolved.Breakdown.Expired {
		resolved.Phase = PhaseExpired
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return resolved.Breakdown, ErrClosed
	}
	if keeper.session.ID != id {
		logger.Debugf("dropping stale result")
		return resolved.Breakdown, ErrSuperseded
	}

	keeper.session = resolved
	keeper.recorder.ObserveLookup(outcome.Kind())
	keeper.recorder.ObserveSession(metrics.SessionStarted)
	if resolved.Phase == PhaseExpired {
		keeper.recorder.ObserveSession(metrics.SessionExpired)
	}
	keeper.emitLocked(keeper.stateEventLocked())
	if resolved.Ticking() {
		keeper.startTickLocked(id)
	}
	logger.WithField("source", resolved.Source).Infof("countdown started: %s", resolved.Breakdown)
	return resolved.Breakdown, nil
}

// Cancel stops the refresh loop and clears the session. It is a no-op when
// no session exists.
func (keeper *TimeKeeper) Cancel() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.session.Exists() {
		return
	}
	keeper.stopTickLocked()
	keeper.session = Session{Phase: PhaseInactive}
	keeper.recorder.ObserveSession(metrics.SessionCancelled)
	keeper.emitLocked(keeper.stateEventLocked())
}

// Close tears the TimeKeeper down: the refresh loop stops and observers are closed.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.stopTickLocked()
	keeper.session = Session{Phase: PhaseInactive}
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) computeLocal(target time.Time) (breakdown countdown.Breakdown, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrComputation, recovered)
		}
	}()
	return keeper.compute(target, keeper.options.Clock.Now()), nil
}

func (keeper *TimeKeeper) fail(id string, err error) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.session.ID != id {
		return
	}
	keeper.session = Session{TargetText: keeper.session.TargetText, Phase: PhaseInactive, Err: err}
	keeper.emitLocked(Event{Type: EventError, Session: keeper.session, Message: err.Error(), At: keeper.options.Clock.Now()})
	keeper.emitLocked(keeper.stateEventLocked())
}

func (keeper *TimeKeeper) abandonIfPending(id string) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.session.ID != id || keeper.session.Phase != PhasePending {
		return
	}
	keeper.session = Session{TargetText: keeper.session.TargetText, Phase: PhaseInactive}
	keeper.emitLocked(keeper.stateEventLocked())
}

func (keeper *TimeKeeper) startTickLocked(id string) {
	keeper.stopTickLocked()
	ctx, cancel := context.WithCancel(context.Background())
	keeper.stopTick = cancel
	ticker := keeper.options.Clock.NewTicker(keeper.options.TickInterval)
	go keeper.run(ctx, id, ticker)
}

func (keeper *TimeKeeper) stopTickLocked() {
	if keeper.stopTick != nil {
		keeper.stopTick()
		keeper.stopTick = nil
	}
}

func (keeper *TimeKeeper) run(ctx context.Context, id string, ticker countdown.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if !keeper.tick(ctx, id) {
				return
			}
		}
	}
}

func (keeper *TimeKeeper) tick(ctx context.Context, id string) bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if ctx.Err() != nil || keeper.session.ID != id || !keeper.session.Ticking() {
		return false
	}

	now := keeper.options.Clock.Now()
	breakdown, err := keeper.computeLocal(keeper.session.Target)
	if err != nil {
		// Keep showing the last breakdown; the next tick tries again.
		keeper.log.WithField("session", id).Errorf("tick: %v", err)
		return true
	}
	keeper.session.Breakdown = breakdown
	keeper.recorder.ObserveTick()
	keeper.emitLocked(Event{Type: EventTick, Session: keeper.session, At: now})

	if !breakdown.Expired {
		return true
	}
	keeper.session.Phase = PhaseExpired
	keeper.stopTickLocked()
	keeper.recorder.ObserveSession(metrics.SessionExpired)
	keeper.emitLocked(keeper.stateEventLocked())
	return false
}

func (keeper *TimeKeeper) stateEventLocked() Event {
	event := Event{
		Type:    EventStateChange,
		Session: keeper.session,
		At:      keeper.options.Clock.Now(),
	}
	if keeper.session.Err != nil {
		event.Message = keeper.session.Err.Error()
	}
	return event
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
