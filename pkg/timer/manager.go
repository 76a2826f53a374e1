package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// Timer errors.
var (
	// ErrTimerNotFound indicates the handle does not name an active timer.
	ErrTimerNotFound = errors.New("timer not found")

	// ErrInvalidDuration indicates a delay outside the allowed bounds.
	ErrInvalidDuration = errors.New("invalid timer duration")

	// ErrCalendarUnits indicates a duration with months or years, which
	// have no fixed wall-clock length and cannot arm a timer.
	ErrCalendarUnits = errors.New("duration carries calendar units")
)

// Timer limits.
const (
	// MinDuration is the minimum allowed delay (1 second).
	MinDuration = 1 * time.Second

	// MaxDuration is the maximum allowed delay (30 days).
	MaxDuration = 30 * 24 * time.Hour

	// AccuracyPercent is the timer accuracy as a percentage.
	AccuracyPercent = 1

	// AccuracyAbsolute is the minimum timer accuracy.
	AccuracyAbsolute = 1 * time.Second
)

// Timer is an active one-shot timer armed from a duration value.
type Timer struct {
	// ID is the handle returned by Start.
	ID uuid.UUID

	// StartTime is when the timer was armed (monotonic-backed).
	StartTime time.Time

	// Delay is the wall-clock delay until expiry.
	Delay time.Duration

	// Value is the duration the timer was armed from.
	Value duration.Duration

	// timer drives automatic expiry.
	timer *time.Timer
}

// ExpiresAt returns when the timer will fire.
func (t *Timer) ExpiresAt() time.Time {
	return t.StartTime.Add(t.Delay)
}

// RemainingTime returns the time until expiry, never below zero.
func (t *Timer) RemainingTime() time.Duration {
	remaining := t.Delay - time.Since(t.StartTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether the delay has fully elapsed.
func (t *Timer) IsExpired() bool {
	return time.Since(t.StartTime) >= t.Delay
}

// Manager arms and tracks one-shot timers keyed by opaque handles.
type Manager struct {
	mu sync.RWMutex

	// Active timers by handle.
	timers map[uuid.UUID]*Timer

	// Callback when a timer expires.
	onExpiry func(id uuid.UUID, value duration.Duration)
}

// NewManager creates an empty timer manager.
func NewManager() *Manager {
	return &Manager{
		timers: make(map[uuid.UUID]*Timer),
	}
}

// Start arms a timer for the given duration and returns its handle.
// The duration must convert exactly to wall-clock time: months and
// years are rejected with ErrCalendarUnits, while weeks and below arm
// at their fixed ratios. The converted delay must lie within
// [MinDuration, MaxDuration].
func (m *Manager) Start(d duration.Duration) (uuid.UUID, error) {
	if d.Years() != 0 || d.Months() != 0 {
		return uuid.Nil, ErrCalendarUnits
	}
	delay, ok := d.ToTimeDuration()
	if !ok || delay < MinDuration || delay > MaxDuration {
		return uuid.Nil, ErrInvalidDuration
	}

	id := uuid.New()
	timer := &Timer{
		ID:        id,
		StartTime: time.Now(),
		Delay:     delay,
		Value:     d,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	timer.timer = time.AfterFunc(delay, func() {
		m.expire(id)
	})
	m.timers[id] = timer
	return id, nil
}

// Stop cancels a timer without firing its expiry callback.
func (m *Manager) Stop(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	timer, exists := m.timers[id]
	if !exists {
		return ErrTimerNotFound
	}

	if timer.timer != nil {
		timer.timer.Stop()
	}
	delete(m.timers, id)
	return nil
}

// StopAll cancels every active timer without firing callbacks.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, timer := range m.timers {
		if timer.timer != nil {
			timer.timer.Stop()
		}
		delete(m.timers, id)
	}
}

// Get returns a snapshot of the timer with the given handle, or nil
// when no such timer is active.
func (m *Manager) Get(id uuid.UUID) *Timer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if timer, exists := m.timers[id]; exists {
		return timer.snapshot()
	}
	return nil
}

// Active returns snapshots of all active timers in arbitrary order.
func (m *Manager) Active() []*Timer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Timer, 0, len(m.timers))
	for _, timer := range m.timers {
		result = append(result, timer.snapshot())
	}
	return result
}

// Count returns the number of active timers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers)
}

// OnExpiry sets the callback invoked when a timer fires. The callback
// receives the handle and the duration the timer was armed from.
func (m *Manager) OnExpiry(fn func(id uuid.UUID, value duration.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpiry = fn
}

// expire handles timer expiry.
func (m *Manager) expire(id uuid.UUID) {
	m.mu.Lock()

	timer, exists := m.timers[id]
	if !exists {
		m.mu.Unlock()
		return
	}

	value := timer.Value
	delete(m.timers, id)

	callback := m.onExpiry

	m.mu.Unlock()

	// Call callback outside lock
	if callback != nil {
		callback(id, value)
	}
}

// snapshot copies the timer without its internal time.Timer, so
// callers cannot race the expiry machinery.
func (t *Timer) snapshot() *Timer {
	return &Timer{
		ID:        t.ID,
		StartTime: t.StartTime,
		Delay:     t.Delay,
		Value:     t.Value,
	}
}

// CalculateAccuracy returns the expected accuracy for a given delay.
// Accuracy is +/- 1% or +/- 1 second, whichever is greater.
func CalculateAccuracy(d time.Duration) time.Duration {
	percentAccuracy := time.Duration(float64(d) * float64(AccuracyPercent) / 100)
	if percentAccuracy > AccuracyAbsolute {
		return percentAccuracy
	}
	return AccuracyAbsolute
}
