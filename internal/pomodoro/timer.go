// Package pomodoro implements the work/break focus cycle.
package pomodoro

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

var ErrSwitchWhileActive = errors.New("pomodoro: session type can only change while idle")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// LongBreakEvery is the number of completed work sessions between long breaks.
const LongBreakEvery = 4

// Timer is driven by the caller: Start/Pause/Stop/Reset follow user input and
// Tick is called once per second while running.
type Timer struct {
	prefs         model.Preferences
	status        Status
	sessionType   model.SessionType
	remaining     int
	completedWork int
	taskID        string
	current       *model.PomodoroSession
	newID         func() string
	onComplete    func(model.PomodoroSession)
}

// NewTimer returns an idle work timer. onComplete may be nil.
func NewTimer(prefs model.Preferences, newID func() string, onComplete func(model.PomodoroSession)) *Timer {
	t := &Timer{
		prefs:       prefs,
		status:      StatusIdle,
		sessionType: model.SessionWork,
		newID:       newID,
		onComplete:  onComplete,
	}
	t.remaining = t.lengthSeconds()
	return t
}

func (t *Timer) Status() Status { return t.status }
func (t *Timer) Type() model.SessionType { return t.sessionType }
func (t *Timer) CompletedWork() int { return t.completedWork }
func (t *Timer) TaskID() string { return t.taskID }
func (t *Timer) Remaining() time.Duration { return time.Duration(t.remaining) * time.Second }
func (t *Timer) Length() time.Duration { return time.Duration(t.lengthSeconds()) * time.Second }
func (t *Timer) Preferences() model.Preferences { return t.prefs }

// Session returns a copy of the open session, if any.
func (t *Timer) Session() (model.PomodoroSession, bool) {
	if t.current == nil {
		return model.PomodoroSession{}, false
	}
	return *t.current, true
}

// Progress is the elapsed fraction of the current session in [0,1].
func (t *Timer) Progress() float64 {
	total := t.lengthSeconds()
	if total <= 0 {
		return 0
	}
	return float64(total-t.remaining) / float64(total)
}

// SetTask attaches later sessions to a task. An empty id means no task.
func (t *Timer) SetTask(taskID string) {
	t.taskID = taskID
}

// SetPreferences updates session lengths. An idle timer with no open session
// picks up the new length immediately.
func (t *Timer) SetPreferences(prefs model.Preferences) {
	t.prefs = prefs
	if t.status == StatusIdle && t.current == nil {
		t.remaining = t.lengthSeconds()
	}
}

// Start runs the countdown, opening a session when none is open. Starting a
// paused timer resumes the existing session.
func (t *Timer) Start(now time.Time) {
	if t.status == StatusRunning {
		return
	}
	if t.current == nil {
		t.current = &model.PomodoroSession{
			ID:        t.newID(),
			TaskID:    t.taskID,
			StartTime: now,
			Duration:  t.prefs.SessionMinutes(t.sessionType),
			Type:      t.sessionType,
		}
	}
	if t.remaining <= 0 {
		t.remaining = t.lengthSeconds()
	}
	t.status = StatusRunning
}

func (t *Timer) Pause() {
	if t.status == StatusRunning {
		t.status = StatusPaused
	}
}

// Tick counts down one second. It reports true when the tick completed the
// session; the session is then logged through the completion callback and
// the timer advances to the next session type in the idle state.
func (t *Timer) Tick(now time.Time) bool {
	if t.status != StatusRunning {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return false
	}
	t.complete(now)
	return true
}

// Stop abandons the open session without logging it.
func (t *Timer) Stop() {
	t.status = StatusIdle
	t.current = nil
	t.remaining = t.lengthSeconds()
}

// Reset stops the timer and clears the completed work count.
func (t *Timer) Reset() {
	t.Stop()
	t.completedWork = 0
}

func (t *Timer) SwitchType(st model.SessionType) error {
	if !st.IsValid() {
		return fmt.Errorf("pomodoro: invalid session type %q", st)
	}
	if t.status != StatusIdle {
		return fmt.Errorf("%w: timer is %s", ErrSwitchWhileActive, t.status)
	}
	t.sessionType = st
	t.current = nil
	t.remaining = t.lengthSeconds()
	return nil
}

func (t *Timer) complete(now time.Time) {
	finished := *t.current
	end := now
	finished.EndTime = &end
	finished.Completed = true
	t.current = nil
	t.status = StatusIdle

	if finished.Type == model.SessionWork {
		t.completedWork++
		if t.completedWork%LongBreakEvery == 0 {
			t.sessionType = model.SessionLongBreak
		} else {
			t.sessionType = model.SessionShortBreak
		}
	} else {
		t.sessionType = model.SessionWork
	}
	t.remaining = t.lengthSeconds()

	if t.onComplete != nil {
		t.onComplete(finished)
	}
}

func (t *Timer) lengthSeconds() int {
	return t.prefs.SessionMinutes(t.sessionType) * 60
}
