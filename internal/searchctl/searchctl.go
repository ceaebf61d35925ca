// Package searchctl holds the dynamic, per-search options a UCI "go"
// command carries and the time-control math that turns them into a
// deadline, independent of how the search itself is run.
package searchctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the options of a single "go" command.
type Options struct {
	// DepthLimit, if set, caps the search to this many plies.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, derives soft/hard deadlines from remaining clock.
	TimeControl lang.Optional[TimeControl]
	// MoveTime, if set, overrides everything else with a fixed think time.
	MoveTime lang.Optional[time.Duration]
	// Chess960 selects the castling move encoding for this search's root.
	Chess960 bool
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.MoveTime.V(); ok {
		parts = append(parts, fmt.Sprintf("movetime=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// TimeControl is the clock state reported by a "go" command: remaining time
// and increment for each side, and how many moves remain until the next
// control (0 means the rest of the game).
type TimeControl struct {
	White, Black         time.Duration
	WhiteInc, BlackInc   time.Duration
	MovesToGo            int
}

// movesToGoDefault is assumed when the protocol does not say, matching the
// convention of budgeting for a mid-length remaining game.
const movesToGoDefault = 30

// safetyMargin is subtracted from the hard limit so a thread actually
// returns its best move to the UCI layer before the GUI's own clock fires.
const safetyMargin = 3 * time.Millisecond

// Limits returns the soft limit (after which no new iterative-deepening
// depth should be started) and the hard limit (by which the search must
// have returned), for the side to move.
func (t TimeControl) Limits(black bool) (time.Duration, time.Duration) {
	remaining, inc := t.White, t.WhiteInc
	if black {
		remaining, inc = t.Black, t.BlackInc
	}

	moves := t.MovesToGo
	if moves <= 0 {
		moves = movesToGoDefault
	}

	alloc := remaining / time.Duration(moves)
	if inc > alloc {
		alloc = inc
	}
	if alloc < 0 {
		alloc = 0
	}

	hard := alloc - safetyMargin
	if maxHard := remaining - safetyMargin; hard > maxHard {
		hard = maxHard
	}
	if hard < 0 {
		hard = 0
	}
	soft := alloc * 6 / 10
	return soft, hard
}

func (t TimeControl) String() string {
	if t.MovesToGo == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.MovesToGo)
}

// Deadline resolves opt into a single hard wall-clock deadline for black (if
// black is true) or white to move: MoveTime wins outright, otherwise the
// time control's hard limit applies, otherwise the search runs untimed
// (zero Time, meaning "rely on DepthLimit alone").
func Deadline(opt Options, black bool, now time.Time) (time.Time, bool) {
	if v, ok := opt.MoveTime.V(); ok {
		d := v - safetyMargin
		if d < 0 {
			d = 0
		}
		return now.Add(d), true
	}
	if v, ok := opt.TimeControl.V(); ok {
		_, hard := v.Limits(black)
		return now.Add(hard), true
	}
	return time.Time{}, false
}
