package searchctl_test

import (
	"testing"
	"time"

	"github.com/nkoppel/rootchego/internal/searchctl"
	"github.com/stretchr/testify/assert"
)

func TestTimeControlLimits(t *testing.T) {
	tests := []struct {
		name     string
		tc       searchctl.TimeControl
		wantSoft time.Duration
		wantHard time.Duration
	}{
		{
			name: "per-move share dominates a small increment",
			tc: searchctl.TimeControl{
				White:     30 * time.Second,
				WhiteInc:  100 * time.Millisecond,
				MovesToGo: 30,
			},
			// remaining/moves = 1s dominates the 100ms increment, so
			// max() picks the per-move share.
			wantSoft: 1 * time.Second * 6 / 10,
			wantHard: 1*time.Second - 3*time.Millisecond,
		},
		{
			name: "a large increment dominates a small per-move share",
			tc: searchctl.TimeControl{
				White:     1 * time.Second,
				WhiteInc:  5 * time.Second,
				MovesToGo: 30,
			},
			// remaining/moves = 33ms, well under inc=5s, so max() picks
			// the increment -- not their sum, per spec.md's
			// "max(time/movestogo, inc)" formula.
			wantSoft: 5 * time.Second * 6 / 10,
			// but the hard limit can never exceed what's actually left on
			// the clock, minus the safety margin: remaining=1s here, so
			// the 5s increment-derived allocation must be clamped down.
			wantHard: 1*time.Second - 3*time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			soft, hard := tt.tc.Limits(false)
			assert.Equal(t, tt.wantSoft, soft)
			assert.Equal(t, tt.wantHard, hard)
		})
	}
}

func TestTimeControlLimitsUsesBlackSide(t *testing.T) {
	tc := searchctl.TimeControl{
		White:     10 * time.Second,
		Black:     2 * time.Second,
		BlackInc:  500 * time.Millisecond,
		MovesToGo: 20,
	}
	_, hard := tc.Limits(true)
	assert.LessOrEqual(t, hard, 2*time.Second-3*time.Millisecond)
}
