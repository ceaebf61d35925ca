package tt_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/tt"
	"github.com/stretchr/testify/assert"
)

func TestTableReadAfterWrite(t *testing.T) {
	table := tt.New(1024)

	table.Write(12345, 0xDEADBEEF)
	data, ok := table.Read(12345)
	assert.True(t, ok)
	assert.Equal(t, uint64(0xDEADBEEF), data)
}

func TestTableMissOnUnwrittenSlot(t *testing.T) {
	table := tt.New(1024)
	_, ok := table.Read(999)
	assert.False(t, ok)
}

func TestTableReadVerifiesHash(t *testing.T) {
	table := tt.New(16)

	table.Write(5, 0xAAAA)
	// A different hash that collides on the same slot (mod 16) must not
	// read back the other key's data.
	_, ok := table.Read(21)
	assert.False(t, ok)
}

func TestSearchTableRoundTrip(t *testing.T) {
	table := tt.NewSearchTable(1024)
	e := tt.Entry{Score: int32(42), Age: 3, Depth: 7, Move: position.NewMove(position.NewSquare(4, 2), position.NewSquare(4, 4), position.PromoNone)}

	table.Store(777, e)
	got, ok := table.Probe(777)
	assert.True(t, ok)
	assert.Equal(t, e, got)
}

func TestSearchTableReplacementPolicy(t *testing.T) {
	table := tt.NewSearchTable(1024)

	deep := tt.Entry{Score: 1, Age: 1, Depth: 10, Move: position.NewMove(1, 2, position.PromoNone)}
	table.Store(1, deep)

	// Same age, shallower depth: must not overwrite.
	shallow := tt.Entry{Score: 2, Age: 1, Depth: 3, Move: position.NewMove(3, 4, position.PromoNone)}
	table.Store(1, shallow)

	got, ok := table.Probe(1)
	assert.True(t, ok)
	assert.Equal(t, deep, got)

	// A new search generation always overwrites, regardless of depth.
	newer := tt.Entry{Score: 3, Age: 2, Depth: 1, Move: position.NewMove(5, 6, position.PromoNone)}
	table.Store(1, newer)

	got, ok = table.Probe(1)
	assert.True(t, ok)
	assert.Equal(t, newer, got)
}

func TestTableRoundTripsNegativeScore(t *testing.T) {
	table := tt.New(64)
	score := int32(-77)
	table.Write(99, uint64(uint32(score)))

	data, ok := table.Read(99)
	assert.True(t, ok)
	assert.Equal(t, int32(-77), int32(uint32(data)))
}
