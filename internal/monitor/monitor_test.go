package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNeverPanics(t *testing.T) {
	var m Monitor = NoOp{}
	stop := m.StartOp("x")
	stop()
	m.EndOp("x", time.Millisecond)
	m.Sample("y", 1.0)
}

func TestRecorderAggregatesOps(t *testing.T) {
	r := NewRecorder()
	r.EndOp("csg.subtract", 10*time.Millisecond)
	r.EndOp("csg.subtract", 20*time.Millisecond)

	ops, _ := r.Snapshot()
	require.Len(t, ops, 1)
	assert.Equal(t, "csg.subtract", ops[0].Name)
	assert.Equal(t, int64(2), ops[0].Count)
	assert.Equal(t, 10*time.Millisecond, ops[0].Min)
	assert.Equal(t, 20*time.Millisecond, ops[0].Max)
	assert.Equal(t, 15*time.Millisecond, ops[0].Mean)
}

func TestRecorderStartOpMeasuresElapsed(t *testing.T) {
	r := NewRecorder()
	stop := r.StartOp("parse")
	time.Sleep(5 * time.Millisecond)
	stop()

	ops, _ := r.Snapshot()
	require.Len(t, ops, 1)
	assert.GreaterOrEqual(t, ops[0].Min, 5*time.Millisecond)
}

func TestRecorderAggregatesSamples(t *testing.T) {
	r := NewRecorder()
	r.Sample("cache.hitrate", 0.5)
	r.Sample("cache.hitrate", 0.9)

	_, samples := r.Snapshot()
	require.Len(t, samples, 1)
	assert.Equal(t, "cache.hitrate", samples[0].Name)
	assert.InDelta(t, 0.7, samples[0].Mean, 1e-9)
	assert.Equal(t, 0.5, samples[0].Min)
	assert.Equal(t, 0.9, samples[0].Max)
}

func TestRecorderSnapshotIsSortedAndStable(t *testing.T) {
	r := NewRecorder()
	r.EndOp("z", time.Millisecond)
	r.EndOp("a", time.Millisecond)

	ops, _ := r.Snapshot()
	require.Len(t, ops, 2)
	assert.Equal(t, "a", ops[0].Name)
	assert.Equal(t, "z", ops[1].Name)
}
