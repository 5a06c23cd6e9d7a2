package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/vm"
)

var serialPrograms = [](struct {
	name    string
	program []int64
	phases  []int64
	signal  int64
}){
	{"43210",
		[]int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0},
		[]int64{4, 3, 2, 1, 0}, 43210},
	{"54321",
		[]int64{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23,
			99, 0, 0},
		[]int64{0, 1, 2, 3, 4}, 54321},
	{"65210",
		[]int64{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1,
			33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0},
		[]int64{1, 0, 4, 3, 2}, 65210},
}

var feedbackPrograms = [](struct {
	name    string
	program []int64
	phases  []int64
	signal  int64
}){
	{"139629729",
		[]int64{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1,
			28, 1005, 28, 6, 99, 0, 0, 5},
		[]int64{9, 8, 7, 6, 5}, 139629729},
	{"18216",
		[]int64{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
			-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
			53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10},
		[]int64{9, 7, 8, 5, 6}, 18216},
}

func TestSerial(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range serialPrograms {
		signal, err := Serial(context.Background(), entry.program, entry.phases, 0)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, signal, entry.name)
	}
}

func TestMaxSignal_Serial(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range serialPrograms {
		best, order, err := MaxSignal(context.Background(), entry.program, []int64{0, 1, 2, 3, 4}, false)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, best, entry.name)
		assert.Equal(entry.phases, order, entry.name)
	}
}

func TestFeedback(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range feedbackPrograms {
		fb, err := NewFeedback(entry.program, entry.phases)
		assert.NoError(err, entry.name)
		assert.Len(fb.Stages, 5)

		signal, err := fb.Run(context.Background(), 0)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, signal, entry.name)

		for n, stage := range fb.Stages {
			assert.True(stage.Halted(), "%v stage %d", entry.name, n)
		}
	}
}

func TestMaxSignal_Feedback(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range feedbackPrograms {
		best, order, err := MaxSignal(context.Background(), entry.program, []int64{5, 6, 7, 8, 9}, true)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, best, entry.name)
		assert.Equal(entry.phases, order, entry.name)
	}
}

// Without feedback, a ring must agree with the straight line simulation
// for every phase ordering.
func TestFeedback_MatchesSerial(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range serialPrograms {
		for perm := range internal.Permutations([]int64{0, 1, 2, 3, 4}) {
			serial, err := Serial(context.Background(), entry.program, perm, 0)
			assert.NoError(err)

			fb, err := NewFeedback(entry.program, perm)
			assert.NoError(err)
			ring, err := fb.Run(context.Background(), 0)
			assert.NoError(err)

			assert.Equal(serial, ring, "%v %v", entry.name, perm)
		}
	}
}

// Drives a ring directly through vm.Machine.Step, one value per stage
// per cycle, and compares with Feedback.
func TestFeedback_MatchesStep(t *testing.T) {
	require := require.New(t)

	for _, entry := range feedbackPrograms {
		machines := make([]*vm.Machine, len(entry.phases))
		for n, phase := range entry.phases {
			machines[n] = vm.New(entry.program)
			out, err := machines[n].Step(phase)
			require.NoError(err)
			require.Equal(vm.OUTPUT_SUSPENDED, out.Kind)
		}

		var signal int64
	cycle:
		for {
			for _, m := range machines {
				out, err := m.Step(signal)
				require.NoError(err)
				if out.Kind == vm.OUTPUT_HALTED {
					break cycle
				}
				require.Equal(vm.OUTPUT_PRODUCED, out.Kind)
				signal = out.Value
			}
		}

		fb, err := NewFeedback(entry.program, entry.phases)
		require.NoError(err)
		ring, err := fb.Run(context.Background(), 0)
		require.NoError(err)

		require.Equal(signal, ring, entry.name)
		require.Equal(entry.signal, signal, entry.name)
	}
}

func TestErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFeedback([]int64{99}, nil)
	assert.ErrorIs(err, ErrNoStages)

	_, err = Serial(context.Background(), []int64{99}, nil, 0)
	assert.ErrorIs(err, ErrNoStages)

	_, _, err = MaxSignal(context.Background(), []int64{99}, nil, true)
	assert.ErrorIs(err, ErrNoStages)

	// Halts without output.
	_, err = Serial(context.Background(), []int64{3, 0, 3, 0, 99}, []int64{1, 2}, 0)
	assert.ErrorIs(err, ErrNoSignal)

	fb, err := NewFeedback([]int64{3, 0, 3, 0, 99}, []int64{1})
	assert.NoError(err)
	_, err = fb.Run(context.Background(), 0)
	assert.ErrorIs(err, ErrNoSignal)

	// Every stage waits for a second input that never comes.
	fb, err = NewFeedback([]int64{3, 0, 3, 0, 3, 0, 99}, []int64{1, 2})
	assert.NoError(err)
	_, err = fb.Run(context.Background(), 0)
	assert.ErrorIs(err, ErrStalled)

	// Faults are located by stage.
	fb, err = NewFeedback([]int64{3, 0, 3, 0, 42}, []int64{1, 2})
	assert.NoError(err)
	_, err = fb.Run(context.Background(), 0)
	assert.ErrorIs(err, vm.ErrUnknownOpcode)
	var stage *ErrStage
	if assert.ErrorAs(err, &stage) {
		assert.Equal(0, stage.Stage)
	}
}

func TestCancel(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb, err := NewFeedback([]int64{1105, 1, 0}, []int64{0})
	assert.NoError(err)

	_, err = fb.Run(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
}
