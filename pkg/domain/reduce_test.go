package domain_test

import (
	"testing"

	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/stretchr/testify/assert"
)

const (
	A = domain.Alive
	D = domain.Dead
	L = domain.Life
)

// run applies the draws in order starting from seq.
func run(seq domain.Sequence, draws ...bool) domain.Sequence {
	for _, d := range draws {
		seq = domain.AppendAndReduce(seq, d)
	}
	return seq
}

func TestAppendAndReduce_ShortSequencesOnlyAppend(t *testing.T) {
	cases := []domain.Sequence{
		nil,
		{},
		{A},
		{D},
		{L},
		{A, D},
		{D, A},
	}
	for _, seq := range cases {
		for _, draw := range []bool{true, false} {
			got := domain.AppendAndReduce(seq, draw)
			want := append(seq.Clone(), domain.FromDraw(draw))
			if len(seq) == 2 && seq[0] == seq[1] && seq[0] == domain.FromDraw(draw) {
				continue // third equal cell completes a window
			}
			assert.Equal(t, want, got, "seq=%v draw=%v", seq, draw)
		}
	}
}

func TestAppendAndReduce_ThreeAliveSpawnLife(t *testing.T) {
	got := run(nil, true, true, true)
	assert.Equal(t, domain.Sequence{A, A, A, L}, got)
}

func TestAppendAndReduce_ThreeDeadFromEmpty(t *testing.T) {
	got := run(nil, false, false, false)
	assert.Equal(t, domain.Sequence{D, D, D}, got)
}

func TestAppendAndReduce_LifeBreaksDeadWindow(t *testing.T) {
	seq := domain.Sequence{A, A}

	seq = domain.AppendAndReduce(seq, true)
	assert.Equal(t, domain.Sequence{A, A, A, L}, seq)

	seq = domain.AppendAndReduce(seq, false)
	assert.Equal(t, domain.Sequence{A, A, A, L, D}, seq)

	seq = domain.AppendAndReduce(seq, false)
	assert.Equal(t, domain.Sequence{A, A, A, L, D, D}, seq)
	assert.Len(t, seq, 6)
}

func TestAppendAndReduce_PruneAliveRunBeforeWindow(t *testing.T) {
	seq := domain.Sequence{A, A, A, D}
	seq = run(seq, false, false)
	assert.Equal(t, domain.Sequence{D, D, D}, seq)
}

func TestAppendAndReduce_PruneStopsAtNonAlive(t *testing.T) {
	tests := []struct {
		name string
		seq  domain.Sequence
		want domain.Sequence
	}{
		{"life halts scan", domain.Sequence{D, L, A, A, D, D}, domain.Sequence{D, L, D, D, D}},
		{"dead halts scan", domain.Sequence{A, D, A, D, D}, domain.Sequence{A, D, D, D, D}},
		{"nothing to remove", domain.Sequence{L, D, D}, domain.Sequence{L, D, D, D}},
		{"whole prefix", domain.Sequence{A, A, D, D}, domain.Sequence{D, D, D}},
		{"longer dead run", domain.Sequence{A, D, D, D}, domain.Sequence{A, D, D, D, D}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := domain.Reduce(tt.seq, false)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, domain.RulePrune, outcome.Rule)
			assert.Equal(t, len(tt.seq)+1-len(tt.want), outcome.Removed)
		})
	}
}

func TestAppendAndReduce_WindowsOverlap(t *testing.T) {
	// A fourth Alive after a Life does not spawn again: Life breaks the run.
	seq := run(nil, true, true, true, true, true)
	assert.Equal(t, domain.Sequence{A, A, A, L, A, A}, seq)

	seq = domain.AppendAndReduce(seq, true)
	assert.Equal(t, domain.Sequence{A, A, A, L, A, A, A, L}, seq)
}

func TestAppendAndReduce_DoesNotMutateInput(t *testing.T) {
	seq := domain.Sequence{A, A, D, D}
	before := seq.Clone()

	_ = domain.AppendAndReduce(seq, false)
	assert.Equal(t, before, seq)

	withRoom := make(domain.Sequence, 2, 8)
	withRoom[0], withRoom[1] = A, A
	_ = domain.AppendAndReduce(withRoom, true)
	assert.Equal(t, domain.Sequence{A, A}, withRoom)
	assert.Equal(t, domain.Tag(0), withRoom[:3][2], "backing array untouched")
}

func TestAppendAndReduce_QuietGrowth(t *testing.T) {
	seq := domain.Sequence{A, D, A}
	got, outcome := domain.Reduce(seq, false)
	assert.Equal(t, domain.RuleNone, outcome.Rule)
	assert.Equal(t, len(seq)+1, len(got))
	assert.Equal(t, seq, got[:len(seq)])
}

func TestReduce_Outcome(t *testing.T) {
	_, o := domain.Reduce(domain.Sequence{A, A}, true)
	assert.Equal(t, domain.Outcome{Drawn: A, Rule: domain.RuleSpawn}, o)

	_, o = domain.Reduce(domain.Sequence{A, D, D}, false)
	assert.Equal(t, domain.Outcome{Drawn: D, Rule: domain.RulePrune, Removed: 1}, o)

	_, o = domain.Reduce(nil, true)
	assert.Equal(t, domain.Outcome{Drawn: A, Rule: domain.RuleNone}, o)
}

func TestSequence_LastIndex(t *testing.T) {
	assert.Equal(t, -1, domain.Sequence(nil).LastIndex())
	assert.Equal(t, 3, run(nil, true, true, true).LastIndex())
}
