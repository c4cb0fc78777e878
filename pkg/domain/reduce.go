package domain

// Rule identifies which pattern rule fired after an append.
type Rule string

const (
	RuleNone  Rule = "none"
	RuleSpawn Rule = "spawn" // Three Alive: a Life cell was appended
	RulePrune Rule = "prune" // Three Dead: the Alive run before them was removed
)

// Outcome describes the effect of one Reduce call.
type Outcome struct {
	Drawn   Tag  `json:"drawn"`
	Rule    Rule `json:"rule"`
	Removed int  `json:"removed,omitempty"`
}

// AppendAndReduce appends the tag generated by draw and applies the pattern
// rules to the last WindowSize cells. The input sequence is not modified.
func AppendAndReduce(seq Sequence, draw bool) Sequence {
	out, _ := Reduce(seq, draw)
	return out
}

// Reduce is AppendAndReduce that also reports which rule fired.
//
// After the append, if the window is all Alive a Life cell is appended. If it
// is all Dead, the contiguous run of Alive cells immediately preceding the
// window is removed; the window itself is kept. Life is neither Alive nor Dead
// so it breaks both runs and stops the removal scan.
func Reduce(seq Sequence, draw bool) (Sequence, Outcome) {
	drawn := FromDraw(draw)
	out := make(Sequence, len(seq), len(seq)+2)
	copy(out, seq)
	out = append(out, drawn)

	outcome := Outcome{Drawn: drawn, Rule: RuleNone}

	window := out.Window()
	switch {
	case window == nil:
	case all(window, Alive):
		out = append(out, Life)
		outcome.Rule = RuleSpawn
	case all(window, Dead):
		end := len(out) - WindowSize
		start := end
		for start > 0 && out[start-1] == Alive {
			start--
		}
		if removed := end - start; removed > 0 {
			out = append(out[:start], out[end:]...)
			outcome.Removed = removed
		}
		outcome.Rule = RulePrune
	}

	return out, outcome
}

func all(window Sequence, t Tag) bool {
	for _, c := range window {
		if c != t {
			return false
		}
	}
	return true
}
