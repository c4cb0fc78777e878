package domain

import (
	"encoding/json"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old      Sequence
		new      Sequence
		wantDiff *SequenceDiff // nil means we expect no diff
	}{
		{
			name:     "Initial Load (Old is Nil)",
			old:      nil,
			new:      Sequence{Alive},
			wantDiff: &SequenceDiff{SessionID: "sess-1", Appended: Sequence{Alive}, Length: 1},
		},
		{
			name:     "No Changes",
			old:      Sequence{Alive, Dead},
			new:      Sequence{Alive, Dead},
			wantDiff: nil,
		},
		{
			name:     "Spawn Appends Two",
			old:      Sequence{Alive, Alive},
			new:      Sequence{Alive, Alive, Alive, Life},
			wantDiff: &SequenceDiff{SessionID: "sess-1", Appended: Sequence{Alive, Life}, Length: 4},
		},
		{
			name:     "Prune Rewrites Tail",
			old:      Sequence{Dead, Alive, Alive, Dead, Dead},
			new:      Sequence{Dead, Dead, Dead, Dead},
			wantDiff: &SequenceDiff{SessionID: "sess-1", Truncate: 4, Appended: Sequence{Dead, Dead, Dead}, Length: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("sess-1", tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Fatalf("expected nil diff, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected diff, got nil")
			}
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(tt.wantDiff)
			if string(gotJSON) != string(wantJSON) {
				t.Errorf("diff mismatch\n got: %s\nwant: %s", gotJSON, wantJSON)
			}

			applied := got.Apply(tt.old)
			if len(applied) != len(tt.new) {
				t.Fatalf("apply length mismatch: got %v want %v", applied, tt.new)
			}
			for i := range applied {
				if applied[i] != tt.new[i] {
					t.Errorf("apply mismatch at %d: got %v want %v", i, applied, tt.new)
				}
			}
		})
	}
}
