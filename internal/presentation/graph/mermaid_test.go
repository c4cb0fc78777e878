package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cellfill/internal/presentation/graph"
	"github.com/aretw0/cellfill/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		seq         domain.Sequence
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name:        "Empty",
			seq:         nil,
			contains:    []string{"graph LR\n"},
			notContains: []string{"classDef"},
		},
		{
			name: "Shapes",
			seq:  domain.Sequence{domain.Alive, domain.Dead, domain.Life},
			contains: []string{
				"c0(\"0: Alive\")",
				"c1[\"1: Dead\"]",
				"c2{{\"2: Life\"}}",
			},
		},
		{
			name: "Chain",
			seq:  domain.Sequence{domain.Alive, domain.Alive},
			contains: []string{
				"c0 --> c1",
			},
			notContains: []string{"c1 --> c2"},
		},
		{
			name: "Tag Classes",
			seq:  domain.Sequence{domain.Alive, domain.Dead, domain.Alive},
			contains: []string{
				"classDef alive fill:#FFF176",
				"class c0,c2 alive;",
				"class c1 dead;",
			},
			notContains: []string{"class  life"},
		},
		{
			name:     "Overlay Current",
			seq:      domain.Sequence{domain.Dead, domain.Dead},
			overlay:  &graph.Overlay{ScrollTo: 1},
			contains: []string{"class c1 current;"},
		},
		{
			name:        "Overlay Out Of Range",
			seq:         domain.Sequence{domain.Dead},
			overlay:     &graph.Overlay{ScrollTo: 5},
			notContains: []string{"current"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.seq, domain.LocaleEN, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output NOT to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}
