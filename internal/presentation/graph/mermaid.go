package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cellfill/pkg/domain"
)

// Overlay contains dynamic data to highlight on the chart.
type Overlay struct {
	// ScrollTo is the index the list view is positioned on; -1 disables it.
	ScrollTo int
}

// GenerateMermaid produces a Mermaid flowchart of a sequence: one node per
// cell, chained left to right in order. Shapes follow the tag:
// - Alive: (Rounded)
// - Dead: [Rectangle]
// - Life: {{Hexagon}}
// Each tag gets a classDef with its display color.
func GenerateMermaid(seq domain.Sequence, locale domain.Locale, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, tag := range seq {
		info := domain.InfoIn(tag, locale)
		opener, closer := "[", "]"
		switch tag {
		case domain.Alive:
			opener, closer = "(", ")"
		case domain.Life:
			opener, closer = "{{", "}}"
		}

		label := strings.ReplaceAll(info.Label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%d: %s\"%s\n", nodeID(i), opener, i, label, closer))
		if i > 0 {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeID(i-1), nodeID(i)))
		}
	}

	if len(seq) > 0 {
		sb.WriteString("\n    %% Tag Styles\n")
		// Force black text (color:#000) for contrast on the light tag colors.
		for _, tag := range domain.Tags {
			sb.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:#555,color:#000;\n", tag, domain.Info(tag).Color))
		}
		for _, tag := range domain.Tags {
			var ids []string
			for i, c := range seq {
				if c == tag {
					ids = append(ids, nodeID(i))
				}
			}
			if len(ids) > 0 {
				sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), tag))
			}
		}
	}

	if overlay != nil && overlay.ScrollTo >= 0 && overlay.ScrollTo < len(seq) {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current stroke:#7B1FA2,stroke-width:4px;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.ScrollTo)))
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("c%d", i)
}
