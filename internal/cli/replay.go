package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/cellfill"
	"github.com/aretw0/cellfill/internal/presentation/tui"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/random"
)

// ReplayOptions configures a scripted run.
type ReplayOptions struct {
	Locale domain.Locale
	Color  bool
	Trace  bool // Print one line per draw before the final list
	Count  int  // Creates to perform; 0 uses every draw in the script
}

// Replay runs the draws in script through a fresh generator and renders the
// resulting list. It returns the final sequence. Asking for more creates than
// the script holds fails with random.ErrScriptExhausted.
func Replay(ctx context.Context, w io.Writer, script string, opts ReplayOptions) (domain.Sequence, error) {
	src, err := random.ParseScript(script)
	if err != nil {
		return nil, err
	}

	gen := cellfill.New(cellfill.WithSource(src))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if opts.Trace {
		fmt.Fprintln(tw, "#\tDRAWN\tRULE\tREMOVED\tLENGTH\t")
	}
	n := opts.Count
	if n <= 0 {
		n = src.Len()
	}
	for i := 1; i <= n; i++ {
		outcome, err := gen.Create(ctx)
		if err != nil {
			return nil, err
		}
		if opts.Trace {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t\n", i, outcome.Drawn, outcome.Rule, outcome.Removed, gen.Len())
		}
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("%d creates requested, script has %d draws: %w", n, src.Len(), err)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	if opts.Trace {
		fmt.Fprintln(w)
	}

	theme := tui.NewTheme(w, opts.Locale, 0, opts.Color)
	fmt.Fprint(w, theme.List(gen.Cells(), tui.NewViewport(0)))
	return gen.Cells(), nil
}
