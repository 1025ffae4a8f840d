package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sergheevdev/event-bus/internal/bus"
	"github.com/sergheevdev/event-bus/internal/demo"
	"github.com/sergheevdev/event-bus/internal/manager"
)

func demoCmd(st *state) *cobra.Command {
	var (
		posts int
		start int
		note  string
		trace bool
	)
	cmd := &cobra.Command{
		Use:     "demo",
		Short:   "Post counter events through a bus and print the results",
		Example: "  evbus demo --posts 3\n  evbus demo --concurrent --note hello",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if posts < 0 {
				return fmt.Errorf("--posts must not be negative, got %d", posts)
			}
			lifecycle := manager.NewMemoryPublisher()
			opts := []bus.Option{
				bus.WithPublisher(lifecycle),
				bus.WithLogger(&st.log),
				bus.WithListeners(&demo.CounterListener{Name: "counter"}, demo.NewJournal(&st.log)),
			}
			if st.cfg.Concurrent {
				opts = append(opts, bus.WithConcurrent())
			}
			b, err := bus.New(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ev := &demo.Counter{Value: start}
			for i := 1; i <= posts; i++ {
				if err := b.Post(ev); err != nil {
					return fmt.Errorf("post %d: %w", i, err)
				}
				fmt.Fprintf(out, "post %d: %d\n", i, ev.Value)
			}
			if note != "" {
				if err := b.Post(&demo.Note{Text: note}); err != nil {
					return fmt.Errorf("post note: %w", err)
				}
				fmt.Fprintf(out, "note: %s\n", note)
			}

			snap := b.Manager().Snapshot()
			fmt.Fprintf(out, "variant=%s listeners=%d handlers=%d\n", snap.Variant, snap.Listeners, snap.Handlers)
			if trace {
				for _, e := range lifecycle.Events() {
					fmt.Fprintf(out, "lifecycle: %s %s\n", e.Name, e.Listener)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&posts, "posts", 3, "Number of counter events to post")
	cmd.Flags().IntVar(&start, "start", 10, "Initial counter value")
	cmd.Flags().StringVar(&note, "note", "", "Also post a note with this text")
	cmd.Flags().BoolVar(&trace, "lifecycle", false, "Print the manager lifecycle events at the end")
	return cmd
}
