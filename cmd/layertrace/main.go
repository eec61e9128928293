// Command layertrace inspects compositor trace dumps: it rebuilds layer
// hierarchies, diffs frames, and runs visibility checks over captures.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surfkit/layertrace/assertion"
	"github.com/surfkit/layertrace/diff"
	"github.com/surfkit/layertrace/dump"
	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
	"github.com/surfkit/layertrace/trace"
)

// buildFlags are the hierarchy options shared by every subcommand.
type buildFlags struct {
	ignoreVirtual   bool
	ignoreUnmatched bool
	tolerateOrphans bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.ignoreVirtual, "ignore-virtual", false,
		"drop virtual displays and their layer stacks")
	cmd.Flags().BoolVar(&f.ignoreUnmatched, "ignore-unmatched-stacks", false,
		"drop layer roots whose stack matches no display")
	cmd.Flags().BoolVar(&f.tolerateOrphans, "tolerate-orphans", false,
		"drop orphan layers instead of failing")
}

func (f *buildFlags) options() []snapshot.BuildOption {
	var opts []snapshot.BuildOption
	if f.ignoreVirtual {
		opts = append(opts, snapshot.IgnoreVirtualDisplays())
	}
	if f.ignoreUnmatched {
		opts = append(opts, snapshot.IgnoreLayersStackMatchNoDisplay())
	}
	if f.tolerateOrphans {
		opts = append(opts, snapshot.WithOrphanPolicy(func(o *layers.Layer) bool {
			fmt.Fprintf(os.Stderr, "warning: dropping orphan layer %s (parent id %d)\n", o, o.ParentID)
			return true
		}))
	}
	return opts
}

func loadSnapshot(path string, opts []snapshot.BuildOption) (*snapshot.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := dump.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	snap, err := doc.Snapshot(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

func newShowCmd() *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "show DUMP",
		Short: "Rebuild a dump's layer hierarchy and print it as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0], flags.options())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", snap)
			for _, d := range snap.Displays {
				fmt.Fprintf(cmd.OutOrStdout(), "display %s\n", d)
			}
			fmt.Fprint(cmd.OutOrStdout(), snap.TreeString())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDiffCmd() *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "diff BEFORE AFTER",
		Short: "Show the structural difference between two dumps",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadSnapshot(args[0], flags.options())
			if err != nil {
				return err
			}
			after, err := loadSnapshot(args[1], flags.options())
			if err != nil {
				return err
			}
			r := diff.Snapshots(before, after)
			fmt.Fprint(cmd.OutOrStdout(), r.String())
			if !r.Empty() {
				// Distinguish "differs" from "failed" for scripting.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return fmt.Errorf("snapshots differ")
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags buildFlags
	var visible []string
	var phases []string
	cmd := &cobra.Command{
		Use:   "check DUMP...",
		Short: "Run visibility assertions over an ordered series of dumps",
		Long: `Check loads the given dumps in order as one trace and evaluates assertions
against it. --visible NAME requires the layer to be visible in every entry;
--then NAME builds a sequential transition: each named layer must become
visible for a contiguous run of entries, in the given order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]*snapshot.Snapshot, 0, len(args))
			for _, path := range args {
				snap, err := loadSnapshot(path, flags.options())
				if err != nil {
					return err
				}
				entries = append(entries, snap)
			}
			tr, err := trace.New(entries...)
			if err != nil {
				return err
			}

			for _, name := range visible {
				if err := assertion.Verify(tr, assertion.LayerIsVisible(name)); err != nil {
					return err
				}
			}
			if len(phases) > 0 {
				seq := assertion.NewSequence()
				for _, name := range phases {
					seq.Then(assertion.LayerIsVisible(name))
				}
				if err := seq.Evaluate(tr); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d entries checked\n", tr.Len())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&visible, "visible", nil,
		"layer name that must be visible in every entry (repeatable)")
	cmd.Flags().StringArrayVar(&phases, "then", nil,
		"layer name for the next phase of a sequential transition (repeatable)")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "layertrace",
		Short:         "Inspect and check compositor trace dumps",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newShowCmd(), newDiffCmd(), newCheckCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
