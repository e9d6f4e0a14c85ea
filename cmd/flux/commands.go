package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Flux/internal/browse"
	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/config"
)

// selectFlags are the flags every select command has.
type selectFlags struct {
	mode   string
	search string
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "operation", "what to return: operation or id")
	cmd.Flags().StringVar(&f.search, "search", "", "initial search")
}

func (f *selectFlags) options(kind browse.Kind) (browse.Options, error) {
	mode, err := browse.ParseMode(f.mode)
	if err != nil {
		return browse.Options{}, err
	}
	return browse.Options{Kind: kind, Mode: mode, Search: f.search}, nil
}

func inboxCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Browse notifications",
	}

	var (
		sf      selectFlags
		sortBy  string
		reverse bool
	)
	sel := &cobra.Command{
		Use:   "select",
		Short: "Select a notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options(browse.KindInbox)
			if err != nil {
				return err
			}
			field, err := cob.ParseSortField(sortBy)
			if err != nil {
				return err
			}
			opts.Sort = cob.SortBy{Field: field, Reverse: reverse}
			return executeSelect(cmd, g, opts)
		},
	}
	sf.register(sel)
	sel.Flags().StringVar(&sortBy, "sort-by", "timestamp", "sort by id or timestamp")
	sel.Flags().BoolVar(&reverse, "reverse", false, "reverse the sort order")

	cmd.AddCommand(sel)
	return cmd
}

func issueCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Browse and open issues",
	}

	var (
		sf    selectFlags
		state string
	)
	sel := &cobra.Command{
		Use:   "select",
		Short: "Select an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options(browse.KindIssues)
			if err != nil {
				return err
			}
			if opts.Issues, err = cob.ParseIssueFilter(state); err != nil {
				return err
			}
			return executeSelect(cmd, g, opts)
		},
	}
	sf.register(sel)
	sel.Flags().StringVar(&state, "state", "open", "open, closed or all")

	var nf newFlags
	create := &cobra.Command{
		Use:   "new",
		Short: "Open an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeNewIssue(cmd, g, cob.NewIssue{
				Title:  nf.title,
				Author: nf.authorOrUser(),
				Body:   nf.body,
				Labels: nf.labels,
			})
		},
	}
	nf.register(create)
	create.Flags().StringVar(&nf.body, "body", "", "issue description")

	setState := &cobra.Command{
		Use:   "state <id> <open|closed>",
		Short: "Open or close an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cob.ParseIssueState(args[1])
			if err != nil {
				return err
			}
			return executeSetState(cmd, g, func(w cob.Writer) (string, error) {
				issue, err := w.SetIssueState(args[0], st)
				return issue.State.String(), err
			})
		},
	}

	cmd.AddCommand(sel, create, setState)
	return cmd
}

func patchCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Browse and propose patches",
	}

	var (
		sf    selectFlags
		state string
	)
	sel := &cobra.Command{
		Use:   "select",
		Short: "Select a patch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options(browse.KindPatches)
			if err != nil {
				return err
			}
			if opts.Patches, err = cob.ParsePatchFilter(state); err != nil {
				return err
			}
			return executeSelect(cmd, g, opts)
		},
	}
	sf.register(sel)
	sel.Flags().StringVar(&state, "state", "open", "open, draft, merged, archived or all")

	var (
		nf         newFlags
		base, head string
	)
	create := &cobra.Command{
		Use:   "new",
		Short: "Propose a patch from a git revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeNewPatch(cmd, g, cob.NewPatch{
				Title:  nf.title,
				Author: nf.authorOrUser(),
				Base:   base,
				Head:   head,
				Labels: nf.labels,
			})
		},
	}
	nf.register(create)
	create.Flags().StringVar(&base, "base", "main", "revision the patch applies to")
	create.Flags().StringVar(&head, "head", "", "revision holding the change (default: current branch)")

	setState := &cobra.Command{
		Use:   "state <id> <state>",
		Short: "Mark a patch open, draft, merged or archived",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cob.ParsePatchState(args[1])
			if err != nil {
				return err
			}
			return executeSetState(cmd, g, func(w cob.Writer) (string, error) {
				patch, err := w.SetPatchState(args[0], st)
				return patch.State.String(), err
			})
		},
	}

	cmd.AddCommand(sel, create, setState)
	return cmd
}

// newFlags are the flags shared by the new commands.
type newFlags struct {
	title  string
	author string
	body   string
	labels []string
}

func (f *newFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title (required)")
	cmd.Flags().StringVar(&f.author, "author", "", "author (default $USER)")
	cmd.Flags().StringSliceVar(&f.labels, "label", nil, "label, repeatable")
	_ = cmd.MarkFlagRequired("title")
}

func (f *newFlags) authorOrUser() string {
	if f.author != "" {
		return f.author
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold the flux home directory (config, logs, states)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.Home()
			if err != nil {
				return err
			}
			created, err := config.Scaffold(home)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintln(out, "All files already exist — nothing to create.")
				return nil
			}
			for _, path := range created {
				fmt.Fprintf(out, "Created %s\n", path)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flux version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flux %s\n", version)
		},
	}
}
