package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/browse"
	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/config"
	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend"
	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend/inline"
	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend/tree"
	"github.com/LISSConsulting/LISSTech.Flux/internal/git"
	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
	"github.com/LISSConsulting/LISSTech.Flux/internal/logging"
	"github.com/LISSConsulting/LISSTech.Flux/internal/runtime"
	"github.com/LISSConsulting/LISSTech.Flux/internal/selection"
	"github.com/LISSConsulting/LISSTech.Flux/internal/state"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
	"github.com/LISSConsulting/LISSTech.Flux/internal/worker"
)

// objectsDir holds the object log inside a repository.
const objectsDir = ".flux"

// session is everything a command needs besides its own flags.
type session struct {
	cfg      *config.Config
	home     string
	frontend config.FrontendKind
	dir      string // repository root
	git      *git.Runner
	repo     *cob.JSONL
	log      pslog.Logger
	closeLog func() error
}

// openSession loads the settings, opens the log file and the object log of
// the repository g.repo belongs to. The returned context carries the logger.
func openSession(ctx context.Context, g *globalFlags) (*session, context.Context, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return nil, ctx, err
	}
	kind := cfg.UI.Frontend
	if g.frontend != "" {
		if kind, err = config.ParseFrontendKind(g.frontend); err != nil {
			return nil, ctx, err
		}
	}
	home, err := config.Home()
	if err != nil {
		return nil, ctx, err
	}

	logger, closeLog, err := logging.Open(logging.Options{
		Dir:   filepath.Join(home, config.LogsDir),
		Level: cfg.Log.Level,
	})
	if err != nil {
		return nil, ctx, err
	}
	ctx = pslog.ContextWithLogger(ctx, logger)

	dir, err := git.NewRunner(g.repo).TopLevel(ctx)
	if err != nil {
		closeLog()
		return nil, ctx, fmt.Errorf("%s is not inside a git repository: %w", g.repo, err)
	}
	project := config.DetectProjectName(dir)
	repo, err := cob.OpenJSONL(ctx, filepath.Join(dir, objectsDir), project)
	if err != nil {
		closeLog()
		return nil, ctx, err
	}

	logger.Debug("session opened", "repo", dir, "project", project, "frontend", kind.String())
	return &session{
		cfg:      cfg,
		home:     home,
		frontend: kind,
		dir:      dir,
		git:      git.NewRunner(dir),
		repo:     repo,
		log:      logger,
		closeLog: closeLog,
	}, ctx, nil
}

func (s *session) Close() {
	if err := s.repo.Close(); err != nil {
		s.log.Warn("close object log failed", "err", err)
	}
	_ = s.closeLog()
}

// executeSelect runs a selector and writes the selection to stderr.
func executeSelect(cmd *cobra.Command, g *globalFlags, opts browse.Options) error {
	s, ctx, err := openSession(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer s.Close()

	if !input.IsTerminal(os.Stdin) {
		return errors.New("flux select needs an interactive terminal")
	}

	var saved *state.FileStore
	if s.cfg.State.Persist {
		saved, err = state.NewFileStore(
			filepath.Join(s.home, config.StatesDir),
			state.Identifier(opts.Kind.String(), "select", s.dir),
		)
		if err != nil {
			return err
		}
		prev, loadErr := state.Load[browse.Saved](saved)
		switch {
		case loadErr == nil:
			opts.Selected = prev.Selected
		case !errors.Is(loadErr, state.ErrNoState):
			s.log.Warn("ignoring saved state", "path", saved.Path(), "err", loadErr)
		}
	}

	opts.WorkDir = s.dir
	initial, err := browse.Load(ctx, s.repo, opts)
	if err != nil {
		return err
	}

	processors := []worker.Processor[browse.Message]{
		&browse.DetailsProcessor{Kind: opts.Kind, Repo: s.repo, History: s.git},
	}
	if saved != nil {
		processors = append(processors, &browse.PersistProcessor{Store: saved})
	}

	app := runtime.App[browse.State, browse.Message, selection.Selection]{
		State:      initial,
		Frontend:   newFrontend(s.frontend, s.cfg.UI),
		Processors: processors,
		Init:       browse.Init(initial),
		TickRate:   s.cfg.Store.TickRate(),
	}
	if s.cfg.Store.ChangeDetection {
		app.Equal = browse.Equal
	}

	reason, err := runtime.Run(ctx, app)
	if err != nil {
		return err
	}
	if reason.HasPayload() {
		if err := selection.Write(cmd.ErrOrStderr(), *reason.Payload); err != nil {
			return err
		}
	}
	if code := runtime.ExitCode(reason, nil); code != runtime.ExitOK {
		return exitStatus(code)
	}
	return nil
}

// newFrontend builds the frontend of the given kind on stdin and stdout.
func newFrontend(kind config.FrontendKind, cfg config.UIConfig) frontend.Frontend[browse.State, browse.Message] {
	theme := newTheme(cfg)
	if kind == config.FrontendInline {
		return &inline.Frontend[browse.State, browse.Message]{
			App:    browse.NewCompact(theme),
			In:     os.Stdin,
			Out:    os.Stdout,
			Height: cfg.InlineHeight,
			Tick:   cfg.RenderTick(),
		}
	}
	return &tree.Frontend[browse.State, browse.Message]{
		Root:      browse.NewPage(theme),
		In:        os.Stdin,
		Out:       os.Stdout,
		AltScreen: cfg.AltScreen,
	}
}

func newTheme(cfg config.UIConfig) ui.Theme {
	dark := true
	switch cfg.Theme {
	case config.ThemeLight:
		dark = false
	case config.ThemeAuto:
		dark = lipgloss.HasDarkBackground()
	}
	return ui.NewTheme(cfg.AccentColor, dark)
}

// executeNewIssue records an issue and prints its id.
func executeNewIssue(cmd *cobra.Command, g *globalFlags, n cob.NewIssue) error {
	s, _, err := openSession(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer s.Close()

	issue, err := s.repo.CreateIssue(n)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), issue.ID)
	return nil
}

// executeNewPatch resolves the revisions, records a patch and prints its id.
func executeNewPatch(cmd *cobra.Command, g *globalFlags, n cob.NewPatch) error {
	s, ctx, err := openSession(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer s.Close()

	if n.Head == "" {
		n.Head = "HEAD"
		if branch, berr := s.git.CurrentBranch(ctx); berr == nil && branch != "" {
			n.Head = branch
		}
	}
	if n.Head, err = s.git.ResolveRevision(ctx, n.Head); err != nil {
		return err
	}
	if n.Base, err = s.git.ResolveRevision(ctx, n.Base); err != nil {
		return err
	}
	patch, err := s.repo.CreatePatch(n)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), patch.ID)
	return nil
}

// executeSetState applies a state change and prints the resulting state.
func executeSetState(cmd *cobra.Command, g *globalFlags, set func(cob.Writer) (string, error)) error {
	s, _, err := openSession(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := set(s.repo)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st)
	return nil
}
