package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
	"github.com/BrandonKowalski/curtain/pkg/curtain/boot"
	"github.com/BrandonKowalski/curtain/pkg/curtain/config"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies shared by every command.
type Runner struct {
	manifest *config.Manifest
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Manifest *config.Manifest
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a Runner. The manifest is loaded by Before when not given.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		manifest: opts.Manifest,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, validateCommand, runCommand, bootCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// Before loads the manifest and applies the logging overrides.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Args().First() == "init" {
		return ctx, nil
	}

	m, err := config.LoadOrDefault(cmd.String("manifest"))
	if err != nil {
		return ctx, err
	}
	if level := cmd.String("log-level"); level != "" {
		m.Log.Level = level
	}
	if format := cmd.String("log-format"); format != "" {
		m.Log.Format = format
	}

	r.manifest = m
	return ctx, nil
}

// InitManifest writes the example manifest.
func (r *Runner) InitManifest(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if err := config.CreateManifestFile(path); err != nil {
		return err
	}
	r.logger.Info("manifest created", "path", path)
	return nil
}

// Validate prints what the manifest declares.
func (r *Runner) Validate(ctx context.Context, cmd *cli.Command) error {
	m := r.manifest
	fmt.Fprintf(r.output, "view type: %s\n", m.ViewType())
	fmt.Fprintf(r.output, "starting page: %s\n", m.UI.StartingPage)
	fmt.Fprintf(r.output, "fade: in %s, out %s\n", m.UI.FadeIn.Duration, m.UI.FadeOut.Duration)
	for _, p := range m.Pages {
		fmt.Fprintf(r.output, "page %s (%s)\n", p.ID, p.Path)
	}
	for _, w := range m.Widgets {
		fmt.Fprintf(r.output, "widget %s (%s) priority=%d startup=%t\n", w.ID, w.Path, w.Priority, w.ShowOnStartup)
	}
	for _, d := range m.Data {
		fmt.Fprintf(r.output, "data %s -> %s\n", d.ID, d.LinkedTo)
	}
	return nil
}

// Run awakens a manager for the manifest and plays the steps.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	steps, err := parseSteps(cmd.Args().Slice())
	if err != nil {
		return err
	}

	opts := r.options()
	if cmd.Bool("instant") {
		opts.Transition = transition.Instant()
	}

	m := curtain.Init(opts)
	defer curtain.Close()

	r.preload(m)
	m.Awaken()
	settle(m)
	r.play(m, steps, !cmd.Bool("no-settle"))
	return nil
}

// Boot loads content behind a text loading screen, then prints the state.
func (r *Runner) Boot(ctx context.Context, cmd *cli.Command) error {
	bundle, err := boot.NewBundle()
	if err != nil {
		return err
	}

	var loaderOpts []boot.LoaderOption
	if roots := cmd.StringSlice("root"); len(roots) > 0 {
		loaderOpts = append(loaderOpts, boot.WithRoots(roots...))
	}

	m := curtain.Init(r.options())
	defer curtain.Close()
	r.preload(m)

	seq := &boot.Sequence{
		Loader:  boot.NewLoader(os.DirFS(cmd.String("content")), loaderOpts...),
		Screen:  boot.NewTextScreen(r.output, boot.NewMessages(bundle, localeTag(cmd.String("lang")))),
		Manager: m,
	}
	if _, err := seq.Run(ctx); err != nil {
		return fmt.Errorf("boot failed: %w", err)
	}

	settle(m)
	fmt.Fprintln(r.output, describe(m))
	return nil
}

func (r *Runner) options() curtain.Options {
	return r.manifest.Options(buildPage, buildWidget)
}

// preload instantiates every declared element so Awaken can put widgets
// marked show_on_startup on screen.
func (r *Runner) preload(m *curtain.Manager) {
	for _, p := range r.manifest.Pages {
		m.GetPage(p.ID)
	}
	for _, w := range r.manifest.Widgets {
		m.GetWidget(w.ID)
	}
	r.logger.Debug("manifest preloaded", "pages", len(r.manifest.Pages), "widgets", len(r.manifest.Widgets))
}

// localeTag turns POSIX locales like "fr_FR.UTF-8" into BCP 47 tags.
func localeTag(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	return strings.ReplaceAll(locale, "_", "-")
}
