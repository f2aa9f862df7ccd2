package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "Path to the manifest file; defaults to $CURTAIN_MANIFEST or the built-in example",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Engine log level (debug, info, warn, error); overrides the manifest",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Engine log format (json or text); overrides the manifest",
		},
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the example manifest to a file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:  "path",
				Value: "manifest.toml",
			},
		},
		Action: r.InitManifest,
	}
}

func validateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "Check the manifest and list what it declares",
		Action: r.Validate,
	}
}

func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Awaken the manager and apply steps, printing the state after each",
		ArgsUsage: "[step ...]",
		Description: `Steps are trigger actions such as open_page:levels, show_widget:toast,
toggle_widget:pause, hide_all_widgets or close_page, plus:

   back, forward     walk the page history
   view:<type>       switch the view type (keyboard, gamepad, mobile)
   tick:<duration>   advance transitions, e.g. tick:150ms
   settle            advance until no transition is running`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "instant",
				Usage: "Ignore the manifest fades and apply every step instantly",
			},
			&cli.BoolFlag{
				Name:  "no-settle",
				Usage: "Do not finish running transitions after each step",
			},
		},
		Action: r.Run,
	}
}

func bootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "boot",
		Usage: "Load content with a progress screen, then open the starting page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "content",
				Usage: "Directory containing the content roots",
				Value: ".",
			},
			&cli.StringSliceFlag{
				Name:  "root",
				Usage: "Content root inside the content directory (repeatable)",
			},
			&cli.StringFlag{
				Name:    "lang",
				Usage:   "Language for progress text",
				Sources: cli.EnvVars("LANG"),
			},
		},
		Action: r.Boot,
	}
}
