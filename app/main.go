package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Neev4n/emulator-shell-go/internal/config"
	elog "github.com/Neev4n/emulator-shell-go/internal/log"
	"github.com/Neev4n/emulator-shell-go/internal/vfs"
	"github.com/Neev4n/emulator-shell-go/pkg/shell"
)

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var app = &cli.App{
	Name:      "emulator",
	Usage:     "Explores a tar archive as a read-only shell session",
	UsageText: "emulator --user NAME --fs ARCHIVE [--script FILE]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Usage:   "Username shown in the prompt and printed by `who`",
			EnvVars: []string{"EMULATOR_USER"},
		},
		&cli.StringFlag{
			Name:    "fs",
			Usage:   "Path of the tar archive (optionally gzip, bzip2 or xz compressed) to explore",
			EnvVars: []string{"EMULATOR_FS"},
		},
		&cli.StringFlag{
			Name:    "script",
			Usage:   "Path of a script whose commands run before interactive input",
			EnvVars: []string{"EMULATOR_SCRIPT"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path of a YAML file providing defaults for the other flags",
			EnvVars: []string{"EMULATOR_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Level of diagnostic logs written to stderr",
			EnvVars: []string{"EMULATOR_LOG_LEVEL"},
		},
	},
	Action: runAction,
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	logger, err := elog.New(c.App.ErrWriter, cfg.LogLevel)
	if err != nil {
		return cli.Exit(err, 1)
	}

	tree, err := vfs.LoadFile(logger, cfg.FS)
	if err != nil {
		return cli.Exit(err, 1)
	}

	styled := false
	if out, ok := c.App.Writer.(*os.File); ok {
		styled = shell.StyledOutput(out)
	}

	s := shell.New(c.App.Reader, c.App.Writer, c.App.ErrWriter, shell.Options{
		User:      cfg.User,
		Navigator: vfs.NewNavigator(tree),
		Logger:    logger.WithField("user", cfg.User),
		Styled:    styled,
	})
	return s.Run(c.Context, cfg.Script)
}

// loadConfig merges flag and environment values over the optional config file.
func loadConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config

	if configPath := c.String("config"); configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	cfg = cfg.Merge(config.Config{
		User:     c.String("user"),
		FS:       c.String("fs"),
		Script:   c.String("script"),
		LogLevel: c.String("log-level"),
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
