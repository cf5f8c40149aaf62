// grftool is a CLI utility for GRF archives and the RSM models inside them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/grf-graphics/internal/assets"
	"github.com/Faultbox/grf-graphics/internal/config"
	"github.com/Faultbox/grf-graphics/internal/logger"
)

// errUsage marks errors that should be followed by the usage text.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// command is one grftool subcommand. args excludes the command name.
type command func(cmd *cli, args []string) error

var commands = map[string]command{
	"info":       cmdInfo,
	"list":       cmdList,
	"ls":         cmdList,
	"extract":    cmdExtract,
	"x":          cmdExtract,
	"search":     cmdSearch,
	"find":       cmdSearch,
	"pack":       cmdPack,
	"config":     cmdConfig,
	"bounds":     cmdBounds,
	"inspect":    cmdInspect,
	"placements": cmdPlacements,
}

// cli carries what every subcommand needs.
type cli struct {
	name   string
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	flags  *config.Flags
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	name := args[0]
	switch name {
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	fn, ok := commands[name]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	return fn(&cli{name: name, stdout: stdout, stderr: stderr}, args[1:])
}

// parse parses the subcommand flags, loads the config and starts logging.
func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	c.flags = config.RegisterFlags(fs)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	cfg, err := config.Load(c.flags)
	if err != nil {
		// The logger is not running yet, so report directly.
		fmt.Fprintf(c.stderr, "grftool %s: %v\n", c.name, err)
		return err
	}
	c.cfg = cfg

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, c.stderr); err != nil {
		fmt.Fprintf(c.stderr, "grftool %s: %v\n", c.name, err)
		return err
	}
	return nil
}

func (c *cli) newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet(c.name, flag.ContinueOnError)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `grftool - Ragnarok Online GRF archive and model utility

Usage:
  grftool <command> [options]

Commands:
  info <file.grf>                       Show archive information
  list <file.grf> [pattern]             List files (optional glob pattern)
  extract <file.grf> <path> [output]    Extract file(s) to directory
  search <file.grf> <pattern>           Search files by name pattern
  pack <dir> <out.grf>                  Pack a directory into a new archive
  config [-save] [-o file]              Print or save the effective config
  bounds [-grf file.grf] [-o out] <model.rsm>
                                        Print the model bounding box
  inspect [-grf file.grf] <model.rsm>   Print per-node transforms
  placements [-grf file.grf] <map.rsw>  List placed models and their boxes

Model options:
  -config file     Config file (default ./grftool.yaml or the user config dir)
  -format text|yaml
  -precision N     Decimal places in text output
  -ground          Rest the box on Y=0
  -reverse-y       Flip the box into map space
  -anim ms         Animation time

Examples:
  grftool info data.grf
  grftool list data.grf "*.rsm"
  grftool bounds -grf data.grf -format yaml data/model/prontera/fountain.rsm
  grftool placements -grf data.grf data/prontera.rsw`)
}

// assets opens the configured archives. Unless an archive was named with
// -grf, files on disk win over archive contents.
func (c *cli) assets() *assets.Manager {
	m := assets.NewManager(c.flags.GRF == "")
	for _, path := range c.cfg.Data.GRFPaths {
		if err := m.AddArchive(path); err != nil {
			logger.Debug("skipping archive", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Debug("opened archive", zap.String("path", path))
	}
	return m
}

// cmdConfig prints the effective configuration, after file and flag
// overrides, and optionally writes it back out.
func cmdConfig(c *cli, args []string) error {
	fs := c.newFlagSet()
	save := fs.Bool("save", false, "Write to the user config directory")
	output := fs.String("o", "", "Write to this file")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	switch {
	case *output != "":
		if err := c.cfg.SaveTo(*output); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("path", *output))
	case *save:
		if err := c.cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
	}
	return writeYAML(c.stdout, c.cfg)
}
