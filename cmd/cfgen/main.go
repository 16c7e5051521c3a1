package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/stealthrocket/cornflakes/compiler"
	"github.com/urfave/cli"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.NewApp()
	app.Name = "cfgen"
	app.Usage = "generate zero-copy serialization code from message schemas"
	app.UsageText = "cfgen [OPTIONS] [SCHEMA...]"
	app.Version = version()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "out, o",
			Usage: "write generated files to `DIR` instead of next to each schema",
		},
		cli.StringFlag{
			Name:  "package, p",
			Usage: "package `NAME` of the generated files",
		},
		cli.StringFlag{
			Name:  "tags",
			Usage: "build constraint `EXPR` attached to the generated files",
		},
		cli.StringFlag{
			Name:  "suffix",
			Value: ".cf.go",
			Usage: "file name `SUFFIX` replacing the schema extension",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log every compilation step",
		},
	}
	app.Action = generate
	return app.Run(args)
}

func generate(c *cli.Context) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if c.Bool("debug") {
		log.SetLevel(logrus.DebugLevel)
	}

	paths := []string(c.Args())
	if len(paths) == 0 {
		// When invoked via go generate, the working directory is the one
		// of the file holding the go:generate directive. Compile every
		// schema found there.
		var err error
		if paths, err = schemas("."); err != nil {
			return err
		}
	}

	return compiler.Compile(paths,
		compiler.WithOutputDir(c.String("out")),
		compiler.WithPackageName(c.String("package")),
		compiler.WithBuildTags(c.String("tags")),
		compiler.WithFileSuffix(c.String("suffix")),
		compiler.WithLogger(log),
	)
}

func schemas(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema in %s", dir)
	}
	return paths, nil
}

func version() (version string) {
	version = "devel"
	if info, ok := debug.ReadBuildInfo(); ok {
		switch info.Main.Version {
		case "":
		case "(devel)":
		default:
			version = info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				version += " " + setting.Value
			}
		}
	}
	return
}
