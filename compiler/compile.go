package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stealthrocket/cornflakes/schema"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

// Compile generates the message code for each schema file in paths.
//
// Schemas are loaded and generated concurrently, and nothing is written
// unless every one of them succeeded. The generated file of a schema is
// named after it, with its extension replaced by the file suffix, and is
// written next to it unless an output directory was configured.
//
// The package name of a generated file is, in order of precedence, the one
// given by WithPackageName, the name of the Go package already present in
// the output directory, or the package declared by the schema.
func Compile(paths []string, options ...Option) error {
	c := newCompiler(options)
	return c.compile(paths)
}

type compiler struct {
	outputDir   string
	packageName string
	buildTags   string
	suffix      string

	log logrus.FieldLogger
}

func newCompiler(options []Option) *compiler {
	c := &compiler{
		suffix: ".cf.go",
		log:    logrus.StandardLogger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type output struct {
	path   string
	source []byte
}

func (c *compiler) compile(paths []string) error {
	outputs := make([]output, len(paths))

	var group errgroup.Group
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			out, err := c.compileFile(path)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		if err := c.writeFile(out); err != nil {
			return err
		}
	}
	c.log.WithField("files", len(outputs)).Info("done")
	return nil
}

func (c *compiler) compileFile(path string) (output, error) {
	log := c.log.WithField("schema", path)

	log.Debug("loading schema")
	f, err := schema.Load(path)
	if err != nil {
		return output{}, err
	}

	dir := c.outputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	pkg := c.packageName
	if pkg == "" {
		if pkg, err = packageName(dir); err != nil {
			return output{}, err
		}
	}

	gen := *c
	gen.packageName = pkg
	log.WithField("messages", len(f.Messages)).Debug("generating")
	src, err := gen.generate(f)
	if err != nil {
		return output{}, fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return output{path: filepath.Join(dir, base+c.suffix), source: src}, nil
}

// packageName returns the name of the Go package in dir, or an empty string
// if there is none yet.
func packageName(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil || len(matches) == 0 {
		return "", err
	}
	conf := &packages.Config{
		Mode: packages.NeedName,
		Dir:  dir,
	}
	pkgs, err := packages.Load(conf, ".")
	if err != nil {
		return "", fmt.Errorf("packages.Load %q: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return "", nil
	}
	return pkgs[0].Name, nil
}

func (c *compiler) writeFile(out output) error {
	c.log.WithField("file", out.path).Info("writing")
	if err := os.MkdirAll(filepath.Dir(out.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(out.path, out.source, 0644)
}
