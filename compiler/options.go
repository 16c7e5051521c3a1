package compiler

import "github.com/sirupsen/logrus"

// Option configures the compiler.
type Option func(*compiler)

// WithOutputDir instructs the compiler to write generated files to dir
// instead of the directory of each schema.
func WithOutputDir(dir string) Option {
	return func(c *compiler) { c.outputDir = dir }
}

// WithPackageName overrides the package name of generated files.
func WithPackageName(name string) Option {
	return func(c *compiler) { c.packageName = name }
}

// WithBuildTags instructs the compiler to attach the specified build
// tags to generated files.
func WithBuildTags(buildTags string) Option {
	return func(c *compiler) { c.buildTags = buildTags }
}

// WithFileSuffix sets the suffix replacing the extension of a schema file
// to name the generated file. The default is ".cf.go".
func WithFileSuffix(suffix string) Option {
	return func(c *compiler) { c.suffix = suffix }
}

// WithLogger sets the logger reporting compilation progress.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *compiler) { c.log = log }
}
