// Command fobcheck runs a self-test against the configured FOB storage.
//
// Usage:
//
//	fobcheck [FILE|OBJECT]
//
// The mode argument overrides storage.mode from the config file and the
// environment (STORAGE_MODE). Scratch items are written under a random
// prefix and removed before the command exits.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/fobstore/bootstrap"
	"github.com/kbukum/fobstore/config"
	"github.com/kbukum/fobstore/storage"
	"github.com/kbukum/fobstore/storage/local"
	"github.com/kbukum/fobstore/storage/minio"
	"github.com/kbukum/fobstore/storage/s3"
)

const serviceName = "fobcheck"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
	exitUsage  = 4
)

// Config is the fobcheck configuration. FOB_STORAGE, COS_* and MINIO_*
// bind to the fob, cos and minio sections.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
	FOB     local.Config   `yaml:"fob" mapstructure:"fob"`
	COS     s3.Config      `yaml:"cos" mapstructure:"cos"`
	MinIO   minio.Config   `yaml:"minio" mapstructure:"minio"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.FOB.ApplyDefaults()
	c.COS.ApplyDefaults()
	c.MinIO.ApplyDefaults()
}

// Validate checks the base and storage sections and the selected provider.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	switch pc := c.ProviderConfig().(type) {
	case *local.Config:
		return pc.Validate()
	case *s3.Config:
		return pc.Validate()
	case *minio.Config:
		return pc.Validate()
	}
	return nil
}

// ProviderConfig returns the section for the selected provider.
func (c *Config) ProviderConfig() any {
	switch c.Storage.Provider {
	case storage.ProviderS3:
		return &c.COS
	case storage.ProviderMinIO:
		return &c.MinIO
	default:
		return &c.FOB
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	mode, ok := parseArgs(args)
	if !ok {
		usage(stderr, args[0])
		return exitUsage
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}
	if mode != "" {
		cfg.Storage.Mode = mode
		if mode == storage.ModeObject && strings.EqualFold(cfg.Storage.Provider, storage.ProviderLocal) {
			cfg.Storage.Provider = ""
		}
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}

	store := storage.NewComponent(cfg.Storage, cfg.ProviderConfig(), app.Logger)
	if err := app.RegisterComponent(store); err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}

	err = app.RunTask(ctx, func(ctx context.Context) error {
		return check(ctx, store.FOB(), stdout)
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailed
	}
	fmt.Fprintln(stdout, "Congratulations")
	return exitOK
}

// check runs the scratch self-test, then reports on the live root.
func check(ctx context.Context, fob *storage.FOB, out io.Writer) error {
	if !fob.Available() {
		return fmt.Errorf("%s backend is unavailable", fob.Provider())
	}
	fmt.Fprintln(out, "Testing:", serviceName, fob.Mode())

	st := newSelfTest(fob, scratchPrefix(), out)
	runErr := st.run(ctx)
	cleanupErr := st.cleanup(context.WithoutCancel(ctx))
	if runErr != nil {
		return runErr
	}
	if cleanupErr != nil {
		return cleanupErr
	}

	fmt.Fprintln(out, len(fob.List(ctx, storage.ListOptions{})))
	printBillKeys(fob, out)
	return nil
}

// scratchPrefix returns a prefix no live item uses. It holds no path
// separator so it is a valid name start for every backend.
func scratchPrefix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "fobcheck-" + id[:12] + "-"
}

func parseArgs(args []string) (string, bool) {
	switch len(args) {
	case 0, 1:
		return "", true
	case 2:
		mode := strings.ToUpper(args[1])
		if mode == storage.ModeFile || mode == storage.ModeObject {
			return mode, true
		}
	}
	return "", false
}

func usage(w io.Writer, prog string) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ", prog)
	fmt.Fprintln(w, "  ", prog, "OPTION    Specify FILE or OBJECT")
}
