package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exitNoRecord is the exit status of a read that found no record.
const exitNoRecord = 2

// cli carries the configuration shared by every subcommand.
type cli struct {
	v          *viper.Viper
	configFile string
}

// NewRootCommand builds the nvstore command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "nvstore",
		Short: "Inspect and edit a TPM state directory",
		Long: "nvstore reads, writes and deletes the records of a TPM state directory " +
			"using the same atomic write and locking protocol as the emulator.",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.initConfig()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default: ~/.config/nvstore/config.yaml)")
	pf.String("dir", "", "state directory (default: $TPM_PATH)")
	pf.String("tpm-version", "1", "state layout version (1 or 2)")
	pf.String("mode", "0640", "permission mode of record files")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text or json)")

	_ = c.v.BindPFlag("dir", pf.Lookup("dir"))
	_ = c.v.BindPFlag("tpm_version", pf.Lookup("tpm-version"))
	_ = c.v.BindPFlag("mode", pf.Lookup("mode"))
	_ = c.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = c.v.BindPFlag("log_format", pf.Lookup("log-format"))

	rootCmd.AddCommand(
		newCheckCmd(c),
		newListCmd(c),
		newGetCmd(c),
		newPutCmd(c),
		newRemoveCmd(c),
	)

	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if errors.Is(err, nvstore.ErrRetry) {
			os.Exit(exitNoRecord)
		}
		os.Exit(1)
	}
}

func (c *cli) initConfig() error {
	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	} else {
		c.v.AddConfigPath(configDir())
		c.v.SetConfigName("config")
		c.v.SetConfigType("yaml")
	}

	c.v.SetEnvPrefix("NVSTORE")
	c.v.AutomaticEnv()
	_ = c.v.BindEnv("dir", "NVSTORE_DIR", "TPM_PATH")

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nvstore")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "nvstore")
	}
	return ".nvstore"
}

// options translates the resolved configuration into store options.
func (c *cli) options(stderr io.Writer) ([]nvstore.Option, error) {
	version, err := nvstore.ParseVersion(c.v.GetString("tpm_version"))
	if err != nil {
		return nil, err
	}

	mode, err := strconv.ParseUint(c.v.GetString("mode"), 8, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: mode %q is not octal", nvstore.ErrInvalidConfig, c.v.GetString("mode"))
	}

	logger, err := c.logger(stderr)
	if err != nil {
		return nil, err
	}

	return []nvstore.Option{
		nvstore.WithVersion(version),
		nvstore.WithMode(os.FileMode(mode)),
		nvstore.WithLogger(logger),
	}, nil
}

func (c *cli) logger(w io.Writer) (*nvstore.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	hopts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.v.GetString("log_format")) {
	case "text":
		return nvstore.NewLogger(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return nvstore.NewLogger(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.v.GetString("log_format"))
	}
}

// open prepares the configured state directory. The caller must close it.
func (c *cli) open(cmd *cobra.Command) (*nvstore.Dir, error) {
	root := c.v.GetString("dir")
	if root == "" {
		return nil, errors.New("no state directory: set --dir, NVSTORE_DIR or TPM_PATH")
	}

	opts, err := c.options(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return nvstore.Prepare(root, opts...)
}

// withDir runs fn against the prepared state directory and releases it
// afterwards.
func (c *cli) withDir(cmd *cobra.Command, fn func(*nvstore.Dir) error) (err error) {
	dir, err := c.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dir.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(dir)
}
