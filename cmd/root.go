package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Another0Noob/stagelog/internal/config"
	"github.com/Another0Noob/stagelog/internal/kopisapi"
)

var (
	cfgFile string
	verbose bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "stagelog",
	Short: "Normalize KOPIS performance titles and venues",
	Long: `stagelog normalizes performance titles and venue names as published by
KOPIS, searches the KOPIS open API for performances, and re-normalizes
exported ticket logs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log.Level, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"",
		"path to config file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"enable debug logging",
	)
}

// newLogger writes JSON logs to stderr so command output on stdout stays clean.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zapencCfg := zap.NewProductionEncoderConfig()
	zapencCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	zapLvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		zapLvl = zap.DebugLevel
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zapencCfg),
		zapcore.AddSync(os.Stderr),
		zapLvl,
	)), nil
}

// newClient builds a KOPIS client from the loaded config. wrap, when set,
// decorates the pooled transport.
func newClient(wrap func(http.RoundTripper) http.RoundTripper) (*kopisapi.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rt http.RoundTripper = cleanhttp.DefaultPooledTransport()
	if wrap != nil {
		rt = wrap(rt)
	}

	opts := []kopisapi.Option{
		kopisapi.WithBaseURL(cfg.Kopis.BaseURL),
		kopisapi.WithLogger(logger),
		kopisapi.WithHTTPClient(&http.Client{
			Transport: rt,
			Timeout:   30 * time.Second,
		}),
	}
	if cfg.Kopis.RequestsPerSecond > 0 {
		opts = append(opts, kopisapi.WithRateLimit(cfg.Kopis.RequestsPerSecond, time.Second))
	}

	return kopisapi.NewClient(cfg.Kopis.ServiceKey, opts...), nil
}
