package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/theapemachine/qwalk"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qwalk",
		Short: "Dirac cellular automaton as a discrete-time quantum walk",
		Long: `qwalk reads two coin angles "theta1,theta2" from stdin, walks a
particle over a 15-vertex path graph for steps 0 to 5 and saves the
occupation probabilities as a heatmap.

Angles are radians or one of the constants 0, pi/4, pi/10, pi/20.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringP("output", "o", qwalk.DefaultOutput, "Heatmap output path")
	flags.Int("steps", qwalk.DefaultSteps, "Number of step counts to simulate, starting at 0")
	flags.Int("workers", qwalk.DefaultSteps, "Concurrent walks")
	flags.String("table", "", "Also write the evolution table as YAML to this path")
	flags.Duration("scheduling-timeout", 10*time.Second, "How long to wait for a free worker")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qwalk version %s\n", version)
		},
	}
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix("qwalk")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	return nil
}

func configFrom(v *viper.Viper) *qwalk.Config {
	cfg := qwalk.NewConfig()
	cfg.Output = v.GetString("output")
	cfg.Steps = v.GetInt("steps")
	cfg.Workers = v.GetInt("workers")
	cfg.TablePath = v.GetString("table")
	cfg.SchedulingTimeout = v.GetDuration("scheduling-timeout")

	return cfg
}

func run(ctx context.Context, in io.Reader, out io.Writer, v *viper.Viper) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := configFrom(v)
	if err := cfg.Validate(); err != nil {
		return err
	}

	line, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read angles: %w", err)
	}

	angles, err := qwalk.ParseAngles(string(line))
	if err != nil {
		return err
	}
	log.Info("parsed angles", "theta1", angles.Theta1, "theta2", angles.Theta2)

	q := qwalk.NewQ(ctx, cfg.Workers, cfg)
	table, err := qwalk.Evolve(ctx, q, angles, cfg.Steps)
	metrics := q.Metrics().ExportMetrics()
	q.Close()
	if err != nil {
		return fmt.Errorf("evolve: %w", err)
	}

	log.Debug("pool metrics", "metrics", metrics)
	if log.GetLevel() <= log.DebugLevel {
		log.Debug("evolution table\n" + spew.Sdump(table.Rows()))
	}

	if cfg.TablePath != "" {
		if err := writeTable(cfg.TablePath, table); err != nil {
			return err
		}
	}

	if err := qwalk.NewHeatmapRenderer(cfg.Output).Render(table); err != nil {
		return err
	}

	fmt.Fprintln(out, "Figure created")

	return nil
}

func writeTable(path string, table *qwalk.Table) error {
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}

	return nil
}
