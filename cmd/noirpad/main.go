// noirpad is a terminal playground for Noir-style circuits: edit inputs,
// watch expressions evaluate through the compiled circuit evaluator, and
// inspect results without leaving the shell.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"noirpad/internal/abi"
	"noirpad/internal/config"
	"noirpad/internal/eval"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "noirpad",
	Short: "Terminal playground for Noir circuits",
	Long: `noirpad renders one input field per circuit parameter, classifies each
field's text as literal or expression, and evaluates expressions through the
compiled circuit evaluator as you type.

Run without arguments to start the interactive playground.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Keep process logs off the TUI's stdout.
		cfg.OutputPaths = []string{"stderr"}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlayground(cmd.Context())
	},
}

func runPlayground(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	params, err := loadParameters(cfg)
	if err != nil {
		return err
	}

	var evaluator eval.Evaluator
	if cfg.Eval.WASMPath != "" {
		wasmEval, err := eval.NewWASMEvaluator(ctx, cfg.Eval.WASMPath, logger)
		if err != nil {
			return fmt.Errorf("load evaluator: %w", err)
		}
		defer wasmEval.Close(ctx)
		evaluator = wasmEval
	} else {
		logger.Warn("no evaluator module configured; expression fields will report it missing")
	}

	var program *tea.Program

	orch := eval.NewOrchestrator(evaluator,
		eval.WithTimeout(cfg.EvalTimeout()),
		eval.WithLogger(logger),
		eval.WithNotify(func(field string, r eval.Result) {
			if program != nil {
				program.Send(resultMsg(field, r))
			}
		}),
	)
	defer orch.Wait()

	app := newAppModel(params, orch)
	program = tea.NewProgram(app, tea.WithAltScreen())

	if cfg.Eval.SourcePath != "" {
		watcher, err := eval.NewWatcher(cfg.Eval.SourcePath, func() {
			program.Send(sourceChangedMsg{})
		}, logger)
		if err != nil {
			logger.Warn("circuit source not watched", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	_, err = program.Run()
	return err
}

// loadParameters derives the input fields from the circuit source's main
// signature, falling back to a demo circuit when no source is available.
func loadParameters(cfg config.Config) ([]abi.Parameter, error) {
	source, err := os.ReadFile(cfg.Eval.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no circuit source; using demo parameters",
				zap.String("path", cfg.Eval.SourcePath))
			return demoParameters(), nil
		}
		return nil, fmt.Errorf("read circuit source: %w", err)
	}

	params, err := abi.ParseSignature(string(source))
	if err != nil {
		return nil, fmt.Errorf("parse circuit source: %w", err)
	}
	return params, nil
}

func demoParameters() []abi.Parameter {
	return []abi.Parameter{
		abi.NewParameter("x", "Field", false),
		abi.NewParameter("y", "Field", true),
		abi.NewParameter("arr", "[Field; 3]", false),
	}
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "noirpad.yaml", "path to config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
