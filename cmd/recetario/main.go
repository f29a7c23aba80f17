// Package main provides the CLI entry point for recetario.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/recetario-go/internal/api"
	"github.com/ukaji3/recetario-go/internal/config"
	"github.com/ukaji3/recetario-go/internal/enhance"
	"github.com/ukaji3/recetario-go/internal/logger"
	"github.com/ukaji3/recetario-go/internal/store"
	"github.com/ukaji3/recetario-go/pkg/recetario"
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"github.com/ukaji3/recetario-go/pkg/recetario/output"
	"github.com/ukaji3/recetario-go/pkg/recetario/parser"
	"go.uber.org/zap"
)

var (
	configPath  string
	logLevel    string
	outputPath  string
	pretty      bool
	policyPath  string
	familiesDir string
	save        bool
	noReports   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recetario",
		Short: "Extract recipe families from Excel workbooks",
		Long: `recetario reads a workbook of recipe sheets (one family per sheet),
finds every ingredient table with its title and process notes, and outputs JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./recetario.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Parse a workbook and print its families as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	parseCmd.Flags().StringVar(&policyPath, "policy", "", "YAML extraction policy (overrides parser.policy_file)")
	parseCmd.Flags().StringVar(&familiesDir, "families-dir", "", "Directory for per-family output files")
	parseCmd.Flags().BoolVar(&save, "save", false, "Persist the families to the configured store")
	parseCmd.Flags().BoolVar(&noReports, "no-reports", false, "Omit per-sheet reports")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&policyPath, "policy", "", "YAML extraction policy (overrides parser.policy_file)")

	enhanceCmd := &cobra.Command{
		Use:   "enhance [recipe-id]",
		Short: "Ask the configured model for suggestions about a stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnhance,
	}
	enhanceCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(parseCmd, serveCmd, enhanceCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.App.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(level, cfg.App.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func extractOptions(cfg *config.Config, log *zap.Logger) (recetario.Options, error) {
	opts := recetario.DefaultOptions()
	opts.Logger = log

	path := cfg.Parser.PolicyFile
	if policyPath != "" {
		path = policyPath
	}
	if path != "" {
		p, err := parser.LoadPolicy(path)
		if err != nil {
			return opts, err
		}
		opts.Policy = p
	}

	include := cfg.Parser.IncludeReports && !noReports
	opts.IncludeReports = &include
	return opts, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := extractOptions(cfg, log)
	if err != nil {
		return err
	}

	cb, err := recetario.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	jsonData, err := output.ToJSON(cb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if familiesDir == "" {
		fmt.Println(string(jsonData))
	}

	if familiesDir != "" {
		if err := writeFamilyFiles(cb, familiesDir); err != nil {
			return fmt.Errorf("failed to write family files: %w", err)
		}
	}

	if save {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Store.Timeout)
		defer cancel()
		st, err := store.New(ctx, cfg.Store, log)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()
		if err := st.Save(ctx, cb.Families); err != nil {
			return fmt.Errorf("failed to save families: %w", err)
		}
		log.Info("families saved", zap.String("driver", cfg.Store.Driver), zap.Int("families", len(cb.Families)))
	}

	return nil
}

// familyFileName turns a sheet name into a safe file name.
func familyFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "family"
	}
	return name + ".json"
}

func writeFamilyFiles(cb *models.Cookbook, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range cb.Families {
		jsonData, err := output.FamilyToJSON(&cb.Families[i], pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, familyFileName(cb.Families[i].Name))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func newEnhancer(cfg *config.Config, log *zap.Logger) *enhance.Service {
	p, err := enhance.NewProvider(cfg.Enhancer)
	if err != nil {
		log.Warn("enhancer disabled, suggestions will use the fallback set", zap.Error(err))
		p = nil
	}
	return enhance.NewService(p, cfg.Enhancer.Timeout, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := extractOptions(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Store.Timeout)
	st, err := store.New(ctx, cfg.Store, log)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewServer(cfg, st, newEnhancer(cfg, log), opts, log).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
			zap.String("enhancer", cfg.Enhancer.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

func runEnhance(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Store.Timeout)
	defer cancel()
	st, err := store.New(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	families, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load families: %w", err)
	}
	r, ok := models.FindRecipe(families, id)
	if !ok {
		return fmt.Errorf("recipe not found: %s", id)
	}

	e := newEnhancer(cfg, log).Enhance(cmd.Context(), r)

	resp := api.EnhancementResponse{RecipeID: r.ID, Enhancement: e}
	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(resp, "", "  ")
	} else {
		jsonData, err = json.Marshal(resp)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}
