// Command legacy-sync copies every collection of the legacy single-endpoint
// store into PostgreSQL, and can send single mutations back to it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pptq-absensi/config"
	"pptq-absensi/internal/repository"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/database"
	applogger "pptq-absensi/pkg/logger"
	"pptq-absensi/pkg/storeclient"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "legacy-sync",
		Short:        "Import data from the legacy store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml)")

	var storeURL string
	pull := &cobra.Command{
		Use:   "pull",
		Short: "Fetch every collection and upsert it, keeping legacy ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPull(cmd.Context(), configPath, storeURL)
		},
	}
	pull.Flags().StringVar(&storeURL, "url", "", "legacy store URL (overrides legacy.store_url)")
	root.AddCommand(pull)

	send := &cobra.Command{
		Use:   "send <add|update|delete> <collection> <payload-json>",
		Short: "Send one mutation to the legacy store and print its reply",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), configPath, storeURL, cmd.OutOrStdout(), args)
		},
	}
	send.Flags().StringVar(&storeURL, "url", "", "legacy store URL (overrides legacy.store_url)")
	root.AddCommand(send)

	return root
}

func runSend(ctx context.Context, configPath, storeURL string, out io.Writer, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storeURL != "" {
		cfg.Legacy.StoreURL = storeURL
	}
	client, err := storeclient.New(cfg.Legacy.StoreURL, cfg.Legacy.Timeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return send(ctx, client, out, args[0], args[1], args[2])
}

// send validates one mutation locally, posts it and writes the indented reply to out.
func send(ctx context.Context, client *storeclient.Client, out io.Writer, action, kind, payload string) error {
	act := storeclient.Action(action)
	switch act {
	case storeclient.ActionAdd, storeclient.ActionUpdate, storeclient.ActionDelete:
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if !storeclient.IsCollection(kind) {
		return fmt.Errorf("unknown collection %q", kind)
	}
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("payload is not valid JSON")
	}

	reply, err := client.Call(ctx, act, kind, json.RawMessage(payload))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, reply, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(out)
	return err
}

func runPull(ctx context.Context, configPath, storeURL string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storeURL != "" {
		cfg.Legacy.StoreURL = storeURL
	}

	logger, err := applogger.NewLogger(&cfg.Log, "legacy-sync")
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := storeclient.New(cfg.Legacy.StoreURL, cfg.Legacy.Timeout)
	if err != nil {
		return err
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewRepository(db)
	report, err := service.NewSyncService(client, repo, repo, logger).Pull(ctx)
	if err != nil {
		logger.Error("legacy pull failed", zap.Error(err))
		return err
	}

	names := make([]string, 0, len(report.Collections))
	for name := range report.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-16s %d\n", name, report.Collections[name])
	}
	return nil
}
