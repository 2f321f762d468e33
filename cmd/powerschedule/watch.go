package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/powerschedule/powerschedule/internal/app"
)

var watchInterval int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the provider and notify about changes and upcoming shutdowns",
	Long: `Runs a refresh loop over all auto-update queues. Schedule changes and
upcoming shutdowns are delivered through the notifiers enabled in the config
(Telegram, MQTT). Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchInterval, "interval", "i", 0, "refresh interval in minutes (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchInterval > 0 {
		cfg.UpdateIntervalMinutes = watchInterval
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	notifier, closeNotifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	logger := log.New(os.Stdout, "[watch] ", log.LstdFlags)
	a := app.NewApp(cfg, newAPIClient(cfg), db, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := cfg.GetUpdateInterval()
	logger.Printf("Starting watch, refreshing every %d minutes", interval)

	a.RefreshAll(ctx)

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %dm", interval), func() {
		a.RefreshAll(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}
	c.Start()

	<-ctx.Done()
	logger.Println("Shutting down...")
	<-c.Stop().Done()

	return nil
}
