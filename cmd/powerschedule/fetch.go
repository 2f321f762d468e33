package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/powerschedule/powerschedule/internal/app"
	"github.com/powerschedule/powerschedule/internal/notify"
	"github.com/powerschedule/powerschedule/internal/schedule"
	"github.com/powerschedule/powerschedule/internal/timeutil"
	"github.com/powerschedule/powerschedule/pkg/models"
)

var fetchAll bool

var fetchCmd = &cobra.Command{
	Use:   "fetch [number]",
	Short: "Fetch and display the outage schedule for a queue",
	Long: `Fetches the current outage schedule from the provider and renders the
day timeline, totals and power state. With a registered queue the fetched
schedule is also persisted for change detection; a bare queue number works
without registration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every registered queue")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if !fetchAll && len(args) == 0 {
		return fmt.Errorf("pass a queue number or --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	client := newAPIClient(cfg)
	// Fetch never sends notifications; the watch loop owns delivery.
	a := app.NewApp(cfg, client, db, notify.Multi{}, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var targets []models.PowerQueue
	if fetchAll {
		targets, err = db.ListQueues()
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return fmt.Errorf("no queues registered")
		}
	} else {
		q, err := findQueue(db, args[0])
		if err != nil {
			// Not registered: fetch without persistence.
			return fetchTransient(ctx, client, args[0])
		}
		targets = append(targets, *q)
	}

	for i, q := range targets {
		if i > 0 {
			fmt.Println()
		}
		status, err := a.RefreshQueue(ctx, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetching %s (%s): %v\n", q.Name, q.QueueNumber, err)
			continue
		}
		renderStatus(q, status.Selection, status.State)
		if status.Changed {
			fmt.Println("Графік змінився з минулого оновлення.")
		}
	}

	return nil
}

// fetchTransient renders a queue number that is not registered, without
// touching the database.
func fetchTransient(ctx context.Context, client app.Fetcher, number string) error {
	schedules, err := client.FetchSchedules(ctx, number)
	if err != nil {
		return fmt.Errorf("fetching schedule: %w", err)
	}

	now := time.Now()
	selection := schedule.Reconcile(schedules, now)
	q := models.PowerQueue{Name: number, QueueNumber: number}

	var state schedule.PowerState
	if selection.First != nil {
		isToday := schedule.IsToday(*selection.First, now)
		state = schedule.Evaluate(*selection.First, isToday, timeutil.Minutes(now.Hour(), now.Minute()))
	}

	renderStatus(q, selection, state)
	return nil
}

// renderStatus prints the schedule card for one queue: header, info
// rows, per-day timelines and the preview line.
func renderStatus(q models.PowerQueue, selection schedule.DaySelection, state schedule.PowerState) {
	fmt.Printf("%s — черга %s\n", q.Name, q.QueueNumber)

	if selection.First == nil {
		fmt.Println("Немає даних про графік.")
		return
	}

	if state.IsPowerOn {
		fmt.Println("🟢 Світло є")
	} else {
		fmt.Println("🔴 Світла немає")
	}
	fmt.Println(state.Preview)
	fmt.Println()

	renderDay(selection.FirstLabel, *selection.First)
	if selection.HasTwoDays {
		fmt.Println()
		renderDay(selection.SecondLabel, *selection.Second)
	}
}

func renderDay(label string, data models.ScheduleData) {
	fmt.Printf("%s (%s)\n", label, data.EventDate)
	if data.CreatedAt != "" {
		fmt.Printf("  Оновлено: %s\n", data.CreatedAt)
	}
	if data.ApprovedSince != "" {
		fmt.Printf("  Затверджено з: %s\n", data.ApprovedSince)
	}

	fmt.Println("  0     6     12    18    24")
	fmt.Printf("  %s\n", timelineBar(data.HourlyTimeline()))

	if total := data.TotalOutageMinutes(); total > 0 {
		fmt.Printf("  Без світла: %s\n", hoursText(data.TotalHours(), data.RemainingMinutes()))
	} else {
		fmt.Println("  Відключень немає")
	}

	for _, s := range data.Shutdowns {
		fmt.Printf("  %s – %s (%s)\n", s.From, s.To, s.Hours)
	}
}

// timelineBar renders 24 hour slots, one rune per hour.
func timelineBar(timeline []bool) string {
	var b strings.Builder
	for _, on := range timeline {
		if on {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

func hoursText(hours, minutes int) string {
	if minutes == 0 {
		return fmt.Sprintf("%d год", hours)
	}
	return fmt.Sprintf("%d год %d хв", hours, minutes)
}
