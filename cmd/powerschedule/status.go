package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/powerschedule/powerschedule/internal/schedule"
	"github.com/powerschedule/powerschedule/internal/timeutil"
	"github.com/powerschedule/powerschedule/pkg/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last fetched state of every queue",
	Long: `Evaluates each queue against its last persisted schedule without
hitting the provider. Run fetch or watch first to populate the data.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	queues, err := db.ListQueues()
	if err != nil {
		return err
	}

	if len(queues) == 0 {
		fmt.Println("No queues registered.")
		return nil
	}

	now := time.Now()

	for i, q := range queues {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s — черга %s\n", q.Name, q.QueueNumber)

		stored, err := db.LoadSchedule(q.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			fmt.Println("  Ще не завантажено. Запустіть: powerschedule fetch " + q.QueueNumber)
			continue
		}

		var shutdowns []models.Shutdown
		if err := json.Unmarshal([]byte(stored.Payload), &shutdowns); err != nil {
			fmt.Printf("  Збережений графік пошкоджено: %v\n", err)
			continue
		}

		data := models.ScheduleData{EventDate: stored.EventDate, Shutdowns: shutdowns}
		state := schedule.Evaluate(data, schedule.IsToday(data, now),
			timeutil.Minutes(now.Hour(), now.Minute()))

		if state.IsPowerOn {
			fmt.Println("  🟢 Світло є")
		} else {
			fmt.Println("  🔴 Світла немає")
		}
		fmt.Printf("  %s\n", state.Preview)
		fmt.Printf("  Оновлено %s\n", humanize.Time(stored.UpdatedAt))
	}

	return nil
}
