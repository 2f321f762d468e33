package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/powerschedule/powerschedule/internal/database"
	"github.com/powerschedule/powerschedule/pkg/models"
)

// Queue numbers look like "4.2": group dot subgroup.
var queueNumberRe = regexp.MustCompile(`^\d+\.\d+$`)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage tracked queues",
}

var queueAddCmd = &cobra.Command{
	Use:   "add [name] [number]",
	Short: "Register a queue to track",
	Long: `Registers an outage queue under a display name.
The queue number is the provider's rotation group, e.g. 4.2.`,
	Args: cobra.ExactArgs(2),
	RunE: runQueueAdd,
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked queues",
	RunE:  runQueueList,
}

var queueRemoveCmd = &cobra.Command{
	Use:   "remove [number]",
	Short: "Stop tracking a queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueRemove,
}

var (
	queueSetNotifications bool
	queueSetAutoUpdate    bool
)

var queueSetCmd = &cobra.Command{
	Use:   "set [number]",
	Short: "Toggle notifications or auto-update for a queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueSet,
}

func init() {
	queueSetCmd.Flags().BoolVar(&queueSetNotifications, "notifications", false, "enable shutdown notifications")
	queueSetCmd.Flags().BoolVar(&queueSetAutoUpdate, "auto-update", true, "include the queue in watch refreshes")

	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueRemoveCmd)
	queueCmd.AddCommand(queueSetCmd)
	rootCmd.AddCommand(queueCmd)
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	name, number := args[0], args[1]

	if name == "" {
		return fmt.Errorf("queue name must not be empty")
	}
	if !queueNumberRe.MatchString(number) {
		return fmt.Errorf("invalid queue number %q (expected a format like 4.2)", number)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	q := models.NewPowerQueue(name, number)
	if err := db.AddQueue(q); err != nil {
		return err
	}

	fmt.Printf("Added queue %s (%s)\n", q.Name, q.QueueNumber)
	return nil
}

func runQueueList(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No queues registered. Add one with: powerschedule queue add <name> <number>")
		return nil
	}

	fmt.Printf("%-20s %-8s %-15s %s\n", "NAME", "QUEUE", "NOTIFICATIONS", "AUTO-UPDATE")
	for _, q := range queues {
		fmt.Printf("%-20s %-8s %-15s %s\n", q.Name, q.QueueNumber,
			onOff(q.NotificationsEnabled), onOff(q.AutoUpdateEnabled))
	}
	return nil
}

func runQueueRemove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	q, err := findQueue(db, args[0])
	if err != nil {
		return err
	}

	if err := db.DeleteQueue(q.ID); err != nil {
		return err
	}

	fmt.Printf("Removed queue %s (%s)\n", q.Name, q.QueueNumber)
	return nil
}

func runQueueSet(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	q, err := findQueue(db, args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("notifications") {
		q.NotificationsEnabled = queueSetNotifications
	}
	if cmd.Flags().Changed("auto-update") {
		q.AutoUpdateEnabled = queueSetAutoUpdate
	}

	if err := db.UpdateQueue(*q); err != nil {
		return err
	}

	fmt.Printf("Queue %s: notifications %s, auto-update %s\n", q.QueueNumber,
		onOff(q.NotificationsEnabled), onOff(q.AutoUpdateEnabled))
	return nil
}

// findQueue resolves a registered queue by queue number or id
func findQueue(db *database.DB, key string) (*models.PowerQueue, error) {
	queues, err := db.ListQueues()
	if err != nil {
		return nil, err
	}
	for i := range queues {
		if queues[i].QueueNumber == key || queues[i].ID == key {
			return &queues[i], nil
		}
	}
	return nil, fmt.Errorf("queue %q is not registered", key)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
