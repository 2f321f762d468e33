package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/powerschedule/powerschedule/pkg/models"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queues (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		queue_number TEXT NOT NULL,
		notifications_enabled INTEGER DEFAULT 0,
		auto_update_enabled INTEGER DEFAULT 1,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_queues_number ON queues(queue_number);

	CREATE TABLE IF NOT EXISTS schedules (
		queue_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		event_date TEXT,
		updated_at TEXT NOT NULL
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// AddQueue stores a new tracked queue
func (db *DB) AddQueue(q models.PowerQueue) error {
	query := `
	INSERT INTO queues (id, name, queue_number, notifications_enabled, auto_update_enabled, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(query, q.ID, q.Name, q.QueueNumber,
		boolToInt(q.NotificationsEnabled), boolToInt(q.AutoUpdateEnabled), createdAt)
	if err != nil {
		return fmt.Errorf("inserting queue: %w", err)
	}

	return nil
}

// GetQueue retrieves a queue by id
func (db *DB) GetQueue(id string) (*models.PowerQueue, error) {
	query := `
	SELECT id, name, queue_number, notifications_enabled, auto_update_enabled
	FROM queues
	WHERE id = ?
	`

	row := db.conn.QueryRow(query, id)

	var q models.PowerQueue
	var notifications, autoUpdate int
	err := row.Scan(&q.ID, &q.Name, &q.QueueNumber, &notifications, &autoUpdate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying queue: %w", err)
	}

	q.NotificationsEnabled = notifications != 0
	q.AutoUpdateEnabled = autoUpdate != 0
	return &q, nil
}

// ListQueues retrieves all tracked queues in insertion order
func (db *DB) ListQueues() ([]models.PowerQueue, error) {
	query := `
	SELECT id, name, queue_number, notifications_enabled, auto_update_enabled
	FROM queues
	ORDER BY created_at
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying queues: %w", err)
	}
	defer rows.Close()

	var results []models.PowerQueue
	for rows.Next() {
		var q models.PowerQueue
		var notifications, autoUpdate int

		if err := rows.Scan(&q.ID, &q.Name, &q.QueueNumber, &notifications, &autoUpdate); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		q.NotificationsEnabled = notifications != 0
		q.AutoUpdateEnabled = autoUpdate != 0
		results = append(results, q)
	}

	return results, rows.Err()
}

// UpdateQueue updates a queue's name and toggles
func (db *DB) UpdateQueue(q models.PowerQueue) error {
	query := `
	UPDATE queues
	SET name = ?, queue_number = ?, notifications_enabled = ?, auto_update_enabled = ?
	WHERE id = ?
	`

	_, err := db.conn.Exec(query, q.Name, q.QueueNumber,
		boolToInt(q.NotificationsEnabled), boolToInt(q.AutoUpdateEnabled), q.ID)
	if err != nil {
		return fmt.Errorf("updating queue: %w", err)
	}

	return nil
}

// DeleteQueue removes a queue and its stored schedule
func (db *DB) DeleteQueue(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM schedules WHERE queue_id = ?`, id); err != nil {
		return fmt.Errorf("deleting stored schedule: %w", err)
	}
	if _, err := db.conn.Exec(`DELETE FROM queues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting queue: %w", err)
	}
	return nil
}

// SaveSchedule stores the serialized shutdown list for a queue. The
// payload is an opaque blob used for change detection on the next
// refresh.
func (db *DB) SaveSchedule(queueID, payload, eventDate string) error {
	query := `
	INSERT INTO schedules (queue_id, payload, event_date, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(queue_id) DO UPDATE SET payload = excluded.payload,
		event_date = excluded.event_date, updated_at = excluded.updated_at
	`

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(query, queueID, payload, eventDate, updatedAt)
	if err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	return nil
}

// StoredSchedule is the last persisted schedule blob for a queue
type StoredSchedule struct {
	QueueID   string
	Payload   string
	EventDate string
	UpdatedAt time.Time
}

// LoadSchedule retrieves the stored schedule blob for a queue, or nil
// if none was saved yet
func (db *DB) LoadSchedule(queueID string) (*StoredSchedule, error) {
	query := `
	SELECT queue_id, payload, event_date, updated_at
	FROM schedules
	WHERE queue_id = ?
	`

	row := db.conn.QueryRow(query, queueID)

	var s StoredSchedule
	var eventDate sql.NullString
	var updatedAt string
	err := row.Scan(&s.QueueID, &s.Payload, &eventDate, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	if eventDate.Valid {
		s.EventDate = eventDate.String
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
