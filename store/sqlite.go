package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ritik-gupta001/nexalyze/models"
)

// SQLiteStore implements TaskStore on a single SQLite database. Structured
// fields (sentiment summary, charts, metadata) are stored as JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the task database. Pass ":memory:" for an
// ephemeral store in tests.
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		dbPath = filepath.Join(basePath, "tasks.db")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		task_id TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		task_type TEXT NOT NULL,
		query TEXT,
		instruction TEXT,
		summary TEXT,
		sentiment_summary TEXT,     -- JSON
		forecast TEXT,
		report_url TEXT,
		charts TEXT,                -- JSON array of chart URLs
		metadata TEXT,              -- JSON object
		error TEXT,
		created_at TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts a new task record.
func (s *SQLiteStore) Create(task models.Task) error {
	sentiment, charts, metadata, err := marshalJSONColumns(task)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO tasks (task_id, status, task_type, query, instruction, summary,
			sentiment_summary, forecast, report_url, charts, metadata, error,
			created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.TaskID, string(task.Status), string(task.TaskType),
		task.Query, task.Instruction, task.Summary,
		sentiment, task.Forecast, task.ReportURL, charts, metadata, task.Error,
		task.CreatedAt.UTC().Format(time.RFC3339Nano), nullableTime(task.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert task %s: %w", task.TaskID, err)
	}
	return nil
}

// Update replaces the stored record for the task's id.
func (s *SQLiteStore) Update(task models.Task) error {
	sentiment, charts, metadata, err := marshalJSONColumns(task)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE tasks SET status = ?, task_type = ?, query = ?, instruction = ?,
			summary = ?, sentiment_summary = ?, forecast = ?, report_url = ?,
			charts = ?, metadata = ?, error = ?, completed_at = ?
		WHERE task_id = ?`,
		string(task.Status), string(task.TaskType), task.Query, task.Instruction,
		task.Summary, sentiment, task.Forecast, task.ReportURL,
		charts, metadata, task.Error, nullableTime(task.CompletedAt),
		task.TaskID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", task.TaskID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Get retrieves one task by id.
func (s *SQLiteStore) Get(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT task_id, status, task_type, query, instruction, summary,
			sentiment_summary, forecast, report_url, charts, metadata, error,
			created_at, completed_at
		FROM tasks WHERE task_id = ?`, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// List returns a page of tasks, newest first, and the total matching count.
func (s *SQLiteStore) List(filter ListFilter, page, pageSize int) ([]models.Task, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where := ""
	args := []any{}
	if filter.Status != "" {
		where = " WHERE status = ?"
		args = append(args, string(filter.Status))
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query := `
		SELECT task_id, status, task_type, query, instruction, summary,
			sentiment_summary, forecast, report_url, charts, metadata, error,
			created_at, completed_at
		FROM tasks` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, total, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task                                   models.Task
		status, taskType, createdAt            string
		sentiment, charts, metadata, completed sql.NullString
		query, instruction, summary            sql.NullString
		forecast, reportURL, errText           sql.NullString
	)

	err := row.Scan(&task.TaskID, &status, &taskType, &query, &instruction,
		&summary, &sentiment, &forecast, &reportURL, &charts, &metadata,
		&errText, &createdAt, &completed)
	if err != nil {
		return models.Task{}, err
	}

	task.Status = models.TaskStatus(status)
	task.TaskType = models.TaskType(taskType)
	task.Query = query.String
	task.Instruction = instruction.String
	task.Summary = summary.String
	task.Forecast = forecast.String
	task.ReportURL = reportURL.String
	task.Error = errText.String

	if sentiment.Valid && sentiment.String != "" {
		var sum models.SentimentSummary
		if err := json.Unmarshal([]byte(sentiment.String), &sum); err != nil {
			return models.Task{}, fmt.Errorf("decode sentiment summary: %w", err)
		}
		task.SentimentSummary = &sum
	}
	if charts.Valid && charts.String != "" {
		if err := json.Unmarshal([]byte(charts.String), &task.Charts); err != nil {
			return models.Task{}, fmt.Errorf("decode charts: %w", err)
		}
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &task.Metadata); err != nil {
			return models.Task{}, fmt.Errorf("decode metadata: %w", err)
		}
	}

	if task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	if completed.Valid && completed.String != "" {
		t, err := time.Parse(time.RFC3339Nano, completed.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse completed_at: %w", err)
		}
		task.CompletedAt = &t
	}
	return task, nil
}

func marshalJSONColumns(task models.Task) (sentiment, charts, metadata sql.NullString, err error) {
	if task.SentimentSummary != nil {
		b, merr := json.Marshal(task.SentimentSummary)
		if merr != nil {
			return sentiment, charts, metadata, fmt.Errorf("encode sentiment summary: %w", merr)
		}
		sentiment = sql.NullString{String: string(b), Valid: true}
	}
	if len(task.Charts) > 0 {
		b, merr := json.Marshal(task.Charts)
		if merr != nil {
			return sentiment, charts, metadata, fmt.Errorf("encode charts: %w", merr)
		}
		charts = sql.NullString{String: string(b), Valid: true}
	}
	if len(task.Metadata) > 0 {
		b, merr := json.Marshal(task.Metadata)
		if merr != nil {
			return sentiment, charts, metadata, fmt.Errorf("encode metadata: %w", merr)
		}
		metadata = sql.NullString{String: string(b), Valid: true}
	}
	return sentiment, charts, metadata, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
