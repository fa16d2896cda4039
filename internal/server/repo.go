package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

// ErrNoRecord indicates the collection has no row with the requested id.
var ErrNoRecord = errors.New("no such record")

const eventColumns = `id, title, cyclical, details,
		recur_frequency, recur_interval, recur_until,
		start_at, end_at, all_day, category`

const taskColumns = `id, title, cyclical, details,
		recur_frequency, recur_interval, recur_until,
		deadline, progress, category`

// EventRepo persists the events collection. Records are stored in their
// wire form; the server never interprets the instants it passes through.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// recurrence rules flatten into three nullable columns.
func recurrenceColumns(rec *domain.RecurrenceRecord) (freq, until sql.NullString, interval sql.NullInt64) {
	if rec == nil {
		return
	}
	freq = sql.NullString{String: rec.Frequency, Valid: true}
	interval = sql.NullInt64{Int64: int64(rec.Interval), Valid: true}
	if rec.UntilDate != "" {
		until = sql.NullString{String: rec.UntilDate, Valid: true}
	}
	return
}

func scanRecurrence(freq, until sql.NullString, interval sql.NullInt64) *domain.RecurrenceRecord {
	if !freq.Valid {
		return nil
	}
	return &domain.RecurrenceRecord{
		Frequency: freq.String,
		Interval:  int(interval.Int64),
		UntilDate: until.String,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *EventRepo) List(ctx context.Context) ([]domain.EventRecord, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	recs := []domain.EventRecord{}
	for rows.Next() {
		var rec domain.EventRecord
		var cyclical, allDay int
		var freq, until sql.NullString
		var interval sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Title, &cyclical, &rec.Details,
			&freq, &interval, &until,
			&rec.Start, &rec.End, &allDay, &rec.Category); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		rec.DataType = string(domain.KindEvent)
		rec.Cyclical = cyclical != 0
		rec.AllDay = allDay != 0
		rec.Recurrence = scanRecurrence(freq, until, interval)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *EventRepo) Create(ctx context.Context, id string, rec domain.EventRecord) (domain.EventRecord, error) {
	rec.ID = id
	rec.DataType = string(domain.KindEvent)
	freq, until, interval := recurrenceColumns(rec.Recurrence)

	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Title, boolToInt(rec.Cyclical), rec.Details,
		freq, interval, until,
		rec.Start, rec.End, boolToInt(rec.AllDay), rec.Category)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("inserting event: %w", err)
	}
	return rec, nil
}

func (r *EventRepo) Replace(ctx context.Context, id string, rec domain.EventRecord) (domain.EventRecord, error) {
	rec.ID = id
	rec.DataType = string(domain.KindEvent)
	freq, until, interval := recurrenceColumns(rec.Recurrence)

	query := `UPDATE events SET title = ?, cyclical = ?, details = ?,
		recur_frequency = ?, recur_interval = ?, recur_until = ?,
		start_at = ?, end_at = ?, all_day = ?, category = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Title, boolToInt(rec.Cyclical), rec.Details,
		freq, interval, until,
		rec.Start, rec.End, boolToInt(rec.AllDay), rec.Category, id)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("replacing event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("replacing event: %w", err)
	}
	if n == 0 {
		return domain.EventRecord{}, ErrNoRecord
	}
	return rec, nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}

// TaskRepo persists the tasks collection.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) List(ctx context.Context) ([]domain.TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	recs := []domain.TaskRecord{}
	for rows.Next() {
		var rec domain.TaskRecord
		var cyclical int
		var freq, until sql.NullString
		var interval sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Title, &cyclical, &rec.Details,
			&freq, &interval, &until,
			&rec.Deadline, &rec.Progress, &rec.Category); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		rec.DataType = string(domain.KindTask)
		rec.Cyclical = cyclical != 0
		rec.Recurrence = scanRecurrence(freq, until, interval)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *TaskRepo) Create(ctx context.Context, id string, rec domain.TaskRecord) (domain.TaskRecord, error) {
	rec.ID = id
	rec.DataType = string(domain.KindTask)
	freq, until, interval := recurrenceColumns(rec.Recurrence)

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Title, boolToInt(rec.Cyclical), rec.Details,
		freq, interval, until,
		rec.Deadline, rec.Progress, rec.Category)
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("inserting task: %w", err)
	}
	return rec, nil
}

func (r *TaskRepo) Replace(ctx context.Context, id string, rec domain.TaskRecord) (domain.TaskRecord, error) {
	rec.ID = id
	rec.DataType = string(domain.KindTask)
	freq, until, interval := recurrenceColumns(rec.Recurrence)

	query := `UPDATE tasks SET title = ?, cyclical = ?, details = ?,
		recur_frequency = ?, recur_interval = ?, recur_until = ?,
		deadline = ?, progress = ?, category = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Title, boolToInt(rec.Cyclical), rec.Details,
		freq, interval, until,
		rec.Deadline, rec.Progress, rec.Category, id)
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("replacing task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("replacing task: %w", err)
	}
	if n == 0 {
		return domain.TaskRecord{}, ErrNoRecord
	}
	return rec, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}
