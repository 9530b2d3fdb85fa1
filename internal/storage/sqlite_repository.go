package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, title string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (title) VALUES (?)`, title)
	return mapConstraint(err)
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, title string) (Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title FROM categories WHERE title = ?`, title)
	var out Category
	if err := row.Scan(&out.ID, &out.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) RenameCategory(ctx context.Context, oldTitle, newTitle string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET title = ? WHERE title = ?`, newTitle, oldTitle)
	if err != nil {
		return mapConstraint(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, title string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE title = ?`, title)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var item Category
		if scanErr := rows.Scan(&item.ID, &item.Title); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTracker(ctx context.Context, in Tracker) error {
	category, err := r.GetCategory(ctx, in.CategoryTitle)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trackers (id, category_id, name, color, emoji, schedule, is_habit, pinned, origin_title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, category.ID, in.Name, in.Color, in.Emoji, in.Schedule,
		boolInt(in.IsHabit), boolInt(in.Pinned), in.OriginTitle, mustTime(in.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *SQLiteRepository) GetTracker(ctx context.Context, id string) (Tracker, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT t.id, c.title, t.name, t.color, t.emoji, t.schedule, t.is_habit, t.pinned, t.origin_title, t.created_at
		FROM trackers t JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`, id)
	tracker, err := scanTracker(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tracker{}, ErrNotFound
		}
		return Tracker{}, err
	}
	return tracker, nil
}

func (r *SQLiteRepository) UpdateTracker(ctx context.Context, in Tracker) error {
	category, err := r.GetCategory(ctx, in.CategoryTitle)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE trackers
		SET category_id = ?, name = ?, color = ?, emoji = ?, schedule = ?, is_habit = ?, pinned = ?, origin_title = ?
		WHERE id = ?`,
		category.ID, in.Name, in.Color, in.Emoji, in.Schedule,
		boolInt(in.IsHabit), boolInt(in.Pinned), in.OriginTitle, in.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTracker(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTrackers(ctx context.Context, filter TrackerListFilter) ([]Tracker, error) {
	query := `
		SELECT t.id, c.title, t.name, t.color, t.emoji, t.schedule, t.is_habit, t.pinned, t.origin_title, t.created_at
		FROM trackers t JOIN categories c ON c.id = t.category_id`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.CategoryTitle != "" {
		clauses = append(clauses, "c.title = ?")
		args = append(args, filter.CategoryTitle)
	}
	if filter.Pinned != nil {
		clauses = append(clauses, "t.pinned = ?")
		args = append(args, boolInt(*filter.Pinned))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tracker, 0)
	for rows.Next() {
		item, scanErr := scanTracker(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateRecord(ctx context.Context, in CompletionRecord) error {
	// ON CONFLICT DO NOTHING keeps completing twice on one day a no-op.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completion_records (tracker_id, day) VALUES (?, ?)
		ON CONFLICT(tracker_id, day) DO NOTHING`,
		in.TrackerID, in.Day,
	)
	return mapConstraint(err)
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, trackerID, day string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM completion_records WHERE tracker_id = ? AND day = ?`, trackerID, day)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) HasRecord(ctx context.Context, trackerID, day string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM completion_records WHERE tracker_id = ? AND day = ?`, trackerID, day)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) ListRecords(ctx context.Context, filter RecordListFilter) ([]CompletionRecord, error) {
	query := `SELECT tracker_id, day FROM completion_records`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.TrackerID != "" {
		clauses = append(clauses, "tracker_id = ?")
		args = append(args, filter.TrackerID)
	}
	if filter.Day != "" {
		clauses = append(clauses, "day = ?")
		args = append(args, filter.Day)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY day ASC, tracker_id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CompletionRecord, 0)
	for rows.Next() {
		var item CompletionRecord
		if scanErr := rows.Scan(&item.TrackerID, &item.Day); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrDuplicate
		case sqlite3.ErrConstraintForeignKey:
			return ErrNotFound
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTracker(s scanner) (Tracker, error) {
	var out Tracker
	var isHabit int
	var pinned int
	var created string
	if err := s.Scan(&out.ID, &out.CategoryTitle, &out.Name, &out.Color, &out.Emoji, &out.Schedule, &isHabit, &pinned, &out.OriginTitle, &created); err != nil {
		return Tracker{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Tracker{}, err
	}
	out.IsHabit = isHabit == 1
	out.Pinned = pinned == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
