package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const classSessionColumns = "id, class_name, day, start_time, end_time, subject, faculty, room, type, department, year"

// Sessions list Monday first; ordering on the day code alone would be alphabetical.
var classSessionOrder = models.WeekdayOrderSQL("day") + " ASC, start_time ASC, id ASC"

// timeOfDay scans a TIME column. lib/pq hands TIME values back as time.Time on the zero date.
type timeOfDay string

func (t *timeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = timeOfDay(v.Format(models.TimeOfDayLayout))
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("scan time of day: unsupported type %T", src)
	}
	return nil
}

func (t *timeOfDay) parse(raw string) error {
	normalised, ok := models.ParseTimeOfDay(raw)
	if !ok {
		return fmt.Errorf("scan time of day: invalid value %q", raw)
	}
	*t = timeOfDay(normalised)
	return nil
}

type classSessionRow struct {
	ID         string             `db:"id"`
	ClassName  string             `db:"class_name"`
	Day        models.Weekday     `db:"day"`
	StartTime  timeOfDay          `db:"start_time"`
	EndTime    timeOfDay          `db:"end_time"`
	Subject    string             `db:"subject"`
	Faculty    string             `db:"faculty"`
	Room       string             `db:"room"`
	Type       models.SessionType `db:"type"`
	Department string             `db:"department"`
	Year       string             `db:"year"`
}

func (r classSessionRow) model() models.ClassSession {
	return models.ClassSession{
		ID:         r.ID,
		ClassName:  r.ClassName,
		Day:        r.Day,
		StartTime:  string(r.StartTime),
		EndTime:    string(r.EndTime),
		Subject:    r.Subject,
		Faculty:    r.Faculty,
		Room:       r.Room,
		Type:       r.Type,
		Department: r.Department,
		Year:       r.Year,
	}
}

// QueryObserver receives query timings.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// ClassSessionRepository persists timetable class sessions.
type ClassSessionRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewClassSessionRepository creates a new class session repository. observer may be nil.
func NewClassSessionRepository(db *sqlx.DB, observer QueryObserver) *ClassSessionRepository {
	return &ClassSessionRepository{db: db, observer: observer}
}

func (r *ClassSessionRepository) observe(label string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveDBQuery(label, time.Since(start))
	}
}

// List returns sessions matching every supplied filter in timetable order.
func (r *ClassSessionRepository) List(ctx context.Context, filter models.ClassSessionFilter) ([]models.ClassSession, error) {
	defer r.observe("class_sessions.list", time.Now())

	query := "SELECT " + classSessionColumns + " FROM class_sessions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Year != "" {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + classSessionOrder

	var rows []classSessionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	sessions := make([]models.ClassSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.model())
	}
	return sessions, nil
}

// FindByID loads a class session by id. It returns sql.ErrNoRows when absent.
func (r *ClassSessionRepository) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	defer r.observe("class_sessions.find", time.Now())

	query := "SELECT " + classSessionColumns + " FROM class_sessions WHERE id = $1"
	var row classSessionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class session: %w", err)
	}
	session := row.model()
	return &session, nil
}

// Create stores a new class session, assigning its id.
func (r *ClassSessionRepository) Create(ctx context.Context, session *models.ClassSession) error {
	defer r.observe("class_sessions.create", time.Now())

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	const query = `INSERT INTO class_sessions (id, class_name, day, start_time, end_time, subject, faculty, room, type, department, year) VALUES (:id, :class_name, :day, :start_time, :end_time, :subject, :faculty, :room, :type, :department, :year)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create class session: %w", err)
	}
	return nil
}

// Update overwrites every mutable column. It returns sql.ErrNoRows when the row is gone.
func (r *ClassSessionRepository) Update(ctx context.Context, session *models.ClassSession) error {
	defer r.observe("class_sessions.update", time.Now())

	const query = `UPDATE class_sessions SET class_name = :class_name, day = :day, start_time = :start_time, end_time = :end_time, subject = :subject, faculty = :faculty, room = :room, type = :type, department = :department, year = :year WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("update class session: %w", err)
	}
	return requireAffected(res, "update class session")
}

// Delete removes a class session. It returns sql.ErrNoRows when nothing was deleted.
func (r *ClassSessionRepository) Delete(ctx context.Context, id string) error {
	defer r.observe("class_sessions.delete", time.Now())

	res, err := r.db.ExecContext(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class session: %w", err)
	}
	return requireAffected(res, "delete class session")
}

// PingContext checks the store is reachable.
func (r *ClassSessionRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
