package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/clock"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
)

type sessionLister interface {
	List(ctx context.Context, filter models.ClassSessionFilter) ([]models.ClassSession, error)
}

// TimetableQuery carries the raw filter parameters of a timetable request. Empty values and
// unrecognised days are passed through as-is; an unknown day simply matches nothing.
type TimetableQuery struct {
	Day        string `form:"day"`
	Department string `form:"department"`
	Year       string `form:"year"`
}

func (q TimetableQuery) filter() models.ClassSessionFilter {
	return models.ClassSessionFilter{
		Day:        strings.ToUpper(strings.TrimSpace(q.Day)),
		Department: q.Department,
		Year:       q.Year,
	}
}

// ExportFile is a rendered timetable document.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// TimetableService answers the read-only timetable views.
type TimetableService struct {
	repo      sessionLister
	clock     clock.Clock
	renderers map[string]export.Renderer
	logger    *zap.Logger
}

// NewTimetableService constructs the query service. A nil clock reads server local time.
func NewTimetableService(repo sessionLister, clk clock.Clock, logger *zap.Logger) *TimetableService {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	renderers := make(map[string]export.Renderer)
	for _, r := range []export.Renderer{export.NewCSVExporter(), export.NewPDFExporter()} {
		renderers[r.Extension()] = r
	}
	return &TimetableService{repo: repo, clock: clk, renderers: renderers, logger: logger}
}

// Query lists the sessions matching every supplied filter, in timetable order.
// The day filter is case-insensitive.
func (s *TimetableService) Query(ctx context.Context, q TimetableQuery) ([]models.ClassSession, error) {
	return s.list(ctx, q.filter())
}

// Daily lists today's sessions. A day filter naming any other day yields an empty list.
func (s *TimetableService) Daily(ctx context.Context, q TimetableQuery) ([]models.ClassSession, error) {
	today := string(models.WeekdayOf(s.clock.Now()))
	filter := q.filter()
	if filter.Day != "" && filter.Day != today {
		return []models.ClassSession{}, nil
	}
	filter.Day = today
	return s.list(ctx, filter)
}

// Weekly lists the whole week, ignoring any day filter.
func (s *TimetableService) Weekly(ctx context.Context, q TimetableQuery) ([]models.ClassSession, error) {
	filter := q.filter()
	filter.Day = ""
	return s.list(ctx, filter)
}

// Export renders the Query result in the requested format (csv when empty).
func (s *TimetableService) Export(ctx context.Context, q TimetableQuery, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Validation("unsupported export format", map[string]string{
			"format": fmt.Sprintf("format must be one of csv pdf, got %q", format),
		})
	}

	sessions, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(timetableDataset(sessions), "Timetable")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render timetable")
	}

	s.logger.Info("timetable exported", zap.String("format", format), zap.Int("rows", len(sessions)))
	return &ExportFile{
		Filename:    fmt.Sprintf("timetable-%s.%s", s.clock.Now().Format("20060102"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func (s *TimetableService) list(ctx context.Context, filter models.ClassSessionFilter) ([]models.ClassSession, error) {
	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to query timetable")
	}
	if sessions == nil {
		sessions = []models.ClassSession{}
	}
	return sessions, nil
}

var exportHeaders = []string{"Day", "Start", "End", "Class", "Subject", "Faculty", "Room", "Type", "Department", "Year"}

func timetableDataset(sessions []models.ClassSession) export.Dataset {
	rows := make([]map[string]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, map[string]string{
			"Day":        session.Day.Label(),
			"Start":      clockTime(session.StartTime),
			"End":        clockTime(session.EndTime),
			"Class":      session.ClassName,
			"Subject":    session.Subject,
			"Faculty":    session.Faculty,
			"Room":       session.Room,
			"Type":       session.Type.Label(),
			"Department": session.Department,
			"Year":       session.Year,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

// clockTime trims a stored HH:MM:SS value to HH:MM for printed output.
func clockTime(value string) string {
	if t, err := time.Parse(models.TimeOfDayLayout, value); err == nil {
		return t.Format("15:04")
	}
	return value
}
