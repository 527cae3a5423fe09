package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/validation"
)

// crudRepository is the storage contract for a single entity type T listed with filter F.
// Missing rows are reported as sql.ErrNoRows.
type crudRepository[T any, F any] interface {
	List(ctx context.Context, filter F) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type classSessionRepository = crudRepository[models.ClassSession, models.ClassSessionFilter]

// ClassSessionRequest carries every writable field; used for create and full replacement.
type ClassSessionRequest struct {
	ClassName  string `json:"class_name" validate:"required,max=100"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Subject    string `json:"subject" validate:"required,max=100"`
	Faculty    string `json:"faculty" validate:"required,max=100"`
	Room       string `json:"room" validate:"required,max=50"`
	Type       string `json:"type"`
	Department string `json:"department" validate:"required,max=100"`
	Year       string `json:"year" validate:"required,max=10"`

	nulls []string
}

// UnmarshalJSON decodes the payload and remembers fields sent as an explicit null.
func (r *ClassSessionRequest) UnmarshalJSON(data []byte) error {
	type plain ClassSessionRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := nullFields(data)
	if err != nil {
		return err
	}
	*r = ClassSessionRequest(decoded)
	r.nulls = nulls
	return nil
}

// ClassSessionPatch carries a partial update; nil fields are left untouched.
type ClassSessionPatch struct {
	ClassName  *string `json:"class_name" validate:"omitnil,min=1,max=100"`
	Day        *string `json:"day"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Subject    *string `json:"subject" validate:"omitnil,min=1,max=100"`
	Faculty    *string `json:"faculty" validate:"omitnil,min=1,max=100"`
	Room       *string `json:"room" validate:"omitnil,min=1,max=50"`
	Type       *string `json:"type"`
	Department *string `json:"department" validate:"omitnil,min=1,max=100"`
	Year       *string `json:"year" validate:"omitnil,min=1,max=10"`

	nulls []string
}

// UnmarshalJSON decodes the payload and remembers fields sent as an explicit null,
// which would otherwise be indistinguishable from omitted ones.
func (p *ClassSessionPatch) UnmarshalJSON(data []byte) error {
	type plain ClassSessionPatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := nullFields(data)
	if err != nil {
		return err
	}
	*p = ClassSessionPatch(decoded)
	p.nulls = nulls
	return nil
}

var writableFields = map[string]struct{}{
	"class_name": {}, "day": {}, "start_time": {}, "end_time": {}, "subject": {},
	"faculty": {}, "room": {}, "type": {}, "department": {}, "year": {},
}

// nullFields lists the writable fields of a JSON object whose value is null.
func nullFields(data []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var nulls []string
	for name, value := range raw {
		if _, ok := writableFields[name]; ok && string(value) == "null" {
			nulls = append(nulls, name)
		}
	}
	sort.Strings(nulls)
	return nulls, nil
}

func (r ClassSessionRequest) patch() ClassSessionPatch {
	sessionType := r.Type
	if sessionType == "" {
		sessionType = string(models.DefaultSessionType)
	}
	return ClassSessionPatch{
		ClassName:  &r.ClassName,
		Day:        &r.Day,
		StartTime:  &r.StartTime,
		EndTime:    &r.EndTime,
		Subject:    &r.Subject,
		Faculty:    &r.Faculty,
		Room:       &r.Room,
		Type:       &sessionType,
		Department: &r.Department,
		Year:       &r.Year,
		nulls:      r.nulls,
	}
}

// apply writes the patch onto session. Enumerated and time fields are checked here rather than
// by struct tags; problems are collected into fields.
func (p ClassSessionPatch) apply(session *models.ClassSession, fields map[string]string) {
	setText := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setText(&session.ClassName, p.ClassName)
	setText(&session.Subject, p.Subject)
	setText(&session.Faculty, p.Faculty)
	setText(&session.Room, p.Room)
	setText(&session.Department, p.Department)
	setText(&session.Year, p.Year)

	if p.Day != nil {
		day, ok := models.ParseWeekday(*p.Day)
		switch {
		case *p.Day == "":
			fields["day"] = "day is a required field"
		case !ok:
			fields["day"] = `"` + *p.Day + `" is not a valid choice; day must be one of ` + joinWeekdays()
		default:
			session.Day = day
		}
	}
	if p.Type != nil {
		sessionType, ok := models.ParseSessionType(*p.Type)
		if !ok {
			fields["type"] = `"` + *p.Type + `" is not a valid choice; type must be one of ` + joinSessionTypes()
		} else {
			session.Type = sessionType
		}
	}
	applyTime := func(name string, dst *string, src *string) {
		if src == nil {
			return
		}
		if *src == "" {
			fields[name] = name + " is a required field"
			return
		}
		normalised, ok := models.ParseTimeOfDay(*src)
		if !ok {
			fields[name] = name + " must use the format HH:MM or HH:MM:SS"
			return
		}
		*dst = normalised
	}
	applyTime("start_time", &session.StartTime, p.StartTime)
	applyTime("end_time", &session.EndTime, p.EndTime)

	for _, name := range p.nulls {
		fields[name] = "This field may not be null."
	}
}

func joinWeekdays() string {
	codes := make([]string, len(models.Weekdays))
	for i, day := range models.Weekdays {
		codes[i] = string(day)
	}
	return strings.Join(codes, " ")
}

func joinSessionTypes() string {
	codes := make([]string, len(models.SessionTypes))
	for i, t := range models.SessionTypes {
		codes[i] = string(t)
	}
	return strings.Join(codes, " ")
}

// ClassSessionService is the timetable store: CRUD over class sessions with field validation.
// Start and end times are accepted as given; start < end is not enforced and overlapping
// sessions are allowed.
type ClassSessionService struct {
	repo      classSessionRepository
	validator *validation.Validator
	logger    *zap.Logger
}

// NewClassSessionService instantiates ClassSessionService.
func NewClassSessionService(repo classSessionRepository, validate *validation.Validator, logger *zap.Logger) *ClassSessionService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassSessionService{repo: repo, validator: validate, logger: logger}
}

// Get loads one class session.
func (s *ClassSessionService) Get(ctx context.Context, id string) (*models.ClassSession, error) {
	return s.load(ctx, id)
}

// Create validates and stores a new class session. Nothing is persisted when validation fails.
func (s *ClassSessionService) Create(ctx context.Context, req ClassSessionRequest) (*models.ClassSession, error) {
	fields := s.validateFields(req)
	var session models.ClassSession
	req.patch().apply(&session, fields)
	if len(fields) > 0 {
		return nil, appErrors.Validation("invalid class session payload", fields)
	}

	if err := s.repo.Create(ctx, &session); err != nil {
		return nil, appErrors.Internal(err, "failed to create class session")
	}
	s.logger.Info("class session created", zap.String("id", session.ID), zap.String("day", string(session.Day)))
	return &session, nil
}

// Replace overwrites every field of an existing class session.
func (s *ClassSessionService) Replace(ctx context.Context, id string, req ClassSessionRequest) (*models.ClassSession, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := s.validateFields(req)
	return s.save(ctx, existing, req.patch(), fields)
}

// Update applies the supplied fields to an existing class session.
func (s *ClassSessionService) Update(ctx context.Context, id string, patch ClassSessionPatch) (*models.ClassSession, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := s.validateFields(patch)
	return s.save(ctx, existing, patch, fields)
}

// Delete removes a class session. Deleting the same id twice fails the second time.
func (s *ClassSessionService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound()
		}
		return appErrors.Internal(err, "failed to delete class session")
	}
	s.logger.Info("class session deleted", zap.String("id", id))
	return nil
}

func (s *ClassSessionService) save(ctx context.Context, session *models.ClassSession, patch ClassSessionPatch, fields map[string]string) (*models.ClassSession, error) {
	patch.apply(session, fields)
	if len(fields) > 0 {
		return nil, appErrors.Validation("invalid class session payload", fields)
	}
	if err := s.repo.Update(ctx, session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound()
		}
		return nil, appErrors.Internal(err, "failed to update class session")
	}
	return session, nil
}

func (s *ClassSessionService) load(ctx context.Context, id string) (*models.ClassSession, error) {
	if !validID(id) {
		return nil, notFound()
	}
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound()
		}
		return nil, appErrors.Internal(err, "failed to load class session")
	}
	return session, nil
}

func (s *ClassSessionService) validateFields(payload interface{}) map[string]string {
	fields := s.validator.Struct(payload)
	if fields == nil {
		fields = make(map[string]string)
	}
	return fields
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "class session not found")
}
