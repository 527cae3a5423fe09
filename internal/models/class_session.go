package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the three-letter code of a day of the week.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Weekdays lists every day in timetable order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// ParseWeekday accepts an exact day code.
func ParseWeekday(raw string) (Weekday, bool) {
	day := Weekday(raw)
	_, ok := weekdayNames[day]
	return day, ok
}

// WeekdayOf maps a calendar date to its day code.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday=0.
	return Weekdays[(int(t.Weekday())+6)%7]
}

// Order returns 0 for Monday through 6 for Sunday, or -1 for an unknown code.
func (d Weekday) Order() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// Label returns the full English day name.
func (d Weekday) Label() string {
	return weekdayNames[d]
}

// WeekdayOrderSQL renders a CASE expression ranking column by timetable day order.
func WeekdayOrderSQL(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, day := range Weekdays {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", day, i)
	}
	b.WriteString(" END")
	return b.String()
}

// SessionType classifies how a class session is taught.
type SessionType string

const (
	SessionLecture  SessionType = "LECTURE"
	SessionLab      SessionType = "LAB"
	SessionTutorial SessionType = "TUTORIAL"
	SessionSeminar  SessionType = "SEMINAR"
)

// DefaultSessionType applies when a new session omits its type.
const DefaultSessionType = SessionLecture

var sessionTypeLabels = map[SessionType]string{
	SessionLecture:  "Lecture",
	SessionLab:      "Laboratory",
	SessionTutorial: "Tutorial",
	SessionSeminar:  "Seminar",
}

// SessionTypes lists the accepted session types.
var SessionTypes = []SessionType{SessionLecture, SessionLab, SessionTutorial, SessionSeminar}

// ParseSessionType accepts an exact type code.
func ParseSessionType(raw string) (SessionType, bool) {
	t := SessionType(raw)
	_, ok := sessionTypeLabels[t]
	return t, ok
}

// Label returns the human readable type name.
func (t SessionType) Label() string {
	return sessionTypeLabels[t]
}

// TimeOfDayLayout is the stored and serialized form of start and end times.
const TimeOfDayLayout = "15:04:05"

var timeOfDayInputs = []string{TimeOfDayLayout, "15:04", "15:04:05.999999"}

// ParseTimeOfDay normalises HH:MM or HH:MM:SS input to HH:MM:SS.
func ParseTimeOfDay(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeOfDayInputs {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(TimeOfDayLayout), true
		}
	}
	return "", false
}

// ClassSession is one scheduled class occurrence in the weekly timetable.
type ClassSession struct {
	ID         string      `db:"id" json:"id"`
	ClassName  string      `db:"class_name" json:"class_name"`
	Day        Weekday     `db:"day" json:"day"`
	StartTime  string      `db:"start_time" json:"start_time"`
	EndTime    string      `db:"end_time" json:"end_time"`
	Subject    string      `db:"subject" json:"subject"`
	Faculty    string      `db:"faculty" json:"faculty"`
	Room       string      `db:"room" json:"room"`
	Type       SessionType `db:"type" json:"type"`
	Department string      `db:"department" json:"department"`
	Year       string      `db:"year" json:"year"`
}

func (s ClassSession) String() string {
	return fmt.Sprintf("%s - %s (%s)", s.ClassName, s.Subject, s.Day)
}

// Before reports whether s sorts ahead of other by weekday order, then start time.
func (s ClassSession) Before(other ClassSession) bool {
	if s.Day != other.Day {
		return s.Day.Order() < other.Day.Order()
	}
	return s.StartTime < other.StartTime
}

// ClassSessionFilter holds the optional equality filters for listing sessions.
// Empty fields are not applied.
type ClassSessionFilter struct {
	Day        string
	Department string
	Year       string
}
