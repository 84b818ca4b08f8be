// Package booking derives slot availability, accepts bookings and builds the
// per-user appointment views.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"logotherapy-booking/internal/metrics"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/validation"
)

// DefaultSlots are the bookable start times of every day. There is no slot
// over lunch.
var DefaultSlots = []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

// UpcomingLimit caps the upcoming view.
const UpcomingLimit = 5

var (
	ErrNotLoggedIn = errors.New("login required")
	ErrSlotTaken   = errors.New("time slot already booked")
)

// Appointments is the appointment repository. *store.Store satisfies it.
type Appointments interface {
	Appointments(ctx context.Context) ([]model.Appointment, error)
	IsSlotTaken(ctx context.Context, date, time string) (bool, error)
	BookSlot(ctx context.Context, a *model.Appointment) (bool, error)
}

// CurrentUser yields the logged-in user or nil. *session.Manager satisfies it.
type CurrentUser interface {
	Current() *model.User
}

type Slot struct {
	Time      string
	Available bool
}

type Request struct {
	Date  string
	Time  string
	Name  string
	Phone string
}

// Entry is an appointment as shown to its owner.
type Entry struct {
	model.Appointment
	Status model.Status
}

type Engine struct {
	store    Appointments
	sessions CurrentUser
	slots    []string
	loc      *time.Location
	now      func() time.Time
	newID    func() string
	log      *slog.Logger
	metrics  metrics.Recorder
}

type Option func(*Engine)

// WithClock replaces the wall clock used for upcoming/past and createdAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the zone appointment dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

func NewEngine(st Appointments, sessions CurrentUser, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		sessions: sessions,
		slots:    DefaultSlots,
		loc:      time.Local,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      slog.Default(),
		metrics:  metrics.Nop{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Slots lists every slot of date in order with its availability, re-read
// from the full appointment collection.
func (e *Engine) Slots(ctx context.Context, date string) ([]Slot, error) {
	if !validation.ValidateDate(date) {
		return nil, model.NewFieldError("date", "must be a date in YYYY-MM-DD form")
	}
	out := make([]Slot, 0, len(e.slots))
	for _, t := range e.slots {
		taken, err := e.store.IsSlotTaken(ctx, date, t)
		if err != nil {
			return nil, fmt.Errorf("booking: slot %s %s: %w", date, t, err)
		}
		out = append(out, Slot{Time: t, Available: !taken})
	}
	return out, nil
}

// Book checks, in order, date, time, session and phone (then name), and
// stores the appointment if its slot is still free.
func (e *Engine) Book(ctx context.Context, req Request) (*model.Appointment, error) {
	a, err := e.build(req)
	if err != nil {
		e.metrics.RecordBooking(outcome(err))
		return nil, err
	}

	ok, err := e.store.BookSlot(ctx, a)
	if err != nil {
		e.metrics.RecordBooking("error")
		return nil, fmt.Errorf("booking: save: %w", err)
	}
	if !ok {
		e.metrics.RecordBooking("slot_taken")
		return nil, ErrSlotTaken
	}

	e.metrics.RecordBooking("ok")
	e.log.InfoContext(ctx, "appointment booked", "id", a.ID, "date", a.Date, "time", a.Time, "user", a.UserEmail)
	return a, nil
}

func (e *Engine) build(req Request) (*model.Appointment, error) {
	switch {
	case req.Date == "":
		return nil, model.NewFieldError("date", "select a date")
	case !validation.ValidateDate(req.Date):
		return nil, model.NewFieldError("date", "must be a date in YYYY-MM-DD form")
	case req.Time == "":
		return nil, model.NewFieldError("time", "select a time slot")
	case !slices.Contains(e.slots, req.Time):
		return nil, model.NewFieldError("time", "not a bookable time slot")
	}

	user := e.sessions.Current()
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	phone := validation.NormalizePhone(req.Phone)
	if !validation.ValidatePhone(phone) {
		return nil, model.NewFieldError("phone", "enter a valid Ukrainian phone number")
	}
	if !validation.ValidateName(req.Name) {
		return nil, model.NewFieldError("name", "must be at least 2 characters")
	}

	return &model.Appointment{
		ID:        e.newID(),
		UserEmail: user.Email,
		Name:      req.Name,
		Phone:     phone,
		Date:      req.Date,
		Time:      req.Time,
		CreatedAt: e.now().UTC(),
	}, nil
}

// Upcoming returns the session user's next appointments, soonest first.
func (e *Engine) Upcoming(ctx context.Context) ([]Entry, error) {
	own, err := e.owned(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()

	var out []Entry
	for _, a := range own {
		if !e.at(a).Before(now) {
			out = append(out, Entry{Appointment: a, Status: model.StatusUpcoming})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return e.at(out[i].Appointment).Before(e.at(out[j].Appointment)) })
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out, nil
}

// Filter narrows the history view. Search matches name case-insensitively
// and phone, date and time as substrings. Status is all, upcoming or past.
type Filter struct {
	Search string
	Status string
}

// History returns all of the session user's appointments, upcoming ones
// first, each group in chronological order.
func (e *Engine) History(ctx context.Context, f Filter) ([]Entry, error) {
	switch f.Status {
	case "", "all", string(model.StatusUpcoming), string(model.StatusPast):
	default:
		return nil, model.NewFieldError("status", "must be all, upcoming or past")
	}

	own, err := e.owned(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	term := strings.ToLower(f.Search)

	out := make([]Entry, 0, len(own))
	for _, a := range own {
		if term != "" && !matches(a, term) {
			continue
		}
		st := model.StatusPast
		if !e.at(a).Before(now) {
			st = model.StatusUpcoming
		}
		if f.Status != "" && f.Status != "all" && f.Status != string(st) {
			continue
		}
		out = append(out, Entry{Appointment: a, Status: st})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status == model.StatusUpcoming
		}
		return e.at(out[i].Appointment).Before(e.at(out[j].Appointment))
	})
	return out, nil
}

func (e *Engine) owned(ctx context.Context) ([]model.Appointment, error) {
	user := e.sessions.Current()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	all, err := e.store.Appointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: load appointments: %w", err)
	}
	var own []model.Appointment
	for _, a := range all {
		if a.UserEmail == user.Email {
			own = append(own, a)
		}
	}
	return own, nil
}

// at is the local start instant of a. Unparseable records sort as the
// distant past.
func (e *Engine) at(a model.Appointment) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", a.Date+"T"+a.Time, e.loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func matches(a model.Appointment, term string) bool {
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(a.Phone, term) ||
		strings.Contains(a.Date, term) ||
		strings.Contains(a.Time, term)
}

func outcome(err error) string {
	var fe *model.FieldError
	switch {
	case errors.As(err, &fe):
		return "invalid_" + fe.Field
	case errors.Is(err, ErrNotLoggedIn):
		return "not_logged_in"
	}
	return "error"
}
