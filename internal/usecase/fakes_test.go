package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
)

func ptr[T any](v T) *T { return &v }

type fakeProvider struct {
	mu     sync.Mutex
	search func(p entity.SearchParams) ([]entity.Flight, error)
	calls  []entity.SearchParams
}

func (f *fakeProvider) SearchOffers(ctx context.Context, p entity.SearchParams) ([]entity.Flight, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	if f.search == nil {
		return nil, nil
	}
	return f.search(p)
}

// flightOn builds a flight departing at noon UTC on date.
func flightOn(origin, destination, date string, price float64) entity.Flight {
	d, _ := time.Parse("2006-01-02", date)
	return entity.Flight{
		ID:            fmt.Sprintf("%s-%s-%s", origin, destination, date),
		Price:         price,
		Currency:      "USD",
		Origin:        origin,
		Destination:   destination,
		DepartureDate: d.Add(12 * time.Hour),
		Airline:       "NH",
		AirlineName:   "ANA",
	}
}

type fakeAlertRepo struct {
	alerts  map[string]*entity.FlightAlert
	failIDs map[string]error
	created []*entity.FlightAlert
}

func newFakeAlertRepo(alerts ...*entity.FlightAlert) *fakeAlertRepo {
	r := &fakeAlertRepo{alerts: map[string]*entity.FlightAlert{}, failIDs: map[string]error{}}
	for _, a := range alerts {
		r.alerts[a.ID] = a
	}
	return r
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *entity.FlightAlert) error {
	if alert.ID == "" {
		alert.ID = fmt.Sprintf("alert-%d", len(r.alerts)+1)
	}
	r.alerts[alert.ID] = alert
	r.created = append(r.created, alert)
	return nil
}

func (r *fakeAlertRepo) GetByID(ctx context.Context, id string) (*entity.FlightAlert, error) {
	if err := r.failIDs[id]; err != nil {
		return nil, err
	}
	a, ok := r.alerts[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return a, nil
}

func (r *fakeAlertRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	var active []*entity.FlightAlert
	for _, a := range r.alerts {
		if a.Status == entity.AlertStatusActive {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })

	ids := make([]string, len(active))
	for i, a := range active {
		ids[i] = a.ID
	}
	return ids, nil
}

func (r *fakeAlertRepo) ListByUser(ctx context.Context, userID string) ([]*entity.FlightAlert, error) {
	var out []*entity.FlightAlert
	for _, a := range r.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePriceRepo struct {
	rows     []entity.PriceHistory
	writeErr error
	statsErr error
}

func (r *fakePriceRepo) RecordMany(ctx context.Context, prices []entity.PriceHistory) (int64, error) {
	if r.writeErr != nil {
		return 0, r.writeErr
	}
	var written int64
	for _, p := range prices {
		dup := slices.ContainsFunc(r.rows, func(e entity.PriceHistory) bool {
			return e.Origin == p.Origin && e.Destination == p.Destination && e.TravelDate.Equal(p.TravelDate) &&
				e.Airline == p.Airline && e.Price == p.Price && e.RecordedAt.Equal(p.RecordedAt)
		})
		if !dup {
			r.rows = append(r.rows, p)
			written++
		}
	}
	return written, nil
}

func (r *fakePriceRepo) Stats(ctx context.Context, q repository.PriceQuery) (repository.PriceStats, error) {
	if r.statsErr != nil {
		return repository.PriceStats{}, r.statsErr
	}
	var stats repository.PriceStats
	var sum float64
	for _, p := range r.rows {
		if p.Origin != q.Origin || p.Destination != q.Destination {
			continue
		}
		if p.TravelDate.Before(q.TravelFrom) || p.TravelDate.After(q.TravelTo) || p.RecordedAt.Before(q.RecordedSince) {
			continue
		}
		stats.Count++
		sum += p.Price
	}
	if stats.Count > 0 {
		stats.Average = sum / float64(stats.Count)
	}
	return stats, nil
}

type fakeNotificationRepo struct {
	rows []*entity.FlightNotification
	err  error
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.FlightNotification) error {
	if r.err != nil {
		return r.err
	}
	n.ID = fmt.Sprintf("n-%d", len(r.rows)+1)
	r.rows = append(r.rows, n)
	return nil
}

func (r *fakeNotificationRepo) ListByAlert(ctx context.Context, alertID string) ([]*entity.FlightNotification, error) {
	var out []*entity.FlightNotification
	for _, n := range r.rows {
		if n.AlertID == alertID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeRunRepo struct {
	started  []*entity.MonitorRun
	finished []*entity.MonitorRun
}

func (r *fakeRunRepo) Start(ctx context.Context, run *entity.MonitorRun) error {
	cp := *run
	r.started = append(r.started, &cp)
	return nil
}

func (r *fakeRunRepo) Finish(ctx context.Context, run *entity.MonitorRun) error {
	cp := *run
	r.finished = append(r.finished, &cp)
	return nil
}

func (r *fakeRunRepo) Latest(ctx context.Context) (*entity.MonitorRun, error) {
	if len(r.finished) == 0 {
		return nil, entity.ErrNotFound
	}
	return r.finished[len(r.finished)-1], nil
}

type fakeChat struct {
	reply     string
	err       error
	system    string
	messages  []entity.ChatMessage
	maxTokens int
}

func (c *fakeChat) Complete(ctx context.Context, system string, messages []entity.ChatMessage, maxTokens int) (string, error) {
	c.system = system
	c.messages = messages
	c.maxTokens = maxTokens
	return c.reply, c.err
}

type fakeAirportRepo struct {
	airports map[string]entity.Airport
}

func newFakeAirportRepo(codes ...string) *fakeAirportRepo {
	r := &fakeAirportRepo{airports: map[string]entity.Airport{}}
	for _, c := range codes {
		r.airports[c] = entity.Airport{Code: c, Name: c + " International", City: c}
	}
	return r
}

func (r *fakeAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	a, ok := r.airports[code]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAirportRepo) Exists(ctx context.Context, code string) (bool, error) {
	_, ok := r.airports[code]
	return ok, nil
}

func (r *fakeAirportRepo) Upsert(ctx context.Context, airports []entity.Airport) error {
	for _, a := range airports {
		r.airports[a.Code] = a
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return entity.ErrUserExists
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	user.CreatedAt = time.Now().UTC()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, entity.ErrNotFound
}

type fakeSender struct {
	channel string
	err     error
	sent    []entity.DealMessage
}

func (s *fakeSender) Channel() string { return s.channel }

func (s *fakeSender) Send(ctx context.Context, msg entity.DealMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeNotifier struct {
	calls [][]entity.DealResult
	err   error
}

func (n *fakeNotifier) NotifyDeals(ctx context.Context, alert *entity.FlightAlert, deals []entity.DealResult) error {
	n.calls = append(n.calls, deals)
	return n.err
}

var errBoom = errors.New("boom")
