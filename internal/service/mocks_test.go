package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/moodlens/backend/internal/models"
)

// mockMoodRepository is an in-memory MoodRepository for testing. Setting
// err makes every method fail with it; getAllDelay slows GetAll down so
// concurrency tests can observe coalescing.
type mockMoodRepository struct {
	mu          sync.Mutex
	records     map[string]*models.MoodRecord // "date|segment" -> record
	err         error
	getAllDelay time.Duration
	upsertCalls int
	getAllCalls int
	deleteCalls int
}

func newMockMoodRepository() *mockMoodRepository {
	return &mockMoodRepository{records: make(map[string]*models.MoodRecord)}
}

func moodKey(date time.Time, segment models.Segment) string {
	return fmt.Sprintf("%s|%d", models.FormatDate(date), segment)
}

func (m *mockMoodRepository) seed(records ...models.MoodRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range records {
		r := records[i]
		m.records[moodKey(r.Date, r.Segment)] = &r
	}
}

func (m *mockMoodRepository) Upsert(ctx context.Context, record *models.MoodRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.upsertCalls++
	r := *record
	m.records[moodKey(r.Date, r.Segment)] = &r
	return nil
}

func (m *mockMoodRepository) GetByDate(ctx context.Context, date time.Time) ([]models.MoodRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.MoodRecord
	for _, r := range m.records {
		if models.SameDay(r.Date, date) {
			out = append(out, *r)
		}
	}
	sortMoodRecords(out)
	return out, nil
}

func (m *mockMoodRepository) GetRange(ctx context.Context, start, end time.Time) ([]models.MoodRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	start, end = models.Day(start), models.Day(end)
	var out []models.MoodRecord
	for _, r := range m.records {
		d := models.Day(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, *r)
	}
	sortMoodRecords(out)
	return out, nil
}

func (m *mockMoodRepository) GetAll(ctx context.Context) ([]models.MoodRecord, error) {
	if m.getAllDelay > 0 {
		time.Sleep(m.getAllDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.getAllCalls++
	out := make([]models.MoodRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, *r)
	}
	sortMoodRecords(out)
	return out, nil
}

func (m *mockMoodRepository) Delete(ctx context.Context, date time.Time, segment models.Segment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deleteCalls++
	delete(m.records, moodKey(date, segment))
	return nil
}

func (m *mockMoodRepository) EarliestDate(ctx context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var earliest *time.Time
	for _, r := range m.records {
		d := models.Day(r.Date)
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest, nil
}

func (m *mockMoodRepository) getAllCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getAllCalls
}

func sortMoodRecords(records []models.MoodRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].Segment < records[j].Segment
	})
}

// mockContextRepository is an in-memory ContextRepository for testing.
type mockContextRepository struct {
	mu          sync.Mutex
	records     map[string]*models.ContextRecord // date -> record
	err         error
	upsertCalls int
	deleteCalls int
}

func newMockContextRepository() *mockContextRepository {
	return &mockContextRepository{records: make(map[string]*models.ContextRecord)}
}

func (m *mockContextRepository) seed(records ...models.ContextRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range records {
		r := records[i]
		m.records[models.FormatDate(r.Date)] = &r
	}
}

func (m *mockContextRepository) Upsert(ctx context.Context, record *models.ContextRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.upsertCalls++
	r := *record
	m.records[models.FormatDate(r.Date)] = &r
	return nil
}

func (m *mockContextRepository) GetByDate(ctx context.Context, date time.Time) (*models.ContextRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[models.FormatDate(date)]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (m *mockContextRepository) GetRange(ctx context.Context, start, end time.Time) ([]models.ContextRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	start, end = models.Day(start), models.Day(end)
	var out []models.ContextRecord
	for _, r := range m.records {
		d := models.Day(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *mockContextRepository) Delete(ctx context.Context, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deleteCalls++
	delete(m.records, models.FormatDate(date))
	return nil
}

// mockSettingsRepository is an in-memory SettingsRepository for testing.
type mockSettingsRepository struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.values[key], nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

// mockInvalidator records NotifyDataChanged calls.
type mockInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (m *mockInvalidator) NotifyDataChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mockInvalidator) notifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockWeatherService returns a canned observation or error.
type mockWeatherService struct {
	mu      sync.Mutex
	weather *models.Weather
	err     error
	calls   int
}

func (m *mockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.weather, nil
}
