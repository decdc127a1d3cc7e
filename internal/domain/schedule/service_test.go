package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type mockScheduleRepo struct {
	scheds map[int64]*WorkSchedule
	nextID int64
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{scheds: make(map[int64]*WorkSchedule), nextID: 1}
}

func (m *mockScheduleRepo) Create(_ context.Context, ws *WorkSchedule) error {
	ws.ID = m.nextID
	m.nextID++
	m.scheds[ws.ID] = ws
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id int64) (*WorkSchedule, error) {
	ws, ok := m.scheds[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ws, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, ws *WorkSchedule) error {
	m.scheds[ws.ID] = ws
	return nil
}

func (m *mockScheduleRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*WorkSchedule, error) {
	var result []*WorkSchedule
	for _, ws := range m.scheds {
		if ws.DoctorID == doctorID {
			result = append(result, ws)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) GetActive(_ context.Context, doctorID int64, dayOfWeek int) (*WorkSchedule, error) {
	for _, ws := range m.scheds {
		if ws.DoctorID == doctorID && ws.DayOfWeek == dayOfWeek && ws.IsActive {
			return ws, nil
		}
	}
	return nil, nil
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"09:00", false},
		{"23:59", false},
		{"00:00", false},
		{"9:00", true},
		{"09:60", true},
		{"24:00", true},
		{"0900", true},
		{"", true},
	}
	for _, tc := range cases {
		_, _, err := ParseClock(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestValidateRejectsInvertedWindow(t *testing.T) {
	ws := &WorkSchedule{DoctorID: 1, DayOfWeek: 0, StartTime: "13:00", EndTime: "09:00", IsActive: true}
	if err := ws.Validate(); err == nil {
		t.Error("expected error for start after end")
	}
}

func TestResolveWindowWorkingDay(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := NewService(repo)
	ws := &WorkSchedule{DoctorID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "13:00", IsActive: true}
	if err := svc.CreateSchedule(context.Background(), ws); err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	w, err := svc.ResolveWindow(context.Background(), 1, monday)
	if err != nil {
		t.Fatalf("ResolveWindow: %v", err)
	}
	if w == nil {
		t.Fatal("expected a window on a working day")
	}
	if w.Start.Hour() != 9 || w.End.Hour() != 13 {
		t.Errorf("window = %v-%v, want 09:00-13:00", w.Start, w.End)
	}
}

func TestResolveWindowDayOff(t *testing.T) {
	svc := NewService(newMockScheduleRepo())
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	w, err := svc.ResolveWindow(context.Background(), 1, sunday)
	if err != nil {
		t.Fatalf("ResolveWindow: %v", err)
	}
	if w != nil {
		t.Errorf("expected nil window on a day off, got %v-%v", w.Start, w.End)
	}
}

func TestCreateScheduleRejectsSecondActiveSameDay(t *testing.T) {
	svc := NewService(newMockScheduleRepo())
	first := &WorkSchedule{DoctorID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00", IsActive: true}
	if err := svc.CreateSchedule(context.Background(), first); err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	second := &WorkSchedule{DoctorID: 1, DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00", IsActive: true}
	if err := svc.CreateSchedule(context.Background(), second); err == nil {
		t.Error("expected conflict for second active schedule on the same weekday")
	}
}

func TestDeactivateScheduleFreesTheDay(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := NewService(repo)
	ws := &WorkSchedule{DoctorID: 1, DayOfWeek: 4, StartTime: "09:00", EndTime: "13:00", IsActive: true}
	if err := svc.CreateSchedule(context.Background(), ws); err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	if err := svc.DeactivateSchedule(context.Background(), ws.ID); err != nil {
		t.Fatalf("DeactivateSchedule: %v", err)
	}

	friday := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	w, err := svc.ResolveWindow(context.Background(), 1, friday)
	if err != nil {
		t.Fatalf("ResolveWindow: %v", err)
	}
	if w != nil {
		t.Error("deactivated schedule must not produce a window")
	}
}
