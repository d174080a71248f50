package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
)

var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func doc(id, name string) attendance.RawDoc {
	return attendance.RawDoc{
		EmployeeID: id,
		Employees:  name,
		Department: "Ops",
		Date:       "2025-01-10",
		CheckIn:    &attendance.Punch{Timestamp: "2025-01-10T09:00:00Z", Status: attendance.StatusOnTime},
	}
}

func TestLoader_Load(t *testing.T) {
	type testCase struct {
		name        string
		setupMock   func(m *dashboard.MockFetcher)
		wantState   dashboard.State
		wantRecords int
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *dashboard.MockFetcher) {
				m.EXPECT().
					FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
					Return([]attendance.RawDoc{doc("E1", "Ann"), doc("E2", "Bob")}, nil)
			},
			wantState:   dashboard.StateLoaded,
			wantRecords: 2,
		},
		{
			name: "EmptyResponse",
			setupMock: func(m *dashboard.MockFetcher) {
				m.EXPECT().
					FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
					Return([]attendance.RawDoc{}, nil)
			},
			wantState:   dashboard.StateLoaded,
			wantRecords: 0,
		},
		{
			name: "FetchError",
			setupMock: func(m *dashboard.MockFetcher) {
				m.EXPECT().
					FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
					Return(nil, errors.New("boom"))
			},
			wantState: dashboard.StateError,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockFetcher := dashboard.NewMockFetcher(ctrl)
			tt.setupMock(mockFetcher)

			loader := dashboard.NewLoader(mockFetcher, clock)

			committed, err := loader.Load(context.Background(), attendance.ScopeToday)
			assert.True(t, committed)

			snap := loader.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.Len(t, snap.Records, tt.wantRecords)

			if tt.wantErr {
				require.Error(t, err)
				assert.Error(t, snap.Err)

				return
			}

			require.NoError(t, err)
			assert.NoError(t, snap.Err)
		})
	}
}

func TestLoader_ErrorEmptiesPreviousSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	gomock.InOrder(
		mockFetcher.EXPECT().
			FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
			Return([]attendance.RawDoc{doc("E1", "Ann")}, nil),
		mockFetcher.EXPECT().
			FetchAttendance(gomock.Any(), attendance.ScopeAll, fixedNow).
			Return(nil, errors.New("unreachable")),
	)

	loader := dashboard.NewLoader(mockFetcher, clock)

	_, err := loader.Load(context.Background(), attendance.ScopeToday)
	require.NoError(t, err)
	require.Len(t, loader.Snapshot().Records, 1)

	_, err = loader.Load(context.Background(), attendance.ScopeAll)
	require.Error(t, err)

	snap := loader.Snapshot()
	assert.Equal(t, dashboard.StateError, snap.State)
	assert.Equal(t, attendance.ScopeAll, snap.Scope)
	assert.Empty(t, snap.Records)
	assert.Empty(t, snap.Rows(attendance.Filter{}, attendance.Facets{}))
}

func TestLoader_LastRequestWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeAll, fixedNow).
		Return([]attendance.RawDoc{doc("E9", "Zed")}, nil)
	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
		Return([]attendance.RawDoc{doc("E1", "Ann"), doc("E2", "Bob")}, nil)

	loader := dashboard.NewLoader(mockFetcher, clock)

	first := loader.Begin(attendance.ScopeToday)
	second := loader.Begin(attendance.ScopeAll)
	assert.Greater(t, second, first)
	assert.Equal(t, dashboard.StateLoading, loader.Snapshot().State)

	committed, err := loader.Run(context.Background(), second, attendance.ScopeAll)
	require.NoError(t, err)
	assert.True(t, committed)

	// The earlier request completes late and must be discarded.
	committed, err = loader.Run(context.Background(), first, attendance.ScopeToday)
	require.NoError(t, err)
	assert.False(t, committed)

	snap := loader.Snapshot()
	assert.Equal(t, dashboard.StateLoaded, snap.State)
	assert.Equal(t, attendance.ScopeAll, snap.Scope)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "Zed", snap.Records[0].Name)
}

func TestLoader_StaleErrorIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
		Return([]attendance.RawDoc{doc("E1", "Ann")}, nil)
	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeAll, fixedNow).
		Return(nil, errors.New("timeout"))

	loader := dashboard.NewLoader(mockFetcher, clock)

	stale := loader.Begin(attendance.ScopeAll)
	latest := loader.Begin(attendance.ScopeToday)

	_, err := loader.Run(context.Background(), latest, attendance.ScopeToday)
	require.NoError(t, err)

	committed, err := loader.Run(context.Background(), stale, attendance.ScopeAll)
	require.Error(t, err)
	assert.False(t, committed)

	snap := loader.Snapshot()
	assert.Equal(t, dashboard.StateLoaded, snap.State)
	assert.Len(t, snap.Records, 1)
	assert.NoError(t, snap.Err)
}

func TestSnapshot_Rows(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeToday, fixedNow).
		Return([]attendance.RawDoc{doc("E1", "Ann"), doc("E2", "Bob")}, nil)

	loader := dashboard.NewLoader(mockFetcher, clock)

	_, err := loader.Load(context.Background(), attendance.ScopeToday)
	require.NoError(t, err)

	snap := loader.Snapshot()

	rows := snap.Rows(attendance.Filter{Query: "bob"}, attendance.Facets{})
	require.Len(t, rows, 1)
	assert.Equal(t, "E2", rows[0].EmployeeID)
	assert.Equal(t, attendance.ActionCheckIn, rows[0].Action)

	rows = snap.Rows(attendance.Filter{}, attendance.Facets{CheckIn: true, CheckOut: true})
	assert.Len(t, rows, 2)
	assert.Equal(t, attendance.LayoutPaired, rows[0].Layout)
}

func TestFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	late := doc("E2", "Bob")
	late.Department = "Sales"
	late.CheckIn.Status = attendance.StatusLate
	late.CheckOut = &attendance.Punch{Timestamp: "2025-01-10T17:00:00Z", Status: attendance.StatusEarly}

	empty := attendance.RawDoc{EmployeeID: "E3", Department: "Legal"}

	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), attendance.ScopeAll, fixedNow).
		Return([]attendance.RawDoc{doc("E1", "Ann"), late, empty}, nil)

	view, err := dashboard.Fetch(context.Background(), mockFetcher, clock, dashboard.Query{
		Scope:  attendance.ScopeAll,
		Facets: attendance.Facets{CheckIn: true, CheckOut: true},
		Filter: attendance.Filter{Department: "sales"},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.LayoutPaired, view.Layout)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "8h 0m", view.Rows[0].WorkingHours)
	assert.Equal(t, attendance.Summary{Present: 1, Late: 1, CheckedOut: 1, LeftEarly: 1}, view.Summary)
	assert.Equal(t, []string{"Legal", "Ops", "Sales"}, view.Departments)
}

func TestFetch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFetcher := dashboard.NewMockFetcher(ctrl)

	mockFetcher.EXPECT().
		FetchAttendance(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("unreachable"))

	view, err := dashboard.Fetch(context.Background(), mockFetcher, clock, dashboard.Query{Scope: attendance.ScopeToday})
	require.Error(t, err)
	assert.Nil(t, view)
}
