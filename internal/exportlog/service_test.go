package exportlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
)

func TestService_Record(t *testing.T) {
	type testCase struct {
		name      string
		file      *export.File
		setupMock func(m *exportlog.MockRepository)
		wantErr   error
	}

	file := &export.File{
		Name:   "attendance-today-paired-2025-03-14.csv",
		Format: export.FormatCSV,
		Layout: attendance.LayoutPaired,
		Scope:  attendance.ScopeToday,
		Rows:   4,
	}

	repoErr := errors.New("db down")

	tests := []testCase{
		{
			name: "Success",
			file: file,
			setupMock: func(m *exportlog.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *exportlog.Entry) error {
						assert.Equal(t, "attendance-today-paired-2025-03-14.csv", e.Filename)
						assert.Equal(t, "csv", e.Format)
						assert.Equal(t, "paired", e.Layout)
						assert.Equal(t, "today", e.Scope)
						assert.Equal(t, 4, e.Rows)
						assert.Equal(t, "admin", e.Username)

						e.ID = uuid.New()
						e.CreatedAt = time.Now()

						return nil
					})
			},
		},
		{
			name:      "EmptyFile",
			file:      &export.File{Name: "x.csv"},
			setupMock: func(m *exportlog.MockRepository) {},
			wantErr:   exportlog.ErrEmptyExport,
		},
		{
			name: "RepoError",
			file: file,
			setupMock: func(m *exportlog.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(repoErr)
			},
			wantErr: repoErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := exportlog.NewMockRepository(ctrl)
			tt.setupMock(mockRepo)

			svc := exportlog.NewService(mockRepo)

			got, err := svc.Record(context.Background(), tt.file, "admin")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		limit     int
		wantLimit int
	}

	tests := []testCase{
		{name: "Default", limit: 0, wantLimit: exportlog.DefaultLimit},
		{name: "Negative", limit: -5, wantLimit: exportlog.DefaultLimit},
		{name: "Within", limit: 7, wantLimit: 7},
		{name: "Clamped", limit: 5000, wantLimit: exportlog.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := exportlog.NewMockRepository(ctrl)

			want := []*exportlog.Entry{{ID: uuid.New(), Filename: "a.csv"}}

			mockRepo.EXPECT().
				ListEntries(gomock.Any(), exportlog.ListFilter{Limit: tt.wantLimit}).
				Return(want, nil)

			got, err := exportlog.NewService(mockRepo).List(context.Background(), exportlog.ListFilter{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestService_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := exportlog.NewMockRepository(ctrl)

	mockRepo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	_, err := exportlog.NewService(mockRepo).List(context.Background(), exportlog.ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing exports")
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := exportlog.NewMockRepository(ctrl)

	id := uuid.New()

	mockRepo.EXPECT().
		GetEntry(gomock.Any(), id).
		Return(nil, exportlog.ErrNotFound)

	_, err := exportlog.NewService(mockRepo).Get(context.Background(), id)
	assert.ErrorIs(t, err, exportlog.ErrNotFound)
}
