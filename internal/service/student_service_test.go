package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/export"
)

type mockRosterRepo struct {
	students   []models.Student
	total      int
	entries    []models.RosterEntry
	lastFilter models.StudentFilter
}

func (m *mockRosterRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	m.lastFilter = filter
	return m.students, m.total, nil
}

func (m *mockRosterRepo) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	return m.entries, nil
}

func newTestStudentService(repo *mockRosterRepo) *StudentService {
	return NewStudentService(repo, export.NewCSVExporter(), export.NewPDFExporter(), nil, zap.NewNop())
}

func TestStudentListDefaultsPagination(t *testing.T) {
	repo := &mockRosterRepo{
		students: []models.Student{{ID: "s1", Name: "Asha"}},
		total:    45,
	}
	svc := newTestStudentService(repo)

	students, pagination, err := svc.List(context.Background(), models.StudentFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 45, pagination.TotalCount)
}

func TestExportRosterCSV(t *testing.T) {
	lastLogin := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	repo := &mockRosterRepo{entries: []models.RosterEntry{{
		ID: "s1", Name: "Asha", Email: "asha@example.com", IsVerified: true,
		ChaptersPurchased: 2, CoursesPurchased: 1, TopicsWatched: 14, QuizzesPassed: 3,
		LastLogin: &lastLogin,
	}}}
	svc := newTestStudentService(repo)

	result, err := svc.ExportRoster(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.FileName, "student-roster-"))
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	body := string(result.Data)
	assert.Contains(t, body, "asha@example.com")
	assert.Contains(t, body, "14")
}

func TestExportRosterPDF(t *testing.T) {
	repo := &mockRosterRepo{entries: []models.RosterEntry{{ID: "s1", Name: "Asha", Email: "asha@example.com"}}}
	svc := newTestStudentService(repo)

	result, err := svc.ExportRoster(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestStudentQueriesFeedMetricsSnapshot(t *testing.T) {
	repo := &mockRosterRepo{entries: []models.RosterEntry{{ID: "s1", Name: "Asha"}}}
	metrics := NewMetricsService()
	svc := NewStudentService(repo, export.NewCSVExporter(), export.NewPDFExporter(), metrics, zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	_, err = svc.Roster(ctx)
	require.NoError(t, err)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.DBQueryCount)
}

func TestExportRosterUnknownFormat(t *testing.T) {
	svc := newTestStudentService(&mockRosterRepo{})

	_, err := svc.ExportRoster(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
