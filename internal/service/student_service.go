package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/export"
)

type studentListRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	Roster(ctx context.Context) ([]models.RosterEntry, error)
}

// ExportResult carries rendered export bytes and HTTP metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// StudentService gives the teacher visibility into the student body: a
// paginated listing and a downloadable roster with entitlement aggregates.
type StudentService struct {
	students studentListRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(students studentListRepository, csv *export.CSVExporter, pdf *export.PDFExporter, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &StudentService{students: students, csv: csv, pdf: pdf, metrics: metrics, logger: logger}
}

// List returns a filtered, paginated slice of students.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	start := time.Now()
	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	s.metrics.ObserveDBQuery("students_list", time.Since(start))
	if students == nil {
		students = []models.Student{}
	}

	return students, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}, nil
}

// Roster returns every student joined with aggregate purchase and progress
// counts.
func (s *StudentService) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	start := time.Now()
	roster, err := s.students.Roster(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build roster")
	}
	s.metrics.ObserveDBQuery("students_roster", time.Since(start))
	if roster == nil {
		roster = []models.RosterEntry{}
	}
	return roster, nil
}

// ExportRoster renders the roster as a CSV or PDF download.
func (s *StudentService) ExportRoster(ctx context.Context, format string) (*ExportResult, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}

	dataset := rosterDataset(roster)
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case "csv", "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("student-roster-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, "Student Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("student-roster-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, use csv or pdf")
	}
}

func rosterDataset(roster []models.RosterEntry) export.Dataset {
	headers := []string{"Name", "Email", "Verified", "Chapters", "Courses", "Topics Watched", "Quizzes Passed", "Last Login"}
	rows := make([]map[string]string, 0, len(roster))
	for _, entry := range roster {
		lastLogin := ""
		if entry.LastLogin != nil {
			lastLogin = entry.LastLogin.UTC().Format(time.RFC3339)
		}
		rows = append(rows, map[string]string{
			"Name":           entry.Name,
			"Email":          entry.Email,
			"Verified":       strconv.FormatBool(entry.IsVerified),
			"Chapters":       strconv.Itoa(entry.ChaptersPurchased),
			"Courses":        strconv.Itoa(entry.CoursesPurchased),
			"Topics Watched": strconv.Itoa(entry.TopicsWatched),
			"Quizzes Passed": strconv.Itoa(entry.QuizzesPassed),
			"Last Login":     lastLogin,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
