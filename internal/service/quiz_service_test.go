package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type mockQuizRepo struct {
	byChapter map[string]*models.Quiz
}

func newMockQuizRepo() *mockQuizRepo {
	return &mockQuizRepo{byChapter: map[string]*models.Quiz{}}
}

func (m *mockQuizRepo) GetByChapter(ctx context.Context, chapterID string) (*models.Quiz, error) {
	if q, ok := m.byChapter[chapterID]; ok {
		return q, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuizRepo) Upsert(ctx context.Context, quiz *models.Quiz) error {
	m.byChapter[quiz.ChapterID] = quiz
	return nil
}

func validQuizPayload() models.SaveQuizRequest {
	return models.SaveQuizRequest{
		Questions: []models.Question{{
			ID:                 "q1",
			Text:               "The SI unit of force is",
			Options:            []string{"newton", "joule", "watt"},
			CorrectOptionIndex: 0,
		}},
	}
}

func TestQuizSaveReplacesQuestionSet(t *testing.T) {
	repo := newMockQuizRepo()
	svc := NewQuizService(repo, testCatalog(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, "ch-units", validQuizPayload())
	require.NoError(t, err)

	replacement := validQuizPayload()
	replacement.Questions[0].Text = "One newton equals"
	_, err = svc.Save(ctx, "ch-units", replacement)
	require.NoError(t, err)

	quiz, err := svc.GetByChapter(ctx, "ch-units")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "One newton equals", quiz.Questions[0].Text)
}

func TestQuizSaveRejectsOutOfRangeAnswer(t *testing.T) {
	svc := NewQuizService(newMockQuizRepo(), testCatalog(), nil, zap.NewNop())

	payload := validQuizPayload()
	payload.Questions[0].CorrectOptionIndex = 3
	_, err := svc.Save(context.Background(), "ch-units", payload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestQuizSaveUnknownChapter(t *testing.T) {
	svc := NewQuizService(newMockQuizRepo(), testCatalog(), nil, zap.NewNop())

	_, err := svc.Save(context.Background(), "ch-missing", validQuizPayload())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestQuizGetByChapterMissing(t *testing.T) {
	svc := NewQuizService(newMockQuizRepo(), testCatalog(), nil, zap.NewNop())

	_, err := svc.GetByChapter(context.Background(), "ch-units")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
