package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

// AnalysisRepository reads the result tables filled by the external analysis services.
type AnalysisRepository struct {
	db DBTX
}

func NewAnalysisRepository(db DBTX) *AnalysisRepository {
	return &AnalysisRepository{db}
}

func (r *AnalysisRepository) GetEmotionResults(ctx context.Context) ([]entity.EmotionResult, error) {
	query := `
		SELECT id, user_id, confident_percentage, visual_confidence, verbal_confidence, overall_confidence,
		       COALESCE(transcribed_speech, ''), timestamp
		FROM emotion_results
		ORDER BY timestamp DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "emotion_results", err)
	}
	defer rows.Close()

	results := []entity.EmotionResult{}
	for rows.Next() {
		var e entity.EmotionResult
		err := rows.Scan(&e.ID, &e.UserID, &e.ConfidentPercentage, &e.VisualConfidence, &e.VerbalConfidence,
			&e.OverallConfidence, &e.TranscribedSpeech, &e.Timestamp)
		if err != nil {
			return nil, wrap("SELECT", "emotion_results", err)
		}
		results = append(results, e)
	}
	return results, wrap("SELECT", "emotion_results", rows.Err())
}

func (r *AnalysisRepository) GetAudioResults(ctx context.Context) ([]entity.AudioResult, error) {
	query := `
		SELECT id, user_id, COALESCE(pronunciation, ''), COALESCE(suggestion, ''), COALESCE(most_repeated_word, ''), created_at
		FROM audio_results
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "audio_results", err)
	}
	defer rows.Close()

	results := []entity.AudioResult{}
	for rows.Next() {
		var a entity.AudioResult
		if err := rows.Scan(&a.ID, &a.UserID, &a.Pronunciation, &a.Suggestion, &a.MostRepeatedWord, &a.CreatedAt); err != nil {
			return nil, wrap("SELECT", "audio_results", err)
		}
		results = append(results, a)
	}
	return results, wrap("SELECT", "audio_results", rows.Err())
}

func (r *AnalysisRepository) GetAnalysisResults(ctx context.Context) ([]entity.AnalysisResult, error) {
	query := `
		SELECT id, user_id, COALESCE(pronunciation_assessment, ''), COALESCE(most_repeated_word, ''),
		       COALESCE(general_pronunciation_suggestion, ''), confident_percentage, created_at
		FROM analysis_results
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "analysis_results", err)
	}
	defer rows.Close()

	results := []entity.AnalysisResult{}
	for rows.Next() {
		var a entity.AnalysisResult
		err := rows.Scan(&a.ID, &a.UserID, &a.PronunciationAssessment, &a.MostRepeatedWord,
			&a.GeneralPronunciationSuggestion, &a.ConfidentPercentage, &a.CreatedAt)
		if err != nil {
			return nil, wrap("SELECT", "analysis_results", err)
		}
		results = append(results, a)
	}
	return results, wrap("SELECT", "analysis_results", rows.Err())
}
