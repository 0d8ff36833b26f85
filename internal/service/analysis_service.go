package service

import (
	"context"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

// ReportFetcher proxies report requests to the analysis services.
type ReportFetcher interface {
	Reports(ctx context.Context, service, token string) ([]byte, error)
}

type AnalysisService struct {
	analysisRepo *repository.AnalysisRepository
	reports      ReportFetcher
}

func NewAnalysisService(analysisRepo *repository.AnalysisRepository, reports ReportFetcher) *AnalysisService {
	return &AnalysisService{analysisRepo: analysisRepo, reports: reports}
}

func (s *AnalysisService) GetEmotionResults(ctx context.Context) ([]entity.EmotionResult, error) {
	results, err := s.analysisRepo.GetEmotionResults(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting emotion results")
	}
	return results, err
}

func (s *AnalysisService) GetAudioResults(ctx context.Context) ([]entity.AudioResult, error) {
	results, err := s.analysisRepo.GetAudioResults(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting audio results")
	}
	return results, err
}

func (s *AnalysisService) GetAnalysisResults(ctx context.Context) ([]entity.AnalysisResult, error) {
	results, err := s.analysisRepo.GetAnalysisResults(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting analysis results")
	}
	return results, err
}

// Reports returns the raw JSON reply of the named analysis service for the caller.
func (s *AnalysisService) Reports(ctx context.Context, sess Session, service, token string) ([]byte, error) {
	if err := sess.authorize(sess.UserID); err != nil {
		return nil, err
	}
	return s.reports.Reports(ctx, service, token)
}
