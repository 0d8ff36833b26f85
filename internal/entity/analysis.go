package entity

import "time"

// The result tables are written by the external analysis services; this service only reads them.

type EmotionResult struct {
	ID                  int       `json:"id"`
	UserID              int       `json:"user_id"`
	ConfidentPercentage float64   `json:"confident_percentage"`
	VisualConfidence    float64   `json:"visual_confidence"`
	VerbalConfidence    float64   `json:"verbal_confidence"`
	OverallConfidence   float64   `json:"overall_confidence"`
	TranscribedSpeech   string    `json:"transcribed_speech"`
	Timestamp           time.Time `json:"timestamp"`
}

type AudioResult struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Pronunciation    string    `json:"pronunciation"`
	Suggestion       string    `json:"suggestion"`
	MostRepeatedWord string    `json:"most_repeated_word"`
	CreatedAt        time.Time `json:"created_at"`
}

type AnalysisResult struct {
	ID                             int       `json:"id"`
	UserID                         int       `json:"user_id"`
	PronunciationAssessment        string    `json:"pronunciation_assessment"`
	MostRepeatedWord               string    `json:"most_repeated_word"`
	GeneralPronunciationSuggestion string    `json:"general_pronunciation_suggestion"`
	ConfidentPercentage            float64   `json:"confident_percentage"`
	CreatedAt                      time.Time `json:"created_at"`
}
