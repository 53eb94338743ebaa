package api

import "github.com/diogo/glassai/internal/models"

// MockAnalyzer is a mock implementation of Analyzer for testing
type MockAnalyzer struct {
	// Mock return values
	AnalyzeVal *models.AnalysisResponse
	AnalyzeErr error

	// Call counters/recorders
	AnalyzeCalled int
	LastEndpoint  string
	LastRequest   models.AnalysisRequest
}

// Ensure MockAnalyzer implements Analyzer
var _ Analyzer = (*MockAnalyzer)(nil)

func (m *MockAnalyzer) SetEndpoint(endpoint string) {
	m.LastEndpoint = endpoint
}

func (m *MockAnalyzer) Analyze(req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	m.AnalyzeCalled++
	m.LastRequest = req
	return m.AnalyzeVal, m.AnalyzeErr
}
