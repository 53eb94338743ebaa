package api

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/diogo/glassai/internal/models"
)

// MockEmptyRequestText is the fixed reply for a request carrying neither
// text nor image.
const MockEmptyRequestText = "Please provide an image, text, or both for analysis."

// mockResponse synthesizes an offline response after a simulated delay. The
// shape mirrors a live reply: text plus a fixed confidence and metadata
// describing what was present in the request.
func (c *Client) mockResponse(req models.AnalysisRequest) *models.AnalysisResponse {
	time.Sleep(c.mockDelay())

	hasImage := req.Image != ""
	hasText := req.Text != ""

	var text string
	switch {
	case hasImage && hasText:
		text = fmt.Sprintf("I can see the image you've shared. Regarding your question %q - "+
			"I've analyzed both the visual content and your text input. The image appears to show "+
			"interesting details that relate to your query. In a production environment, this would "+
			"provide detailed AI analysis combining both inputs.",
			models.TruncateText(req.Text, models.PreviewMaxLen))
	case hasImage:
		text = "I've analyzed the image you captured. In a production environment with a connected " +
			"AI backend, I would provide detailed descriptions of objects, text, scenes, or any other " +
			"relevant information visible in the photo. The image has been successfully processed and encoded."
	case hasText:
		text = fmt.Sprintf("You asked: %q. This is a demonstration response. When connected to your "+
			"AI backend, this would provide intelligent, contextual answers to your questions. The "+
			"system is ready to process both text and images.", req.Text)
	default:
		text = MockEmptyRequestText
	}

	return &models.AnalysisResponse{
		Text:       text,
		Confidence: 0.95,
		Metadata: map[string]any{
			"processingTime": 200 + rand.Float64()*500,
			"model":          models.MockModelTag,
			"hasImage":       hasImage,
			"hasText":        hasText,
		},
	}
}
