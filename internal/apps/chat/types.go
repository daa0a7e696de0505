package chat

import "github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type ChatResponse struct {
	UserMessage models.Message `json:"user_message"`
	PetMessage  models.Message `json:"pet_message"`
	Fallback    bool           `json:"fallback"`
}

// replyExtra is stored in the extra_data column of a pet reply.
type replyExtra struct {
	Fallback bool        `json:"fallback"`
	Mood     models.Mood `json:"mood"`
}

type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	HasNext  bool             `json:"has_next"`
}

type FeedContentRequest struct {
	PetID    uint   `json:"pet_id" validate:"required"`
	Activity string `json:"activity" validate:"required,max=50"`
	Mood     string `json:"mood" validate:"max=20"`
}

type FeedContentResponse struct {
	PetID    uint   `json:"pet_id"`
	Content  string `json:"content"`
	Fallback bool   `json:"fallback"`
}

type SentimentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type Sentiment struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Emotions   []string `json:"emotions"`
	MoodScore  int      `json:"mood_score"`
	Fallback   bool     `json:"fallback"`
}

func neutralSentiment() *Sentiment {
	return &Sentiment{
		Sentiment:  "neutral",
		Confidence: 0.5,
		Emotions:   []string{"平静"},
		MoodScore:  5,
		Fallback:   true,
	}
}
