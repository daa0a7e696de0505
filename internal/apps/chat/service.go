package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps/pets"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	historyWindow   = 10
	chatMaxTokens   = 300
	feedMaxTokens   = 100
	sentimentTokens = 200
	defaultFeedMood = "开心"
)

const sentimentPrompt = `你是一个情感分析专家，请分析用户输入的情感倾向。
返回JSON格式：
{"sentiment": "positive/negative/neutral", "confidence": 0.95, "emotions": ["开心", "兴奋"], "mood_score": 8}`

type ChatService struct {
	db *gorm.DB
	ai Completer
}

func NewChatService(db *gorm.DB, ai Completer) *ChatService {
	return &ChatService{db: db, ai: ai}
}

// complete runs a single completion attempt and reports whether it succeeded.
func (s *ChatService) complete(ctx context.Context, kind string, req CompletionRequest) (string, bool) {
	start := time.Now()
	reply, err := s.ai.Complete(ctx, req)
	metrics.RecordCompletion(kind, time.Since(start), err != nil)
	if err != nil {
		slog.Warn("AI completion failed, using fallback", "kind", kind, "error", err)
		return "", false
	}
	return reply, true
}

func shyReply(name string) string {
	return fmt.Sprintf("汪汪！%s现在有点害羞，不知道说什么好～", name)
}

// Chat sends the owner's message to the pet and stores both turns.
func (s *ChatService) Chat(ctx context.Context, ownerID, petID uint, req ChatRequest) (*ChatResponse, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	pet, err := pets.FindActivePet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}

	convID := models.ConversationID(ownerID, pet.ID)
	history, err := recentHistory(db, convID, historyWindow)
	if err != nil {
		return nil, err
	}

	prompt := make([]ChatMessage, 0, len(history)+2)
	prompt = append(prompt, ChatMessage{Role: "system", Content: pet.EffectivePrompt()})
	for _, m := range history {
		switch m.MessageType {
		case models.MessageUser:
			prompt = append(prompt, ChatMessage{Role: "user", Content: m.Content})
		case models.MessagePet:
			prompt = append(prompt, ChatMessage{Role: "assistant", Content: m.Content})
		}
	}
	prompt = append(prompt, ChatMessage{Role: "user", Content: req.Message})

	reply, ok := s.complete(ctx, "chat", CompletionRequest{Messages: prompt, MaxTokens: chatMaxTokens, Temperature: 0.9})
	if !ok {
		reply = shyReply(pet.Name)
	}

	extra, err := json.Marshal(replyExtra{Fallback: !ok, Mood: pet.CurrentMood})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply metadata: %w", err)
	}
	resp := &ChatResponse{
		UserMessage: models.Message{
			ConversationID: convID,
			UserID:         ownerID,
			PetID:          pet.ID,
			MessageType:    models.MessageUser,
			Content:        req.Message,
		},
		PetMessage: models.Message{
			ConversationID: convID,
			UserID:         ownerID,
			PetID:          pet.ID,
			MessageType:    models.MessagePet,
			Content:        reply,
			ExtraData:      datatypes.JSON(extra),
		},
		Fallback: !ok,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resp.UserMessage).Error; err != nil {
			return err
		}
		return tx.Create(&resp.PetMessage).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save messages: %w", err)
	}

	slog.Info("pet chat", "user_id", ownerID, "pet_id", pet.ID, "fallback", !ok, "action", "chat")
	return resp, nil
}

// recentHistory returns the last n messages of a conversation, oldest first.
func recentHistory(db *gorm.DB, convID string, n int) ([]models.Message, error) {
	var rows []models.Message
	if err := db.Where("conversation_id = ?", convID).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Messages pages through a conversation, newest first. Soft-deleted pets the
// caller owns keep their history readable.
func (s *ChatService) Messages(ctx context.Context, ownerID, petID uint, page, size int) (*MessageListResponse, error) {
	page, size = dto.ClampPage(page, size)
	db := s.db.WithContext(ctx)
	pet, err := pets.FindOwnedPet(db, ownerID, petID)
	if err != nil {
		return nil, err
	}

	convID := models.ConversationID(ownerID, pet.ID)
	var total int64
	if err := db.Model(&models.Message{}).Where("conversation_id = ?", convID).Count(&total).Error; err != nil {
		return nil, err
	}

	msgs := []models.Message{}
	if err := db.Where("conversation_id = ?", convID).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	return &MessageListResponse{
		Messages: msgs,
		Total:    total,
		Page:     page,
		Size:     size,
		HasNext:  int64(page*size) < total,
	}, nil
}

// FeedContent drafts a short caption for a pet activity.
func (s *ChatService) FeedContent(ctx context.Context, ownerID uint, req FeedContentRequest) (*FeedContentResponse, error) {
	req.Activity = strings.TrimSpace(req.Activity)
	req.Mood = strings.TrimSpace(req.Mood)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}
	if req.Mood == "" {
		req.Mood = defaultFeedMood
	}

	pet, err := pets.FindActivePet(s.db.WithContext(ctx), ownerID, req.PetID)
	if err != nil {
		return nil, err
	}

	system := fmt.Sprintf("你是一只名叫%s的宠物，性格%s，现在心情%s。\n"+
		"请为你的%s活动写一条朋友圈动态，要求：以第一人称描述，体现宠物的可爱和天真，30字以内，可以加入适当的emoji表情。",
		pet.Name, pet.PersonalityText(), req.Mood, req.Activity)

	content, ok := s.complete(ctx, "feed_content", CompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: fmt.Sprintf("我刚刚%s，帮我写个动态吧！", req.Activity)},
		},
		MaxTokens:   feedMaxTokens,
		Temperature: 1.0,
	})
	if !ok {
		content = fmt.Sprintf("%s今天%s啦！🐾", pet.Name, req.Activity)
	}
	return &FeedContentResponse{PetID: pet.ID, Content: content, Fallback: !ok}, nil
}

// Sentiment classifies text. Unparseable replies degrade to a neutral result.
func (s *ChatService) Sentiment(ctx context.Context, req SentimentRequest) (*Sentiment, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := services.Validate(&req); err != nil {
		return nil, err
	}

	reply, ok := s.complete(ctx, "sentiment", CompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: sentimentPrompt},
			{Role: "user", Content: "请分析这段话的情感：" + req.Text},
		},
		MaxTokens:   sentimentTokens,
		Temperature: 0.3,
	})
	if !ok {
		return neutralSentiment(), nil
	}

	var out Sentiment
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &out); err != nil {
		slog.Warn("sentiment reply was not JSON", "error", err)
		return neutralSentiment(), nil
	}
	switch out.Sentiment {
	case "positive", "negative", "neutral":
	default:
		return neutralSentiment(), nil
	}
	if out.Emotions == nil {
		out.Emotions = []string{}
	}
	return &out, nil
}
