package chat

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPet(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Pet {
	t.Helper()
	pet := &models.Pet{
		OwnerID:       ownerID,
		Name:          name,
		Breed:         "Shiba",
		Traits:        []string{},
		CurrentMood:   models.MoodHappy,
		ResponseStyle: models.DefaultResponseStyle,
		Level:         1,
		IsActive:      true,
	}
	require.NoError(t, db.Create(pet).Error)
	return pet
}

func TestChat_StoresBothTurns(t *testing.T) {
	db := testutil.NewDB(t)
	fake, client := newFakeAI(t, "主人好！")
	svc := NewChatService(db, client)
	owner := testutil.CreateUser(t, db, "alice")
	pet := createPet(t, db, owner.ID, "Doge")

	resp, err := svc.Chat(context.Background(), owner.ID, pet.ID, ChatRequest{Message: " 你好 "})
	require.NoError(t, err)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "你好", resp.UserMessage.Content)
	assert.Equal(t, "主人好！", resp.PetMessage.Content)
	assert.Equal(t, models.MessagePet, resp.PetMessage.MessageType)
	assert.Equal(t, fmt.Sprintf("%d-%d", owner.ID, pet.ID), resp.PetMessage.ConversationID)

	req := fake.last()
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "Doge")
	assert.Equal(t, ChatMessage{Role: "user", Content: "你好"}, req.Messages[1])

	var n int64
	db.Model(&models.Message{}).Count(&n)
	assert.Equal(t, int64(2), n)

	var stored models.Message
	require.NoError(t, db.Where("message_type = ?", models.MessagePet).First(&stored).Error)
	assert.JSONEq(t, `{"fallback":false,"mood":"happy"}`, string(stored.ExtraData))
}

func TestChat_HistoryWindow(t *testing.T) {
	db := testutil.NewDB(t)
	fake, client := newFakeAI(t, "嗯嗯")
	svc := NewChatService(db, client)
	owner := testutil.CreateUser(t, db, "alice")
	pet := createPet(t, db, owner.ID, "Doge")
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := svc.Chat(ctx, owner.ID, pet.ID, ChatRequest{Message: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
	}

	req := fake.last()
	// system + 10 history turns + current message
	require.Len(t, req.Messages, 12)
	assert.Equal(t, ChatMessage{Role: "user", Content: "msg 2"}, req.Messages[1])
	assert.Equal(t, "assistant", req.Messages[2].Role)
	assert.Equal(t, ChatMessage{Role: "user", Content: "msg 7"}, req.Messages[11])
}

func TestChat_FallbackOnProviderError(t *testing.T) {
	db := testutil.NewDB(t)
	fake, client := newFakeAI(t, "")
	fake.set(http.StatusInternalServerError, "")
	svc := NewChatService(db, client)
	owner := testutil.CreateUser(t, db, "alice")
	pet := createPet(t, db, owner.ID, "Doge")

	resp, err := svc.Chat(context.Background(), owner.ID, pet.ID, ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, "汪汪！Doge现在有点害羞，不知道说什么好～", resp.PetMessage.Content)
	assert.Equal(t, 1, fake.calls())
	assert.JSONEq(t, `{"fallback":true,"mood":"happy"}`, string(resp.PetMessage.ExtraData))
}

func TestChat_Validation(t *testing.T) {
	db := testutil.NewDB(t)
	_, client := newFakeAI(t, "hi")
	svc := NewChatService(db, client)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	pet := createPet(t, db, alice.ID, "Doge")

	_, err := svc.Chat(context.Background(), alice.ID, pet.ID, ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Chat(context.Background(), bob.ID, pet.ID, ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, services.ErrPetNotFound)
}

func TestMessages_SoftDeletedPetKeepsHistory(t *testing.T) {
	db := testutil.NewDB(t)
	_, client := newFakeAI(t, "汪")
	svc := NewChatService(db, client)
	owner := testutil.CreateUser(t, db, "alice")
	other := testutil.CreateUser(t, db, "bob")
	pet := createPet(t, db, owner.ID, "Doge")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Chat(ctx, owner.ID, pet.ID, ChatRequest{Message: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}
	require.NoError(t, db.Model(pet).Update("is_active", false).Error)

	_, err := svc.Chat(ctx, owner.ID, pet.ID, ChatRequest{Message: "still there?"})
	assert.ErrorIs(t, err, services.ErrPetNotFound)

	page, err := svc.Messages(ctx, owner.ID, pet.ID, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Len(t, page.Messages, 4)
	assert.True(t, page.HasNext)
	assert.Equal(t, models.MessagePet, page.Messages[0].MessageType)

	_, err = svc.Messages(ctx, other.ID, pet.ID, 1, 10)
	assert.ErrorIs(t, err, services.ErrPetNotFound)
}

func TestFeedContent(t *testing.T) {
	db := testutil.NewDB(t)
	fake, client := newFakeAI(t, "今天散步好开心！🐶")
	svc := NewChatService(db, client)
	owner := testutil.CreateUser(t, db, "alice")
	pet := createPet(t, db, owner.ID, "Doge")
	ctx := context.Background()

	resp, err := svc.FeedContent(ctx, owner.ID, FeedContentRequest{PetID: pet.ID, Activity: "散步"})
	require.NoError(t, err)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "今天散步好开心！🐶", resp.Content)
	assert.Contains(t, fake.last().Messages[0].Content, "心情开心")

	fake.set(http.StatusServiceUnavailable, "")
	resp, err = svc.FeedContent(ctx, owner.ID, FeedContentRequest{PetID: pet.ID, Activity: "睡觉", Mood: "困"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, "Doge今天睡觉啦！🐾", resp.Content)

	_, err = svc.FeedContent(ctx, owner.ID, FeedContentRequest{PetID: pet.ID})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSentiment(t *testing.T) {
	db := testutil.NewDB(t)
	fake, client := newFakeAI(t, "```json\n{\"sentiment\":\"positive\",\"confidence\":0.9,\"emotions\":[\"开心\"],\"mood_score\":8}\n```")
	svc := NewChatService(db, client)
	ctx := context.Background()

	got, err := svc.Sentiment(ctx, SentimentRequest{Text: "今天真好"})
	require.NoError(t, err)
	assert.Equal(t, "positive", got.Sentiment)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Equal(t, []string{"开心"}, got.Emotions)
	assert.Equal(t, 8, got.MoodScore)
	assert.False(t, got.Fallback)

	fake.set(http.StatusOK, "I think it is positive")
	got, err = svc.Sentiment(ctx, SentimentRequest{Text: "今天真好"})
	require.NoError(t, err)
	assert.Equal(t, neutralSentiment(), got)

	fake.set(http.StatusInternalServerError, "")
	got, err = svc.Sentiment(ctx, SentimentRequest{Text: "今天真好"})
	require.NoError(t, err)
	assert.Equal(t, "neutral", got.Sentiment)
	assert.Equal(t, 0.5, got.Confidence)
	assert.Equal(t, []string{"平静"}, got.Emotions)
	assert.Equal(t, 5, got.MoodScore)
}
