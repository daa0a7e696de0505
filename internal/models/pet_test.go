package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRecordInteraction_LevelsFromExperience(t *testing.T) {
	cases := []struct {
		n         int
		wantLevel int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{100, 11},
	}

	for _, tc := range cases {
		p := &Pet{Level: 1}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < tc.n; i++ {
			p.RecordInteraction(now)
		}
		assert.Equal(t, tc.n, p.InteractionCount, "n=%d", tc.n)
		assert.Equal(t, tc.n, p.ExperiencePoints, "n=%d", tc.n)
		assert.Equal(t, tc.wantLevel, p.Level, "n=%d", tc.n)
		if tc.n > 0 {
			assert.Equal(t, now, *p.LastInteractionAt)
		} else {
			assert.Nil(t, p.LastInteractionAt)
		}
	}
}

func TestRecordInteraction_LevelNeverDecreases(t *testing.T) {
	p := &Pet{Level: 7, ExperiencePoints: 3}
	prev := p.Level
	for i := 0; i < 40; i++ {
		p.RecordInteraction(time.Now())
		assert.GreaterOrEqual(t, p.Level, prev)
		prev = p.Level
	}
	assert.Equal(t, 7, p.Level)
}

func TestAgeDisplay(t *testing.T) {
	assert.Equal(t, "未知", AgeDisplay(nil))
	assert.Equal(t, "未知", AgeDisplay(intPtr(0)))
	assert.Equal(t, "2岁", AgeDisplay(intPtr(24)))
	assert.Equal(t, "1岁6个月", AgeDisplay(intPtr(18)))
	assert.Equal(t, "5个月", AgeDisplay(intPtr(5)))
}

func TestMoodPhrase(t *testing.T) {
	assert.Equal(t, "心情很好，很开心", MoodPhrase(MoodHappy))
	assert.Equal(t, "有点焦虑，需要关爱", MoodPhrase(MoodAnxious))
	assert.Equal(t, "心情不错", MoodPhrase(Mood("grumpy")))

	for _, m := range AllMoods {
		assert.True(t, m.Valid())
		assert.NotEqual(t, "心情不错", MoodPhrase(m), string(m))
	}
}

func TestRenderPetPrompt(t *testing.T) {
	p := &Pet{Name: "Buddy", Breed: "Golden", Age: intPtr(24), CurrentMood: MoodPlayful}

	got := RenderPetPrompt(p)

	assert.True(t, strings.HasPrefix(got, "你是一只名叫Buddy的Golden，2岁大。\n"))
	assert.Contains(t, got, "你的性格是友善可爱，目前想要玩耍，很活跃。")
	assert.True(t, strings.HasSuffix(got, "符合宠物的特点。"))
}

func TestPersonalityText_FallsBackToTags(t *testing.T) {
	p := &Pet{Traits: []string{"活泼", "粘人"}}
	assert.Equal(t, "活泼、粘人", p.PersonalityText())

	p.Personality = "  温顺 "
	assert.Equal(t, "温顺", p.PersonalityText())
}

func TestEffectivePrompt_PrefersOverride(t *testing.T) {
	p := &Pet{Name: "Mimi", Breed: "Ragdoll", AIPrompt: "custom"}
	assert.Equal(t, "custom", p.EffectivePrompt())

	p.AIPrompt = "   "
	assert.Contains(t, p.EffectivePrompt(), "Mimi")
}

func TestEnums(t *testing.T) {
	assert.True(t, GenderUnknown.Valid())
	assert.False(t, Gender("other").Valid())
	assert.True(t, SizeGiant.Valid())
	assert.False(t, Size("tiny").Valid())
	assert.True(t, MessagePet.Valid())
	assert.False(t, MessageType("bot").Valid())
	assert.Equal(t, "3-7", ConversationID(3, 7))
}
