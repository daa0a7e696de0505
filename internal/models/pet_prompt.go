package models

import (
	"fmt"
	"strings"
)

const defaultPersonality = "友善可爱"

// MoodPhrase returns the first-person phrase used to describe a mood in prompts.
func MoodPhrase(m Mood) string {
	switch m {
	case MoodHappy:
		return "心情很好，很开心"
	case MoodExcited:
		return "非常兴奋，充满活力"
	case MoodCalm:
		return "很平静，很放松"
	case MoodSleepy:
		return "有点困倦，想睡觉"
	case MoodPlayful:
		return "想要玩耍，很活跃"
	case MoodHungry:
		return "有点饿了，想吃东西"
	case MoodSad:
		return "有点伤心，需要安慰"
	case MoodAnxious:
		return "有点焦虑，需要关爱"
	default:
		return "心情不错"
	}
}

// AgeDisplay formats an age in months for humans.
func AgeDisplay(months *int) string {
	if months == nil || *months <= 0 {
		return "未知"
	}
	years, rest := *months/12, *months%12
	switch {
	case years > 0 && rest > 0:
		return fmt.Sprintf("%d岁%d个月", years, rest)
	case years > 0:
		return fmt.Sprintf("%d岁", years)
	default:
		return fmt.Sprintf("%d个月", rest)
	}
}

// AgeDisplay is the pet's age formatted for humans.
func (p *Pet) AgeDisplay() string {
	return AgeDisplay(p.Age)
}

// PersonalityText prefers the free-text personality, then the joined tags.
func (p *Pet) PersonalityText() string {
	if s := strings.TrimSpace(p.Personality); s != "" {
		return s
	}
	if len(p.Traits) > 0 {
		return strings.Join(p.Traits, "、")
	}
	return defaultPersonality
}

// RenderPetPrompt builds the default role-play prompt for a pet.
func RenderPetPrompt(p *Pet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "你是一只名叫%s的%s，%s大。\n", p.Name, p.Breed, p.AgeDisplay())
	fmt.Fprintf(&b, "你的性格是%s，目前%s。\n", p.PersonalityText(), MoodPhrase(p.CurrentMood))
	b.WriteString("请用宠物的视角和语气回复主人，表现出你的个性特征。\n")
	b.WriteString("回复要温馨、可爱，符合宠物的特点。")
	return b.String()
}

// EffectivePrompt returns the owner's override when set, otherwise the rendered default.
func (p *Pet) EffectivePrompt() string {
	if strings.TrimSpace(p.AIPrompt) != "" {
		return p.AIPrompt
	}
	return RenderPetPrompt(p)
}
