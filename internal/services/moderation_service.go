package services

import (
	"regexp"
	"strings"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"scam", "scammer", "phishing", "malware",
}

// ModerationService screens user-written text before it is published.
type ModerationService struct {
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	phonePattern      *regexp.Regexp
}

// maxRepeatedRune is the longest run of one character accepted before text counts as spam.
const maxRepeatedRune = 7

func NewModerationService() *ModerationService {
	ms := &ModerationService{
		bannedWordRegexps: make([]*regexp.Regexp, 0, len(BannedWords)),
		urlPattern:        regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		phonePattern:      regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}|1[3-9]\d{9}`),
	}
	for _, word := range BannedWords {
		if re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`); err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}
	return ms
}

// FilterContent returns ok=false and a reason code when text should be rejected.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if ms.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if longestRun(text) > maxRepeatedRune {
		return false, "spam_detected"
	}
	return true, ""
}

func (ms *ModerationService) RejectionMessage(reason string) string {
	switch reason {
	case "inappropriate_language":
		return "content contains inappropriate language"
	case "url_not_allowed":
		return "links are not allowed"
	case "contact_info_not_allowed":
		return "contact information is not allowed"
	case "spam_detected":
		return "content looks like spam"
	default:
		return "content does not meet community guidelines"
	}
}

func longestRun(text string) int {
	longest, run := 0, 0
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
