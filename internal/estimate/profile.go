package estimate

import "fmt"

// Profile is a category of generative-AI interaction with its own
// token-sizing rule.
type Profile string

// The known interaction profiles. Identifiers are plain lowercase strings.
const (
	ProfileTranslation Profile = "translation"
	ProfileCompletion  Profile = "completion"
	ProfileChatbot     Profile = "chatbot"
)

// Profiles lists the known profiles in the order they are reported.
var Profiles = []Profile{ProfileTranslation, ProfileCompletion, ProfileChatbot}

// ParseProfile validates a profile identifier. Anything outside the known
// set fails with ErrInvalidProfile; no default is ever substituted.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileTranslation, ProfileCompletion, ProfileChatbot:
		return Profile(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProfile, s)
}

// CharsToTokens converts a character count into tokens using the fixed
// 4 chars/token ratio. This is the sole chars-to-tokens rule.
func CharsToTokens(chars int) float64 {
	return float64(chars) / CharsPerToken
}

// Tokens derives the input and output token counts for one representative
// call of the profile under the given simulation assumptions:
//
//   - translation: the full topic in, a same-sized topic out.
//   - completion: topic plus prompt in, the average output out.
//   - chatbot: the session's accumulated topics and prompts in, the
//     average output out.
func (p Profile) Tokens(sim SimulationParams) (tokensIn, tokensOut float64, err error) {
	switch p {
	case ProfileTranslation:
		tokensIn = CharsToTokens(sim.TopicSizeChars)
		tokensOut = CharsToTokens(sim.TopicSizeChars)
	case ProfileCompletion:
		tokensIn = CharsToTokens(sim.TopicSizeChars + sim.PromptSizeChars)
		tokensOut = float64(sim.OutputTokensAvg)
	case ProfileChatbot:
		tokensIn = CharsToTokens(sim.ChatbotAvgTopics*sim.TopicSizeChars + sim.ChatbotAvgPrompts*sim.PromptSizeChars)
		tokensOut = float64(sim.OutputTokensAvg)
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidProfile, string(p))
	}
	return tokensIn, tokensOut, nil
}
