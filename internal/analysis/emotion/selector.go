package emotion

import "strings"

const (
	// RecentWindow 是参与去重的最近消息条数。
	RecentWindow = 5
	prefixLength = 15
)

// RandSource 为回复选择提供随机数；*rand.Rand (math/rand/v2) 即满足该接口。
type RandSource interface {
	IntN(n int) int
}

// Reply 是规则引擎的输出：回复文本及其来源类别。
type Reply struct {
	Text     string
	Category Category
}

// TherapeuticResponse 按“问候 > 脏话 > 情绪 > 呼吸提及 > 闲聊”的顺序挑选回复。
// previous 为之前发出的助手消息，只看最后 RecentWindow 条。
func TherapeuticResponse(userInput string, previous []string, rnd RandSource) Reply {
	normalized := strings.ToLower(userInput)

	if IsGreeting(normalized) {
		return Reply{Text: UniqueResponse(responsePools[Greeting], previous, rnd), Category: Greeting}
	}

	if ContainsProfanity(normalized) {
		return Reply{Text: UniqueResponse(responsePools[Profanity], previous, rnd), Category: Profanity}
	}

	if category := DetectEmotionalState(normalized); category != None {
		return Reply{Text: UniqueResponse(responsePools[category], previous, rnd), Category: category}
	}

	if MentionsBreathingOrExercises(normalized) {
		return Reply{Text: BreathingSuggestion, Category: BreathingMention}
	}

	return Reply{Text: UniqueResponse(responsePools[None], previous, rnd), Category: None}
}

// UniqueResponse 过滤掉前缀已出现在最近消息中的候选；全部被过滤时退回完整候选池。
func UniqueResponse(pool, previous []string, rnd RandSource) string {
	if len(pool) == 0 {
		return ""
	}

	recent := lastN(previous, RecentWindow)
	lowered := make([]string, len(recent))
	for i, msg := range recent {
		lowered[i] = strings.ToLower(msg)
	}

	candidates := make([]string, 0, len(pool))
	for _, candidate := range pool {
		prefix := strings.ToLower(runePrefix(candidate, prefixLength))
		used := false
		for _, msg := range lowered {
			if strings.Contains(msg, prefix) {
				used = true
				break
			}
		}
		if !used {
			candidates = append(candidates, candidate)
		}
	}

	if len(candidates) == 0 {
		candidates = pool
	}

	return candidates[rnd.IntN(len(candidates))]
}

func lastN(messages []string, n int) []string {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
