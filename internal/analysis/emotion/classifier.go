package emotion

import (
	"regexp"
	"strings"
)

// Category 表示一条用户消息在选择回复时被归入的类别。
type Category string

const (
	None             Category = "none"
	Greeting         Category = "greeting"
	Profanity        Category = "profanity"
	Anxiety          Category = "anxiety"
	Depression       Category = "depression"
	Anger            Category = "anger"
	Negative         Category = "negative"
	BreathingMention Category = "breathing-mention"
)

var greetingWords = []string{"hi", "hello", "hey", "greetings", "howdy", "yo"}

var profanityWords = []string{
	// English
	"fuck", "shit", "ass", "bitch", "dick", "pussy", "cunt", "cock", "whore", "bastard",
	// Hindi/Urdu
	"lavde", "bkl", "gandu", "chutiya", "behenchod", "madarchod", "bhosdike", "randi",
	// Spanish
	"puta", "pendejo", "cabron", "mierda", "joder",
	// French
	"putain", "merde", "connard",
	// Generic
	"fucker", "motherfucker", "asshole", "dickhead",
}

// emotionBuckets 按优先级排列：焦虑 > 抑郁 > 愤怒 > 一般负面。
var emotionBuckets = []struct {
	category Category
	keywords []string
}{
	{
		category: Anxiety,
		keywords: []string{
			"anxious", "anxiety", "worried", "worry", "stress", "stressed",
			"panic", "fear", "scared", "nervous", "tense", "overthinking",
			"afraid", "uneasy", "dread", "concerned", "apprehensive",
		},
	},
	{
		category: Depression,
		keywords: []string{
			"depressed", "depression", "sad", "hopeless", "overwhelmed",
			"exhausted", "tired", "can't sleep", "insomnia", "no energy", "no motivation",
			"worthless", "suicidal", "kill myself", "end my life", "don't want to live",
			"empty", "numb", "pointless", "meaningless", "unhappy", "miserable", "low",
		},
	},
	{
		category: Anger,
		keywords: []string{
			"angry", "anger", "mad", "furious", "irritated", "frustrated",
			"annoyed", "rage", "resentment", "outraged", "pissed", "hate",
		},
	},
	{
		category: Negative,
		keywords: []string{
			"lonely", "alone", "isolated", "rejected", "hurt", "pain",
			"grief", "grieving", "lost", "confused", "disappointed", "upset",
			"guilty", "shame", "embarrassed", "helpless", "heartbroken",
		},
	},
}

var breathingWords = []string{"breath", "exercise", "calm", "relax", "meditation", "technique"}

var nonWord = regexp.MustCompile(`[^\w]`)

// IsGreeting 判断整句是否为简单问候，只接受完全相等或“问候词+空格”开头。
func IsGreeting(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, word := range greetingWords {
		if normalized == word || strings.HasPrefix(normalized, word+" ") {
			return true
		}
	}
	return false
}

// ContainsProfanity 同时做整句子串匹配和逐词精确匹配，任一命中即返回 true。
func ContainsProfanity(text string) bool {
	normalized := strings.ToLower(text)
	tokens := strings.Fields(normalized)
	for _, word := range profanityWords {
		if strings.Contains(normalized, word) {
			return true
		}
		for _, token := range tokens {
			if token == word || nonWord.ReplaceAllString(token, "") == word {
				return true
			}
		}
	}
	return false
}

// DetectEmotionalState 按固定优先级返回第一个命中的情绪类别，未命中返回 None。
func DetectEmotionalState(text string) Category {
	normalized := strings.ToLower(text)
	for _, bucket := range emotionBuckets {
		if containsAny(normalized, bucket.keywords) {
			return bucket.category
		}
	}
	return None
}

// MentionsBreathingOrExercises 判断用户是否提到呼吸练习或放松技巧。
func MentionsBreathingOrExercises(text string) bool {
	return containsAny(strings.ToLower(text), breathingWords)
}

func containsAny(normalized string, words []string) bool {
	for _, word := range words {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}
