// Package chatbot implements the keyword-rule fitness assistant.
package chatbot

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

var (
	greetingWords   = []string{"hello", "hi", "hey", "start", "good morning", "good afternoon", "good evening"}
	workoutWords    = []string{"workout", "exercise", "training", "gym", "fitness"}
	nutritionWords  = []string{"diet", "nutrition", "food", "eat", "meal", "calories", "protein", "carbs"}
	weightLossWords = []string{"lose", "weight", "fat", "burn", "slim", "thin"}
	muscleWords     = []string{"muscle", "gain", "build", "strength", "bulk", "mass"}
	dietPlanWords   = []string{"diet plan", "meal plan", "vegan", "vegetarian", "high protein", "protein diet"}
	motivationWords = []string{"motivation", "tired", "hard", "difficult", "struggle", "give up", "quit"}
	helpWords       = []string{"help", "what can you do", "how to use", "guide"}
	beginnerWords   = []string{"beginner", "start", "new", "first time"}
	advancedWords   = []string{"advanced", "expert", "hard"}
)

// Bot answers fitness questions from a fixed rule set.
type Bot struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Bot drawing random replies from rnd. A nil rnd uses a randomly seeded source.
func New(rnd *rand.Rand) *Bot {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bot{rnd: rnd}
}

// Reply picks the first rule whose keywords appear in the message.
func (b *Bot) Reply(message string) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, greetingWords):
		return b.pick(greetings)
	case containsAny(msg, workoutWords):
		return b.pick(workoutAdvice[fitnessLevel(msg)])
	case containsAny(msg, nutritionWords):
		switch {
		case containsAny(msg, weightLossWords):
			return b.pick(nutritionAdvice["weight_loss"])
		case containsAny(msg, muscleWords):
			return b.pick(nutritionAdvice["muscle_gain"])
		default:
			return b.pick(nutritionAdvice["maintenance"])
		}
	case containsAny(msg, dietPlanWords):
		return b.DietPlan(msg)
	}

	for _, p := range bodyParts {
		if containsAny(msg, p.keywords) {
			return fmt.Sprintf("%s: %s. %s", p.title, p.exercises, p.tip)
		}
	}

	switch {
	case containsAny(msg, motivationWords):
		return b.pick(motivation)
	case containsAny(msg, helpWords):
		return helpText
	default:
		return fallback
	}
}

// DietPlan renders a day plan for the diet named in the message, high protein by default.
func (b *Bot) DietPlan(message string) string {
	msg := strings.ToLower(message)
	kind := "high_protein"
	switch {
	case strings.Contains(msg, "vegan"):
		kind = "vegan"
	case strings.Contains(msg, "vegetarian"):
		kind = "vegetarian"
	}
	p := dietPlans[kind]
	return fmt.Sprintf(dietPlanTemplate, strings.Replace(kind, "_", " ", 1), p.breakfast, p.lunch, p.dinner, p.snacks)
}

func (b *Bot) pick(options []string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return options[b.rnd.IntN(len(options))]
}

func fitnessLevel(msg string) string {
	switch {
	case containsAny(msg, beginnerWords):
		return "beginner"
	case containsAny(msg, advancedWords):
		return "advanced"
	default:
		return "intermediate"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
