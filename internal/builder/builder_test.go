package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRules(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		spec FieldSpec
		want string
	}{
		{"trim only", "  Maria  ", FieldSpec{}, "Maria"},
		{"trailing terminator", "Osaka.", FieldSpec{StripTerminator: true}, "Osaka"},
		{"multiple terminators", "Osaka!!", FieldSpec{StripTerminator: true}, "Osaka"},
		{"pronoun i am", "I am a teacher", FieldSpec{StripPronoun: true}, "a teacher"},
		{"pronoun i'm", "I'm an engineer.", FieldSpec{StripPronoun: true, StripTerminator: true}, "an engineer"},
		{"pronoun bare i", "I like cooking", FieldSpec{StripPronoun: true}, "like cooking"},
		{"goal want to", "I want to travel more", FieldSpec{StripGoal: true}, "to travel more"},
		{"goal i'd like to", "I'd like to pass the exam.", FieldSpec{StripGoal: true, StripTerminator: true}, "to pass the exam"},
		{"goal my goal is to", "My goal is to speak fluently", FieldSpec{StripGoal: true}, "to speak fluently"},
		{"goal bare verb", "speak fluently", FieldSpec{StripGoal: true}, "to speak fluently"},
		{"goal already to", "To speak fluently", FieldSpec{StripGoal: true}, "to speak fluently"},
		{"blank", "   ", FieldSpec{StripPronoun: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clean(tt.raw, tt.spec))
		})
	}
}

func TestBuildDeterminism(t *testing.T) {
	b := NewSelfIntroduction()
	input := map[string]string{
		"name":     "Maria",
		"hometown": "Osaka",
		"job":      "I am a nurse.",
		"hobby":    "hiking",
		"goal":     "I want to speak English at work",
	}

	first := b.Build(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, b.Build(input))
	}

	// The input map is never mutated.
	assert.Equal(t, "I am a nurse.", input["job"])
}

func TestBuildAllLevels(t *testing.T) {
	b := NewSelfIntroduction()
	out := b.Build(map[string]string{
		"name": "Maria",
		"goal": "I want to speak English at work.",
	})

	require.Len(t, out, 3)
	assert.Equal(t, "Hello! My name is Maria. I want to speak English at work.", out[LevelBasic])
	assert.Contains(t, out[LevelIntermediate], "Hi there! I'm Maria.")
	assert.Contains(t, out[LevelIntermediate], "my main goal is to speak English at work.")
	assert.Contains(t, out[LevelAdvanced], "I'm determined to speak English at work.")
}

func TestBuildBlankFallback(t *testing.T) {
	b := NewSelfIntroduction()
	out := b.Build(map[string]string{})

	require.Len(t, out, 3)
	for level, text := range out {
		assert.Equal(t, Placeholder, text, "level %s", level)
	}

	// Whitespace-only input counts as blank too.
	out = b.Build(map[string]string{"name": "  ", "hobby": "\t"})
	for _, text := range out {
		assert.Equal(t, Placeholder, text)
	}
}

func TestBuildRequiredDefault(t *testing.T) {
	b := NewSelfIntroduction()
	out := b.Build(map[string]string{"hobby": "chess"})

	assert.Equal(t, "Hello! My name is a new English learner. I like chess.", out[LevelBasic])
}

func TestBuildNoDanglingPunctuation(t *testing.T) {
	b := NewSelfIntroduction()
	out := b.Build(map[string]string{"name": "Ken."})

	for _, text := range out {
		assert.False(t, strings.Contains(text, "  "), "double space in %q", text)
		assert.False(t, strings.Contains(text, ".."), "double period in %q", text)
		assert.False(t, strings.HasSuffix(text, " "), "trailing space in %q", text)
	}
}

func TestCoffeeShopDialogue(t *testing.T) {
	b := NewCoffeeShopDialogue()
	out := b.Build(map[string]string{
		"name":  "Leo",
		"drink": "a flat white",
		"snack": "a croissant",
	})

	basic := out[LevelBasic]
	assert.Contains(t, basic, "Leo: I would like a flat white, please.")
	assert.Contains(t, basic, "Leo: Yes, a croissant, please.")

	// Optional snack omitted entirely when blank.
	out = b.Build(map[string]string{"name": "Leo", "drink": "tea"})
	assert.NotContains(t, out[LevelBasic], "Anything else?")
}
