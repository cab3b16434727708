// Package builder turns learner-supplied form fields into fixed
// natural-language paragraphs and dialogues, one rendering per fluency
// level. Building is a pure function of the field values: identical
// inputs always produce identical output.
package builder

// Level is one of the fixed output registers a builder can produce from
// the same inputs.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels returns every fluency level in ascending order.
func Levels() []Level {
	return []Level{LevelBasic, LevelIntermediate, LevelAdvanced}
}

// Placeholder is emitted when the learner has filled in nothing at all.
const Placeholder = "Fill in the information above to generate your paragraph."

// FieldSpec describes one named input and its normalization toggles.
type FieldSpec struct {
	Name     string
	Required bool
	Default  string // substituted when a required field is left blank

	StripTerminator bool
	StripPronoun    bool
	StripGoal       bool
}

// Values holds the cleaned field values handed to a render function.
// Optional fields left blank are present with an empty string.
type Values map[string]string

// Has reports whether an optional field was actually provided.
func (v Values) Has(name string) bool {
	return v[name] != ""
}

// Builder substitutes cleaned field values into one fixed sentence
// skeleton per fluency level.
type Builder struct {
	name    string
	fields  []FieldSpec
	renders map[Level]func(Values) string
}

func New(name string, fields []FieldSpec, renders map[Level]func(Values) string) *Builder {
	return &Builder{name: name, fields: fields, renders: renders}
}

func (b *Builder) Name() string { return b.name }

// Fields returns the builder's field specifications in declaration order.
func (b *Builder) Fields() []FieldSpec {
	return b.fields
}

// Build cleans the raw values and renders one paragraph per fluency
// level. When every field is blank the documented placeholder comes back
// for each level instead of an empty or dangling string. The raw map is
// never mutated.
func (b *Builder) Build(raw map[string]string) map[Level]string {
	cleaned := make(Values, len(b.fields))
	anyProvided := false
	for _, f := range b.fields {
		v := clean(raw[f.Name], f)
		if v != "" {
			anyProvided = true
		}
		cleaned[f.Name] = v
	}

	out := make(map[Level]string, len(b.renders))
	if !anyProvided {
		for level := range b.renders {
			out[level] = Placeholder
		}
		return out
	}

	for _, f := range b.fields {
		if f.Required && cleaned[f.Name] == "" {
			cleaned[f.Name] = f.Default
		}
	}
	for level, render := range b.renders {
		out[level] = render(cleaned)
	}
	return out
}
