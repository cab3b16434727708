package builder

import "strings"

// join glues finished sentences with single spaces, skipping blanks so
// omitted optional fields never leave double spacing behind.
func join(sentences ...string) string {
	kept := sentences[:0:0]
	for _, s := range sentences {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}

// NewSelfIntroduction builds the "about me" paragraph generator: name is
// required with a fallback, everything else is optional and dropped from
// the output when blank.
func NewSelfIntroduction() *Builder {
	fields := []FieldSpec{
		{Name: "name", Required: true, Default: "a new English learner", StripTerminator: true},
		{Name: "hometown", StripTerminator: true},
		{Name: "job", StripTerminator: true, StripPronoun: true},
		{Name: "hobby", StripTerminator: true},
		{Name: "goal", StripTerminator: true, StripGoal: true},
	}

	renders := map[Level]func(Values) string{
		LevelBasic: func(v Values) string {
			parts := []string{"Hello! My name is " + v["name"] + "."}
			if v.Has("hometown") {
				parts = append(parts, "I am from "+v["hometown"]+".")
			}
			if v.Has("job") {
				parts = append(parts, "I am "+v["job"]+".")
			}
			if v.Has("hobby") {
				parts = append(parts, "I like "+v["hobby"]+".")
			}
			if v.Has("goal") {
				parts = append(parts, "I want "+v["goal"]+".")
			}
			return join(parts...)
		},
		LevelIntermediate: func(v Values) string {
			first := "Hi there! I'm " + v["name"]
			if v.Has("hometown") {
				first += ", and I come from " + v["hometown"]
			}
			parts := []string{first + "."}
			if v.Has("job") {
				parts = append(parts, "I work as "+v["job"]+".")
			}
			if v.Has("hobby") {
				parts = append(parts, "In my free time, I really enjoy "+v["hobby"]+".")
			}
			if v.Has("goal") {
				parts = append(parts, "At the moment, my main goal is "+v["goal"]+".")
			}
			return join(parts...)
		},
		LevelAdvanced: func(v Values) string {
			first := "Let me introduce myself: my name is " + v["name"]
			if v.Has("hometown") {
				first += ", originally from " + v["hometown"]
			}
			parts := []string{first + "."}
			if v.Has("job") {
				parts = append(parts, "Professionally, I'm "+v["job"]+".")
			}
			if v.Has("hobby") {
				parts = append(parts, "Outside of work, I devote much of my time to "+v["hobby"]+".")
			}
			if v.Has("goal") {
				parts = append(parts, "Looking ahead, I'm determined "+v["goal"]+".")
			}
			return join(parts...)
		},
	}

	return New("self-introduction", fields, renders)
}

// NewCoffeeShopDialogue builds the ordering-at-a-cafe dialogue generator.
func NewCoffeeShopDialogue() *Builder {
	fields := []FieldSpec{
		{Name: "name", Required: true, Default: "the customer", StripTerminator: true},
		{Name: "drink", Required: true, Default: "a coffee", StripTerminator: true, StripPronoun: true},
		{Name: "snack", StripTerminator: true, StripPronoun: true},
	}

	renders := map[Level]func(Values) string{
		LevelBasic: func(v Values) string {
			lines := []string{
				"Barista: Hello! What would you like?",
				v["name"] + ": I would like " + v["drink"] + ", please.",
			}
			if v.Has("snack") {
				lines = append(lines, "Barista: Anything else?")
				lines = append(lines, v["name"]+": Yes, "+v["snack"]+", please.")
			}
			lines = append(lines, "Barista: Of course. Here you are!")
			return strings.Join(lines, "\n")
		},
		LevelIntermediate: func(v Values) string {
			lines := []string{
				"Barista: Good morning! What can I get for you today?",
				v["name"] + ": Could I get " + v["drink"] + ", please?",
			}
			if v.Has("snack") {
				lines = append(lines, "Barista: Sure. Would you like anything to eat with that?")
				lines = append(lines, v["name"]+": Yes, I'll also take "+v["snack"]+".")
			}
			lines = append(lines, "Barista: Coming right up!")
			return strings.Join(lines, "\n")
		},
		LevelAdvanced: func(v Values) string {
			lines := []string{
				"Barista: Good morning! What can I get started for you?",
				v["name"] + ": I'd love " + v["drink"] + ", if you don't mind.",
			}
			if v.Has("snack") {
				lines = append(lines, "Barista: Certainly. Can I tempt you with anything from the pastry case?")
				lines = append(lines, v["name"]+": Now that you mention it, "+v["snack"]+" sounds perfect.")
			}
			lines = append(lines, "Barista: Wonderful choice. I'll have that ready in just a moment.")
			return strings.Join(lines, "\n")
		},
	}

	return New("coffee-shop-dialogue", fields, renders)
}
