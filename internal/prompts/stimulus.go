package prompts

import "strings"

// StimulusMaterial is a curated extract or source injected into essay
// questions so the model analyses real material instead of inventing it.
type StimulusMaterial struct {
	Kind   string // "literary extract" or "historical source"
	Source string
	Themes []string
	Text   string
}

var stimulusLibrary = map[string][]StimulusMaterial{
	"english-literature": {
		{
			Kind:   "literary extract",
			Source: "Macbeth, Act 1 Scene 7 (Shakespeare)",
			Themes: []string{"ambition", "guilt", "kingship"},
			Text: `I have no spur
To prick the sides of my intent, but only
Vaulting ambition, which o'erleaps itself
And falls on the other.`,
		},
		{
			Kind:   "literary extract",
			Source: "Macbeth, Act 5 Scene 1 (Shakespeare)",
			Themes: []string{"guilt", "the supernatural"},
			Text: `Out, damned spot! out, I say! One: two: why, then
'tis time to do't. Hell is murky! Fie, my lord, fie! a soldier,
and afeard? What need we fear who knows it, when none can call
our power to account?`,
		},
		{
			Kind:   "literary extract",
			Source: "A Christmas Carol, Stave 1 (Dickens)",
			Themes: []string{"poverty", "social responsibility", "redemption"},
			Text: `"Are there no prisons?" asked Scrooge. "Plenty of prisons," said the
gentleman, laying down the pen again. "And the Union workhouses?" demanded
Scrooge. "Are they still in operation?" "They are. Still," returned the
gentleman, "I wish I could say they were not."`,
		},
		{
			Kind:   "literary extract",
			Source: "An Inspector Calls, Act 3 (Priestley)",
			Themes: []string{"responsibility", "class", "generational conflict"},
			Text: `But just remember this. One Eva Smith has gone - but there are millions
and millions and millions of Eva Smiths and John Smiths still left with us,
with their lives, their hopes and fears, their suffering and chance of
happiness, all intertwined with our lives.`,
		},
	},
	"history": {
		{
			Kind:   "historical source",
			Source: "Article 48 of the Weimar Constitution, 1919",
			Themes: []string{"the weimar republic", "hitler's rise to power"},
			Text: `If public security and order are seriously disturbed or endangered
within the German Reich, the President of the Reich may take the measures
necessary to reestablish law and order, if necessary using armed force.`,
		},
		{
			Kind:   "historical source",
			Source: "Winston Churchill, speech at Fulton, Missouri, March 1946",
			Themes: []string{"origins of the cold war", "the berlin crisis"},
			Text: `From Stettin in the Baltic to Trieste in the Adriatic, an iron curtain
has descended across the Continent. Behind that line lie all the capitals
of the ancient states of Central and Eastern Europe.`,
		},
		{
			Kind:   "historical source",
			Source: "John F. Kennedy, televised address, 22 October 1962",
			Themes: []string{"the cuban missile crisis"},
			Text: `It shall be the policy of this nation to regard any nuclear missile
launched from Cuba against any nation in the Western Hemisphere as an attack
by the Soviet Union on the United States, requiring a full retaliatory
response upon the Soviet Union.`,
		},
		{
			Kind:   "historical source",
			Source: "Louis Pasteur, paper to the French Academy of Sciences, 1878",
			Themes: []string{"the germ theory", "modern treatments"},
			Text: `If it is terrifying to think that life may be at the mercy of the
multiplication of those infinitesimally small creatures, it is also
consoling to hope that Science will not always remain powerless before
such enemies.`,
		},
	},
}

// LookupStimulus finds curated material whose themes match the subtopic.
// Matching is case-insensitive substring in either direction so looser
// subtopic labels still hit.
func LookupStimulus(subject, subtopic string) (StimulusMaterial, bool) {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(subject, " ", "-")))
	sub := strings.ToLower(strings.TrimSpace(subtopic))

	for _, m := range stimulusLibrary[key] {
		for _, theme := range m.Themes {
			if strings.Contains(sub, theme) || strings.Contains(theme, sub) {
				return m, true
			}
		}
	}
	return StimulusMaterial{}, false
}
