package syllabus

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		subject string
		want    Classification
	}{
		{"physics", ClassQuantitative},
		{"mathematics", ClassQuantitative},
		{"history", ClassEssay},
		{"English Literature", ClassEssay},
		{"PSYCHOLOGY", ClassEssay},
		{"underwater basket weaving", ClassQuantitative}, // unknown defaults quantitative
	}

	for _, tc := range cases {
		if got := Classify(tc.subject); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.subject, got, tc.want)
		}
	}
}

func TestLookup_KnownTopic(t *testing.T) {
	topic, ok := Lookup("bio-cell-biology", "biology", "aqa", "gcse")
	if !ok {
		t.Fatal("expected bio-cell-biology to resolve for biology")
	}
	if topic.Name != "Cell Biology" {
		t.Errorf("got name %q", topic.Name)
	}
	if len(topic.Subtopics) == 0 {
		t.Error("expected subtopics")
	}
}

func TestLookup_UnknownTopic(t *testing.T) {
	if _, ok := Lookup("bio-made-up", "biology", "aqa", "gcse"); ok {
		t.Error("expected unknown topic to miss")
	}
}

func TestLookup_WrongSubject(t *testing.T) {
	if _, ok := Lookup("bio-cell-biology", "physics", "aqa", "gcse"); ok {
		t.Error("biology topic should not resolve under physics")
	}
}

func TestLookup_QualificationFilter(t *testing.T) {
	if _, ok := Lookup("math-calculus", "mathematics", "edexcel", "a-level"); !ok {
		t.Error("calculus should resolve at A-level")
	}
	if _, ok := Lookup("math-calculus", "mathematics", "edexcel", "gcse"); ok {
		t.Error("calculus should not resolve at GCSE")
	}
}

func TestTopicsFor_FiltersByQualification(t *testing.T) {
	gcse := TopicsFor("mathematics", "aqa", "gcse")
	aLevel := TopicsFor("mathematics", "aqa", "a-level")

	hasCalculus := func(topics []Topic) bool {
		for _, tp := range topics {
			if tp.ID == "math-calculus" {
				return true
			}
		}
		return false
	}

	if hasCalculus(gcse) {
		t.Error("GCSE maths should not include calculus")
	}
	if !hasCalculus(aLevel) {
		t.Error("A-level maths should include calculus")
	}
}

func TestTopicsFor_NormalizesSubject(t *testing.T) {
	if len(TopicsFor("English Literature", "", "")) == 0 {
		t.Error("subject lookup should be case and spacing insensitive")
	}
}

func TestTopicsFor_UnknownSubject(t *testing.T) {
	if got := TopicsFor("alchemy", "", ""); len(got) != 0 {
		t.Errorf("expected no topics, got %d", len(got))
	}
}
