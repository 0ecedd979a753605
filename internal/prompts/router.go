package prompts

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/syllabus"
)

// Strategy is a subject-specific prompt provider. The router never
// inspects a strategy's output — only its presence in the registry.
type Strategy interface {
	Build(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string

func (f StrategyFunc) Build(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string {
	return f(topic, difficulty, subtopic)
}

// Key identifies one strategy slot. All parts are normalized lowercase.
type Key struct {
	Subject       string
	Qualification string
	Board         string
}

type Registry struct {
	strategies map[Key]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[Key]Strategy)}
}

func (r *Registry) Register(subject, qualification, board string, s Strategy) {
	r.strategies[normalizeKey(subject, qualification, board)] = s
}

func (r *Registry) Lookup(subject, qualification, board string) (Strategy, bool) {
	s, ok := r.strategies[normalizeKey(subject, qualification, board)]
	return s, ok
}

func normalizeKey(subject, qualification, board string) Key {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "-")))
	}
	return Key{Subject: norm(subject), Qualification: norm(qualification), Board: norm(board)}
}

// Router selects a prompt builder for each question plan: a registered
// subject strategy when the topic resolves, otherwise one of the two
// generic builders picked by subject classification.
type Router struct {
	registry *Registry
	essay    *EssayBuilder
	quant    *QuantBuilder
}

func NewRouter() *Router {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewRouterWith(defaultRegistry(), rng)
}

// NewRouterWith builds a router with an explicit registry and random
// source, for tests.
func NewRouterWith(registry *Registry, rng *rand.Rand) *Router {
	return &Router{
		registry: registry,
		essay:    &EssayBuilder{rng: rng},
		quant:    &QuantBuilder{rng: rng},
	}
}

// Route returns a self-contained prompt for one question plan. The caller
// appends only global formatting constraints and the anti-repetition block.
func (r *Router) Route(plan models.QuestionPlan, subject, board, qualification, topicName string) string {
	topic, found := syllabus.Lookup(plan.TopicID, subject, board, qualification)
	if !found {
		log.Printf("[prompts] topic %q not in syllabus for %s/%s/%s — falling back to generic builder",
			plan.TopicID, subject, board, qualification)
		topic = syllabus.Topic{ID: plan.TopicID, Name: topicName, Subject: subject}
		return r.generic(plan, subject, qualification, topic)
	}

	if strategy, ok := r.registry.Lookup(subject, qualification, board); ok {
		return strategy.Build(topic, plan.Difficulty, plan.Subtopic)
	}

	return r.generic(plan, subject, qualification, topic)
}

func (r *Router) generic(plan models.QuestionPlan, subject, qualification string, topic syllabus.Topic) string {
	if syllabus.Classify(subject) == syllabus.ClassEssay {
		return r.essay.Build(plan, subject, qualification, topic.Name)
	}
	return r.quant.Build(plan, subject, topic.Name)
}
