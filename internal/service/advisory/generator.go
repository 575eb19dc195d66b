package advisory

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mamadbah2/feedration/pkg/clients/anthropic"
	"github.com/mamadbah2/feedration/pkg/clients/gemini"
)

// Shape names the JSON document a structured request expects back.
type Shape int

const (
	// ShapeFeedAmounts is {"items":[{"feedId":string,"amountKg":number}]}.
	ShapeFeedAmounts Shape = iota
	// ShapePriceTable is {"<feedId>": number, ...} and may use web search.
	ShapePriceTable
)

// Generator is the model transport used by the Advisor.
type Generator interface {
	Text(ctx context.Context, prompt string) (string, error)
	JSON(ctx context.Context, prompt string, shape Shape) (string, error)
}

const systemPrompt = "You are an experienced animal nutritionist who formulates livestock rations."

var feedAmountsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"feedId":   {Type: genai.TypeString},
					"amountKg": {Type: genai.TypeNumber},
				},
				Required: []string{"feedId", "amountKg"},
			},
		},
	},
	Required: []string{"items"},
}

type geminiGenerator struct {
	client gemini.Client
}

// NewGeminiGenerator adapts a Gemini client. Price tables use search grounding.
func NewGeminiGenerator(client gemini.Client) Generator {
	return &geminiGenerator{client: client}
}

func (g *geminiGenerator) Text(ctx context.Context, prompt string) (string, error) {
	return g.client.GenerateText(ctx, systemPrompt+"\n\n"+prompt)
}

func (g *geminiGenerator) JSON(ctx context.Context, prompt string, shape Shape) (string, error) {
	if shape == ShapePriceTable {
		return g.client.GenerateGrounded(ctx, prompt)
	}
	return g.client.GenerateJSON(ctx, prompt, feedAmountsSchema)
}

type anthropicGenerator struct {
	client anthropic.Client
}

// NewAnthropicGenerator adapts an Anthropic client.
func NewAnthropicGenerator(client anthropic.Client) Generator {
	return &anthropicGenerator{client: client}
}

func (g *anthropicGenerator) Text(ctx context.Context, prompt string) (string, error) {
	return g.client.Complete(ctx, systemPrompt, prompt)
}

func (g *anthropicGenerator) JSON(ctx context.Context, prompt string, _ Shape) (string, error) {
	text, err := g.client.CompleteJSON(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	// The prefilled brace sits in front of whatever the model or a gateway said.
	if _, err := checkReply(strings.TrimPrefix(text, "{")); err != nil {
		return "", err
	}
	return text, nil
}

type breakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps a generator in a circuit breaker that opens after repeated
// server-side failures. Quota and content errors do not count against it.
func WithBreaker(next Generator, logger *zap.Logger) Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "advisory",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || Classify(err).Kind != KindServer
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &breakerGenerator{next: next, cb: cb}
}

func (b *breakerGenerator) Text(ctx context.Context, prompt string) (string, error) {
	return b.execute(func() (string, error) { return b.next.Text(ctx, prompt) })
}

func (b *breakerGenerator) JSON(ctx context.Context, prompt string, shape Shape) (string, error) {
	return b.execute(func() (string, error) { return b.next.JSON(ctx, prompt, shape) })
}

func (b *breakerGenerator) execute(call func() (string, error)) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		text, err := call()
		return text, err
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
