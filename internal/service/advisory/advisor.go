package advisory

import (
	"context"
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/ration"
)

// AdviceRequest carries everything needed to analyse a ration.
type AdviceRequest struct {
	Profile      models.AnimalProfile
	BreedName    string
	Ration       []models.RationItem
	Feeds        ration.FeedLookup
	Totals       models.NutrientTotals
	Requirements models.NutrientRequirements
}

// OptimizeRequest carries everything needed to suggest amounts for a ration.
type OptimizeRequest struct {
	Profile      models.AnimalProfile
	BreedName    string
	Ration       []models.RationItem
	Feeds        ration.FeedLookup
	Requirements models.NutrientRequirements
}

// Advisor turns rations into prompts and model replies into domain values.
// It neither retries nor caches.
type Advisor struct {
	gen    Generator
	logger *zap.Logger
}

// New builds an Advisor on top of a generator.
func New(gen Generator, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{gen: gen, logger: logger}
}

// Advise returns a free-text analysis of the ration.
func (a *Advisor) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	reply, err := a.gen.Text(ctx, advicePrompt(req))
	if err != nil {
		return "", a.fail("advice", err)
	}
	report, err := checkReply(reply)
	if err != nil {
		return "", a.fail("advice", err)
	}
	return report, nil
}

type feedAmounts struct {
	Items []struct {
		FeedID   string  `json:"feedId"`
		AmountKg float64 `json:"amountKg"`
	} `json:"items"`
}

// Optimize asks for amounts of the feeds already in the ration. The suggestion is
// validated against the ration's feeds and the category's fresh-weight ceiling;
// a suggestion that breaks them fails with ration.ErrConstraintViolation.
func (a *Advisor) Optimize(ctx context.Context, req OptimizeRequest) ([]models.RationItem, error) {
	reply, err := a.gen.JSON(ctx, optimizePrompt(req), ShapeFeedAmounts)
	if err != nil {
		return nil, a.fail("optimize", err)
	}
	if _, err := checkReply(reply); err != nil {
		return nil, a.fail("optimize", err)
	}

	doc, ok := extractJSON(reply)
	if !ok {
		return nil, a.fail("optimize", &Error{Kind: KindGeneric, Message: "reply contained no JSON object"})
	}

	var parsed feedAmounts
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, a.fail("optimize", &Error{Kind: KindGeneric, Message: "reply was not valid JSON", Err: err})
	}

	items := make([]models.RationItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, models.RationItem{FeedID: it.FeedID, AmountKg: it.AmountKg})
	}

	if err := ration.ValidateSuggestion(req.Profile.Category, req.Ration, items); err != nil {
		a.logger.Warn("rejected optimization", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// MarketPrices asks for current per-kg prices of the given feeds. Entries that are
// unknown, non-positive or not finite are dropped.
func (a *Advisor) MarketPrices(ctx context.Context, feeds []models.Feed) (map[string]float64, error) {
	reply, err := a.gen.JSON(ctx, pricesPrompt(feeds), ShapePriceTable)
	if err != nil {
		return nil, a.fail("prices", err)
	}
	if _, err := checkReply(reply); err != nil {
		return nil, a.fail("prices", err)
	}

	doc, ok := extractJSON(reply)
	if !ok {
		return nil, a.fail("prices", &Error{Kind: KindGeneric, Message: "reply contained no JSON object"})
	}

	var raw map[string]json.Number
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, a.fail("prices", &Error{Kind: KindGeneric, Message: "reply was not a price table", Err: err})
	}

	known := make(map[string]struct{}, len(feeds))
	for _, f := range feeds {
		known[f.ID] = struct{}{}
	}

	prices := make(map[string]float64, len(raw))
	for id, n := range raw {
		if _, ok := known[id]; !ok {
			continue
		}
		v, err := n.Float64()
		if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		prices[id] = v
	}
	return prices, nil
}

func (a *Advisor) fail(op string, err error) error {
	classified := Classify(err)
	a.logger.Warn("advisory request failed",
		zap.String("op", op),
		zap.String("kind", classified.Kind.String()),
		zap.Error(err))
	return classified
}
