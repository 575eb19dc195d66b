package advisory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/ration"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	shapes  []Shape
}

func (f *fakeGenerator) Text(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) JSON(_ context.Context, prompt string, shape Shape) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.shapes = append(f.shapes, shape)
	return f.reply, f.err
}

var cattle = models.AnimalProfile{Category: models.CategoryCattle, BreedID: "holstein", LiveWeightKg: 450, DailyGainKg: 1.2}

func optimizeRequest() OptimizeRequest {
	return OptimizeRequest{
		Profile:   cattle,
		BreedName: "Holstein",
		Ration:    []models.RationItem{{FeedID: "corn_silage", AmountKg: 15}, {FeedID: "barley", AmountKg: 4}},
		Feeds:     catalog.Default(),
	}
}

func TestAdviseReturnsReport(t *testing.T) {
	gen := &fakeGenerator{reply: "  Increase barley by 0.5 kg.  "}
	a := New(gen, nil)

	report, err := a.Advise(context.Background(), AdviceRequest{
		Profile:   cattle,
		BreedName: "Holstein",
		Ration:    []models.RationItem{{FeedID: "corn_silage", AmountKg: 15}},
		Feeds:     catalog.Default(),
		Totals:    models.NutrientTotals{DryMatterKg: 5.25},
	})
	require.NoError(t, err)
	assert.Equal(t, "Increase barley by 0.5 kg.", report)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Holstein")
	assert.Contains(t, gen.prompts[0], "Magnesium")
	assert.Contains(t, gen.prompts[0], "15.00 kg")
}

func TestAdviseRejectsFailureReplies(t *testing.T) {
	tests := []struct {
		reply string
		kind  Kind
	}{
		{"", KindGeneric},
		{"HATA: beklenmedik sorun", KindGeneric},
		{"Error: something broke", KindGeneric},
		{"KOTA HATASI: limit", KindQuota},
		{"SUNUCU HATASI: down", KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			a := New(&fakeGenerator{reply: tt.reply}, nil)
			_, err := a.Advise(context.Background(), AdviceRequest{Profile: cattle})

			var advErr *Error
			require.ErrorAs(t, err, &advErr)
			assert.Equal(t, tt.kind, advErr.Kind)
		})
	}
}

func TestAdviseClassifiesTransportErrors(t *testing.T) {
	a := New(&fakeGenerator{err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")}, nil)
	_, err := a.Advise(context.Background(), AdviceRequest{Profile: cattle})

	var advErr *Error
	require.ErrorAs(t, err, &advErr)
	assert.Equal(t, KindQuota, advErr.Kind)
	assert.True(t, advErr.Retryable())
}

func TestOptimizeParsesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{reply: "Here you go:\n```json\n{\"items\":[{\"feedId\":\"corn_silage\",\"amountKg\":6},{\"feedId\":\"barley\",\"amountKg\":2.5}]}\n```"}
	a := New(gen, nil)

	items, err := a.Optimize(context.Background(), optimizeRequest())
	require.NoError(t, err)
	assert.Equal(t, []models.RationItem{{FeedID: "corn_silage", AmountKg: 6}, {FeedID: "barley", AmountKg: 2.5}}, items)

	require.Len(t, gen.shapes, 1)
	assert.Equal(t, ShapeFeedAmounts, gen.shapes[0])
	assert.Contains(t, gen.prompts[0], "9.0 kg")
}

func TestOptimizeOmitsCeilingForSmallRuminants(t *testing.T) {
	gen := &fakeGenerator{reply: `{"items":[{"feedId":"barley","amountKg":1}]}`}
	req := optimizeRequest()
	req.Profile.Category = models.CategorySheep

	_, err := New(gen, nil).Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, gen.prompts[0], "must not exceed")
}

func TestOptimizeRejectsViolations(t *testing.T) {
	tests := map[string]string{
		"over ceiling": `{"items":[{"feedId":"corn_silage","amountKg":8},{"feedId":"barley","amountKg":2}]}`,
		"foreign feed": `{"items":[{"feedId":"soybean_meal","amountKg":1}]}`,
		"negative":     `{"items":[{"feedId":"barley","amountKg":-2}]}`,
		"empty":        `{"items":[]}`,
	}

	for name, reply := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(&fakeGenerator{reply: reply}, nil).Optimize(context.Background(), optimizeRequest())
			assert.ErrorIs(t, err, ration.ErrConstraintViolation)
		})
	}
}

func TestOptimizeRejectsGarbage(t *testing.T) {
	_, err := New(&fakeGenerator{reply: "no idea"}, nil).Optimize(context.Background(), optimizeRequest())

	var advErr *Error
	require.ErrorAs(t, err, &advErr)
	assert.Equal(t, KindGeneric, advErr.Kind)
	assert.False(t, advErr.Retryable())
}

func TestMarketPricesFiltersEntries(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"barley\": 9.5, \"corn_silage\": 0, \"unknown\": 3, \"wheat_straw\": -1}\n```"}
	feeds := catalog.Default().Feeds()

	prices, err := New(gen, nil).MarketPrices(context.Background(), feeds)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"barley": 9.5}, prices)
	assert.Equal(t, []Shape{ShapePriceTable}, gen.shapes)
}

func TestMarketPricesRejectsNonTable(t *testing.T) {
	_, err := New(&fakeGenerator{reply: `{"barley": "cheap"}`}, nil).MarketPrices(context.Background(), catalog.Default().Feeds())
	assert.Error(t, err)
}
