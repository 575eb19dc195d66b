package rations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/ration"
	"github.com/mamadbah2/feedration/internal/repository"
	"github.com/mamadbah2/feedration/internal/repository/sheets"
	"github.com/mamadbah2/feedration/internal/service/advisory"
)

var (
	// ErrEmptyRation is returned when an operation needs at least one ration item.
	ErrEmptyRation = errors.New("ration has no items")
	// ErrBusy is returned while another advisory request of the same kind is running.
	ErrBusy = errors.New("an advisory request is already in progress")
	// ErrAdvisoryDisabled is returned when no model provider is configured.
	ErrAdvisoryDisabled = errors.New("advisory features are disabled")
	// ErrInvalidImport is returned for import payloads that are not a record array.
	ErrInvalidImport = errors.New("invalid import payload")
)

// Advisor is the subset of the advisory client used by the service.
type Advisor interface {
	Advise(ctx context.Context, req advisory.AdviceRequest) (string, error)
	Optimize(ctx context.Context, req advisory.OptimizeRequest) ([]models.RationItem, error)
}

// Evaluation is the derived view of a profile and ration against the current catalog.
type Evaluation struct {
	BreedName         string                      `json:"breed_name"`
	BreedResolved     bool                        `json:"breed_resolved"`
	Requirements      models.NutrientRequirements `json:"requirements"`
	Totals            models.NutrientTotals       `json:"totals"`
	Score             int                         `json:"score"`
	Breakdown         ration.Breakdown            `json:"breakdown"`
	Grade             ration.Grade                `json:"grade"`
	UnresolvedFeedIDs []string                    `json:"unresolved_feed_ids,omitempty"`
	ClampedItems      []int                       `json:"clamped_items,omitempty"`
	Warnings          []string                    `json:"warnings,omitempty"`
	PriceSnapshotDate string                      `json:"price_snapshot_date,omitempty"`
}

// AdviceResult is an advisory report and the record it was stored on.
type AdviceResult struct {
	Report string             `json:"report"`
	Record models.SavedRecord `json:"record"`
}

// OptimizeResult holds suggested amounts and their evaluation. Nothing is saved.
type OptimizeResult struct {
	Items      []models.RationItem `json:"items"`
	Evaluation Evaluation          `json:"evaluation"`
}

// Service orchestrates ration sessions.
type Service struct {
	store    repository.RecordStore
	catalogs *catalog.Holder
	advisor  Advisor
	ledger   sheets.Ledger
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger

	adviseGuard   *semaphore.Weighted
	optimizeGuard *semaphore.Weighted
}

// NewService wires the ration service. advisor and ledger may be nil.
func NewService(store repository.RecordStore, catalogs *catalog.Holder, advisor Advisor, ledger sheets.Ledger, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:         store,
		catalogs:      catalogs,
		advisor:       advisor,
		ledger:        ledger,
		location:      loc,
		now:           time.Now,
		logger:        logger,
		adviseGuard:   semaphore.NewWeighted(1),
		optimizeGuard: semaphore.NewWeighted(1),
	}
}

// AdvisoryEnabled reports whether Advise and Optimize can reach a model.
func (s *Service) AdvisoryEnabled() bool {
	return s.advisor != nil
}

// Catalog returns the current catalog snapshot.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalogs.Current()
}

// Evaluate computes requirements, totals and score for a ration.
func (s *Service) Evaluate(profile models.AnimalProfile, items []models.RationItem) Evaluation {
	return Evaluate(s.catalogs.Current(), profile, items)
}

// Evaluate computes the evaluation against a given catalog snapshot.
func Evaluate(snap *catalog.Catalog, profile models.AnimalProfile, items []models.RationItem) Evaluation {
	breed, resolved := snap.ResolveBreed(profile.BreedID)
	req := ration.Requirements(profile, breed)
	totals, diag := ration.Totalize(items, snap)
	score, breakdown := ration.ScoreBreakdown(totals, req, len(items))

	return Evaluation{
		BreedName:         breed.Name,
		BreedResolved:     resolved,
		Requirements:      req,
		Totals:            totals,
		Score:             score,
		Breakdown:         breakdown,
		Grade:             ration.GradeOf(score),
		UnresolvedFeedIDs: diag.UnresolvedFeedIDs,
		ClampedItems:      diag.ClampedItems,
		Warnings:          ration.Warnings(profile.Category, totals, diag),
		PriceSnapshotDate: snap.PriceSnapshotDate(),
	}
}

// Save stores the ration with its derived values and any advisory reports.
func (s *Service) Save(ctx context.Context, profile models.AnimalProfile, items []models.RationItem, reports ...string) (models.SavedRecord, error) {
	if len(items) == 0 {
		return models.SavedRecord{}, ErrEmptyRation
	}

	eval := s.Evaluate(profile, items)
	now := s.now().In(s.location)

	record := models.SavedRecord{
		SchemaVersion:     models.RecordSchemaVersion,
		Timestamp:         now.UnixMilli(),
		FormattedDate:     now.Format("2 January 2006 15:04"),
		PriceSnapshotDate: eval.PriceSnapshotDate,
		Profile:           profile,
		Ration:            ration.ClampItems(items),
		Totals:            eval.Totals,
		Requirements:      eval.Requirements,
		QualityScore:      eval.Score,
		AdvisoryReports:   append([]string{}, reports...),
	}

	id, err := s.store.Create(ctx, record)
	if err != nil {
		return models.SavedRecord{}, fmt.Errorf("save ration: %w", err)
	}
	record.ID = id

	s.logger.Info("ration saved",
		zap.Int64("record_id", id),
		zap.String("category", string(profile.Category)),
		zap.Int("score", eval.Score))

	s.appendLedger(ctx, record, eval.BreedName)
	return record, nil
}

// The ledger mirrors the store; its failures never fail the save.
func (s *Service) appendLedger(ctx context.Context, record models.SavedRecord, breedName string) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.AppendRecord(ctx, record, breedName); err != nil {
		s.logger.Warn("failed to append ration to ledger", zap.Int64("record_id", record.ID), zap.Error(err))
	}
}

// Advise requests an analysis. With recordID 0 the ration is saved as a new record
// carrying the report; otherwise the stored record is analysed and the report is
// appended to it, and profile and items are ignored.
func (s *Service) Advise(ctx context.Context, profile models.AnimalProfile, items []models.RationItem, recordID int64) (AdviceResult, error) {
	if s.advisor == nil {
		return AdviceResult{}, ErrAdvisoryDisabled
	}
	if !s.adviseGuard.TryAcquire(1) {
		return AdviceResult{}, ErrBusy
	}
	defer s.adviseGuard.Release(1)

	var existing *models.SavedRecord
	if recordID != 0 {
		rec, err := s.store.Get(ctx, recordID)
		if err != nil {
			return AdviceResult{}, err
		}
		existing = &rec
		profile, items = rec.Profile, rec.Ration
	}
	if len(items) == 0 {
		return AdviceResult{}, ErrEmptyRation
	}

	snap := s.catalogs.Current()
	eval := Evaluate(snap, profile, items)

	report, err := s.advisor.Advise(ctx, advisory.AdviceRequest{
		Profile:      profile,
		BreedName:    eval.BreedName,
		Ration:       items,
		Feeds:        snap,
		Totals:       eval.Totals,
		Requirements: eval.Requirements,
	})
	if err != nil {
		return AdviceResult{}, err
	}

	if existing == nil {
		rec, err := s.Save(ctx, profile, items, report)
		if err != nil {
			return AdviceResult{}, err
		}
		return AdviceResult{Report: report, Record: rec}, nil
	}

	updated := *existing
	updated.AdvisoryReports = append(slices.Clone(existing.AdvisoryReports), report)
	if err := s.store.Update(ctx, updated); err != nil {
		return AdviceResult{}, fmt.Errorf("attach report: %w", err)
	}
	return AdviceResult{Report: report, Record: updated}, nil
}

// Optimize asks the advisor for amounts of the ration's feeds and evaluates them.
func (s *Service) Optimize(ctx context.Context, profile models.AnimalProfile, items []models.RationItem) (OptimizeResult, error) {
	if s.advisor == nil {
		return OptimizeResult{}, ErrAdvisoryDisabled
	}
	if len(items) == 0 {
		return OptimizeResult{}, ErrEmptyRation
	}
	if !s.optimizeGuard.TryAcquire(1) {
		return OptimizeResult{}, ErrBusy
	}
	defer s.optimizeGuard.Release(1)

	snap := s.catalogs.Current()
	eval := Evaluate(snap, profile, items)

	suggested, err := s.advisor.Optimize(ctx, advisory.OptimizeRequest{
		Profile:      profile,
		BreedName:    eval.BreedName,
		Ration:       items,
		Feeds:        snap,
		Requirements: eval.Requirements,
	})
	if err != nil {
		return OptimizeResult{}, err
	}

	return OptimizeResult{Items: suggested, Evaluation: Evaluate(snap, profile, suggested)}, nil
}

// History lists saved records, newest first.
func (s *Service) History(ctx context.Context) ([]models.SavedRecord, error) {
	return s.store.List(ctx)
}

// Delete removes a saved record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Export serializes every record as an indented JSON array.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}

// Import replaces all records with the exported array in data. Ids are kept;
// records without one get fresh ids after the largest imported id.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	var records []models.SavedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if records == nil {
		return 0, fmt.Errorf("%w: expected a JSON array", ErrInvalidImport)
	}

	seen := make(map[int64]struct{}, len(records))
	for i := range records {
		if id := records[i].ID; id != 0 {
			if _, dup := seen[id]; dup {
				return 0, fmt.Errorf("%w: duplicate id %d", ErrInvalidImport, id)
			}
			seen[id] = struct{}{}
		}
		if records[i].SchemaVersion == 0 {
			records[i].SchemaVersion = models.RecordSchemaVersion
		}
		if records[i].AdvisoryReports == nil {
			records[i].AdvisoryReports = []string{}
		}
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}

	s.logger.Info("records imported", zap.Int("count", len(records)))
	return len(records), nil
}
