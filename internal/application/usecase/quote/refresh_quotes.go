package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// Worker and timeout bounds for a refresh run. Provider calls hang on bad
// network days, so every fetch runs under its own deadline.
const (
	MinWorkers     = 1
	MaxWorkers     = 16
	MinTimeout     = 3 * time.Second
	MaxTimeout     = 120 * time.Second
	DefaultTimeout = 25 * time.Second
)

// RefreshQuotesInput represents the input for a quote refresh run. Zero
// Workers or Timeout means use the configured default.
type RefreshQuotesInput struct {
	UserID   uuid.UUID
	AssetIDs []uuid.UUID // empty = all assets
	Workers  int
	Timeout  time.Duration
}

// AssetReport is the per-asset outcome of a refresh run.
type AssetReport struct {
	AssetID uuid.UUID
	Symbol  string
	Price   decimal.Decimal
	Date    time.Time
	Source  string
	Elapsed time.Duration
	Err     error
}

// OK reports whether the fetch produced a usable quote.
func (r *AssetReport) OK() bool {
	return r.Err == nil
}

// RefreshQuotesOutput represents the output of a refresh run. Report entries
// keep the submission order of the assets.
type RefreshQuotesOutput struct {
	Saved  int
	Total  int
	Report []*AssetReport
}

// RefreshQuotesUseCase fans asset quote fetches over a bounded worker pool
// and upserts one price row per successful fetch. Failures stay in the
// report; there is no automatic retry.
type RefreshQuotesUseCase struct {
	assetRepo      adapter.AssetRepository
	priceRepo      adapter.PriceRepository
	provider       adapter.QuoteProvider
	defaultWorkers int
	defaultTimeout time.Duration
}

// NewRefreshQuotesUseCase creates a new RefreshQuotesUseCase instance.
// defaultWorkers <= 0 means size the pool per run from the asset count;
// defaultTimeout <= 0 means the standard per-fetch deadline.
func NewRefreshQuotesUseCase(
	assetRepo adapter.AssetRepository,
	priceRepo adapter.PriceRepository,
	provider adapter.QuoteProvider,
	defaultWorkers int,
	defaultTimeout time.Duration,
) *RefreshQuotesUseCase {
	return &RefreshQuotesUseCase{
		assetRepo:      assetRepo,
		priceRepo:      priceRepo,
		provider:       provider,
		defaultWorkers: defaultWorkers,
		defaultTimeout: defaultTimeout,
	}
}

// Execute refreshes quotes for the selected assets.
func (uc *RefreshQuotesUseCase) Execute(ctx context.Context, input RefreshQuotesInput) (*RefreshQuotesOutput, error) {
	assets, err := uc.assetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	if len(input.AssetIDs) > 0 {
		wanted := make(map[uuid.UUID]bool, len(input.AssetIDs))
		for _, id := range input.AssetIDs {
			wanted[id] = true
		}
		filtered := assets[:0]
		for _, a := range assets {
			if wanted[a.ID] {
				filtered = append(filtered, a)
			}
		}
		assets = filtered
	}
	if len(assets) == 0 {
		return &RefreshQuotesOutput{Report: []*AssetReport{}}, nil
	}

	workers := resolveWorkers(len(assets), input.Workers, uc.defaultWorkers)
	timeout := resolveTimeout(input.Timeout, uc.defaultTimeout)

	report := make([]*AssetReport, len(assets))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report[i] = uc.fetchOne(ctx, assets[i], timeout)
			}
		}()
	}
	for i := range assets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := &RefreshQuotesOutput{Total: len(assets), Report: report}
	for _, r := range report {
		if !r.OK() {
			continue
		}
		p := entity.NewPrice(input.UserID, r.AssetID, r.Date, r.Price, r.Source)
		if err := uc.priceRepo.Upsert(ctx, p); err != nil {
			return nil, fmt.Errorf("saving quote for %s: %w", r.Symbol, err)
		}
		out.Saved++
	}
	return out, nil
}

func (uc *RefreshQuotesUseCase) fetchOne(ctx context.Context, asset *entity.Asset, timeout time.Duration) *AssetReport {
	r := &AssetReport{AssetID: asset.ID, Symbol: asset.Symbol}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	q, err := uc.provider.Fetch(fetchCtx, asset.Symbol, asset.AssetClass, asset.Currency)
	r.Elapsed = time.Since(started)

	switch {
	case fetchCtx.Err() != nil && err != nil:
		r.Err = fmt.Errorf("%w: %s após %s", domainerror.ErrQuoteTimeout, asset.Symbol, timeout)
	case err != nil:
		r.Err = err
	case q == nil || !q.Price.IsPositive():
		r.Err = fmt.Errorf("%w: %s", domainerror.ErrQuoteNotFound, asset.Symbol)
	default:
		r.Price = q.Price
		r.Date = q.AsOf
		r.Source = q.Source
	}
	return r
}

func resolveWorkers(total, override, configured int) int {
	workers := min(4, max(2, total))
	if configured > 0 {
		workers = configured
	}
	if override > 0 {
		workers = override
	}
	return max(MinWorkers, min(MaxWorkers, workers))
}

func resolveTimeout(override, configured time.Duration) time.Duration {
	timeout := DefaultTimeout
	if configured > 0 {
		timeout = configured
	}
	if override > 0 {
		timeout = override
	}
	return max(MinTimeout, min(MaxTimeout, timeout))
}
