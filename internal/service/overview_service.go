package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// daysPerYear converts a time span in days into fractional years for
// annualized return calculations.
const daysPerYear = 365.25

// OverviewService computes the investor overview KPI set: initial and
// current value, ROI, MOIC, annualized IRR, time span, and join date.
//
// For a single investor the overview is derived from that investor's monthly
// balance records. For a group administrator viewing the aggregate, the
// per-member overviews are computed concurrently and combined: dollar totals
// are summed, ROI and MOIC are recomputed from the summed totals (never
// averaged, since ROI is not additive across unequal bases), and IRR is
// combined as an initial-value-weighted average.
type OverviewService struct {
	metricsRepo  *repository.MetricsRepository
	investorRepo *repository.InvestorRepository
}

// NewOverviewService creates a new OverviewService with the provided repository dependencies.
func NewOverviewService(
	metricsRepo *repository.MetricsRepository,
	investorRepo *repository.InvestorRepository,
) *OverviewService {
	return &OverviewService{
		metricsRepo:  metricsRepo,
		investorRepo: investorRepo,
	}
}

// InvestorOverview computes the KPI set for a single investor over the
// inclusive [from, to] month range.
//
// The initial value is the beginning balance of the first month in range
// that has data; the current value is the ending balance of the last such
// month. Months flagged as having no underlying data contribute nothing.
//
// IRR is the annualized compounded return implied by the value change over
// the covered time span. It is nil when no annualization is possible: zero
// initial value, a non-positive value ratio, or a zero-length span.
func (s *OverviewService) InvestorOverview(investorID string, from, to time.Time) (model.InvestorOverview, error) {
	investor, err := s.investorRepo.GetInvestorOnID(investorID)
	if err != nil {
		return model.InvestorOverview{}, err
	}

	balances, err := s.metricsRepo.GetPeriodBalances(investorID, from, to)
	if err != nil {
		return model.InvestorOverview{}, fmt.Errorf("failed to load period balances: %w", err)
	}

	overview := model.InvestorOverview{
		InvestorName: investor.Name,
		JoinDate:     investor.JoinDate,
	}

	usable := []model.PeriodBalance{}
	for _, b := range balances {
		if b.HasData {
			usable = append(usable, b)
		}
	}

	if len(usable) == 0 {
		// No usable months in range: all KPIs stay zeroed, span stays nil.
		return overview, nil
	}

	first := usable[0]
	last := usable[len(usable)-1]

	overview.InitialValue = round(first.BeginningBalance)
	overview.CurrentValue = round(last.EndingBalance)

	span := model.TimeSpan{
		StartDate: first.AsOfDate,
		// The span runs through the end of the last reporting month.
		EndDate: last.AsOfDate.AddDate(0, 1, -1),
	}
	span.Years = span.EndDate.Sub(span.StartDate).Hours() / 24 / daysPerYear
	overview.TimeSpan = &span

	if overview.InitialValue != 0 {
		overview.ROIPct = round((overview.CurrentValue - overview.InitialValue) / overview.InitialValue * 100)
		overview.MOIC = roundRatio(overview.CurrentValue / overview.InitialValue)
	}

	overview.IRRPct = annualizedReturn(overview.InitialValue, overview.CurrentValue, span.Years)

	return overview, nil
}

// GroupOverview computes the aggregate KPI set for a group administrator's
// members over the inclusive [from, to] month range.
//
// Member overviews are fetched concurrently with no ordering guarantee. A
// failure for one member is logged and that member is excluded from the
// sums; it never aborts the aggregate. The combined result follows the
// aggregation invariants:
//
//   - total initial/current are sums over successfully fetched members
//   - roi_pct and moic are recomputed from the summed totals (0 when the
//     total initial value is 0)
//   - irr_pct is the initial-value-weighted mean over members with a
//     finite IRR; nil when the weight sum is 0
//   - time_span spans the min start to the max end across members that
//     report one; join_date is the earliest reported
func (s *OverviewService) GroupOverview(ctx context.Context, members []model.GroupMember, from, to time.Time) (model.InvestorOverview, error) {
	results := make([]*model.InvestorOverview, len(members))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			overview, err := s.InvestorOverview(member.InvestorID, from, to)
			if err != nil {
				// Partial failure tolerance: drop this member, keep the rest.
				log.Printf("Warning: overview fetch failed for group member %s (%s): %v",
					member.Name, member.InvestorID, err)
				return nil
			}
			mu.Lock()
			results[i] = &overview
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.InvestorOverview{}, err
	}

	aggregate := model.InvestorOverview{
		InvestorName: groupDisplayName(members),
	}

	var irrWeighted, irrWeightSum float64
	var span *model.TimeSpan

	for _, overview := range results {
		if overview == nil {
			continue
		}

		aggregate.InitialValue += overview.InitialValue
		aggregate.CurrentValue += overview.CurrentValue

		if overview.IRRPct != nil && !math.IsNaN(*overview.IRRPct) && !math.IsInf(*overview.IRRPct, 0) {
			irrWeighted += *overview.IRRPct * overview.InitialValue
			irrWeightSum += overview.InitialValue
		}

		if overview.TimeSpan != nil {
			if span == nil {
				span = &model.TimeSpan{
					StartDate: overview.TimeSpan.StartDate,
					EndDate:   overview.TimeSpan.EndDate,
				}
			} else {
				if overview.TimeSpan.StartDate.Before(span.StartDate) {
					span.StartDate = overview.TimeSpan.StartDate
				}
				if overview.TimeSpan.EndDate.After(span.EndDate) {
					span.EndDate = overview.TimeSpan.EndDate
				}
			}
		}

		if overview.JoinDate != nil {
			if aggregate.JoinDate == nil || overview.JoinDate.Before(*aggregate.JoinDate) {
				joinDate := *overview.JoinDate
				aggregate.JoinDate = &joinDate
			}
		}
	}

	aggregate.InitialValue = round(aggregate.InitialValue)
	aggregate.CurrentValue = round(aggregate.CurrentValue)

	if aggregate.InitialValue != 0 {
		aggregate.ROIPct = round((aggregate.CurrentValue - aggregate.InitialValue) / aggregate.InitialValue * 100)
		aggregate.MOIC = roundRatio(aggregate.CurrentValue / aggregate.InitialValue)
	}

	if irrWeightSum != 0 {
		irr := round(irrWeighted / irrWeightSum)
		aggregate.IRRPct = &irr
	}

	if span != nil {
		span.Years = span.EndDate.Sub(span.StartDate).Hours() / 24 / daysPerYear
		aggregate.TimeSpan = span
	}

	return aggregate, nil
}

// annualizedReturn derives the annualized compounded return implied by a
// value change over a span of years, as a percentage. Returns nil when the
// inputs cannot be annualized.
func annualizedReturn(initial, current, years float64) *float64 {
	if initial <= 0 || current <= 0 || years <= 0 {
		return nil
	}
	irr := round((math.Pow(current/initial, 1/years) - 1) * 100)
	return &irr
}

// groupDisplayName renders the aggregate's display name: a single member's
// own name, or "{first member} + {N-1} more".
func groupDisplayName(members []model.GroupMember) string {
	switch len(members) {
	case 0:
		return ""
	case 1:
		return members[0].Name
	default:
		return fmt.Sprintf("%s + %d more", members[0].Name, len(members)-1)
	}
}
