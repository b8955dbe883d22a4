package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
)

// DetailPageSize is the drill-down page size of the overflow history
const DetailPageSize = 5

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" (default desc)
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

type OverflowStatsService interface {
	ComputeStats(ctx context.Context, startDate, endDate time.Time) ([]model.OverflowStat, error)
	ComputeDetail(ctx context.Context, productNumber string) ([]model.OverflowDetail, error)
}

type overflowStatsService struct {
	overflowRepo repository.OverflowRepository
	loc          *time.Location
}

func NewOverflowStatsService(overflowRepo repository.OverflowRepository, loc *time.Location) OverflowStatsService {
	return &overflowStatsService{overflowRepo: overflowRepo, loc: loc}
}

// ComputeStats rolls up active events created on the calendar dates
// startDate..endDate inclusive, in the business time zone.
func (s *overflowStatsService) ComputeStats(ctx context.Context, startDate, endDate time.Time) ([]model.OverflowStat, error) {
	from, to := s.window(startDate, endDate)
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrValidation, endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	return s.overflowRepo.StatsBetween(ctx, from, to)
}

func (s *overflowStatsService) ComputeDetail(ctx context.Context, productNumber string) ([]model.OverflowDetail, error) {
	productNumber = strings.TrimSpace(productNumber)
	if productNumber == "" {
		return nil, fmt.Errorf("%w: product number is required", ErrValidation)
	}

	events, err := s.overflowRepo.FindByProduct(ctx, productNumber)
	if err != nil {
		return nil, err
	}

	details := make([]model.OverflowDetail, 0, len(events))
	for i := range events {
		details = append(details, events[i].ToDetail())
	}
	return details, nil
}

// window returns [start-of-day(startDate), start-of-day(endDate)+1d)
func (s *overflowStatsService) window(startDate, endDate time.Time) (time.Time, time.Time) {
	sy, sm, sd := startDate.In(s.loc).Date()
	ey, em, ed := endDate.In(s.loc).Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, s.loc)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	return from, to
}

// SortStats orders a copy of stats by overflow count; ties keep product number order
func SortStats(stats []model.OverflowStat, order SortOrder) []model.OverflowStat {
	sorted := make([]model.OverflowStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OverflowCount == sorted[j].OverflowCount {
			return sorted[i].ProductNumber < sorted[j].ProductNumber
		}
		if order == SortAsc {
			return sorted[i].OverflowCount < sorted[j].OverflowCount
		}
		return sorted[i].OverflowCount > sorted[j].OverflowCount
	})
	return sorted
}
