package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Stats summarizes the moderation queues.
type Stats struct {
	Quotes       QuoteCounts
	PendingUsers int64
}

// QuoteCounts holds quote totals per status.
type QuoteCounts struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

// StatsService gathers admin dashboard counts.
type StatsService struct {
	quotes ports.QuoteStore
	users  ports.UserStore
}

// NewStatsService creates a stats service over both stores.
func NewStatsService(quotes ports.QuoteStore, users ports.UserStore) *StatsService {
	return &StatsService{quotes: quotes, users: users}
}

// Get counts quotes per status and pending registrations concurrently.
// The first failing query cancels the rest.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	var stats Stats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Quotes, err = s.countQuotes(ctx)
		return err
	})

	g.Go(func() (err error) {
		stats.PendingUsers, err = s.countPendingUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gathering stats: %w", err)
	}

	return &stats, nil
}

// allQuotes keys the unfiltered total in countQuotes.
const allQuotes domain.QuoteStatus = ""

func (s *StatsService) countQuotes(ctx context.Context) (QuoteCounts, error) {
	tasks := make(map[domain.QuoteStatus]func(context.Context) (int64, error), 4)

	for _, status := range []domain.QuoteStatus{allQuotes, domain.QuoteStatusPending, domain.QuoteStatusApproved, domain.QuoteStatusRejected} {
		var filter *domain.QuoteStatus
		if status != allQuotes {
			filter = &status
		}

		tasks[status] = func(ctx context.Context) (int64, error) {
			return s.quotes.Count(ctx, filter)
		}
	}

	counts, err := fanOut(ctx, tasks)
	if err != nil {
		return QuoteCounts{}, err
	}

	return QuoteCounts{
		Total:    counts[allQuotes],
		Pending:  counts[domain.QuoteStatusPending],
		Approved: counts[domain.QuoteStatusApproved],
		Rejected: counts[domain.QuoteStatusRejected],
	}, nil
}

func (s *StatsService) countPendingUsers(ctx context.Context) (int64, error) {
	pending := domain.UserStatusPending

	users, err := s.users.List(ctx, ports.ListUsersParams{Status: &pending})
	if err != nil {
		return 0, err
	}

	return int64(len(users)), nil
}
