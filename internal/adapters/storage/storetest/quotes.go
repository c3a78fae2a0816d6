// Package storetest is a conformance suite run against every QuoteStore and
// UserStore backend so they behave identically.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// QuoteStoreSuite exercises a ports.QuoteStore. NewStore must return an
// empty store with indexes in place; it is called before every test.
type QuoteStoreSuite struct {
	suite.Suite

	NewStore func() ports.QuoteStore

	store ports.QuoteStore
	ctx   context.Context
}

func (s *QuoteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *QuoteStoreSuite) create(content string, status domain.QuoteStatus) *domain.Quote {
	q, err := s.store.Create(s.ctx, domain.NewQuote{
		Content:     content,
		ContentHash: contenthash.Hash(content),
		Status:      status,
	})
	s.Require().NoError(err)

	return q
}

func (s *QuoteStoreSuite) TestCreateAssignsDefaults() {
	submitter := "jane"

	q, err := s.store.Create(s.ctx, domain.NewQuote{
		Content:     "Life is short.",
		ContentHash: contenthash.Hash("Life is short."),
		SubmittedBy: &submitter,
	})
	s.Require().NoError(err)

	s.Regexp(`^[0-9a-f]{32}$`, q.ID)
	s.Equal("Life is short.", q.Content)
	s.Equal(contenthash.Hash("Life is short."), q.ContentHash)
	s.Equal(domain.QuoteStatusPending, q.Status)
	s.Equal(domain.DefaultQuoteSource, q.Source)
	s.Require().NotNil(q.SubmittedBy)
	s.Equal("jane", *q.SubmittedBy)
	s.Zero(q.Likes)
	s.Nil(q.VerifiedAt)
	s.Nil(q.VerifiedBy)
	s.WithinDuration(time.Now(), q.CreatedAt, time.Minute)
	s.Equal(time.UTC, q.CreatedAt.Location())
}

func (s *QuoteStoreSuite) TestCreateComputesMissingHash() {
	q, err := s.store.Create(s.ctx, domain.NewQuote{Content: "  padded  "})
	s.Require().NoError(err)

	s.Equal(contenthash.Hash("padded"), q.ContentHash)
}

func (s *QuoteStoreSuite) TestCreateIsIdempotentByContent() {
	first := s.create("Carpe diem", domain.QuoteStatusPending)

	other := "someone else"
	second, err := s.store.Create(s.ctx, domain.NewQuote{
		Content:     "Carpe diem",
		ContentHash: contenthash.Hash("Carpe diem"),
		Source:      "web_form",
		Status:      domain.QuoteStatusApproved,
		SubmittedBy: &other,
	})
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(domain.QuoteStatusPending, second.Status, "existing row is returned unchanged")
	s.Equal(first.Source, second.Source)
	s.Nil(second.SubmittedBy)

	n, err := s.store.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *QuoteStoreSuite) TestConcurrentCreateSameContent() {
	const workers = 8

	var wg sync.WaitGroup

	ids := make([]string, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			q, err := s.store.Create(s.ctx, domain.NewQuote{
				Content:     "Only once",
				ContentHash: contenthash.Hash("Only once"),
			})
			errs[i] = err
			if err == nil {
				ids[i] = q.ID
			}
		}()
	}

	wg.Wait()

	for i := range workers {
		s.Require().NoError(errs[i])
		s.Equal(ids[0], ids[i])
	}

	n, err := s.store.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *QuoteStoreSuite) TestGet() {
	created := s.create("Fetch me", domain.QuoteStatusPending)

	got, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal(created.Content, got.Content)

	_, err = s.store.Get(s.ctx, "00000000000000000000000000000000")
	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestListOrderingAndPagination() {
	for i := range 5 {
		s.create(fmt.Sprintf("quote number %d", i), domain.QuoteStatusApproved)
	}

	first, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(first.Items, 2)
	s.Equal("2", first.NextCursor)

	second, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 2, Cursor: first.NextCursor})
	s.Require().NoError(err)
	s.Len(second.Items, 2)
	s.Equal("4", second.NextCursor)

	third, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 2, Cursor: second.NextCursor})
	s.Require().NoError(err)
	s.Len(third.Items, 1)
	s.Empty(third.NextCursor)

	all, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(all.Items, 5)
	s.Empty(all.NextCursor)

	var paged []*domain.Quote
	paged = append(paged, first.Items...)
	paged = append(paged, second.Items...)
	paged = append(paged, third.Items...)

	for i := range all.Items {
		s.Equal(all.Items[i].ID, paged[i].ID, "pages concatenate to the full listing")
	}

	for i := 1; i < len(all.Items); i++ {
		prev, cur := all.Items[i-1], all.Items[i]
		ordered := prev.CreatedAt.After(cur.CreatedAt) ||
			(prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID)
		s.True(ordered, "items ordered by created_at desc, id desc")
	}
}

func (s *QuoteStoreSuite) TestListIsDeterministic() {
	for i := range 6 {
		s.create(fmt.Sprintf("stable %d", i), domain.QuoteStatusPending)
	}

	a, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 6})
	s.Require().NoError(err)

	b, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 6})
	s.Require().NoError(err)

	s.Require().Len(b.Items, len(a.Items))
	for i := range a.Items {
		s.Equal(a.Items[i].ID, b.Items[i].ID)
	}
}

func (s *QuoteStoreSuite) TestListFilters() {
	approved := s.create("approved one", domain.QuoteStatusApproved)
	s.create("pending one", domain.QuoteStatusPending)
	s.create("rejected one", domain.QuoteStatusRejected)

	status := domain.QuoteStatusApproved

	page, err := s.store.List(s.ctx, ports.ListQuotesParams{Status: &status, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(approved.ID, page.Items[0].ID)

	page, err = s.store.List(s.ctx, ports.ListQuotesParams{ContentHash: contenthash.Hash("pending one"), Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("pending one", page.Items[0].Content)

	page, err = s.store.List(s.ctx, ports.ListQuotesParams{
		Status:      &status,
		ContentHash: contenthash.Hash("pending one"),
		Limit:       10,
	})
	s.Require().NoError(err)
	s.Empty(page.Items, "filters combine with AND")
}

func (s *QuoteStoreSuite) TestListRejectsBadInput() {
	_, err := s.store.List(s.ctx, ports.ListQuotesParams{Limit: 5, Cursor: "not-a-number"})
	s.True(domain.IsValidation(err))

	_, err = s.store.List(s.ctx, ports.ListQuotesParams{Limit: 0})
	s.True(domain.IsValidation(err))
}

func (s *QuoteStoreSuite) TestUpdateStatusSetsVerification() {
	q := s.create("moderate me", domain.QuoteStatusPending)
	admin := "admin@example.com"

	approved, err := s.store.UpdateStatus(s.ctx, q.ID, domain.QuoteStatusApproved, &admin)
	s.Require().NoError(err)
	s.Equal(domain.QuoteStatusApproved, approved.Status)
	s.Require().NotNil(approved.VerifiedAt)
	s.WithinDuration(time.Now(), *approved.VerifiedAt, time.Minute)
	s.Require().NotNil(approved.VerifiedBy)
	s.Equal(admin, *approved.VerifiedBy)

	rejected, err := s.store.UpdateStatus(s.ctx, q.ID, domain.QuoteStatusRejected, &admin)
	s.Require().NoError(err)
	s.Equal(domain.QuoteStatusRejected, rejected.Status)
	s.NotNil(rejected.VerifiedAt)

	reopened, err := s.store.UpdateStatus(s.ctx, q.ID, domain.QuoteStatusPending, &admin)
	s.Require().NoError(err)
	s.Equal(domain.QuoteStatusPending, reopened.Status)
	s.Nil(reopened.VerifiedAt, "verification is cleared outside verified states")
	s.Nil(reopened.VerifiedBy)

	stored, err := s.store.Get(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Nil(stored.VerifiedAt)
}

func (s *QuoteStoreSuite) TestUpdateStatusWithoutVerifierClearsPrevious() {
	q := s.create("second opinion", domain.QuoteStatusPending)
	first := "a@x.com"

	_, err := s.store.UpdateStatus(s.ctx, q.ID, domain.QuoteStatusApproved, &first)
	s.Require().NoError(err)

	rejected, err := s.store.UpdateStatus(s.ctx, q.ID, domain.QuoteStatusRejected, nil)
	s.Require().NoError(err)
	s.Equal(domain.QuoteStatusRejected, rejected.Status)
	s.NotNil(rejected.VerifiedAt)
	s.Nil(rejected.VerifiedBy, "the earlier verifier must not be credited with the rejection")

	stored, err := s.store.Get(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Nil(stored.VerifiedBy)
}

func (s *QuoteStoreSuite) TestUpdateContentRecomputesHash() {
	q := s.create("first draft", domain.QuoteStatusPending)
	content := "final draft"
	source := "web_form"

	updated, err := s.store.Update(s.ctx, q.ID, domain.QuoteUpdate{Content: &content, Source: &source})
	s.Require().NoError(err)
	s.Equal(content, updated.Content)
	s.Equal(contenthash.Hash(content), updated.ContentHash)
	s.Equal(source, updated.Source)
	s.Equal(q.CreatedAt.Unix(), updated.CreatedAt.Unix(), "created_at is immutable")

	page, err := s.store.List(s.ctx, ports.ListQuotesParams{ContentHash: contenthash.Hash(content), Limit: 1})
	s.Require().NoError(err)
	s.Len(page.Items, 1)
}

func (s *QuoteStoreSuite) TestUpdateContentCollision() {
	s.create("taken", domain.QuoteStatusPending)
	q := s.create("free", domain.QuoteStatusPending)
	content := "taken"

	_, err := s.store.Update(s.ctx, q.ID, domain.QuoteUpdate{Content: &content})
	s.True(domain.IsStorage(err), "quotes never conflict: %v", err)
	s.False(domain.IsConflict(err))

	stored, err := s.store.Get(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal("free", stored.Content, "a failed write leaves the row untouched")
}

func (s *QuoteStoreSuite) TestUpdateNotFound() {
	content := "ghost"

	_, err := s.store.Update(s.ctx, "00000000000000000000000000000000", domain.QuoteUpdate{Content: &content})
	s.True(domain.IsNotFound(err))

	_, err = s.store.UpdateStatus(s.ctx, "00000000000000000000000000000000", domain.QuoteStatusApproved, nil)
	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestIncrementLikesIsAtomic() {
	q := s.create("like me", domain.QuoteStatusApproved)

	const likes = 20

	var wg sync.WaitGroup

	for range likes {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.store.IncrementLikes(s.ctx, q.ID)
			s.NoError(err)
		}()
	}

	wg.Wait()

	got, err := s.store.Get(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal(int64(likes), got.Likes)

	next, err := s.store.IncrementLikes(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal(int64(likes+1), next.Likes, "returns the post-increment value")

	_, err = s.store.IncrementLikes(s.ctx, "00000000000000000000000000000000")
	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestRandomApproved() {
	_, err := s.store.RandomApproved(s.ctx)
	s.True(domain.IsNotFound(err), "empty store")

	s.create("pending only", domain.QuoteStatusPending)

	_, err = s.store.RandomApproved(s.ctx)
	s.True(domain.IsNotFound(err), "nothing approved")

	a := s.create("approved a", domain.QuoteStatusApproved)
	b := s.create("approved b", domain.QuoteStatusApproved)

	for range 10 {
		q, err := s.store.RandomApproved(s.ctx)
		s.Require().NoError(err)
		s.Contains([]string{a.ID, b.ID}, q.ID)
	}
}

func (s *QuoteStoreSuite) TestLatest() {
	_, err := s.store.Latest(s.ctx, nil)
	s.True(domain.IsNotFound(err))

	s.create("older approved", domain.QuoteStatusApproved)
	time.Sleep(10 * time.Millisecond)
	newest := s.create("newest pending", domain.QuoteStatusPending)

	got, err := s.store.Latest(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(newest.ID, got.ID)

	approved := domain.QuoteStatusApproved

	got, err = s.store.Latest(s.ctx, &approved)
	s.Require().NoError(err)
	s.Equal("older approved", got.Content)
}

func (s *QuoteStoreSuite) TestCount() {
	s.create("a", domain.QuoteStatusApproved)
	s.create("b", domain.QuoteStatusApproved)
	s.create("c", domain.QuoteStatusPending)

	total, err := s.store.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	approved := domain.QuoteStatusApproved

	n, err := s.store.Count(s.ctx, &approved)
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}

func (s *QuoteStoreSuite) TestEnsureIndexesIsIdempotent() {
	s.Require().NoError(s.store.EnsureIndexes(s.ctx))
	s.Require().NoError(s.store.EnsureIndexes(s.ctx))
}
