package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type TransactionReader interface {
	List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error)
}

type CardReader interface {
	List(ctx context.Context) ([]card.CreditCard, error)
	Usages(ctx context.Context) ([]card.Usage, error)
}

type SummaryService interface {
	// GetSummary summarizes the month containing month.
	GetSummary(ctx context.Context, month time.Time) (MonthlySummary, error)
	// CurrentAnalysis renders the analysis text of the current month.
	CurrentAnalysis(ctx context.Context) (string, error)
}

type SummaryServiceImpl struct {
	transactions TransactionReader
	cards        CardReader
	clock        utils.Clock
}

func NewSummaryServiceImpl(transactions TransactionReader, cards CardReader, clock utils.Clock) *SummaryServiceImpl {
	return &SummaryServiceImpl{transactions: transactions, cards: cards, clock: clock}
}

func (s *SummaryServiceImpl) GetSummary(ctx context.Context, month time.Time) (MonthlySummary, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var (
		transactions []transaction.Transaction
		cards        []card.CreditCard
		usages       []card.Usage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.List(gctx, transaction.Filter{Month: &month})
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.cards.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		usages, err = s.cards.Usages(gctx)
		if errors.Is(err, card.ErrInvalidLimit) {
			log.Warnf("skipping card usage in summary: %v", err)
			usages, err = nil, nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return MonthlySummary{}, err
	}

	summary := Summarize(month, transactions)
	names := make(map[int]string, len(cards))
	for _, c := range cards {
		names[c.Id] = c.Name
	}
	for _, u := range usages {
		summary.Cards = append(summary.Cards, CardUsage{Name: names[u.CardId], Usage: u})
	}
	return summary, nil
}

func (s *SummaryServiceImpl) CurrentAnalysis(ctx context.Context) (string, error) {
	u, err := user.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	summary, err := s.GetSummary(ctx, s.clock.Now())
	if err != nil {
		return "", err
	}
	currency := u.Settings.Currency
	if currency == "" {
		currency = user.DefaultCurrency
	}
	return AnalysisText(summary, currency), nil
}
