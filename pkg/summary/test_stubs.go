package summary

import (
	"context"

	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/transaction"
)

type transactionReaderStub struct {
	transactions []transaction.Transaction
	err          error
}

func newTransactionReaderStub() *transactionReaderStub {
	return &transactionReaderStub{}
}

func (s *transactionReaderStub) List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.transactions, nil
}

func (s *transactionReaderStub) reset() {
	s.transactions = nil
	s.err = nil
}

type cardReaderStub struct {
	cards     []card.CreditCard
	usages    []card.Usage
	usagesErr error
}

func newCardReaderStub() *cardReaderStub {
	return &cardReaderStub{}
}

func (s *cardReaderStub) List(ctx context.Context) ([]card.CreditCard, error) {
	return s.cards, nil
}

func (s *cardReaderStub) Usages(ctx context.Context) ([]card.Usage, error) {
	if s.usagesErr != nil {
		return nil, s.usagesErr
	}
	return s.usages, nil
}

func (s *cardReaderStub) reset() {
	s.cards = nil
	s.usages = nil
	s.usagesErr = nil
}
