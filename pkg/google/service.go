package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var (
	ErrUnauthenticated = errors.New("google account is not connected")
	ErrMissingCalendar = errors.New("calendar id is required")
)

type CalendarItem struct {
	ID      string
	Summary string
}

// BillSource is the part of the card service the bill reminders are built from.
type BillSource interface {
	List(ctx context.Context) ([]card.CreditCard, error)
	ProjectBills(ctx context.Context, months int) ([]card.MonthlyBill, error)
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	// ExportBills inserts bill reminders for the next months months into calendarId and
	// returns the number of events created.
	ExportBills(ctx context.Context, calendarId string, months int) (int, error)
}

type ServiceImpl struct {
	clients ClientProvider
	bills   BillSource
	options []option.ClientOption
}

func NewService(clients ClientProvider, bills BillSource, opts ...option.ClientOption) *ServiceImpl {
	return &ServiceImpl{
		clients: clients,
		bills:   bills,
		options: opts,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	googleCalendars := make([]CalendarItem, 0, len(calendars.Items))
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

func (s *ServiceImpl) ExportBills(ctx context.Context, calendarId string, months int) (int, error) {
	if calendarId == "" {
		return 0, ErrMissingCalendar
	}
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, currentUser.Id)
	if err != nil {
		return 0, err
	}

	cards, err := s.bills.List(ctx)
	if err != nil {
		return 0, err
	}
	bills, err := s.bills.ProjectBills(ctx, months)
	if err != nil {
		return 0, err
	}

	currency := currentUser.Settings.Currency
	if currency == "" {
		currency = user.DefaultCurrency
	}
	events, err := BillEvents(bills, cards, currency)
	if err != nil {
		return 0, err
	}

	for i, event := range events {
		if _, err := googleService.Events.Insert(calendarId, event).Context(ctx).Do(); err != nil {
			err := fmt.Errorf("unable to insert bill reminder into Google Calendar: %v", err)
			log.Error(err)
			return i, err
		}
	}
	log.Infof("Exported %d bill reminders to Google Calendar for user %d", len(events), currentUser.Id)
	return len(events), nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := s.clients.Client(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, s.options...)
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
