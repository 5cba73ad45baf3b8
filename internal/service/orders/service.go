// Package orders оборачивает хранилище заказов логированием, метриками и событиями.
package orders

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
	"github.com/vladislavdragonenkov/pizzaria/internal/metrics"
)

// Имена операций для метрик и логов.
const (
	opCreate  = "create"
	opUpdate  = "update"
	opList    = "list"
	opGet     = "get"
	opDelete  = "delete"
	opFlavors = "flavors"
)

// Service: прикладной слой над OrderRepository.
type Service struct {
	orders    domain.OrderRepository
	flavors   domain.FlavorRepository
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithPublisher задаёт шину событий.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithMetrics задаёт метрики.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService создаёт сервис заказов.
func NewService(orders domain.OrderRepository, flavors domain.FlavorRepository, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		flavors:   flavors,
		publisher: domain.NoopPublisher{},
		logger:    log.WithField("component", "order-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewOrderMetrics()
	}
	return s
}

// Create сохраняет заказ вместе с позициями и публикует order.created.
func (s *Service) Create(ctx context.Context, order *domain.Order) (err error) {
	done := s.metrics.StartOperation(opCreate)
	defer func() { done(err) }()

	if err = s.orders.Create(ctx, order); err != nil {
		s.logFailure(opCreate, 0, err)
		return err
	}

	s.metrics.RecordItemsCreated(len(order.Items))
	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
	}).Info("order created")
	s.publish(ctx, domain.OrderEventCreated, *order)
	return nil
}

// Update перезаписывает скалярные поля заказа и публикует order.updated.
func (s *Service) Update(ctx context.Context, order domain.Order) (err error) {
	done := s.metrics.StartOperation(opUpdate)
	defer func() { done(err) }()

	if err = s.orders.Update(ctx, order); err != nil {
		s.logFailure(opUpdate, order.ID, err)
		return err
	}

	s.logger.WithField("order_id", order.ID).Info("order updated")
	s.publish(ctx, domain.OrderEventUpdated, order)
	return nil
}

// List возвращает все заказы с позициями.
func (s *Service) List(ctx context.Context) (orders []domain.Order, err error) {
	done := s.metrics.StartOperation(opList)
	defer func() { done(err) }()

	orders, err = s.orders.List(ctx)
	if err != nil {
		s.logFailure(opList, 0, err)
		return nil, err
	}
	return orders, nil
}

// Get возвращает заказ по id или domain.ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id int64) (order domain.Order, err error) {
	done := s.metrics.StartOperation(opGet)
	defer func() {
		// Отсутствующий заказ: штатный ответ, а не сбой хранилища.
		if errors.Is(err, domain.ErrOrderNotFound) {
			done(nil)
			return
		}
		done(err)
	}()

	order, err = s.orders.Get(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
		s.logFailure(opGet, id, err)
	}
	return order, err
}

// Delete удаляет заказ и публикует order.deleted.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	done := s.metrics.StartOperation(opDelete)
	defer func() { done(err) }()

	if err = s.orders.Delete(ctx, id); err != nil {
		s.logFailure(opDelete, id, err)
		return err
	}

	s.logger.WithField("order_id", id).Info("order deleted")
	s.publish(ctx, domain.OrderEventDeleted, domain.Order{ID: id})
	return nil
}

// Flavors возвращает меню вкусов.
func (s *Service) Flavors(ctx context.Context) (flavors []domain.Flavor, err error) {
	done := s.metrics.StartOperation(opFlavors)
	defer func() { done(err) }()

	flavors, err = s.flavors.List(ctx)
	if err != nil {
		s.logFailure(opFlavors, 0, err)
		return nil, err
	}
	return flavors, nil
}

func (s *Service) publish(ctx context.Context, eventType domain.OrderEventType, order domain.Order) {
	err := s.publisher.PublishOrderEvent(ctx, eventType, order)
	s.metrics.RecordEvent(string(eventType), err)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Warn("failed to publish order event")
	}
}

func (s *Service) logFailure(operation string, orderID int64, err error) {
	entry := s.logger.WithError(err).WithField("operation", operation)
	if orderID != 0 {
		entry = entry.WithField("order_id", orderID)
	}
	if errors.Is(err, domain.ErrInvalidOrder) {
		entry.Warn("order rejected")
		return
	}
	entry.Error("order operation failed")
}
