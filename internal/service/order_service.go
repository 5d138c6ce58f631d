package service

import (
	"context"
	"math"

	"grubdash/internal/domain"
	"grubdash/internal/pipeline"
	"grubdash/internal/repository"
)

type (
	orderStep     = pipeline.Step[domain.OrderPayload, domain.Order]
	orderPipeline = pipeline.Pipeline[domain.OrderPayload, domain.Order]
	orderRequest  = pipeline.Request[domain.Order]
)

// OrderService applies the order rule set, including the status lifecycle,
// and performs order reads and mutations against the store.
type OrderService struct {
	repo repository.OrderRepository
	ids  repository.IDGenerator

	create  orderPipeline
	read    orderPipeline
	update  orderPipeline
	destroy orderPipeline
}

// NewOrderService composes the order pipelines once; every request runs
// them with a fresh handle.
func NewOrderService(repo repository.OrderRepository, ids repository.IDGenerator) *OrderService {
	s := &OrderService{repo: repo, ids: ids}

	s.create = pipeline.New(s.insert, orderHas...)

	s.read = pipeline.New(s.current, s.exists)

	updateSteps := append([]orderStep{s.exists}, orderHas...)
	updateSteps = append(updateSteps, orderIDMatchesRoute, orderStatusValidForUpdate)
	s.update = pipeline.New(s.overwrite, updateSteps...)

	s.destroy = pipeline.New(s.remove, s.exists, orderDeletable)

	return s
}

// orderHas is the ordered field rule set shared by create and update.
var orderHas = []orderStep{
	orderDeliverToRequired,
	orderMobileNumberRequired,
	orderDishesRequired,
	orderDishesNotEmpty,
	orderDishQuantities,
}

func orderDeliverToRequired(_ context.Context, _ *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if p.DeliverTo == "" {
		return pipeline.Invalid("Order must include a deliverTo")
	}
	return nil
}

func orderMobileNumberRequired(_ context.Context, _ *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if p.MobileNumber == "" {
		return pipeline.Invalid("Order must include a mobileNumber")
	}
	return nil
}

func orderDishesRequired(_ context.Context, _ *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if p.Dishes == nil {
		return pipeline.Invalid("Order must include a dish")
	}
	return nil
}

func orderDishesNotEmpty(_ context.Context, _ *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if len(p.Dishes) == 0 {
		return pipeline.Invalid("Order must include at least one dish")
	}
	return nil
}

// orderDishQuantities checks every line for an integer quantity greater
// than 0. The scan does not stop at the first offender: each bad line
// overwrites the message, so the last offending index is the one reported.
// Kept as-is to match the established API behavior.
func orderDishQuantities(_ context.Context, _ *orderRequest, p domain.OrderPayload) *pipeline.Error {
	var bad *pipeline.Error
	for i, item := range p.Dishes {
		if item.Quantity <= 0 || item.Quantity != math.Trunc(item.Quantity) {
			bad = pipeline.Invalid("Dishes %d must have a quantity greater than 0", i)
		}
	}
	return bad
}

// orderIDMatchesRoute runs after the field rules on update: a body id, when
// supplied, must equal the path id.
func orderIDMatchesRoute(_ context.Context, req *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if p.ID != "" && p.ID != req.ID {
		return pipeline.Invalid("Order id does not match route id. Order: %s, Route: %s", p.ID, req.ID)
	}
	return nil
}

// orderStatusValidForUpdate is the lifecycle gate for updates. The leading
// id check repeats orderIDMatchesRoute; that guard runs earlier in the
// update pipeline, so its message is the one a caller sees for a
// simultaneous mismatch.
func orderStatusValidForUpdate(_ context.Context, req *orderRequest, p domain.OrderPayload) *pipeline.Error {
	if p.ID != "" && p.ID != req.ID {
		return pipeline.Invalid("Order id does not match route id. Order: %s, Route: %s", p.ID, req.ID)
	}
	switch domain.OrderStatus(p.Status) {
	case domain.OrderStatusPending, domain.OrderStatusPreparing, domain.OrderStatusOutForDelivery:
	default:
		// delivered is a valid resting state but never a valid update target.
		return pipeline.Invalid("Order must have a status of pending, preparing, out-for-delivery, delivered")
	}
	if req.Resource.Status == domain.OrderStatusDelivered {
		return pipeline.Conflict("A delivered order cannot be changed")
	}
	return nil
}

// orderDeletable permits deletion only while the stored status is pending.
func orderDeletable(_ context.Context, req *orderRequest, _ domain.OrderPayload) *pipeline.Error {
	if req.Resource.Status != domain.OrderStatusPending {
		return pipeline.Conflict("An order cannot be deleted unless it is pending.")
	}
	return nil
}

// exists resolves the path id against the store and attaches the record to
// the request handle for downstream steps and the terminal handler.
func (s *OrderService) exists(ctx context.Context, req *orderRequest, _ domain.OrderPayload) *pipeline.Error {
	o, err := s.repo.Find(ctx, req.ID)
	if err != nil {
		return pipeline.NotFound("Order id not found: %s", req.ID)
	}
	req.Resource = o
	return nil
}

// Terminal handlers

func (s *OrderService) insert(ctx context.Context, _ *orderRequest, p domain.OrderPayload) (domain.Order, error) {
	o := domain.Order{
		ID:           s.ids.Next(),
		DeliverTo:    p.DeliverTo,
		MobileNumber: p.MobileNumber,
		Status:       domain.OrderStatus(p.Status),
		Dishes:       orderItems(p.Dishes),
	}
	if err := s.repo.Append(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) current(_ context.Context, req *orderRequest, _ domain.OrderPayload) (domain.Order, error) {
	return req.Resource, nil
}

// overwrite replaces every mutable field from the body. This is a full
// replace, not a merge.
func (s *OrderService) overwrite(ctx context.Context, req *orderRequest, p domain.OrderPayload) (domain.Order, error) {
	o := req.Resource
	o.DeliverTo = p.DeliverTo
	o.MobileNumber = p.MobileNumber
	o.Status = domain.OrderStatus(p.Status)
	o.Dishes = orderItems(p.Dishes)
	if err := s.repo.Update(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// remove deletes the resolved record. The earlier existence guard is the
// only lookup; the removal result itself is not re-checked.
func (s *OrderService) remove(ctx context.Context, req *orderRequest, _ domain.OrderPayload) (domain.Order, error) {
	if _, err := s.repo.Remove(ctx, req.ID); err != nil {
		return domain.Order{}, err
	}
	return req.Resource, nil
}

func orderItems(items []domain.OrderItemPayload) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		out[i] = domain.OrderItem{DishID: item.DishID, Quantity: int(item.Quantity)}
	}
	return out
}

// Operations

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Read(ctx context.Context, id string) (domain.Order, error) {
	return s.read.Run(ctx, &orderRequest{ID: id}, domain.OrderPayload{})
}

func (s *OrderService) Create(ctx context.Context, p domain.OrderPayload) (domain.Order, error) {
	return s.create.Run(ctx, &orderRequest{}, p)
}

func (s *OrderService) Update(ctx context.Context, id string, p domain.OrderPayload) (domain.Order, error) {
	return s.update.Run(ctx, &orderRequest{ID: id}, p)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	_, err := s.destroy.Run(ctx, &orderRequest{ID: id}, domain.OrderPayload{})
	return err
}
