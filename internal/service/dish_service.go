package service

import (
	"context"
	"math"

	"grubdash/internal/domain"
	"grubdash/internal/pipeline"
	"grubdash/internal/repository"
)

type (
	dishStep     = pipeline.Step[domain.DishPayload, domain.Dish]
	dishPipeline = pipeline.Pipeline[domain.DishPayload, domain.Dish]
	dishRequest  = pipeline.Request[domain.Dish]
)

// DishService applies the dish rule set and performs dish reads and
// mutations against the store.
type DishService struct {
	repo repository.DishRepository
	ids  repository.IDGenerator

	create dishPipeline
	read   dishPipeline
	update dishPipeline
}

// NewDishService composes the dish pipelines once; every request runs them
// with a fresh handle.
func NewDishService(repo repository.DishRepository, ids repository.IDGenerator) *DishService {
	s := &DishService{repo: repo, ids: ids}

	s.create = pipeline.New(s.insert, dishHas...)

	s.read = pipeline.New(s.current, s.exists)

	updateSteps := append([]dishStep{s.exists}, dishHas...)
	updateSteps = append(updateSteps, dishIDMatchesRoute)
	s.update = pipeline.New(s.overwrite, updateSteps...)

	return s
}

// dishHas is the ordered field rule set shared by create and update. The
// order is part of the API contract: a zero price answers the "must include
// a price" message, never the integer one.
var dishHas = []dishStep{
	dishNameRequired,
	dishDescriptionRequired,
	dishPriceRequired,
	dishPricePositiveInteger,
	dishImageURLRequired,
}

func dishNameRequired(_ context.Context, _ *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.Name == "" {
		return pipeline.Invalid("A name is required")
	}
	return nil
}

func dishDescriptionRequired(_ context.Context, _ *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.Description == "" {
		return pipeline.Invalid("A description is required")
	}
	return nil
}

func dishPriceRequired(_ context.Context, _ *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.Price == 0 {
		return pipeline.Invalid("Dish must include a price")
	}
	return nil
}

func dishPricePositiveInteger(_ context.Context, _ *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.Price <= 0 || p.Price != math.Trunc(p.Price) {
		return pipeline.Invalid("Dish must have a price that is an integer greater than 0")
	}
	return nil
}

func dishImageURLRequired(_ context.Context, _ *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.ImageURL == "" {
		return pipeline.Invalid("An image_url is required")
	}
	return nil
}

// dishIDMatchesRoute runs after the field rules on update: a body id, when
// supplied, must equal the path id. Field-content errors take precedence.
func dishIDMatchesRoute(_ context.Context, req *dishRequest, p domain.DishPayload) *pipeline.Error {
	if p.ID != "" && p.ID != req.ID {
		return pipeline.Invalid("Dish id does not match route id. Dish: %s, Route: %s", p.ID, req.ID)
	}
	return nil
}

// exists resolves the path id against the store and attaches the record to
// the request handle for the terminal handler to reuse.
func (s *DishService) exists(ctx context.Context, req *dishRequest, _ domain.DishPayload) *pipeline.Error {
	d, err := s.repo.Find(ctx, req.ID)
	if err != nil {
		return pipeline.NotFound("Dish id not found: %s", req.ID)
	}
	req.Resource = d
	return nil
}

// Terminal handlers

func (s *DishService) insert(ctx context.Context, _ *dishRequest, p domain.DishPayload) (domain.Dish, error) {
	d := domain.Dish{
		ID:          s.ids.Next(),
		Name:        p.Name,
		Description: p.Description,
		Price:       int(p.Price),
		ImageURL:    p.ImageURL,
	}
	if err := s.repo.Append(ctx, d); err != nil {
		return domain.Dish{}, err
	}
	return d, nil
}

func (s *DishService) current(_ context.Context, req *dishRequest, _ domain.DishPayload) (domain.Dish, error) {
	return req.Resource, nil
}

// overwrite replaces every mutable field from the body. This is a full
// replace, not a merge.
func (s *DishService) overwrite(ctx context.Context, req *dishRequest, p domain.DishPayload) (domain.Dish, error) {
	d := req.Resource
	d.Name = p.Name
	d.Description = p.Description
	d.Price = int(p.Price)
	d.ImageURL = p.ImageURL
	if err := s.repo.Update(ctx, d); err != nil {
		return domain.Dish{}, err
	}
	return d, nil
}

// Operations

func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	return s.repo.List(ctx)
}

func (s *DishService) Read(ctx context.Context, id string) (domain.Dish, error) {
	return s.read.Run(ctx, &dishRequest{ID: id}, domain.DishPayload{})
}

func (s *DishService) Create(ctx context.Context, p domain.DishPayload) (domain.Dish, error) {
	return s.create.Run(ctx, &dishRequest{}, p)
}

func (s *DishService) Update(ctx context.Context, id string, p domain.DishPayload) (domain.Dish, error) {
	return s.update.Run(ctx, &dishRequest{ID: id}, p)
}
