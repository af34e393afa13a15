package partner

import (
	"context"
	"fmt"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// RouteService handles delivery route business logic
type RouteService struct {
	routeRepo    partner.RouteRepository
	customerRepo partner.CustomerRepository
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo partner.RouteRepository, customerRepo partner.CustomerRepository) *RouteService {
	return &RouteService{
		routeRepo:    routeRepo,
		customerRepo: customerRepo,
	}
}

// CreateRoute creates a new delivery route
func (s *RouteService) CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error) {
	exists, err := s.routeRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check route name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_ROUTE_NAME", "A route with this name already exists")
	}

	route, err := partner.NewRoute(req.Name, req.Description, req.PersonnelName)
	if err != nil {
		return nil, err
	}

	if err := s.routeRepo.Save(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to save route: %w", err)
	}

	response := ToRouteResponse(route)
	return &response, nil
}

// GetRoute retrieves a route by ID with its customer count
func (s *RouteService) GetRoute(ctx context.Context, id uuid.UUID) (*RouteResponse, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.customerRepo.CountByRoute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count route customers: %w", err)
	}
	response := ToRouteResponse(route)
	response.CustomerCount = count
	return &response, nil
}

// UpdateRoute updates an existing route
func (s *RouteService) UpdateRoute(ctx context.Context, id uuid.UUID, req UpdateRouteRequest) (*RouteResponse, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != route.Name {
		exists, err := s.routeRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check route name: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_ROUTE_NAME", "A route with this name already exists")
		}
	}

	name := route.Name
	description := route.Description
	personnelName := route.PersonnelName
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.PersonnelName != nil {
		personnelName = *req.PersonnelName
	}
	if err := route.Update(name, description, personnelName); err != nil {
		return nil, err
	}

	if err := s.routeRepo.Save(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to save route: %w", err)
	}

	response := ToRouteResponse(route)
	return &response, nil
}

// ActivateRoute activates a route
func (s *RouteService) ActivateRoute(ctx context.Context, id uuid.UUID) error {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := route.Activate(); err != nil {
		return err
	}
	return s.routeRepo.Save(ctx, route)
}

// DeactivateRoute deactivates a route
func (s *RouteService) DeactivateRoute(ctx context.Context, id uuid.UUID) error {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := route.Deactivate(); err != nil {
		return err
	}
	return s.routeRepo.Save(ctx, route)
}

// DeleteRoute removes a route with no assigned customers
func (s *RouteService) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	if _, err := s.routeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.customerRepo.CountByRoute(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count route customers: %w", err)
	}
	if count > 0 {
		return shared.NewDomainError("ROUTE_IN_USE", "Cannot delete a route with assigned customers")
	}
	return s.routeRepo.Delete(ctx, id)
}

// ListRoutes returns routes matching the filter
func (s *RouteService) ListRoutes(ctx context.Context, filter RouteListFilter) ([]RouteResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	routes, err := s.routeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	total, err := s.routeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	return ToRouteResponses(routes), total, nil
}
