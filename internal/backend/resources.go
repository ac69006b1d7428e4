package backend

import (
	"context"

	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// ListResources returns the full resource directory. A 401 surfaces as
// ErrUnauthorized so the caller can redirect to login.
func (c *Client) ListResources(ctx context.Context) ([]domain.Resource, error) {
	var resources []domain.Resource
	if err := c.get(ctx, "/api/resources", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}
