package authsdk

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

var _ httpx.Verifier = (*SDKClient)(nil)

// VerifyBearer lets services that do not share a database with auth (orders,
// products, notifications) put their handlers behind httpx.AuthnMiddleware.
// A 401 from the service becomes httpx.ErrUnauthenticated.
func (c *SDKClient) VerifyBearer(ctx context.Context, token string) (httpx.Principal, error) {
	user, err := c.Verify(ctx, token)
	if err != nil {
		if IsUnauthorized(err) {
			return httpx.Principal{}, fmt.Errorf("%w: %w", httpx.ErrUnauthenticated, err)
		}
		return httpx.Principal{}, err
	}

	return httpx.Principal{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
