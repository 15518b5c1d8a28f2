package testutil

import (
	"context"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// SetupContext returns a context carrying the default organization and user
// identifiers expected by the services
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxOrganizationID, types.DefaultOrganizationID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
