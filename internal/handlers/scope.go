package handlers

import (
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// OrganizationHeader names the header carrying the caller's organization scope.
const OrganizationHeader = "X-Organization-ID"

// scopeResolver picks the organization scope for a request: an explicit value from the
// query or body, then the header, then the configured default, then the global scope.
type scopeResolver struct {
	defaultScope *string
}

func newScopeResolver(defaultScope *string) scopeResolver {
	return scopeResolver{defaultScope: domain.NormalizeScope(defaultScope)}
}

func (r scopeResolver) resolve(c *gin.Context, explicit *string) *string {
	if scope := domain.NormalizeScope(explicit); scope != nil {
		return scope
	}
	header := c.GetHeader(OrganizationHeader)
	if scope := domain.NormalizeScope(&header); scope != nil {
		return scope
	}
	return r.defaultScope
}

// resolveQuery is resolve for an optional query-string value.
func (r scopeResolver) resolveQuery(c *gin.Context, value string) *string {
	return r.resolve(c, &value)
}
