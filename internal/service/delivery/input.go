package delivery

import "service-lastmile/internal/domain"

// CreateInput describes a delivery requested for a new order.
type CreateInput domain.Details

// RegisterInput describes a delivery registered by the agent carrying it.
type RegisterInput domain.Details
