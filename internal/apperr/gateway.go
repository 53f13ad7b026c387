package apperr

import (
	"errors"
	"fmt"
)

// ErrGateway matches every error produced by the driver gateway.
var ErrGateway = errors.New("driver gateway")

// GatewayKind classifies driver gateway failures.
type GatewayKind int

const (
	GatewayUnknown GatewayKind = iota
	GatewayNotFound
	GatewayRejected
	GatewayUnavailable
)

func (k GatewayKind) String() string {
	switch k {
	case GatewayNotFound:
		return "not_found"
	case GatewayRejected:
		return "rejected"
	case GatewayUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// GatewayError is returned by the driver gateway.
type GatewayError struct {
	Kind       GatewayKind
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("driver gateway %s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is makes every GatewayError match ErrGateway.
func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// GatewayKindOf returns the kind of a gateway error anywhere in the chain.
func GatewayKindOf(err error) (GatewayKind, bool) {
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		return GatewayUnknown, false
	}
	return gwErr.Kind, true
}
