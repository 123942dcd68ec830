package driver

import (
	"errors"
	"fmt"
)

// ErrProviderNetParams is returned when exactly one of phys_net and
// net_type is supplied. Provider networks need both; private networks
// need neither.
var ErrProviderNetParams = errors.New("phys_net and net_type must be given together")

// ErrSegmentIDRequired is returned for a vlan network without a segment id.
var ErrSegmentIDRequired = errors.New("net_type vlan requires a segment_id")

// ErrSegmentIDUnsupported is returned when a segment id is supplied for
// a network type that cannot carry one.
var ErrSegmentIDUnsupported = errors.New("segment_id is only valid for net_type vlan")

// ErrBadControllerState is returned when a port create cannot resolve
// the network's provider context (inconsistent or missing metadata).
var ErrBadControllerState = errors.New("network provider context could not be resolved")

// InvalidNetworkTypeError is returned for a net_type outside the
// recognized set.
type InvalidNetworkTypeError struct {
	NetType string
}

func (e *InvalidNetworkTypeError) Error() string {
	return fmt.Sprintf("invalid physical network type %q", e.NetType)
}

// PhysicalNetworkNotFoundError is returned when phys_net does not match
// any transport zone known to the controller.
type PhysicalNetworkNotFoundError struct {
	PhysNet string
}

func (e *PhysicalNetworkNotFoundError) Error() string {
	return fmt.Sprintf("physical network %q not found among transport zones", e.PhysNet)
}

// AmbiguousPortError is returned when a port delete by id resolves to
// zero or more than one hosting switch. Either way the placement is a
// data-consistency fault that the driver will not guess its way around.
type AmbiguousPortError struct {
	PortID   string
	Switches int
}

func (e *AmbiguousPortError) Error() string {
	if e.Switches == 0 {
		return fmt.Sprintf("port %q not found on any switch", e.PortID)
	}
	return fmt.Sprintf("port %q found on %d switches, expected exactly one", e.PortID, e.Switches)
}

// IsValidationError reports whether err is a provider-parameter
// validation failure, i.e. one raised before any mutating controller
// call.
func IsValidationError(err error) bool {
	var invalidType *InvalidNetworkTypeError
	var notFound *PhysicalNetworkNotFoundError
	return errors.Is(err, ErrProviderNetParams) ||
		errors.Is(err, ErrSegmentIDRequired) ||
		errors.Is(err, ErrSegmentIDUnsupported) ||
		errors.As(err, &invalidType) ||
		errors.As(err, &notFound)
}
