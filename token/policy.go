package token

// Policy mirrors the two on-device settings (N_storage.dataAllowed,
// N_storage.contractDetails) that gate what the DATA field processor is
// allowed to do with a non-token payload.
type Policy struct {
	// DataAllowed, when false, makes any non-empty DATA field on a
	// contract call (destination present) a hard fault. It has no effect
	// on contract creation (destination absent) or on recognized token
	// transfers, neither of which reach this check.
	DataAllowed bool
	// ContractDetails, when false, still permits the DATA field through
	// (provided DataAllowed is set) but skips the raw hex/parameter
	// breakdown entirely: bytes are consumed and hashed like any other
	// field, never surfaced for display.
	ContractDetails bool
}

// DefaultPolicy matches the conservative defaults a freshly provisioned
// device ships with: data is accepted but never decoded for display.
func DefaultPolicy() Policy {
	return Policy{DataAllowed: true, ContractDetails: false}
}
