package limits

import "errors"

var (
	// ErrNoPower indicates a tolerance table without a Power column.
	ErrNoPower = errors.New("limits: no Power column")

	// ErrNoPhotonColumns indicates a tolerance table whose only column is
	// Power, leaving no photon-energy bins to protect against.
	ErrNoPhotonColumns = errors.New("limits: no photon-energy columns")

	// ErrUnknownState indicates a device state absent from the tolerance
	// table.
	ErrUnknownState = errors.New("limits: unknown state")

	// ErrNegativeValue indicates a negative energy or power in an input
	// table.
	ErrNegativeValue = errors.New("limits: negative value")
)
