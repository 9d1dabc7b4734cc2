package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a supply order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct warehouse workflow.
//
// State transitions:
//
//	ReceivingPending ──> Received ──> Packing ──> ReadyToShip ──> Completed
//	                          │                        ▲
//	                          └────────────────────────┘
//	            (a single packing call can fill the whole plan)
//
// Receiving is a one-time transition. Packing and ReadyToShip are derived
// after every packing call from the packed total against the effective plan.
// Completed is terminal and is reached via an explicit completion action or
// the shipment auto-closer.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// ReceivingPending is the initial status when an order is first created.
	// Warehouse staff have not yet recorded the physically received goods.
	ReceivingPending

	// Received indicates receiving has been completed for the order.
	// Stock and defect counts have been applied exactly once.
	Received

	// Packing indicates packing has started but the effective plan
	// (received minus defects) is not yet fully packed.
	Packing

	// ReadyToShip indicates all non-defective received stock has been packed.
	ReadyToShip

	// Completed indicates the order has been shipped out.
	// This is a final state with no further transitions allowed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		ReceivingPending: "Receiving-Pending",
		Received:         "Received",
		Packing:          "Packing",
		ReadyToShip:      "Ready-to-Ship",
		Completed:        "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		ReceivingPending: "Receiving-Pending",
		Received:         "Received",
		Packing:          "Packing",
		ReadyToShip:      "Ready-to-Ship",
		Completed:        "Completed",
	}
}

// StatusFromString parses the stored status name back into a Status.
// Returns an error for unknown names, including "Unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values outside the lifecycle are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCompleteReceiving checks that receiving may be completed from the
// current status without performing the transition. Receiving is a one-time
// act: any status past ReceivingPending means the stock effects were already
// applied, and re-running them would double-count stock.
func (s Status) ValidateCompleteReceiving() error {
	if s != ReceivingPending {
		return errs.NewConflictError("order status", s.String())
	}
	return nil
}

// ValidatePack checks that packing is allowed from the current status.
// Packing before receiving is rejected because there is no accepted stock
// to pack yet; packing a completed order is rejected because the order has
// already left the warehouse.
func (s Status) ValidatePack() error {
	if s == Received || s == Packing || s == ReadyToShip {
		return nil
	}
	return errs.NewConflictError("order status", s.String())
}

// CompleteReceiving transitions the status to Received.
//
// Valid transitions:
//   - ReceivingPending -> Received
//
// Returns (0, ConflictError) from any other status, since receiving is a
// one-time transition.
func (s Status) CompleteReceiving() (Status, error) {
	if err := s.ValidateCompleteReceiving(); err != nil {
		return 0, err
	}
	return Received, nil
}

// DerivePacking recomputes the status after a packing call.
// When the packed total covers the effective plan (received minus defects)
// the order becomes ReadyToShip, otherwise Packing.
//
// Valid source statuses are Received, Packing and ReadyToShip; the
// derivation never resurrects a completed order or skips receiving.
func (s Status) DerivePacking(packedQty, effectivePlan int) (Status, error) {
	if err := s.ValidatePack(); err != nil {
		return 0, err
	}
	if packedQty >= effectivePlan {
		return ReadyToShip, nil
	}
	return Packing, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - ReadyToShip -> Completed
//
// Returns (0, ConflictError) otherwise. Completed is a final state.
func (s Status) Complete() (Status, error) {
	if s != ReadyToShip {
		return 0, errs.NewConflictError("order status", s.String())
	}
	return Completed, nil
}
