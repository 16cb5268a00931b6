package digipost

import (
	"fmt"
	"strconv"
)

// SenderID identifies an organisation that sends through Digipost.
type SenderID int64

// BrokerID identifies an organisation that sends on behalf of others.
type BrokerID int64

// NewSenderID returns v as a SenderID, or ErrInvalidID when v is not
// positive.
func NewSenderID(v int64) (SenderID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%w: sender %d", ErrInvalidID, v)
	}

	return SenderID(v), nil
}

// ParseSenderID parses a decimal sender ID.
func ParseSenderID(s string) (SenderID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return NewSenderID(v)
}

func (id SenderID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// AsBrokerID returns the same number as a BrokerID.
func (id SenderID) AsBrokerID() BrokerID {
	return BrokerID(id)
}

// NewBrokerID returns v as a BrokerID, or ErrInvalidID when v is not
// positive.
func NewBrokerID(v int64) (BrokerID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%w: broker %d", ErrInvalidID, v)
	}

	return BrokerID(v), nil
}

func (id BrokerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// AsSenderID returns the same number as a SenderID.
func (id BrokerID) AsSenderID() SenderID {
	return SenderID(id)
}
