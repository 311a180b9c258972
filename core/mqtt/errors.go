package mqtt

import "errors"

// ErrNotConnected is returned when publishing without a live broker connection.
var ErrNotConnected = errors.New("mqtt client not connected")
