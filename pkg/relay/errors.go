package relay

import "errors"

var (
	ErrConnectFailed  = errors.New("relay: failed to connect to broker")
	ErrMarshalMessage = errors.New("relay: failed to marshal message")
	ErrPublishFailed  = errors.New("relay: failed to publish message")
)
