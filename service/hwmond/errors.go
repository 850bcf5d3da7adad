// SPDX-License-Identifier: BSD-3-Clause

package hwmond

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called twice on the same instance.
	ErrServiceAlreadyStarted = errors.New("hwmond service already started")
	// ErrInvalidConfiguration indicates the service was constructed with an invalid option.
	ErrInvalidConfiguration = errors.New("hwmond invalid configuration")
	// ErrNATSConnectionFailed indicates the in-process NATS connection could not be established.
	ErrNATSConnectionFailed = errors.New("hwmond NATS connection failed")
	// ErrJetStreamInitFailed indicates the durable object-event stream could not be created.
	ErrJetStreamInitFailed = errors.New("hwmond JetStream initialization failed")
	// ErrMicroServiceCreationFailed indicates the NATS micro service wrapper could not be created.
	ErrMicroServiceCreationFailed = errors.New("hwmond micro service creation failed")
	// ErrEndpointRegistrationFailed indicates a micro endpoint failed to register.
	ErrEndpointRegistrationFailed = errors.New("hwmond endpoint registration failed")
)
