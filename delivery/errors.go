package delivery

import "errors"

var (
	ErrTransportRequired   = errors.New("delivery: transport is required")
	ErrMessageRequired     = errors.New("delivery: message or builder is required")
	ErrMessageAmbiguous    = errors.New("delivery: message and builder are mutually exclusive")
	ErrChannelRequired     = errors.New("delivery: channel id is required")
	ErrMessageRefRequired  = errors.New("delivery: message ref is required")
	ErrInteractionRequired = errors.New("delivery: interaction id and token are required")
)
