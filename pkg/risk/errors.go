package risk

import "errors"

var (
	// ErrInsufficientData means the input batch produced zero usable
	// feature rows; training is aborted and no artifact is written.
	ErrInsufficientData = errors.New("not enough training data")

	// ErrModelNotTrained means prediction was requested before both
	// disease models were trained.
	ErrModelNotTrained = errors.New("model not trained")

	ErrUnknownDisease = errors.New("unknown disease model")
)
