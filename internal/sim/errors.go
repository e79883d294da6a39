package sim

import "errors"

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrNoVariants     = errors.New("no variants registered")
)
