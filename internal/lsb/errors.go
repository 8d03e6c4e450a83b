package lsb

import (
	"errors"

	"github.com/yyyoichi/lsb_zero/internal/digest"
	"github.com/yyyoichi/lsb_zero/internal/header"
)

var (
	ErrInsufficientCapacity = header.ErrInsufficientCapacity
	ErrMalformedHeader      = header.ErrMalformedHeader
	ErrUnknownAlgorithm     = digest.ErrUnknownAlgorithm
	ErrIntegrityMismatch    = errors.New("integrity mismatch")
	ErrInvalidLSBs          = errors.New("invalid number of least significant bits")
	ErrInvalidContainer     = errors.New("invalid container")
)
