package game

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrInvalidAmount     = errors.New("coin amount must be positive")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrUnknownItem       = errors.New("unknown catalog item")
	ErrUnknownFeature    = errors.New("unknown feature")
	ErrFeatureLocked     = errors.New("feature is locked")
	ErrInvalidAnswer     = errors.New("answer must be a positive whole number")
	ErrNotStarted        = errors.New("round not started")
	ErrRoundComplete     = errors.New("round already complete")
	ErrInvalidChoice     = errors.New("no such answer option")
)
