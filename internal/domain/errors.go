package domain

import "errors"

var (
	ErrInvalidBirthData = errors.New("birth data is missing or invalid")
	ErrUnknownSpread    = errors.New("unknown spread type")
	ErrInvalidDraw      = errors.New("draw count must be at least 1")
	ErrDrawExceedsDeck  = errors.New("draw count exceeds number of cards in deck")
	ErrDeckNotFound     = errors.New("deck not found")
	ErrUpstreamLLM      = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON   = errors.New("LLM returned invalid JSON after retry")
)
