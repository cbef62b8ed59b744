package planner

import (
	"errors"

	"github.com/playpool/shotsolver/internal/shot"
)

var ErrMissingBall = errors.New("cue and object positions are required")

// RequestBody is the wire form of a solve request shared by the HTTP and
// websocket APIs. A missing or null pocket selects all six.
type RequestBody struct {
	Cue         *shot.Vec2 `json:"cue"`
	Object      *shot.Vec2 `json:"object"`
	Pocket      *string    `json:"pocket"`
	MaxCushions int        `json:"max_cushions"`
}

// Request converts the body to a solver request.
func (b RequestBody) Request() (shot.Request, error) {
	if b.Cue == nil || b.Object == nil {
		return shot.Request{}, ErrMissingBall
	}
	req := shot.Request{Cue: *b.Cue, Object: *b.Object, MaxCushions: b.MaxCushions}
	if b.Pocket != nil {
		req.Pocket = *b.Pocket
	}
	return req, nil
}

// IsInputError reports whether err is the caller's fault.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingBall) ||
		errors.Is(err, shot.ErrUnknownPocket) ||
		errors.Is(err, shot.ErrInvalidMaxCushions) ||
		errors.Is(err, shot.ErrInvalidPosition)
}
