// Package session models one interactive generation session as an immutable
// State advanced by Reduce. Transitions come only from user actions and the
// resolution of the single outstanding request; nothing is time-triggered.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mithrel/docsmith/internal/repourl"
	"github.com/mithrel/docsmith/pkg/api"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is treated as a value: Reduce never mutates its argument and nothing
// mutates the request or result it points to.
type State struct {
	Phase   Phase
	Input   string
	Kind    api.Kind
	View    api.ViewMode
	Pending *api.GenerationRequest
	Result  *api.GenerationResult
	// Notice is the inline validation message in Idle or the blocking
	// notification in Failed.
	Notice string
	Err    error
}

// New returns the Idle state for a fresh session.
func New(kind api.Kind, view api.ViewMode) State {
	if _, ok := api.ParseKind(string(kind)); !ok {
		kind = api.KindDocumentation
	}
	if _, ok := api.ParseViewMode(string(view)); !ok {
		view = api.ViewPreview
	}
	return State{Phase: PhaseIdle, Kind: kind, View: view}
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return s.Phase != PhaseSubmitting && strings.TrimSpace(s.Input) != ""
}

// Event is anything Reduce accepts.
type Event interface{ isEvent() }

type (
	InputChanged struct{ Text string }
	KindSelected struct{ Kind api.Kind }
	Submit       struct{}
	Normalized   struct{ Request api.GenerationRequest }
	InvalidInput struct{ Err error }
	Succeeded    struct{ Result api.GenerationResult }
	Failed       struct{ Err error }
	ToggleView   struct{}
	SetView      struct{ Mode api.ViewMode }
	Dismiss      struct{}
)

func (InputChanged) isEvent() {}
func (KindSelected) isEvent() {}
func (Submit) isEvent()       {}
func (Normalized) isEvent()   {}
func (InvalidInput) isEvent() {}
func (Succeeded) isEvent()    {}
func (Failed) isEvent()       {}
func (ToggleView) isEvent()   {}
func (SetView) isEvent()      {}
func (Dismiss) isEvent()      {}

// Reduce returns the state that follows s after ev. Events that do not apply
// to the current phase leave s unchanged.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case InputChanged:
		s.Input = e.Text
		if s.Phase == PhaseIdle {
			s.Notice, s.Err = "", nil
		}
	case KindSelected:
		if k, ok := api.ParseKind(string(e.Kind)); ok {
			s.Kind = k
		}
	case Submit:
		if !s.CanSubmit() {
			return s
		}
		s.Phase = PhaseSubmitting
		s.Pending = nil
		s.Result = nil
		s.Notice, s.Err = "", nil
	case Normalized:
		if s.Phase != PhaseSubmitting {
			return s
		}
		req := e.Request
		s.Pending = &req
	case InvalidInput:
		if s.Phase != PhaseSubmitting {
			return s
		}
		s.Phase = PhaseIdle
		s.Pending = nil
		s.Err = e.Err
		s.Notice = validationNotice(e.Err)
	case Succeeded:
		if s.Phase != PhaseSubmitting {
			return s
		}
		res := e.Result
		s.Phase = PhaseLoaded
		s.Pending = nil
		s.Result = &res
	case Failed:
		if s.Phase != PhaseSubmitting {
			return s
		}
		kind := s.Kind
		if s.Pending != nil {
			kind = s.Pending.Kind
		}
		s.Phase = PhaseFailed
		s.Pending = nil
		s.Result = nil
		s.Err = e.Err
		s.Notice = fmt.Sprintf("Failed to generate %s", kind)
	case ToggleView:
		s.View = s.View.Toggle()
	case SetView:
		if v, ok := api.ParseViewMode(string(e.Mode)); ok {
			s.View = v
		}
	case Dismiss:
		switch s.Phase {
		case PhaseFailed:
			s.Phase = PhaseIdle
			s.Notice, s.Err = "", nil
		case PhaseIdle:
			s.Notice, s.Err = "", nil
		}
	}
	return s
}

func validationNotice(err error) string {
	var ierr *api.InvalidURLError
	if errors.As(err, &ierr) && ierr.Reason != "" {
		return "Please enter a valid GitHub repository URL (" + ierr.Reason + ")"
	}
	return "Please enter a valid GitHub repository URL"
}

// Begin applies Submit and, if the submission was accepted, normalizes the
// input. It returns the request to dispatch, or nil when the submission was
// rejected or the input was invalid (in which case the state is back in Idle).
func Begin(s State) (State, *api.GenerationRequest) {
	next := Reduce(s, Submit{})
	if next.Phase != PhaseSubmitting || s.Phase == PhaseSubmitting {
		return next, nil
	}
	url, err := repourl.Normalize(next.Input)
	if err != nil {
		return Reduce(next, InvalidInput{Err: err}), nil
	}
	req := api.GenerationRequest{URL: url, Kind: next.Kind}
	next = Reduce(next, Normalized{Request: req})
	return next, &req
}

// Finish applies the outcome of the outstanding request.
func Finish(s State, res api.GenerationResult, err error) State {
	if err != nil {
		return Reduce(s, Failed{Err: err})
	}
	return Reduce(s, Succeeded{Result: res})
}
