// Package dialogue runs the three-question recommendation interview.
//
// The machine is a pure function over State: callers load the state for a
// conversation, Step it with the classified intent, act on the returned
// Action and persist the new state.
//
//	Idle ─Recommend→ AwaitLate ─answer→ AwaitParking ─answer→ AwaitContact ─answer→ Done
//
// Done is kept for one more turn: another answer then is an overflow, and any
// other intent settles it back to Idle before being handled. Cancel from any
// stage, and an answer arriving when all three slots are already filled,
// reset to Idle.
package dialogue

import (
	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/avvvet/hangoutbot/internal/venue"
)

// MaxAnswers is the number of slots in the interview.
const MaxAnswers = 3

// Stage is the pending question of a conversation.
type Stage int

const (
	Idle Stage = iota
	AwaitLate
	AwaitParking
	AwaitContact
	Done
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitLate:
		return "await_late"
	case AwaitParking:
		return "await_parking"
	case AwaitContact:
		return "await_contact"
	case Done:
		return "done"
	default:
		return "invalid"
	}
}

// Action tells the caller what to say after a step.
type Action int

const (
	// ActionNone leaves the reply to the intent itself.
	ActionNone Action = iota
	ActionAskLate
	ActionAskParking
	ActionAskContact
	// ActionQuery means all answers are in; run the venue filter.
	ActionQuery
	ActionCancelled
	ActionOverflow
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAskLate:
		return "ask_late"
	case ActionAskParking:
		return "ask_parking"
	case ActionAskContact:
		return "ask_contact"
	case ActionQuery:
		return "query"
	case ActionCancelled:
		return "cancelled"
	case ActionOverflow:
		return "overflow"
	default:
		return "invalid"
	}
}

// State is one conversation's interview progress.
type State struct {
	Stage   Stage            `json:"stage"`
	Answers []venue.TriState `json:"answers,omitempty"`
}

// InProgress reports whether a dialogue is running or has just finished.
func (s State) InProgress() bool {
	return s.Stage != Idle
}

// Preferences returns the collected answers as late, parking and contact
// preferences. Missing answers are Unknown.
func (s State) Preferences() (late, parking, contact venue.TriState) {
	get := func(i int) venue.TriState {
		if i < len(s.Answers) {
			return s.Answers[i]
		}
		return venue.Unknown
	}
	return get(0), get(1), get(2)
}

// Valid checks the answers-per-stage invariant.
func (s State) Valid() bool {
	switch s.Stage {
	case Idle, AwaitLate:
		return len(s.Answers) == 0
	case AwaitParking, AwaitContact, Done:
		return len(s.Answers) == int(s.Stage)-1
	default:
		return false
	}
}

// AnswerFor maps an answering intent to its tri-state value.
func AnswerFor(tag corpus.Tag) venue.TriState {
	switch tag {
	case corpus.Confirm:
		return venue.Yes
	case corpus.Deny:
		return venue.No
	default:
		return venue.Unknown
	}
}

// Step advances state with one classified intent.
func Step(state State, intent corpus.Tag) (State, Action) {
	switch {
	case intent == corpus.Cancel:
		return State{Stage: Idle}, ActionCancelled

	case intent == corpus.Recommend:
		return State{Stage: AwaitLate}, ActionAskLate

	case intent.IsAnswer():
		return answer(state, AnswerFor(intent))
	}

	return Settle(state), ActionNone
}

func answer(state State, value venue.TriState) (State, Action) {
	if state.Stage == Idle {
		return state, ActionNone
	}
	if state.Stage == Done || len(state.Answers) >= MaxAnswers || !state.Valid() {
		return State{Stage: Idle}, ActionOverflow
	}

	answers := make([]venue.TriState, len(state.Answers), len(state.Answers)+1)
	copy(answers, state.Answers)
	answers = append(answers, value)

	switch state.Stage {
	case AwaitLate:
		return State{Stage: AwaitParking, Answers: answers}, ActionAskParking
	case AwaitParking:
		return State{Stage: AwaitContact, Answers: answers}, ActionAskContact
	default:
		return State{Stage: Done, Answers: answers}, ActionQuery
	}
}

// Settle collapses a finished interview back to Idle.
func Settle(state State) State {
	if state.Stage == Done {
		return State{Stage: Idle}
	}
	return state
}
