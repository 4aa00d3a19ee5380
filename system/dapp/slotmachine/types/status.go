// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Status 下注的状态
type Status int32

//Pending -> RandomnessRequested (可选) -> Revealed
const (
	StatusUnknown Status = iota
	StatusPending
	StatusRandomnessRequested
	StatusRevealed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusRandomnessRequested:
		return "RandomnessRequested"
	case StatusRevealed:
		return "Revealed"
	}
	return "Unknown"
}

//Event 引起状态变化的操作
type Event int32

//events
const (
	EventRequestRandomness Event = iota + 1
	EventReveal
	EventConsumeRandomness
)

func (e Event) String() string {
	switch e {
	case EventRequestRandomness:
		return "RequestRandomness"
	case EventReveal:
		return "Reveal"
	case EventConsumeRandomness:
		return "ConsumeRandomness"
	}
	return "Unknown"
}

type transition struct {
	next Status
	err  error
}

// 没有列出的组合都是非法的
var transitions = map[Status]map[Event]transition{
	StatusPending: {
		EventRequestRandomness: {next: StatusRandomnessRequested},
		EventReveal:            {next: StatusRevealed},
		EventConsumeRandomness: {err: ErrRandomnessNotRequested},
	},
	StatusRandomnessRequested: {
		EventRequestRandomness: {err: ErrRandomnessAlreadyRequested},
		EventReveal:            {next: StatusRevealed},
		EventConsumeRandomness: {next: StatusRevealed},
	},
	StatusRevealed: {
		EventRequestRandomness: {err: ErrAlreadyRevealed},
		EventReveal:            {err: ErrAlreadyRevealed},
		EventConsumeRandomness: {err: ErrAlreadyRevealed},
	},
}

//Next 状态转换
func (s Status) Next(e Event) (Status, error) {
	events, ok := transitions[s]
	if !ok {
		return s, ErrInvalidTransition
	}
	t, ok := events[e]
	if !ok {
		return s, ErrInvalidTransition
	}
	if t.err != nil {
		return s, t.err
	}
	return t.next, nil
}
