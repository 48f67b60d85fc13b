package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/holdem-arena/poker"
)

// RecordKind discriminates the entries of the recorded action stream.
type RecordKind string

const (
	RecordGameStart     RecordKind = "game_start"
	RecordPlayerSit     RecordKind = "player_sit"
	RecordRoundAdvance  RecordKind = "round_advance"
	RecordDealStarting  RecordKind = "deal_starting"
	RecordForcedBet     RecordKind = "forced_bet"
	RecordPlayerAction  RecordKind = "player_action"
	RecordFailedAction  RecordKind = "failed_action"
	RecordDealCommunity RecordKind = "deal_community"
	RecordAward         RecordKind = "award"
	RecordGameEnd       RecordKind = "game_end"
)

// Record is one entry of the totally ordered action stream a simulation emits
// to its historians. Every observable state change has a record.
type Record interface {
	Kind() RecordKind
	Timestamp() time.Time
}

// GameStart opens the stream for one hand.
type GameStart struct {
	Time       time.Time `json:"time"`
	NumPlayers int       `json:"num_players"`
	SmallBlind int       `json:"small_blind"`
	BigBlind   int       `json:"big_blind"`
	Ante       int       `json:"ante"`
}

func (r GameStart) Kind() RecordKind     { return RecordGameStart }
func (r GameStart) Timestamp() time.Time { return r.Time }

// PlayerSit announces a live seat and its stack at hand start.
type PlayerSit struct {
	Time  time.Time `json:"time"`
	Seat  int       `json:"seat"`
	Stack int       `json:"stack"`
}

func (r PlayerSit) Kind() RecordKind     { return RecordPlayerSit }
func (r PlayerSit) Timestamp() time.Time { return r.Time }

// RoundAdvance marks a round transition.
type RoundAdvance struct {
	Time  time.Time `json:"time"`
	Round Round     `json:"round"`
}

func (r RoundAdvance) Kind() RecordKind     { return RecordRoundAdvance }
func (r RoundAdvance) Timestamp() time.Time { return r.Time }

// DealStarting reports hole cards dealt to one seat.
type DealStarting struct {
	Time  time.Time  `json:"time"`
	Seat  int        `json:"seat"`
	Cards poker.Hand `json:"cards"`
}

func (r DealStarting) Kind() RecordKind     { return RecordDealStarting }
func (r DealStarting) Timestamp() time.Time { return r.Time }

// ForcedBet reports an ante or blind posting, possibly short when the seat is
// all-in.
type ForcedBet struct {
	Time   time.Time     `json:"time"`
	Bet    ForcedBetKind `json:"bet"`
	Seat   int           `json:"seat"`
	Amount int           `json:"amount"`
}

func (r ForcedBet) Kind() RecordKind     { return RecordForcedBet }
func (r ForcedBet) Timestamp() time.Time { return r.Time }

// PlayerAction reports the action applied for a seat. Legal is false when the
// agent's intended action was rejected and a FailedAction record precedes this
// one.
type PlayerAction struct {
	Time   time.Time `json:"time"`
	Seat   int       `json:"seat"`
	Action Action    `json:"action"`
	Legal  bool      `json:"legal"`
}

func (r PlayerAction) Kind() RecordKind     { return RecordPlayerAction }
func (r PlayerAction) Timestamp() time.Time { return r.Time }

// FailedAction reports an illegal agent decision and what the engine applied
// in its place.
type FailedAction struct {
	Time     time.Time `json:"time"`
	Seat     int       `json:"seat"`
	Intended Action    `json:"intended"`
	Applied  Action    `json:"applied"`
}

func (r FailedAction) Kind() RecordKind     { return RecordFailedAction }
func (r FailedAction) Timestamp() time.Time { return r.Time }

// DealCommunity reports community cards dealt for a round.
type DealCommunity struct {
	Time  time.Time  `json:"time"`
	Round Round      `json:"round"`
	Cards poker.Hand `json:"cards"`
}

func (r DealCommunity) Kind() RecordKind     { return RecordDealCommunity }
func (r DealCommunity) Timestamp() time.Time { return r.Time }

// Award reports chips pushed to a winning seat. Rank is nil when the pot was
// won without showdown.
type Award struct {
	Time   time.Time       `json:"time"`
	Seat   int             `json:"seat"`
	Amount int             `json:"amount"`
	Rank   *poker.HandRank `json:"rank,omitempty"`
}

func (r Award) Kind() RecordKind     { return RecordAward }
func (r Award) Timestamp() time.Time { return r.Time }

// GameEnd closes the stream for one hand.
type GameEnd struct {
	Time   time.Time `json:"time"`
	Stacks []int     `json:"stacks"`
}

func (r GameEnd) Kind() RecordKind     { return RecordGameEnd }
func (r GameEnd) Timestamp() time.Time { return r.Time }

type recordEnvelope struct {
	Kind RecordKind      `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalRecord encodes a record with its kind tag so streams survive
// round-trips through persistence and RPC.
func MarshalRecord(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordEnvelope{Kind: r.Kind(), Data: data})
}

// UnmarshalRecord decodes a record previously encoded by MarshalRecord.
func UnmarshalRecord(data []byte) (Record, error) {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var target Record
	switch env.Kind {
	case RecordGameStart:
		target = &GameStart{}
	case RecordPlayerSit:
		target = &PlayerSit{}
	case RecordRoundAdvance:
		target = &RoundAdvance{}
	case RecordDealStarting:
		target = &DealStarting{}
	case RecordForcedBet:
		target = &ForcedBet{}
	case RecordPlayerAction:
		target = &PlayerAction{}
	case RecordFailedAction:
		target = &FailedAction{}
	case RecordDealCommunity:
		target = &DealCommunity{}
	case RecordAward:
		target = &Award{}
	case RecordGameEnd:
		target = &GameEnd{}
	default:
		return nil, fmt.Errorf("unknown record kind %q", env.Kind)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return nil, err
	}
	return deref(target), nil
}

func deref(r Record) Record {
	switch v := r.(type) {
	case *GameStart:
		return *v
	case *PlayerSit:
		return *v
	case *RoundAdvance:
		return *v
	case *DealStarting:
		return *v
	case *ForcedBet:
		return *v
	case *PlayerAction:
		return *v
	case *FailedAction:
		return *v
	case *DealCommunity:
		return *v
	case *Award:
		return *v
	case *GameEnd:
		return *v
	default:
		return r
	}
}
