package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNilPlayer         = errors.New("player is nil")
	ErrTableFull         = errors.New("the table is full")
	ErrAlreadySeated     = errors.New("player is already seated")
	ErrNotSeated         = errors.New("player is not seated at this table")
	ErrTableNotFull      = errors.New("all four seats must be filled to start")
	ErrSessionInProgress = errors.New("a session is already in progress")
	ErrNoSession         = errors.New("no session in progress")

	ErrTrickDone    = errors.New("the trick already has four cards")
	ErrTrickNotDone = errors.New("the trick is not finished")
	ErrCardInTrick  = errors.New("the card has already been played to this trick")
)

// Reason classifies a rejected call or play.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotSeated
	ReasonNotYourTurn
	ReasonWrongBidder
	ReasonContractEstablished
	ReasonInvalidCall
	ReasonIllegalDouble
	ReasonIllegalRedouble
	ReasonInsufficientBid
	ReasonBiddingNotDone
	ReasonDummyCannotPlay
	ReasonNoCards
	ReasonNotYourCard
	ReasonMustFollowSuit
	ReasonTrickFinished
)

var reasonNames = map[Reason]string{
	ReasonNotSeated:           "NOT_SEATED",
	ReasonNotYourTurn:         "NOT_YOUR_TURN",
	ReasonWrongBidder:         "WRONG_BIDDER",
	ReasonContractEstablished: "CONTRACT_ESTABLISHED",
	ReasonInvalidCall:         "INVALID_CALL",
	ReasonIllegalDouble:       "ILLEGAL_DOUBLE",
	ReasonIllegalRedouble:     "ILLEGAL_REDOUBLE",
	ReasonInsufficientBid:     "INSUFFICIENT_BID",
	ReasonBiddingNotDone:      "BIDDING_NOT_DONE",
	ReasonDummyCannotPlay:     "DUMMY_CANNOT_PLAY",
	ReasonNoCards:             "NO_CARDS",
	ReasonNotYourCard:         "NOT_YOUR_CARD",
	ReasonMustFollowSuit:      "MUST_FOLLOW_SUIT",
	ReasonTrickFinished:       "TRICK_FINISHED",
}

func (r Reason) String() string {
	if n, ok := reasonNames[r]; ok {
		return n
	}
	return "NONE"
}

// CallError is returned when the table rejects a call. Table state is unchanged.
type CallError struct {
	Reason  Reason
	Message string
}

func newCallError(reason Reason, format string, args ...interface{}) *CallError {
	return &CallError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func (e *CallError) Error() string {
	return e.Message
}

// PlayError is returned when the table rejects a card. Table state is unchanged.
type PlayError struct {
	Reason  Reason
	Message string
}

func newPlayError(reason Reason, format string, args ...interface{}) *PlayError {
	return &PlayError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func (e *PlayError) Error() string {
	return e.Message
}

// RejectionReason extracts the Reason from a CallError or PlayError.
func RejectionReason(err error) Reason {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Reason
	}
	var playErr *PlayError
	if errors.As(err, &playErr) {
		return playErr.Reason
	}
	return ReasonNone
}
