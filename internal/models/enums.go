package models

import (
	"encoding/json"
	"fmt"
)

// EnumError reports a value outside one of the closed enum sets below.
type EnumError struct {
	Type  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Type, e.Value)
}

type BoardStatus string

const (
	BoardStatusDraft  BoardStatus = "DRAFT"
	BoardStatusActive BoardStatus = "ACTIVE"
	BoardStatusClosed BoardStatus = "CLOSED"
)

// ParseBoardStatus returns the BoardStatus named by s.
func ParseBoardStatus(s string) (BoardStatus, error) {
	switch BoardStatus(s) {
	case BoardStatusDraft, BoardStatusActive, BoardStatusClosed:
		return BoardStatus(s), nil
	}
	return "", &EnumError{Type: "board status", Value: s}
}

func (s *BoardStatus) UnmarshalJSON(data []byte) error {
	raw, skip, err := decodeEnumString(data)
	if err != nil || skip {
		return err
	}
	parsed, err := ParseBoardStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type CardType string

const (
	CardTypeStart      CardType = "START"
	CardTypeStop       CardType = "STOP"
	CardTypeContinue   CardType = "CONTINUE"
	CardTypeActionItem CardType = "ACTION_ITEM"
)

// ParseCardType returns the CardType named by s.
func ParseCardType(s string) (CardType, error) {
	switch CardType(s) {
	case CardTypeStart, CardTypeStop, CardTypeContinue, CardTypeActionItem:
		return CardType(s), nil
	}
	return "", &EnumError{Type: "card type", Value: s}
}

func (t *CardType) UnmarshalJSON(data []byte) error {
	raw, skip, err := decodeEnumString(data)
	if err != nil || skip {
		return err
	}
	parsed, err := ParseCardType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type ParticipantRole string

const (
	RoleOwner       ParticipantRole = "OWNER"
	RoleFacilitator ParticipantRole = "FACILITATOR"
	RoleMember      ParticipantRole = "MEMBER"
)

// ParseParticipantRole returns the ParticipantRole named by s.
func ParseParticipantRole(s string) (ParticipantRole, error) {
	switch ParticipantRole(s) {
	case RoleOwner, RoleFacilitator, RoleMember:
		return ParticipantRole(s), nil
	}
	return "", &EnumError{Type: "participant role", Value: s}
}

func (r *ParticipantRole) UnmarshalJSON(data []byte) error {
	raw, skip, err := decodeEnumString(data)
	if err != nil || skip {
		return err
	}
	parsed, err := ParseParticipantRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// decodeEnumString unwraps a JSON string. null and "" mean "not provided"
// and leave the receiver untouched.
func decodeEnumString(data []byte) (string, bool, error) {
	if string(data) == "null" {
		return "", true, nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", false, err
	}
	return raw, raw == "", nil
}
