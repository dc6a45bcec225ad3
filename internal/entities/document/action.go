package document

import (
	"encoding/json"
	"fmt"
)

// ActionType names the cost of taking an action
type ActionType string

const (
	ActionTypeAction   ActionType = "action"
	ActionTypeBonus    ActionType = "bonus"
	ActionTypeReaction ActionType = "reaction"
	ActionTypeFree     ActionType = "free"
	ActionTypeSpecial  ActionType = "special"
)

// ActionEffect is the tagged effect of an action
type ActionEffect interface {
	isActionEffect()
	Type() ActionType
}

// StandardAction takes the action of a turn
type StandardAction struct{}

func (StandardAction) isActionEffect()  {}
func (StandardAction) Type() ActionType { return ActionTypeAction }

// BonusAction takes the bonus action of a turn
type BonusAction struct{}

func (BonusAction) isActionEffect()  {}
func (BonusAction) Type() ActionType { return ActionTypeBonus }

// Reaction is taken in response to a trigger
type Reaction struct {
	Trigger string `json:"trigger,omitempty"`
}

func (Reaction) isActionEffect()  {}
func (Reaction) Type() ActionType { return ActionTypeReaction }

// FreeAction costs nothing
type FreeAction struct{}

func (FreeAction) isActionEffect()  {}
func (FreeAction) Type() ActionType { return ActionTypeFree }

// SpecialAction has a timing that fits no other variant
type SpecialAction struct {
	Timing string `json:"timing,omitempty"`
}

func (SpecialAction) isActionEffect()  {}
func (SpecialAction) Type() ActionType { return ActionTypeSpecial }

// Uses is a usage limit such as 3/day
type Uses struct {
	Count int    `json:"count"`
	Per   string `json:"per"`
}

// ActionData is the payload of an action
type ActionData struct {
	Effect  ActionEffect `json:"effect"`
	SeeAlso []Reference  `json:"see_also,omitempty"`
	Uses    *Uses        `json:"uses,omitempty"`
}

func (ActionData) isPluginData() {}

// Category implements PluginData
func (ActionData) Category() Category { return CategoryAction }

type effectJSON struct {
	Type    ActionType `json:"type"`
	Trigger string     `json:"trigger,omitempty"`
	Timing  string     `json:"timing,omitempty"`
}

type actionJSON struct {
	Effect  *effectJSON `json:"effect"`
	SeeAlso []Reference `json:"see_also,omitempty"`
	Uses    *Uses       `json:"uses,omitempty"`
}

// MarshalJSON writes the effect with its type tag
func (a ActionData) MarshalJSON() ([]byte, error) {
	out := actionJSON{SeeAlso: a.SeeAlso, Uses: a.Uses}
	if a.Effect != nil {
		out.Effect = &effectJSON{Type: a.Effect.Type()}
		switch e := a.Effect.(type) {
		case Reaction:
			out.Effect.Trigger = e.Trigger
		case SpecialAction:
			out.Effect.Timing = e.Timing
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the effect variant from its type tag
func (a *ActionData) UnmarshalJSON(data []byte) error {
	var in actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*a = ActionData{SeeAlso: in.SeeAlso, Uses: in.Uses}
	if in.Effect == nil {
		return nil
	}

	switch in.Effect.Type {
	case ActionTypeAction:
		a.Effect = StandardAction{}
	case ActionTypeBonus:
		a.Effect = BonusAction{}
	case ActionTypeReaction:
		a.Effect = Reaction{Trigger: in.Effect.Trigger}
	case ActionTypeFree:
		a.Effect = FreeAction{}
	case ActionTypeSpecial:
		a.Effect = SpecialAction{Timing: in.Effect.Timing}
	default:
		return fmt.Errorf("unknown action effect type %q", in.Effect.Type)
	}
	return nil
}
