package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Argument is one argument template token: either a Literal or a
// Conditional carrying its own rules. Exactly one of them is set.
type Argument struct {
	Literal     string
	Conditional *Conditional
}

// Conditional is an argument token included only when its rules hold.
type Conditional struct {
	Rules []Rule `json:"rules"`
	Value Value  `json:"value"`
}

// Value is either a single string or a sequence of strings.
type Value struct {
	Single   string
	Multiple []string
	IsList   bool
}

// LiteralArg returns a literal argument token.
func LiteralArg(s string) Argument {
	return Argument{Literal: s}
}

// ConditionalArg returns a rule-gated token with the given values. A single
// value produces the scalar form.
func ConditionalArg(rules []Rule, values ...string) Argument {
	v := Value{Multiple: values, IsList: true}
	if len(values) == 1 {
		v = Value{Single: values[0]}
	}
	return Argument{Conditional: &Conditional{Rules: rules, Value: v}}
}

// IsLiteral reports whether a is a plain string token.
func (a Argument) IsLiteral() bool {
	return a.Conditional == nil
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("argument: empty value")
	}
	switch data[0] {
	case '"':
		*a = Argument{}
		return json.Unmarshal(data, &a.Literal)
	case '{':
		var c Conditional
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*a = Argument{Conditional: &c}
		return nil
	}
	return fmt.Errorf("argument: unexpected json %.20q", data)
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Conditional == nil {
		return json.Marshal(a.Literal)
	}
	return json.Marshal(a.Conditional)
}

// Strings returns the value as a list in declaration order.
func (v Value) Strings() []string {
	if v.IsList {
		return v.Multiple
	}
	return []string{v.Single}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("argument value: empty value")
	}
	switch data[0] {
	case '"':
		*v = Value{}
		return json.Unmarshal(data, &v.Single)
	case '[':
		var ss []string
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*v = Value{Multiple: ss, IsList: true}
		return nil
	}
	return fmt.Errorf("argument value: unexpected json %.20q", data)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.Multiple)
	}
	return json.Marshal(v.Single)
}
