package client

import "github.com/quasar/pistonmeta/schema"

// Arguments holds the game and JVM argument lists. Elements are either
// literal strings or conditional arguments; there is no discriminator on
// the wire, so elements resolve by shape, string first.
type Arguments struct {
	Game []GameArgument
	JVM  []JVMArgument
}

// GameArgument is one element of the game argument list. Exactly one of
// Literal and Conditional is set.
type GameArgument struct {
	Literal     string
	Conditional *ConditionalGameArgument
}

// ConditionalGameArgument is an argument added only when its feature rules
// allow.
type ConditionalGameArgument struct {
	Rules []GameRule
	Value ArgumentValue
}

// JVMArgument is one element of the JVM argument list. Exactly one of
// Literal and Conditional is set.
type JVMArgument struct {
	Literal     string
	Conditional *ConditionalJVMArgument
}

// ConditionalJVMArgument is an argument added only when its OS rules allow.
type ConditionalJVMArgument struct {
	Rules []JVMRule
	Value ArgumentValue
}

// ArgumentValue is a single argument or a list of arguments.
type ArgumentValue struct {
	Single string
	List   []string
}

func (a *GameArgument) UnmarshalRaw(d *schema.Decoder, raw any) error {
	switch v := raw.(type) {
	case string:
		a.Literal = v
		return nil
	case map[string]any:
		var cond ConditionalGameArgument
		if err := d.Decode(raw, &cond); err != nil {
			return err
		}
		a.Conditional = &cond
		return nil
	}
	return d.Mismatch("string or conditional argument object", raw)
}

func (a GameArgument) MarshalRaw() any {
	if a.Conditional != nil {
		return a.Conditional
	}
	return a.Literal
}

func (a *JVMArgument) UnmarshalRaw(d *schema.Decoder, raw any) error {
	switch v := raw.(type) {
	case string:
		a.Literal = v
		return nil
	case map[string]any:
		var cond ConditionalJVMArgument
		if err := d.Decode(raw, &cond); err != nil {
			return err
		}
		a.Conditional = &cond
		return nil
	}
	return d.Mismatch("string or conditional argument object", raw)
}

func (a JVMArgument) MarshalRaw() any {
	if a.Conditional != nil {
		return a.Conditional
	}
	return a.Literal
}

func (v *ArgumentValue) UnmarshalRaw(d *schema.Decoder, raw any) error {
	switch x := raw.(type) {
	case string:
		v.Single = x
		return nil
	case []any:
		list := make([]string, len(x))
		for i, el := range x {
			s, ok := el.(string)
			if !ok {
				return d.Mismatch("string or array of strings", raw)
			}
			list[i] = s
		}
		v.List = list
		return nil
	}
	return d.Mismatch("string or array of strings", raw)
}

func (v ArgumentValue) MarshalRaw() any {
	if v.List != nil {
		return v.List
	}
	return v.Single
}

// Strings returns the value as a flat list.
func (v ArgumentValue) Strings() []string {
	if v.List != nil {
		return v.List
	}
	return []string{v.Single}
}

// ResolveGame flattens the game argument list for a feature set: literals
// are kept, conditional arguments are included when their rules allow.
func (a *Arguments) ResolveGame(features map[string]bool) []string {
	var out []string
	for _, arg := range a.Game {
		if arg.Conditional == nil {
			out = append(out, arg.Literal)
			continue
		}
		if gameRulesAllow(arg.Conditional.Rules, features) {
			out = append(out, arg.Conditional.Value.Strings()...)
		}
	}
	return out
}

// ResolveJVM flattens the JVM argument list for a platform.
func (a *Arguments) ResolveJVM(p Platform) []string {
	var out []string
	for _, arg := range a.JVM {
		if arg.Conditional == nil {
			out = append(out, arg.Literal)
			continue
		}
		if jvmRulesAllow(arg.Conditional.Rules, p) {
			out = append(out, arg.Conditional.Value.Strings()...)
		}
	}
	return out
}
