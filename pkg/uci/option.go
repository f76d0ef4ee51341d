package uci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

type BoolOption struct {
	Name     string
	Value    *bool
	OnChange func(v bool)
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("%v: %w", opt.Name, err)
	}
	*opt.Value = v
	if opt.OnChange != nil {
		opt.OnChange(v)
	}
	return nil
}

type IntOption struct {
	Name     string
	Min      int
	Max      int
	Value    *int
	OnChange func(v int)
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%v: %w", opt.Name, err)
	}
	if v < opt.Min || v > opt.Max {
		return fmt.Errorf("%v: %w", opt.Name, errOutOfRange)
	}
	*opt.Value = v
	if opt.OnChange != nil {
		opt.OnChange(v)
	}
	return nil
}

// ComboOption accepts one of Vars, matched case-insensitively.
type ComboOption struct {
	Name  string
	Vars  []string
	Value *string
}

func (opt *ComboOption) UciName() string {
	return opt.Name
}

func (opt *ComboOption) UciString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "option name %v type combo default %v", opt.Name, *opt.Value)
	for _, v := range opt.Vars {
		sb.WriteString(" var ")
		sb.WriteString(v)
	}
	return sb.String()
}

func (opt *ComboOption) Set(s string) error {
	for _, v := range opt.Vars {
		if strings.EqualFold(v, s) {
			*opt.Value = v
			return nil
		}
	}
	return fmt.Errorf("%v: %w", opt.Name, errOutOfRange)
}

type ButtonOption struct {
	Name    string
	OnPress func()
}

func (opt *ButtonOption) UciName() string {
	return opt.Name
}

func (opt *ButtonOption) UciString() string {
	return fmt.Sprintf("option name %v type button", opt.Name)
}

func (opt *ButtonOption) Set(s string) error {
	if opt.OnPress != nil {
		opt.OnPress()
	}
	return nil
}

var errOutOfRange = errors.New("argument out of range")

// OptionTable keeps options in registration order. Names are case-sensitive.
type OptionTable struct {
	options []Option
	byName  map[string]Option
}

func NewOptionTable(options ...Option) *OptionTable {
	var t = &OptionTable{byName: make(map[string]Option)}
	for _, o := range options {
		t.Add(o)
	}
	return t
}

func (t *OptionTable) Add(o Option) {
	if _, found := t.byName[o.UciName()]; found {
		panic(fmt.Errorf("duplicate option %v", o.UciName()))
	}
	t.options = append(t.options, o)
	t.byName[o.UciName()] = o
}

func (t *OptionTable) Find(name string) (Option, bool) {
	var o, found = t.byName[name]
	return o, found
}

func (t *OptionTable) All() []Option {
	return t.options
}
