package uci

import (
	"context"
	"errors"
	"strings"
)

var errInvalidSetOption = errors.New("invalid setoption arguments")

// parseSetOption splits "name <NAME...> value <VALUE...>". Name and value
// tokens are joined with single spaces.
func parseSetOption(fields []string) (name, value string, err error) {
	if len(fields) == 0 || fields[0] != "name" {
		return "", "", errInvalidSetOption
	}
	var valueIndex = findIndexString(fields, "value")
	if valueIndex == -1 {
		name = strings.Join(fields[1:], " ")
	} else {
		name = strings.Join(fields[1:valueIndex], " ")
		value = strings.Join(fields[valueIndex+1:], " ")
	}
	if name == "" {
		return "", "", errInvalidSetOption
	}
	return name, value, nil
}

func (uci *Protocol) setOptionCommand(ctx context.Context, fields []string) error {
	var name, value, err = parseSetOption(fields)
	if err != nil {
		return err
	}
	var option, found = uci.options.Find(name)
	if !found {
		uci.out.Println("No such option: " + name)
		return nil
	}
	return option.Set(value)
}

var setAliases = map[string]string{
	"t":  "Threads",
	"h":  "Hash",
	"so": "Score Output",
	"p":  "Ponder",
	"oh": "Move Overhead",
}

const setHelp = `Usage: set <option> <value>
  set t <n>       Threads
  set h <mb>      Hash
  set so <mode>   Score Output (Centipawn, ScorPct-GUI, ScorPct)
  set p <bool>    Ponder
  set oh <ms>     Move Overhead
  set <name> <v>  any option whose name has no spaces`

// setCommand is the short form of setoption with confirmations.
func (uci *Protocol) setCommand(ctx context.Context, fields []string) error {
	if len(fields) == 0 || fields[0] == "option" {
		uci.out.Println(setHelp)
		return nil
	}
	var name = fields[0]
	if alias, found := setAliases[name]; found {
		name = alias
	}
	var option, found = uci.options.Find(name)
	if !found {
		uci.out.Println("No such option: " + name)
		return nil
	}
	var value = strings.Join(fields[1:], " ")
	if err := option.Set(value); err != nil {
		return err
	}
	uci.out.Printf("Confirmation: %v set to %v\n", option.UciName(), value)
	return nil
}
