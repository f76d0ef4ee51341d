package uci

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSetOption(t *testing.T) {
	var tests = []struct {
		input string
		name  string
		value string
		err   bool
	}{
		{"name Hash value 128", "Hash", "128", false},
		{"name Move Overhead value 50", "Move Overhead", "50", false},
		{"name Clear Hash", "Clear Hash", "", false},
		{"name  Score   Output value ScorPct", "Score Output", "ScorPct", false},
		{"name SyzygyPath value C:\\tb  wdl", "SyzygyPath", "C:\\tb wdl", false},
		{"", "", "", true},
		{"Hash value 1", "", "", true},
		{"name value 1", "", "", true},
	}
	for _, test := range tests {
		var name, value, err = parseSetOption(strings.Fields(test.input))
		if (err != nil) != test.err || name != test.name || value != test.value {
			t.Errorf("%q: got %q %q %v", test.input, name, value, err)
		}
	}
}

func TestSetOption(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, strings.Join([]string{
		"setoption name Hash value 128",
		"setoption name Score Output value scorpct-gui",
		"setoption name Clean_Search value true",
	}, "\n"))
	if out != "" {
		t.Error(out)
	}
	if s.hash != 128 || s.uci.scoreOutput != "ScorPct-GUI" || !s.uci.cleanSearch {
		t.Error(s.hash, s.uci.scoreOutput, s.uci.cleanSearch)
	}
}

func TestSetOptionErrors(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, strings.Join([]string{
		"setoption name Hash value 0",
		"setoption name Hash value big",
		"setoption name hash value 64",
		"setoption name Score Output value Pawns",
		"setoption Hash 64",
	}, "\n"))
	if s.hash != 16 || s.uci.scoreOutput != "Centipawn" {
		t.Error(s.hash, s.uci.scoreOutput)
	}
	if !strings.Contains(out, "No such option: hash\n") {
		t.Error(out)
	}
	if strings.Count(out, "info string") != 4 {
		t.Error(out)
	}
}

func TestSetCommand(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	s.uci.EnableShortcuts()
	var out = s.run(t, "set h 32\ns Clean_Search true\nset Nothing 1\nset\n")
	for _, want := range []string{
		"Confirmation: Hash set to 32\n",
		"Confirmation: Clean_Search set to true\n",
		"No such option: Nothing\n",
		"Usage: set <option> <value>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%v", want, out)
		}
	}
	if s.hash != 32 || !s.uci.cleanSearch {
		t.Error(s.hash, s.uci.cleanSearch)
	}
}

func TestOptionUciString(t *testing.T) {
	var b = true
	var i = 30
	var combo = "Fast"
	var tests = []struct {
		option Option
		want   string
	}{
		{&BoolOption{Name: "Ponder", Value: &b}, "option name Ponder type check default true"},
		{&IntOption{Name: "Move Overhead", Min: 0, Max: 5000, Value: &i}, "option name Move Overhead type spin default 30 min 0 max 5000"},
		{&ComboOption{Name: "Style", Vars: []string{"Fast", "Slow"}, Value: &combo}, "option name Style type combo default Fast var Fast var Slow"},
		{&ButtonOption{Name: "Clear Hash"}, "option name Clear Hash type button"},
	}
	for _, test := range tests {
		if got := test.option.UciString(); got != test.want {
			t.Error(got)
		}
	}
}

func TestOptionSet(t *testing.T) {
	var changed []int
	var i = 1
	var opt = &IntOption{Name: "Threads", Min: 1, Max: 4, Value: &i,
		OnChange: func(v int) { changed = append(changed, v) }}
	if err := opt.Set("5"); !errors.Is(err, errOutOfRange) {
		t.Error(err)
	}
	if err := opt.Set("3"); err != nil || i != 3 {
		t.Error(err, i)
	}
	if len(changed) != 1 || changed[0] != 3 {
		t.Error(changed)
	}

	var pressed int
	var button = &ButtonOption{Name: "Clear Hash", OnPress: func() { pressed++ }}
	if err := button.Set(""); err != nil || pressed != 1 {
		t.Error(err, pressed)
	}

	var b bool
	var bo = &BoolOption{Name: "Ponder", Value: &b}
	if err := bo.Set("maybe"); err == nil || b {
		t.Error(err, b)
	}
}

func TestOptionTable(t *testing.T) {
	var a, b bool
	var table = NewOptionTable(&BoolOption{Name: "B", Value: &b}, &BoolOption{Name: "A", Value: &a})
	var all = table.All()
	if len(all) != 2 || all[0].UciName() != "B" || all[1].UciName() != "A" {
		t.Error(all)
	}
	if _, found := table.Find("a"); found {
		t.Error("lookup must be case-sensitive")
	}
	if _, found := table.Find("A"); !found {
		t.Error("A not found")
	}
	defer func() {
		if recover() == nil {
			t.Error("duplicate option accepted")
		}
	}()
	table.Add(&BoolOption{Name: "A", Value: &a})
}
