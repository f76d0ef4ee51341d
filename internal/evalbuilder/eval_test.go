package evalbuilder

import (
	"testing"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

func TestGet(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "pesto", "material"} {
		var build, err = Get(key)
		if err != nil {
			t.Fatal(key, err)
		}
		if score := build().Evaluate(p); score != 0 {
			t.Error(key, score)
		}
	}
	if _, err := Get("nnue"); err == nil {
		t.Error("expected error")
	}
}
