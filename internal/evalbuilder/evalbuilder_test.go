package evalbuilder

import (
	"testing"

	"github.com/chers/chers/pkg/common"
)

type evaluator interface {
	Evaluate(p *common.Position) int
}

func TestGet(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	for _, name := range append([]string{""}, Names...) {
		var builder, err = Get(name)
		if err != nil {
			t.Fatal(name, err)
		}
		var e, ok = builder().(evaluator)
		if !ok {
			t.Fatal(name, "not an evaluator")
		}
		if v := e.Evaluate(&p); v != 0 {
			t.Error(name, v)
		}
	}
	if _, err := Get("nnue"); err == nil {
		t.Error("unknown eval accepted")
	}
}
