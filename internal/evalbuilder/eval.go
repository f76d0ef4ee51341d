package evalbuilder

import (
	"fmt"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
	pesto "github.com/ChizhovVadim/CounterUci/pkg/eval"
	material "github.com/ChizhovVadim/CounterUci/pkg/eval/material"
)

// Evaluator is a static evaluation that can also explain itself for the eval command.
type Evaluator interface {
	Evaluate(p *common.Position) int
	Trace(p *common.Position) string
}

// Get returns a constructor for the evaluation named key. Every call builds
// a fresh instance, so each search thread gets its own.
func Get(key string) (func() Evaluator, error) {
	switch key {
	case "", "pesto":
		return func() Evaluator { return pesto.NewEvaluationService() }, nil
	case "material":
		return func() Evaluator { return material.NewEvaluationService() }, nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}
