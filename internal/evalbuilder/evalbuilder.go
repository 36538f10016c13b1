package evalbuilder

import (
	"fmt"

	material "github.com/chers/chers/pkg/eval/material"
	pst "github.com/chers/chers/pkg/eval/pst"
)

// Names lists the evaluations Get knows. The first one is the default.
var Names = []string{"pst", "material"}

// Get returns a constructor for the named evaluation.
// Every search thread calls it to get an evaluator of its own.
func Get(key string) (func() interface{}, error) {
	switch key {
	case "", "pst":
		return func() interface{} { return pst.NewEvaluationService() }, nil
	case "material":
		return func() interface{} { return material.NewEvaluationService() }, nil
	}
	return nil, fmt.Errorf("bad eval %q, want one of %v", key, Names)
}
