package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDemoArrayLength(t *testing.T) {
	a := generateDemoArray(500)
	assert.Equal(t, int64(500), a.Length())
}

func TestRunDemoKnownOperators(t *testing.T) {
	a := generateDemoArray(1000)
	for _, op := range []string{"sum", "range", "histogram"} {
		assert.NoError(t, runDemo(context.Background(), op, a))
	}
}

func TestRunDemoRejectsUnknownOperator(t *testing.T) {
	a := generateDemoArray(10)
	assert.Error(t, runDemo(context.Background(), "not-an-op", a))
}

func TestRunDemoPreciseSumRejectsFloatArray(t *testing.T) {
	a := generateDemoArray(10)
	assert.Error(t, runDemo(context.Background(), "precise-sum", a))
}
