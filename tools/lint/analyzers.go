package main

import (
	"github.com/albertocavalcante/toolutil/tools/lint/lookpath"
	"github.com/kisielk/errcheck/errcheck"
	"go.uber.org/nilaway"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
)

// Analyzers is the full lint suite.
var Analyzers = []*analysis.Analyzer{
	// unchecked errors
	errcheck.Analyzer,
	// nil pointer dereferences
	nilaway.Analyzer,

	copylock.Analyzer,
	errorsas.Analyzer,
	lostcancel.Analyzer,
	printf.Analyzer,
	structtag.Analyzer,
	unmarshal.Analyzer,
	unusedresult.Analyzer,

	// program lookups must honor construction variables
	lookpath.Analyzer,
}
