// Package lookpath reports program lookups that bypass construction variables.
//
// exec.LookPath and os.Getenv("PATH") search the host PATH directly, ignoring
// the execution environment and the priority and fallback tiers a tool is
// configured with. Code should go through env.Environment.WhereIs or a finder.
package lookpath

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyzer reports direct host PATH lookups.
var Analyzer = &analysis.Analyzer{
	Name:     "lookpath",
	Doc:      "report exec.LookPath and PATH reads that bypass the tool finder",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// allowed lists packages that implement the lookup themselves.
var allowed = map[string]bool{
	"github.com/albertocavalcante/toolutil/pkg/env": true,
}

func run(pass *analysis.Pass) (any, error) {
	if allowed[pass.Pkg.Path()] {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}

		switch fn.Pkg().Path() + "." + fn.Name() {
		case "os/exec.LookPath":
			pass.Reportf(call.Pos(), "exec.LookPath ignores the execution environment; use Environment.WhereIs")
		case "os.Getenv", "os.LookupEnv":
			if len(call.Args) == 1 && isPathKey(pass, call.Args[0]) {
				pass.Reportf(call.Pos(), "reading the host PATH directly; use Environment.ExecEnv")
			}
		}
	})
	return nil, nil
}

func isPathKey(pass *analysis.Pass, arg ast.Expr) bool {
	tv, ok := pass.TypesInfo.Types[arg]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return false
	}
	switch constant.StringVal(tv.Value) {
	case "PATH", "PATHEXT":
		return true
	}
	return false
}
