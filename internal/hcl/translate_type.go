// This file parses HCL type expressions (e.g. `directory`, `number`) into
// port types.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

type portType struct {
	ty        cty.Type
	directory bool
}

// typeExprToPortType converts an HCL type keyword into a cty.Type. The
// `directory` keyword is a string carrying a filesystem path.
func typeExprToPortType(ctx context.Context, expr hcl.Expression) (portType, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return portType{}, fmt.Errorf("missing type")
	}

	v, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok {
		return portType{}, fmt.Errorf("unsupported expression for type definition: %T", expr)
	}
	if len(v.Traversal) != 1 {
		return portType{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
	}

	rootName := v.Traversal.RootName()
	logger.Debug("Parsing port type keyword.", "keyword", rootName)
	switch rootName {
	case "directory":
		return portType{ty: cty.String, directory: true}, nil
	case "string":
		return portType{ty: cty.String}, nil
	case "number":
		return portType{ty: cty.Number}, nil
	case "bool":
		return portType{ty: cty.Bool}, nil
	default:
		return portType{}, fmt.Errorf("unknown port type %q", rootName)
	}
}
