package deadcode

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
)

// Discount rates by customer type. Unknown types pay full price.
var discountRates = map[string]float64{
	"premium": 0.2,
	"regular": 0.1,
}

// Pass returns the order unless it was cancelled.
func Pass(order *Order) *Order {
	if order.Status == "cancelled" {
		return nil
	}
	return order
}

// Double returns a new slice with every element doubled.
func Double(data []int) []int {
	result := make([]int, len(data))
	for i, v := range data {
		result[i] = v * 2
	}
	return result
}

// Discount applies the customer's discount rate to a positive amount.
func Discount(amount float64, userType string) float64 {
	if amount <= 0 {
		return 0
	}
	return amount * (1 - discountRates[userType])
}

// Divide returns a/b, or zero when b is zero.
func Divide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Users keeps a list of user names.
type Users struct {
	names []string
}

func (u *Users) Add(name string) string {
	u.names = append(u.names, name)
	return name
}

func (u *Users) Len() int { return len(u.names) }

func (u *Users) Clear() { u.names = u.names[:0] }

// FindUnused parses a Go source file and reports unexported functions and
// methods whose name is never mentioned outside their own declaration.
// Methods are reported as Type.method. The result is sorted.
func FindUnused(filename string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	uses := make(map[string]int)
	ast.Inspect(file, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			uses[id.Name]++
		}
		return true
	})

	var unused []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		name := fn.Name.Name
		if ast.IsExported(name) || name == "init" || name == "main" || name == "_" {
			continue
		}
		if uses[name] > 1 {
			continue
		}
		if recv := receiverName(fn); recv != "" {
			name = recv + "." + name
		}
		unused = append(unused, name)
	}
	sort.Strings(unused)
	return unused, nil
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}
