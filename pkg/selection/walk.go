package selection

// WalkExpressions traverses the syntax tree depth-first, calling fn for each node.
// The traversal continues to child nodes only if fn returns true.
func WalkExpressions(expr Expression, fn func(Expression) bool) {
	if expr == nil {
		return
	}

	if !fn(expr) {
		return
	}

	switch node := expr.(type) {
	case *GraphExpression:
		WalkExpressions(node.Target, fn)
	case *GroupExpression:
		WalkExpressions(node.Inner, fn)
	case *FunctionExpression:
		WalkExpressions(node.Arg, fn)
	case *PrefixExpression:
		WalkExpressions(node.Right, fn)
	case *InfixExpression:
		WalkExpressions(node.Left, fn)
		WalkExpressions(node.Right, fn)
	}
}

// WalkSelections traverses the selection depth-first, calling fn for each node.
// A sub-selection shared by several parents is visited once per parent.
func WalkSelections(sel Selection, fn func(Selection) bool) {
	if sel == nil {
		return
	}

	if !fn(sel) {
		return
	}

	switch node := sel.(type) {
	case *NotSelection:
		WalkSelections(node.Operand, fn)
	case *AndSelection:
		WalkSelections(node.Left, fn)
		WalkSelections(node.Right, fn)
	case *OrSelection:
		WalkSelections(node.Left, fn)
		WalkSelections(node.Right, fn)
	case *UpstreamSelection:
		WalkSelections(node.Child, fn)
	case *DownstreamSelection:
		WalkSelections(node.Child, fn)
	case *SinksSelection:
		WalkSelections(node.Child, fn)
	case *RootsSelection:
		WalkSelections(node.Child, fn)
	}
}
