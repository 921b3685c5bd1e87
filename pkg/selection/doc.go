// Package selection implements the asset selection query language.
//
// A selection string such as `+key:raw/orders* and not tag:pii` goes through four stages:
//
//	text -> tokens (Lexer) -> syntax tree (Parser) -> Selection (Build) -> key set (Evaluate)
//
// # Syntax
//
// Attribute predicates take the form `attr:value`:
//
//	key:a                 exact key match
//	key_substring:orders  key contains the text
//	tag:pii               tag presence
//	tag:team=billing      tag with value
//	owner:"team:billing"  owner equality, quoted since it contains ":"
//	group:marketing       group name
//	kind:python           sugar for tag:"dagster/kind/python"
//	code_location:etl     code location
//
// Unquoted values may contain letters, digits and `_ . / - @`. Double quoted values may
// contain anything except a double quote.
//
// Boolean operators, in decreasing precedence: `not`, `and`, `or`. Parentheses group.
//
// Traversal markers surround a predicate, group or function call: each leading `+` adds one
// level of upstream dependencies, each trailing `+` one level of downstream dependents.
// A single `*` on one side selects the whole upstream or downstream closure.
//
//	+key:a      a and its direct upstream dependencies
//	key:a++     a and two levels of downstream dependents
//	*key:a*     a with its complete upstream and downstream closure
//
// A bare `*` selects every asset. The functions `sinks(expr)` and `roots(expr)` keep the
// assets of expr without downstream or upstream neighbors inside expr.
//
// # Usage
//
//	sel, err := selection.ParseSelection("sinks(*key:a*)")
//	if err != nil {
//		fmt.Fprint(os.Stderr, selection.FormatDiagnostic(err, true))
//		return err
//	}
//
//	keys, err := selection.Evaluate(ctx, logger, sel, assetGraph)
package selection
