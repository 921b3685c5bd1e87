package selection

import (
	"fmt"
	"slices"

	"github.com/gruntwork-io/assetsel/internal/errors"
)

// Parser builds a syntax tree from a token stream using recursive descent.
//
// Precedence from lowest to highest: or, and, not, traversal markers, atoms.
type Parser struct {
	tokens    []Token
	errors    []error
	curToken  Token
	peekToken Token
	next      int // index of the token after peekToken
}

// NewParser creates a new Parser over tokens, as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	p := &Parser{
		tokens: tokens,
		errors: []error{},
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse tokenizes and parses text into a syntax tree.
func Parse(text string) (Expression, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	expr, err := NewParser(tokens).ParseExpression()
	if err != nil {
		return nil, withQuery(err, text)
	}

	return expr, nil
}

// ParseExpression parses the whole token stream into a single expression.
func (p *Parser) ParseExpression() (Expression, error) {
	if p.curToken.Type == EOF {
		p.fail(ErrorCodeEmptyExpression, "expression", p.curToken, "empty selection")
		return nil, p.errors[0]
	}

	expr := p.parseOr()
	if expr == nil {
		return nil, p.firstError()
	}

	switch {
	case p.curToken.Type == EOF:
		return expr, nil
	case p.curToken.Type == RPAREN:
		p.fail(ErrorCodeUnmatchedClosingParen, "", p.curToken, "unmatched ')'")
	case p.startsOperand(p.curToken):
		p.fail(ErrorCodeMissingOperator, "'and' or 'or'", p.curToken, "expected 'and' or 'or' before %q", p.curToken.Literal)
	default:
		p.fail(ErrorCodeUnexpectedToken, "end of selection", p.curToken, "unexpected token after expression: %s", p.curToken.Literal)
	}

	return nil, p.firstError()
}

// Errors returns any parsing errors that occurred.
func (p *Parser) Errors() []error {
	return p.errors
}

// nextToken advances to the next token. Past the end of the stream it keeps yielding EOF.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken

	if p.next < len(p.tokens) {
		p.peekToken = p.tokens[p.next]
		p.next++

		return
	}

	p.peekToken = NewToken(EOF, "", p.endPosition())
}

func (p *Parser) endPosition() int {
	if len(p.tokens) == 0 {
		return 0
	}

	last := p.tokens[len(p.tokens)-1]
	if last.Type == EOF {
		return last.Position
	}

	return last.Position + last.Length()
}

// parseOr parses `and` expressions joined by `or`.
func (p *Parser) parseOr() Expression {
	left := p.parseAnd()

	for left != nil && p.curToken.Type == OR {
		left = p.parseInfixExpression(left, p.parseAnd)
	}

	return left
}

// parseAnd parses `not` expressions joined by `and`.
func (p *Parser) parseAnd() Expression {
	left := p.parseNot()

	for left != nil && p.curToken.Type == AND {
		left = p.parseInfixExpression(left, p.parseNot)
	}

	return left
}

// parseInfixExpression parses the operator at curToken and its right operand.
func (p *Parser) parseInfixExpression(left Expression, parseRight func() Expression) Expression {
	operator := p.curToken

	p.nextToken()

	if !p.startsOperand(p.curToken) {
		p.fail(ErrorCodeMissingOperand, "expression", p.curToken, "expected expression after '%s'", operator.Literal)
		return nil
	}

	right := parseRight()
	if right == nil {
		return nil
	}

	return &InfixExpression{
		Operator: operator.Literal,
		Left:     left,
		Right:    right,
	}
}

// parseNot parses a prefix `not` expression.
func (p *Parser) parseNot() Expression {
	if p.curToken.Type != NOT {
		return p.parseTraversal()
	}

	operator := p.curToken

	p.nextToken()

	if !p.startsOperand(p.curToken) {
		p.fail(ErrorCodeMissingOperand, "expression", p.curToken, "expected expression after '%s'", operator.Literal)
		return nil
	}

	right := p.parseNot()
	if right == nil {
		return nil
	}

	return &PrefixExpression{Operator: operator.Literal, Right: right}
}

// parseTraversal parses an atom with optional prefix and suffix depth markers.
func (p *Parser) parseTraversal() Expression {
	prefix := p.curToken

	upstreamDepth, includeUpstream, ok := p.parsePrefixMarker()
	if !ok {
		return nil
	}

	target := p.parseAtom()
	if target == nil {
		return nil
	}

	suffix := p.curToken

	downstreamDepth, includeDownstream, ok := p.parseSuffixMarker()
	if !ok {
		return nil
	}

	if !includeUpstream && !includeDownstream {
		return target
	}

	if _, isWildcard := target.(*WildcardExpression); isWildcard {
		markerTok := suffix
		if includeUpstream {
			markerTok = prefix
		}

		p.fail(ErrorCodeMalformedTraversal, "", markerTok, "traversal markers cannot be applied to '*'")

		return nil
	}

	return &GraphExpression{
		Target:            target,
		IncludeUpstream:   includeUpstream,
		UpstreamDepth:     upstreamDepth,
		IncludeDownstream: includeDownstream,
		DownstreamDepth:   downstreamDepth,
	}
}

// parsePrefixMarker consumes a leading run of '+' or a single '*' that precedes an atom.
// A '*' not followed by an atom is left in place to be parsed as the wildcard.
func (p *Parser) parsePrefixMarker() (Depth, bool, bool) {
	switch p.curToken.Type {
	case PLUS:
		depth := p.readPluses()

		switch p.curToken.Type {
		case STAR:
			p.fail(ErrorCodeMalformedTraversal, "", p.curToken, "'+' and '*' cannot be combined on the same side")
			return 0, false, false
		case EOF:
			p.fail(ErrorCodeMissingOperand, "expression", p.curToken, "expected expression after '+'")
			return 0, false, false
		}

		return depth, true, true
	case STAR:
		switch p.peekToken.Type {
		case IDENT, LPAREN:
			p.nextToken()
			return Unbounded, true, true
		case STAR:
			p.fail(ErrorCodeMalformedTraversal, "", p.peekToken, "only a single '*' is allowed on each side")
			return 0, false, false
		case PLUS:
			p.fail(ErrorCodeMalformedTraversal, "", p.peekToken, "'+' and '*' cannot be combined on the same side")
			return 0, false, false
		}
	}

	return 0, false, true
}

// parseSuffixMarker consumes a trailing run of '+' or a single '*'.
func (p *Parser) parseSuffixMarker() (Depth, bool, bool) {
	switch p.curToken.Type {
	case PLUS:
		depth := p.readPluses()

		if p.curToken.Type == STAR {
			p.fail(ErrorCodeMalformedTraversal, "", p.curToken, "'+' and '*' cannot be combined on the same side")
			return 0, false, false
		}

		return depth, true, true
	case STAR:
		p.nextToken()

		switch p.curToken.Type {
		case STAR:
			p.fail(ErrorCodeMalformedTraversal, "", p.curToken, "only a single '*' is allowed on each side")
			return 0, false, false
		case PLUS:
			p.fail(ErrorCodeMalformedTraversal, "", p.curToken, "'+' and '*' cannot be combined on the same side")
			return 0, false, false
		}

		return Unbounded, true, true
	}

	return 0, false, true
}

func (p *Parser) readPluses() Depth {
	var depth Depth

	for p.curToken.Type == PLUS {
		depth++

		p.nextToken()
	}

	return depth
}

// parseAtom parses a wildcard, a group, a function call or an attribute predicate.
func (p *Parser) parseAtom() Expression {
	switch p.curToken.Type {
	case STAR:
		p.nextToken()
		return &WildcardExpression{}
	case LPAREN:
		return p.parseGroup()
	case IDENT:
		switch p.peekToken.Type {
		case LPAREN:
			return p.parseFunction()
		case COLON:
			return p.parseAttribute()
		}

		return p.failBareIdent()
	case QUOTED:
		p.fail(ErrorCodeMissingAttribute, "attribute", p.curToken, "quoted value %q must follow an attribute", p.curToken.Literal)
	case EOF:
		p.fail(ErrorCodeUnexpectedEOF, "expression", p.curToken, "unexpected end of selection")
	case RPAREN:
		p.fail(ErrorCodeUnmatchedClosingParen, "expression", p.curToken, "unmatched ')'")
	case AND, OR:
		p.fail(ErrorCodeMissingOperand, "expression", p.curToken, "expected expression before '%s'", p.curToken.Literal)
	case ILLEGAL, NOT, COLON, EQUAL, PLUS:
		p.fail(ErrorCodeUnexpectedToken, "expression", p.curToken, "unexpected token: %s", p.curToken.Literal)
	}

	return nil
}

// parseGroup parses "( expr )".
func (p *Parser) parseGroup() Expression {
	open := p.curToken

	p.nextToken()

	if p.curToken.Type == RPAREN {
		p.fail(ErrorCodeEmptyExpression, "expression", p.curToken, "empty parentheses")
		return nil
	}

	inner := p.parseOr()
	if inner == nil {
		return nil
	}

	if !p.expectClosingParen(open) {
		return nil
	}

	return &GroupExpression{Inner: inner}
}

// parseFunction parses "name( expr )".
func (p *Parser) parseFunction() Expression {
	name := p.curToken

	if !slices.Contains(Functions, name.Literal) {
		p.fail(ErrorCodeUnknownFunction, "function", name, "unknown function '%s'", name.Literal)
		return nil
	}

	p.nextToken()

	open := p.curToken

	p.nextToken()

	if p.curToken.Type == RPAREN {
		p.fail(ErrorCodeMissingOperand, "expression", p.curToken, "function '%s' requires an argument", name.Literal)
		return nil
	}

	arg := p.parseOr()
	if arg == nil {
		return nil
	}

	if !p.expectClosingParen(open) {
		return nil
	}

	return &FunctionExpression{Name: name.Literal, Arg: arg}
}

// parseAttribute parses "attr:value" and "tag:key=value".
func (p *Parser) parseAttribute() Expression {
	attr := p.curToken

	if !slices.Contains(Attributes, attr.Literal) {
		p.fail(ErrorCodeUnknownAttribute, "attribute", attr, "unknown attribute '%s'", attr.Literal)
		return nil
	}

	p.nextToken()
	p.nextToken()

	if !p.curToken.isValue() {
		p.fail(ErrorCodeMissingValue, "value", p.curToken, "expected value after '%s:'", attr.Literal)
		return nil
	}

	expr := &AttributeExpression{Attribute: attr.Literal, Value: p.curToken.Literal}

	p.nextToken()

	if p.curToken.Type != EQUAL {
		return expr
	}

	if attr.Literal != AttributeTag {
		p.fail(ErrorCodeUnexpectedTagValue, "", p.curToken, "'=value' is only supported by the tag attribute")
		return nil
	}

	p.nextToken()

	if !p.curToken.isValue() {
		p.fail(ErrorCodeMissingValue, "value", p.curToken, "expected tag value after '='")
		return nil
	}

	expr.TagValue = p.curToken.Literal
	expr.HasTagValue = true

	p.nextToken()

	return expr
}

// failBareIdent reports an identifier that is neither followed by ':' nor '('.
func (p *Parser) failBareIdent() Expression {
	ident := p.curToken

	switch {
	case slices.Contains(Functions, ident.Literal):
		p.fail(ErrorCodeMissingArgument, "'('", ident, "expected '(' after function '%s'", ident.Literal)
	case slices.Contains(Attributes, ident.Literal):
		p.fail(ErrorCodeMissingValue, "':'", ident, "expected ':' and a value after attribute '%s'", ident.Literal)
	default:
		p.fail(ErrorCodeMissingAttribute, "attribute", ident, "expected an attribute before '%s'", ident.Literal)
	}

	return nil
}

// expectClosingParen consumes ')' or reports the unclosed open paren.
func (p *Parser) expectClosingParen(open Token) bool {
	if p.curToken.Type == RPAREN {
		p.nextToken()
		return true
	}

	if p.startsOperand(p.curToken) {
		p.fail(ErrorCodeMissingOperator, "'and', 'or' or ')'", p.curToken, "expected 'and', 'or' or ')' before %q", p.curToken.Literal)
		return false
	}

	p.fail(ErrorCodeMissingClosingParen, "')'", open, "expected ')' to close '('")

	return false
}

// startsOperand reports whether tok can begin an expression.
func (p *Parser) startsOperand(tok Token) bool {
	switch tok.Type {
	case IDENT, QUOTED, LPAREN, STAR, PLUS, NOT:
		return true
	}

	return false
}

// fail records a parse error at tok.
func (p *Parser) fail(code ErrorCode, expected string, tok Token, format string, args ...any) {
	parseErr := newParseError(code, fmt.Sprintf(format, args...), tok)
	parseErr.Expected = expected

	p.errors = append(p.errors, errors.New(parseErr))
}

func (p *Parser) firstError() error {
	if len(p.errors) > 0 {
		return p.errors[0]
	}

	return NewParseError(ErrorCodeUnknown, "failed to parse selection", p.curToken)
}
