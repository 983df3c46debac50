// Package filter provides AIP-160 filter expression parsing for battle
// history, translated either to SQL or to an in-memory predicate.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

// BattleDeclarations returns the field declarations for battle filtering.
func BattleDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("mode", filtering.TypeString),
		filtering.DeclareIdent("winner_id", filtering.TypeString),
		filtering.DeclareIdent("result", filtering.TypeString),
		filtering.DeclareIdent("ts", filtering.TypeTimestamp),
	)
}

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "mode = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// BattleFields is the filterable view of a battle record.
type BattleFields struct {
	Mode      string
	WinnerID  string
	Result    string
	Timestamp time.Time
}

// Battle is a parsed battle filter. The zero value matches everything.
type Battle struct {
	SQL   SQLCondition
	match func(BattleFields) bool
}

// Empty reports whether the filter has no conditions.
func (b Battle) Empty() bool {
	return b.match == nil
}

// Match evaluates the filter against a record.
func (b Battle) Match(fields BattleFields) bool {
	if b.match == nil {
		return true
	}
	return b.match(fields)
}

// fieldMapping maps filter field names to SQL column names.
var fieldMapping = map[string]string{
	"mode":      "mode",
	"winner_id": "winner_id",
	"result":    "outcome",
	"ts":        "created_at",
}

// ParseBattleFilter parses an AIP-160 filter expression over battle fields.
// An empty string yields an empty filter.
func ParseBattleFilter(filterStr string) (Battle, error) {
	if strings.TrimSpace(filterStr) == "" {
		return Battle{}, nil
	}

	decls, err := BattleDeclarations()
	if err != nil {
		return Battle{}, fmt.Errorf("create declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return Battle{}, apperrors.InvalidInput("filter", err.Error())
	}

	node, err := translateExpr(parsed.CheckedExpr.GetExpr())
	if err != nil {
		return Battle{}, apperrors.InvalidInput("filter", err.Error())
	}
	return Battle{SQL: node.sql, match: node.match}, nil
}

type node struct {
	sql   SQLCondition
	match func(BattleFields) bool
}

func translateExpr(e *expr.Expr) (node, error) {
	if e == nil {
		return node{}, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return node{}, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func translateCall(call *expr.Expr_Call) (node, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateLogical(call.Args, "AND")
	case "_||_", "OR":
		return translateLogical(call.Args, "OR")
	case "NOT", "_!_":
		return translateNot(call.Args)
	case "_==_", "=":
		return translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return translateComparison(call.Args, "!=")
	case "_<_", "<":
		return translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return translateComparison(call.Args, "<=")
	case "_>_", ">":
		return translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return translateComparison(call.Args, ">=")
	default:
		return node{}, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func translateLogical(args []*expr.Expr, op string) (node, error) {
	if len(args) != 2 {
		return node{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := translateExpr(args[0])
	if err != nil {
		return node{}, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return node{}, err
	}

	params := append(append([]any{}, left.sql.Params...), right.sql.Params...)
	out := node{sql: SQLCondition{
		Clause: fmt.Sprintf("(%s %s %s)", left.sql.Clause, op, right.sql.Clause),
		Params: params,
	}}
	if op == "AND" {
		out.match = func(f BattleFields) bool { return left.match(f) && right.match(f) }
	} else {
		out.match = func(f BattleFields) bool { return left.match(f) || right.match(f) }
	}
	return out, nil
}

func translateNot(args []*expr.Expr) (node, error) {
	if len(args) != 1 {
		return node{}, fmt.Errorf("NOT requires 1 argument")
	}
	inner, err := translateExpr(args[0])
	if err != nil {
		return node{}, err
	}
	return node{
		sql:   SQLCondition{Clause: fmt.Sprintf("NOT (%s)", inner.sql.Clause), Params: inner.sql.Params},
		match: func(f BattleFields) bool { return !inner.match(f) },
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (node, error) {
	if len(args) != 2 {
		return node{}, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return node{}, err
	}
	column, ok := fieldMapping[field]
	if !ok {
		return node{}, fmt.Errorf("unknown field: %s", field)
	}

	if field == "ts" {
		at, err := extractTimestamp(args[1])
		if err != nil {
			return node{}, err
		}
		millis := at.UTC().UnixMilli()
		return node{
			sql: SQLCondition{Clause: fmt.Sprintf("%s %s ?", column, op), Params: []any{millis}},
			match: func(f BattleFields) bool {
				return compare(op, cmpInt(f.Timestamp.UTC().UnixMilli(), millis))
			},
		}, nil
	}

	value, err := extractString(args[1])
	if err != nil {
		return node{}, err
	}
	return node{
		sql: SQLCondition{Clause: fmt.Sprintf("%s %s ?", column, op), Params: []any{value}},
		match: func(f BattleFields) bool {
			return compare(op, strings.Compare(stringField(f, field), value))
		},
	}, nil
}

func stringField(f BattleFields, field string) string {
	switch field {
	case "mode":
		return f.Mode
	case "winner_id":
		return f.WinnerID
	case "result":
		return f.Result
	default:
		return ""
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compare(op string, c int) bool {
	switch op {
	case "=":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractString(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	constant, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("expected constant, got %T", e.ExprKind)
	}
	value, ok := constant.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("expected string constant, got %T", constant.ConstExpr.ConstantKind)
	}
	return value.StringValue, nil
}

// extractTimestamp accepts timestamp("...") calls and bare RFC 3339 strings.
func extractTimestamp(e *expr.Expr) (time.Time, error) {
	if e == nil {
		return time.Time{}, fmt.Errorf("nil expression")
	}
	if call, ok := e.ExprKind.(*expr.Expr_CallExpr); ok {
		if call.CallExpr.Function != "timestamp" || len(call.CallExpr.Args) != 1 {
			return time.Time{}, fmt.Errorf("unsupported function in value position: %s", call.CallExpr.Function)
		}
		e = call.CallExpr.Args[0]
	}
	raw, err := extractString(e)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp argument must be a constant string")
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format: %s", raw)
	}
	return t, nil
}
