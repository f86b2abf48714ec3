package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// expression is a built condition or update directive. Attribute names and
// values are always referenced through generated placeholder aliases so
// caller-supplied names can never collide with reserved words.
type expression struct {
	text   string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildEquality builds a key condition ANDing an equality test for every
// attribute in match. Attributes are processed in sorted order so the
// resulting expression is deterministic.
func buildEquality(match map[string]any) (expression, error) {
	names := make([]string, 0, len(match))
	for name := range match {
		names = append(names, name)
	}
	sort.Strings(names)

	expr := expression{
		names:  make(map[string]string, len(names)),
		values: make(map[string]types.AttributeValue, len(names)),
	}
	clauses := make([]string, 0, len(names))

	for i, name := range names {
		av, err := attributevalue.Marshal(match[name])
		if err != nil {
			return expression{}, invalidf("marshal condition value %q: %v", name, err)
		}
		nameKey := fmt.Sprintf("#k%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		expr.names[nameKey] = name
		expr.values[valueKey] = av
		clauses = append(clauses, nameKey+" = "+valueKey)
	}

	expr.text = strings.Join(clauses, " AND ")
	return expr, nil
}

// buildUpdate builds a SET directive assigning exactly the supplied
// attributes and nothing else. Attributes that are part of the key are
// rejected: key attributes cannot appear in an update expression.
func buildUpdate(attrs map[string]any, key Key) (expression, error) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if _, isKey := key[name]; isKey {
			return expression{}, invalidf("attribute %q is part of the key", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	expr := expression{
		names:  make(map[string]string, len(names)),
		values: make(map[string]types.AttributeValue, len(names)),
	}
	clauses := make([]string, 0, len(names))

	for i, name := range names {
		av, err := attributevalue.Marshal(attrs[name])
		if err != nil {
			return expression{}, invalidf("marshal attribute %q: %v", name, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		expr.names[nameKey] = name
		expr.values[valueKey] = av
		clauses = append(clauses, nameKey+" = "+valueKey)
	}

	expr.text = "SET " + strings.Join(clauses, ", ")
	return expr, nil
}
