package render

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/flosch/pongo2/v6"
)

// orderVar carries the mapping order into template execution. It is a valid
// identifier so pongo2 accepts it in the context.
const orderVar = "_yaml2config_key_order"

// KeyOrder returns the keys of a mapping in the order they should be iterated
type KeyOrder func(map[string]interface{}) []string

type ordering struct {
	keys KeyOrder
}

// loopInfo is what templates see as forloop
type loopInfo struct {
	Counter     int
	Counter0    int
	Revcounter  int
	Revcounter0 int
	First       bool
	Last        bool
	Parentloop  *loopInfo
}

// forNode replaces pongo2's for tag. Sequences iterate as usual; mappings
// iterate in document order, or by key with "sorted", and never in Go's
// randomized map order.
type forNode struct {
	key      string
	value    string
	object   pongo2.IEvaluator
	reversed bool
	sorted   bool

	body  *pongo2.NodeWrapper
	empty *pongo2.NodeWrapper
}

func (node *forNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	forCtx := pongo2.NewChildExecutionContext(ctx)

	info := &loopInfo{First: true}
	if parent, ok := forCtx.Private["forloop"].(*loopInfo); ok {
		info.Parentloop = parent
	}
	forCtx.Private["forloop"] = info

	obj, err := node.object.Evaluate(forCtx)
	if err != nil {
		return err
	}

	var loopErr *pongo2.Error
	each := func(idx, count int, key, value *pongo2.Value) bool {
		forCtx.Private[node.key] = key
		if value != nil && node.value != "" {
			forCtx.Private[node.value] = value
		}
		info.Counter = idx + 1
		info.Counter0 = idx
		info.First = idx == 0
		info.Last = idx+1 == count
		info.Revcounter = count - idx
		info.Revcounter0 = count - idx - 1

		if err := node.body.Execute(forCtx, writer); err != nil {
			loopErr = err
			return false
		}
		return true
	}
	empty := func() {
		if node.empty != nil {
			loopErr = node.empty.Execute(forCtx, writer)
		}
	}

	rv := reflect.ValueOf(obj.Interface())
	if rv.Kind() != reflect.Map {
		obj.IterateOrder(each, empty, node.reversed, node.sorted)
		return loopErr
	}

	keys := node.mapKeys(ctx, rv)
	if len(keys) == 0 {
		empty()
		return loopErr
	}
	for i, k := range keys {
		if !each(i, len(keys), pongo2.AsValue(k.Interface()), pongo2.AsValue(rv.MapIndex(k).Interface())) {
			break
		}
	}
	return loopErr
}

// mapKeys orders the keys of a mapping
func (node *forNode) mapKeys(ctx *pongo2.ExecutionContext, rv reflect.Value) []reflect.Value {
	var keys []reflect.Value

	m, isStringMap := rv.Interface().(map[string]interface{})
	o, hasOrder := ctx.Public[orderVar].(*ordering)
	if isStringMap && hasOrder && o.keys != nil && !node.sorted {
		for _, k := range o.keys(m) {
			keys = append(keys, reflect.ValueOf(k))
		}
	} else {
		keys = rv.MapKeys()
		sort.SliceStable(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
	}

	if node.reversed {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	return keys
}

func parseFor(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &forNode{}

	keyToken := arguments.MatchType(pongo2.TokenIdentifier)
	if keyToken == nil {
		return nil, arguments.Error("Expected a key identifier as first argument for 'for'-tag", nil)
	}
	node.key = keyToken.Val

	if arguments.Match(pongo2.TokenSymbol, ",") != nil {
		valueToken := arguments.MatchType(pongo2.TokenIdentifier)
		if valueToken == nil {
			return nil, arguments.Error("Value name must be an identifier.", nil)
		}
		node.value = valueToken.Val
	}

	if arguments.Match(pongo2.TokenKeyword, "in") == nil {
		return nil, arguments.Error("Expected keyword 'in'.", nil)
	}

	object, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.object = object

	if arguments.MatchOne(pongo2.TokenIdentifier, "reversed") != nil {
		node.reversed = true
	}
	if arguments.MatchOne(pongo2.TokenIdentifier, "sorted") != nil {
		node.sorted = true
	}
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("Malformed for-loop arguments.", nil)
	}

	body, endargs, err := doc.WrapUntilTag("empty", "endfor")
	if err != nil {
		return nil, err
	}
	if endargs.Count() > 0 {
		return nil, endargs.Error("Arguments not allowed here.", nil)
	}
	node.body = body

	if body.Endtag == "empty" {
		empty, endargs, err := doc.WrapUntilTag("endfor")
		if err != nil {
			return nil, err
		}
		if endargs.Count() > 0 {
			return nil, endargs.Error("Arguments not allowed here.", nil)
		}
		node.empty = empty
	}

	return node, nil
}

func init() {
	if err := pongo2.ReplaceTag("for", parseFor); err != nil {
		panic(err)
	}
}
