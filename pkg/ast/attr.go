package ast

// Attr is a Pandoc attribute: an identifier, an ordered list of classes and
// an ordered list of key/value pairs. On the wire it is
// [id, [class...], [[key, value]...]].
type Attr struct {
	ID      string
	Classes []string
	Pairs   [][2]string
}

// Get returns the value of the first pair with the given key.
func (a Attr) Get(key string) (string, bool) {
	for _, p := range a.Pairs {
		if p[0] == key {
			return p[1], true
		}
	}
	return "", false
}

// Value returns the wire form of a.
func (a Attr) Value() []any {
	classes := make([]any, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = c
	}
	pairs := make([]any, len(a.Pairs))
	for i, p := range a.Pairs {
		pairs[i] = []any{p[0], p[1]}
	}
	return []any{a.ID, classes, pairs}
}

func attrFrom(v any) (Attr, bool) {
	items, ok := v.([]any)
	if !ok || len(items) != 3 {
		return Attr{}, false
	}
	var a Attr
	if a.ID, ok = items[0].(string); !ok {
		return Attr{}, false
	}
	classes, ok := items[1].([]any)
	if !ok {
		return Attr{}, false
	}
	for _, c := range classes {
		s, ok := c.(string)
		if !ok {
			return Attr{}, false
		}
		a.Classes = append(a.Classes, s)
	}
	pairs, ok := items[2].([]any)
	if !ok {
		return Attr{}, false
	}
	for _, p := range pairs {
		kv, ok := p.([]any)
		if !ok || len(kv) != 2 {
			return Attr{}, false
		}
		k, ok1 := kv[0].(string)
		val, ok2 := kv[1].(string)
		if !ok1 || !ok2 {
			return Attr{}, false
		}
		a.Pairs = append(a.Pairs, [2]string{k, val})
	}
	return a, true
}
