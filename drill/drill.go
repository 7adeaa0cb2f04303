// Package drill evaluates path expressions against raw JSON documents.
//
// Paths are dotted member names with optional bracket indexes, e.g.
// "resources[0].attributes.id". One rule sits on top of plain gjson
// evaluation: whenever a step lands on a single-element array, drill
// descends into its only element before continuing, so "items.id" resolves
// inside {"items":[{"id":"x"}]} without an explicit index. Multi-element
// arrays are returned as-is unless the path indexes them.
package drill

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Get evaluates path against doc. Missing members, out-of-range indexes,
// and malformed paths yield a Result whose Exists reports false.
func Get(doc, path string) gjson.Result {
	return walk(gjson.Parse(doc), path)
}

// GetBytes is Get over a byte slice.
func GetBytes(doc []byte, path string) gjson.Result {
	return walk(gjson.ParseBytes(doc), path)
}

func walk(cur gjson.Result, path string) gjson.Result {
	if path == "" {
		return cur
	}
	for _, seg := range strings.Split(path, ".") {
		key, idxs, ok := splitSegment(seg)
		if !ok {
			return gjson.Result{}
		}
		if key != "" {
			cur = cur.Get(key)
		}
		for _, i := range idxs {
			if !cur.IsArray() {
				return gjson.Result{}
			}
			arr := cur.Array()
			if i < 0 || i >= len(arr) {
				return gjson.Result{}
			}
			cur = arr[i]
		}
		cur = descend(cur)
		if !cur.Exists() {
			return cur
		}
	}
	return cur
}

// descend unwraps single-element arrays. [[x]] unwraps twice.
func descend(r gjson.Result) gjson.Result {
	for r.IsArray() {
		arr := r.Array()
		if len(arr) != 1 {
			break
		}
		r = arr[0]
	}
	return r
}

// splitSegment parses one dotted segment into its member name and any
// trailing bracket indexes: "tags[0]" -> ("tags", [0]).
func splitSegment(seg string) (key string, idxs []int, ok bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, true
	}
	key = seg[:open]
	rest := seg[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		idxs = append(idxs, n)
		rest = rest[end+1:]
	}
	return key, idxs, true
}
