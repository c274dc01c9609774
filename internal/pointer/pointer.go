// Package pointer resolves JSON Pointer (RFC 6901) addresses against the
// job tree and the versions table.
package pointer

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/go-openapi/jsonpointer"
	"github.com/pkg/errors"
)

var indexPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// Resolve walks root one token at a time and returns the value the address
// selects. The empty address selects root itself. The returned value may
// alias root; callers that hand it out must copy it first.
func Resolve(root any, address string) (any, error) {
	p, err := jsonpointer.New(address)
	if err != nil {
		return nil, &dataset.ValidationError{Field: "address", Reason: err.Error()}
	}

	node := root
	for _, token := range p.DecodedTokens() {
		if isSlice(node) && !indexPattern.MatchString(token) {
			return nil, &dataset.ResolutionError{Address: address, Token: token, Reason: "not a valid array index"}
		}

		next, _, err := jsonpointer.GetForToken(node, token)
		if err != nil {
			return nil, &dataset.ResolutionError{Address: address, Token: token, Reason: reason(err)}
		}
		node = next
	}

	return node, nil
}

// Len returns the number of children the value holds: the rows of a tree
// node, or the elements of a list.
func Len(v any) (int, bool) {
	switch t := v.(type) {
	case *dataset.TreeNode:
		return len(t.Rows), true
	case []*dataset.TreeNode:
		return len(t), true
	case []*dataset.VersionRecord:
		return len(t), true
	case []any:
		return len(t), true
	}
	return 0, false
}

// Escape encodes a single token for inclusion in an address.
func Escape(token string) string {
	return jsonpointer.Escape(token)
}

// Join builds an address from raw tokens, escaping each one.
func Join(tokens ...string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Slice
}

func reason(err error) string {
	var rerr *dataset.ResolutionError
	if errors.As(err, &rerr) {
		return rerr.Reason
	}
	return err.Error()
}
