// Package request defines the interplugin dependency-request algebra:
// a declarative tree describing what one plugin needs from others
// before a capability can be exercised.
//
// The algebra is pure shape. Nothing here validates or resolves a
// request; an external orchestrator searches its plugin registry,
// decides, and answers through the provide/deny surface on the
// plugin's capability set. Malformed or unsatisfiable trees are the
// resolver's concern.
package request

import (
	"fmt"
	"strings"

	"github.com/dshills/freight/version"
)

// Request is one node of a dependency-request tree. The concrete
// types are Plug, PlugAll, Trait, TraitAll, Either, Each, Crucial,
// and Optional; no other implementations exist.
type Request interface {
	// String renders the request for diagnostics and logs.
	String() string

	isRequest()
}

// Plug requests specific functions from a named plugin at least at
// the given version.
type Plug struct {
	// Plugin is the name the target plugin declared.
	Plugin string

	// FnIDs are the global catalog ids whose dependencies must be
	// fulfilled.
	FnIDs []int

	// Version is the floor the loaded plugin must satisfy.
	Version version.Version
}

// PlugAll requests a named plugin with every function usable.
type PlugAll struct {
	Plugin  string
	Version version.Version
}

// Trait requests an implementor of a named trait from a named plugin.
// FnIDs are trait-local method ids, not global catalog ids.
type Trait struct {
	Plugin  string
	Trait   string
	FnIDs   []int
	Version version.Version
}

// TraitAll requests a trait implementor with every method usable.
type TraitAll struct {
	Plugin  string
	Trait   string
	Version version.Version
}

// Either is satisfied when any one child request is satisfied.
type Either struct {
	Requests []Request
}

// Each is satisfied only when all child requests are satisfied.
type Each struct {
	Requests []Request
}

// Crucial marks its child as blocking: the plugin cannot work at all
// without it.
type Crucial struct {
	Request Request
}

// Optional marks its child as degrading: without it some functions
// are unavailable, but the plugin still works.
type Optional struct {
	Request Request
}

func (Plug) isRequest()     {}
func (PlugAll) isRequest()  {}
func (Trait) isRequest()    {}
func (TraitAll) isRequest() {}
func (Either) isRequest()   {}
func (Each) isRequest()     {}
func (Crucial) isRequest()  {}
func (Optional) isRequest() {}

func (r Plug) String() string {
	return fmt.Sprintf("plug(%s>=%s fns=%v)", r.Plugin, r.Version, r.FnIDs)
}

func (r PlugAll) String() string {
	return fmt.Sprintf("plug(%s>=%s)", r.Plugin, r.Version)
}

func (r Trait) String() string {
	return fmt.Sprintf("trait(%s::%s>=%s fns=%v)", r.Plugin, r.Trait, r.Version, r.FnIDs)
}

func (r TraitAll) String() string {
	return fmt.Sprintf("trait(%s::%s>=%s)", r.Plugin, r.Trait, r.Version)
}

func (r Either) String() string { return renderList("either", r.Requests) }
func (r Each) String() string   { return renderList("each", r.Requests) }

func (r Crucial) String() string  { return "crucial(" + render(r.Request) + ")" }
func (r Optional) String() string { return "optional(" + render(r.Request) + ")" }

func render(r Request) string {
	if r == nil {
		return "<nil>"
	}
	return r.String()
}

func renderList(kind string, reqs []Request) string {
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		parts[i] = render(r)
	}
	return kind + "(" + strings.Join(parts, ", ") + ")"
}

// Walk visits every node of the tree rooted at r in depth-first
// order, parents before children, calling fn for each. Traversal uses
// an explicit stack so arbitrarily deep plugin-declared trees cannot
// exhaust the call stack. Walk stops early if fn returns false.
func Walk(r Request, fn func(Request) bool) {
	if r == nil {
		return
	}
	stack := []Request{r}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		if !fn(cur) {
			return
		}
		switch node := cur.(type) {
		case Either:
			for i := len(node.Requests) - 1; i >= 0; i-- {
				stack = append(stack, node.Requests[i])
			}
		case Each:
			for i := len(node.Requests) - 1; i >= 0; i-- {
				stack = append(stack, node.Requests[i])
			}
		case Crucial:
			stack = append(stack, node.Request)
		case Optional:
			stack = append(stack, node.Request)
		}
	}
}

// Leaves collects the leaf requests (Plug, PlugAll, Trait, TraitAll)
// of the tree rooted at r, in declaration order.
func Leaves(r Request) []Request {
	var leaves []Request
	Walk(r, func(cur Request) bool {
		switch cur.(type) {
		case Plug, PlugAll, Trait, TraitAll:
			leaves = append(leaves, cur)
		}
		return true
	})
	return leaves
}

// Limitation tells a plugin about a host-imposed system limit, such
// as a thread or memory cap. Limits are passed at Init and may be
// revised later through UpdateLimitations.
type Limitation struct {
	// Kind says how Value is to be interpreted.
	Kind LimitKind

	// Setting names the limited resource.
	Setting string

	// Value is the bound; ignored for LimitReset.
	Value int64
}

// LimitKind discriminates the limitation variants.
type LimitKind int

// Limitation kinds.
const (
	// LimitTop sets the maximum allowed value for a setting.
	LimitTop LimitKind = iota

	// LimitBottom sets the minimum allowed value for a setting.
	LimitBottom

	// LimitReset returns the setting to the plugin's own default, as
	// if the host had never limited it.
	LimitReset
)

// String returns a readable name for the limitation kind.
func (k LimitKind) String() string {
	switch k {
	case LimitTop:
		return "top"
	case LimitBottom:
		return "bottom"
	case LimitReset:
		return "reset"
	default:
		return "unknown"
	}
}
