// Package router holds the declarative route table mechanism: each route
// pairs an exact HTTP method with a compiled path pattern, a handler, an
// admin-required flag, and the names of its positional path parameters. The
// table is the single source of truth for which endpoints need admin rights.
package router

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
)

// HandlerFunc is an endpoint handler invoked with the parameters extracted
// from the matched path (merged with query parameters by the dispatcher).
type HandlerFunc func(w http.ResponseWriter, r *http.Request, params Params)

type Route struct {
	Method        string
	Pattern       *regexp.Regexp
	Handler       HandlerFunc
	RequiresAdmin bool
	ParamNames    []string
}

// New compiles a route definition. The pattern must contain one capture
// group per parameter name, in order.
func New(method, pattern string, handler HandlerFunc, requiresAdmin bool, paramNames ...string) Route {
	return Route{
		Method:        method,
		Pattern:       regexp.MustCompile(pattern),
		Handler:       handler,
		RequiresAdmin: requiresAdmin,
		ParamNames:    paramNames,
	}
}

type Router struct {
	routes []Route
}

func NewRouter(routes []Route) *Router {
	return &Router{routes: routes}
}

// Match finds the first route whose method and pattern match, extracting the
// positional path parameters. A captured value that parses as an integer is
// stored as an int; anything else stays a string, so numeric table numbers
// and opaque order ids share one mechanism.
func (rt *Router) Match(method, path string) (Route, Params, bool) {
	for _, route := range rt.routes {
		if route.Method != method {
			continue
		}
		groups := route.Pattern.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		params := make(Params, len(route.ParamNames))
		for i, name := range route.ParamNames {
			value := groups[i+1]
			if n, err := strconv.Atoi(value); err == nil {
				params[name] = n
			} else {
				params[name] = value
			}
		}
		return route, params, true
	}
	return Route{}, nil, false
}

// Params carries the parameters available to a handler: path captures plus
// merged query parameters.
type Params map[string]interface{}

func (p Params) Int(name string) (int, bool) {
	value, ok := p[name].(int)
	return value, ok
}

func (p Params) String(name string) (string, bool) {
	value, ok := p[name].(string)
	return value, ok
}

// Token returns the parameter in string form whether it was captured as an
// integer or kept as an opaque token. Ids like order ids are usually
// non-numeric but nothing forbids a numeric one.
func (p Params) Token(name string) (string, bool) {
	switch value := p[name].(type) {
	case string:
		return value, true
	case int:
		return strconv.Itoa(value), true
	default:
		return "", false
	}
}

// MergeQuery adds query parameters to the set. Path-derived parameters take
// precedence: a query value never overwrites an existing key, since path
// parameters disambiguate the resource.
func (p Params) MergeQuery(values url.Values) {
	for key, list := range values {
		if _, exists := p[key]; exists {
			continue
		}
		if len(list) > 0 {
			p[key] = list[0]
		}
	}
}
