package freight

import "github.com/dshills/freight/request"

// Freight is the capability set a plugin installs during
// registration. TopModules is the only method without a usable
// default; everything else a minimal plugin can leave inert.
type Freight interface {
	// Init runs once after import. Limitations the host imposes are
	// passed in; the plugin returns the capability requests it
	// needs resolved before it is fully usable.
	Init(limitations []request.Limitation) []request.Request

	// UpdateLimitations replaces the host-imposed limitations.
	UpdateLimitations(limitations []request.Limitation)

	// ProvideInterplug resolves one of the plugin's capability
	// requests with a proxy over the providing plugin.
	ProvideInterplug(req request.Request, provider *Proxy)

	// DenyInterplug informs the plugin a request was denied.
	DenyInterplug(req request.Request)

	// TopModules returns the roots of the plugin's declared tree.
	TopModules() []Module

	// Operators returns the plugin's operator functions. They are
	// harvested ahead of module functions into the function
	// catalog and must have non-empty names.
	Operators() []Function
}

// Base is a zero-value Freight with inert defaults for everything
// but TopModules. Embed it to implement only what a plugin needs.
type Base struct{}

func (Base) Init([]request.Limitation) []request.Request { return nil }
func (Base) UpdateLimitations([]request.Limitation)      {}
func (Base) ProvideInterplug(request.Request, *Proxy)    {}
func (Base) DenyInterplug(request.Request)               {}
func (Base) Operators() []Function                       { return nil }

// EmptyFreight is the placeholder implementor a Proxy starts with
// before registration replaces it. It declares nothing.
type EmptyFreight struct {
	Base
}

func (EmptyFreight) TopModules() []Module { return nil }
