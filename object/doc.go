// Package object implements the concurrent value substrate that lets
// data cross the plugin boundary: a type-erased container polymorphic
// over a fixed capability set, owned through a refcounted, lock
// protected Object handle.
//
// Every boundary-crossing value embeds a Core, the control block
// holding an atomic reference count and an atomic lock-state word.
// Keeping the control block inside the payload — rather than in a
// host-side table or a language-native shared pointer — keeps the
// boundary record self-contained: any party holding the container can
// manipulate its lifetime and locking uniformly without knowing the
// payload's representation.
//
// The only supported access path is through scoped guards:
//
//	obj, _ := object.New(payload)
//	g, err := obj.Read()
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//	v, err := g.Get()
//
// Dereferencing the container without the guard API is unsupported
// and races with every other holder.
package object
