package weavetest

import (
	"github.com/iov-one/weave-splitter"
)

// Origin is a mock implementing x.OriginResolver interface.
//
// It always resolves to the same origin. The zero value resolves to an
// unresolved origin.
type Origin struct {
	Resolved weave.Origin
}

func (o *Origin) Origin(weave.Context) weave.Origin {
	return o.Resolved
}

// SignedBy returns a resolver of a call signed by given condition owner.
func SignedBy(c weave.Condition) *Origin {
	return &Origin{Resolved: weave.Signed(c.Address())}
}

// RootOrigin returns a resolver of a call with root privilege.
func RootOrigin() *Origin {
	return &Origin{Resolved: weave.Root()}
}
