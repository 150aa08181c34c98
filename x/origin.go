package x

import (
	"github.com/iov-one/weave-splitter"
)

// OriginResolver is an interface we can use to extract the origin of a call
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authorization system,
// rather than hard-coding x/sigs for all extensions.
type OriginResolver interface {
	Origin(weave.Context) weave.Origin
}

// ContextOrigin resolves the origin that was stored in the context by a
// decorator earlier in the chain, for example sigs.Decorator.
type ContextOrigin struct{}

var _ OriginResolver = ContextOrigin{}

// Origin returns the origin set with weave.WithOrigin, or the zero Origin.
func (ContextOrigin) Origin(ctx weave.Context) weave.Origin {
	return weave.GetOrigin(ctx)
}

// FirstOrigin chains together many resolvers. The first resolved origin
// that is not the zero value is used.
type FirstOrigin []OriginResolver

var _ OriginResolver = FirstOrigin(nil)

func (f FirstOrigin) Origin(ctx weave.Context) weave.Origin {
	for _, r := range f {
		if o := r.Origin(ctx); o.Kind() != weave.NoOrigin {
			return o
		}
	}
	return weave.Origin{}
}

// RequireSigned resolves the origin and returns the signer if the call was
// signed by a valid account.
func RequireSigned(ctx weave.Context, r OriginResolver) (weave.Address, error) {
	return weave.EnsureSigned(r.Origin(ctx))
}

// RequireRoot resolves the origin and returns an error unless the call was
// made with root privilege.
func RequireRoot(ctx weave.Context, r OriginResolver) error {
	return weave.EnsureRoot(r.Origin(ctx))
}
