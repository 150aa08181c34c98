package weave

import (
	"context"
	"fmt"

	"github.com/iov-one/weave-splitter/errors"
)

// OriginKind classifies the privilege attached to a call.
type OriginKind int8

const (
	// NoOrigin is the zero value. The call could not be attributed to
	// anyone and no privileged operation may be executed.
	NoOrigin OriginKind = iota
	// SignedOrigin is a call authorized by the owner of an account.
	SignedOrigin
	// RootOrigin is a call executed with the highest privilege.
	RootOrigin
)

func (k OriginKind) String() string {
	switch k {
	case NoOrigin:
		return "none"
	case SignedOrigin:
		return "signed"
	case RootOrigin:
		return "root"
	default:
		return fmt.Sprintf("OriginKind(%d)", k)
	}
}

// Origin is the authenticated identity and privilege level attached to an
// incoming call. The zero value is an unresolved origin.
type Origin struct {
	kind   OriginKind
	signer Address
}

// Signed returns an origin of a call signed by the given account.
func Signed(signer Address) Origin {
	return Origin{kind: SignedOrigin, signer: signer}
}

// Root returns an origin of a call with root privilege.
func Root() Origin {
	return Origin{kind: RootOrigin}
}

// Kind returns the privilege class of this origin.
func (o Origin) Kind() OriginKind {
	return o.kind
}

// Signer returns the account that signed the call. It is nil for any origin
// that is not signed.
func (o Origin) Signer() Address {
	return o.signer
}

func (o Origin) String() string {
	if o.kind == SignedOrigin {
		return fmt.Sprintf("signed(%s)", o.signer)
	}
	return o.kind.String()
}

// EnsureSigned returns the signer of the call if the origin is signed by a
// valid account. Any other origin results in ErrUnauthorized.
func EnsureSigned(o Origin) (Address, error) {
	if o.kind != SignedOrigin {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "bad origin: want signed, got %s", o.kind)
	}
	if err := o.signer.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "bad origin: invalid signer")
	}
	return o.signer, nil
}

// EnsureRoot returns ErrUnauthorized unless the origin has root privilege.
func EnsureRoot(o Origin) error {
	if o.kind != RootOrigin {
		return errors.Wrapf(errors.ErrUnauthorized, "bad origin: want root, got %s", o.kind)
	}
	return nil
}

// WithOrigin sets the origin of the processed call.
// It panics if the origin is already set.
func WithOrigin(ctx Context, o Origin) Context {
	if _, ok := ctx.Value(contextKeyOrigin).(Origin); ok {
		panic("Tried to set origin twice")
	}
	return context.WithValue(ctx, contextKeyOrigin, o)
}

// GetOrigin returns the origin of the processed call. If not set, the zero
// Origin is returned.
func GetOrigin(ctx Context) Origin {
	o, _ := ctx.Value(contextKeyOrigin).(Origin)
	return o
}
