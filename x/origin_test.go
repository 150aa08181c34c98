package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/weavetest"
	"github.com/iov-one/weave-splitter/weavetest/assert"
	"github.com/iov-one/weave-splitter/x"
)

func TestContextOrigin(t *testing.T) {
	ctx := context.Background()
	var r x.ContextOrigin

	assert.Equal(t, weave.NoOrigin, r.Origin(ctx).Kind())

	signer := weavetest.NewCondition().Address()
	ctx = weave.WithOrigin(ctx, weave.Signed(signer))
	addr, err := x.RequireSigned(ctx, r)
	assert.Nil(t, err)
	assert.Equal(t, signer, addr)
	assert.IsErr(t, errors.ErrUnauthorized, x.RequireRoot(ctx, r))
}

func TestFirstOrigin(t *testing.T) {
	ctx := context.Background()
	signer := weavetest.NewCondition().Address()

	cases := map[string]struct {
		resolver x.OriginResolver
		want     weave.Origin
	}{
		"empty chain": {
			resolver: x.FirstOrigin{},
			want:     weave.Origin{},
		},
		"first non zero wins": {
			resolver: x.FirstOrigin{
				x.ContextOrigin{},
				&weavetest.Origin{Resolved: weave.Root()},
				&weavetest.Origin{Resolved: weave.Signed(signer)},
			},
			want: weave.Root(),
		},
		"skip unresolved": {
			resolver: x.FirstOrigin{
				&weavetest.Origin{},
				&weavetest.Origin{Resolved: weave.Signed(signer)},
			},
			want: weave.Signed(signer),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.resolver.Origin(ctx))
		})
	}
}
