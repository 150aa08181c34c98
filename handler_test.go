package weave

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type conf struct {
		Policy string `json:"policy"`
	}

	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		want    conf
	}{
		"happy path": {
			json: `{"splitter": {"policy": "first"}}`,
			want: conf{Policy: "first"},
		},
		"missing key is a noop": {
			json: `{"cash": []}`,
			want: conf{},
		},
		"wrong body": {
			json:    `{"splitter": "adasda"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got conf
			err := o.ReadOptions("splitter", &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
