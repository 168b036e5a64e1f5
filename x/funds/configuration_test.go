package funds

import (
	"testing"

	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func TestValidateConfiguration(t *testing.T) {
	addr := swaptest.NewCondition().Address()

	cases := map[string]struct {
		conf    Configuration
		wantErr *errors.Error
	}{
		"all set": {
			conf: Configuration{MinimalFee: 4, CollectorAddress: addr},
		},
		"zero minimal fee is legal": {
			conf: Configuration{CollectorAddress: addr},
		},
		"missing collector": {
			conf:    Configuration{MinimalFee: 4},
			wantErr: errors.ErrState,
		},
		"malformed collector": {
			conf:    Configuration{CollectorAddress: addr[:7]},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.conf.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
