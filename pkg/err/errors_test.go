package err

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		e        error
		sentinel error
	}{
		{name: "field missing", e: ErrFieldMissing("note", "User"), sentinel: ErrMissingField},
		{name: "kind mismatch", e: ErrKindMismatch("int", "string"), sentinel: ErrTypeMismatch},
		{name: "unbound param", e: ErrUnboundParam("T"), sentinel: ErrUnboundTypeParam},
		{name: "unresolved ref", e: ErrUnresolvedRef("Post"), sentinel: ErrUnresolvedSymbol},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.e, tt.sentinel) {
				t.Errorf("%v should match its sentinel", tt.e)
			}
			if wrapped := fmt.Errorf("decoding: %w", tt.e); !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapping should preserve the sentinel")
			}
		})
	}
}

func TestIsConfig(t *testing.T) {
	t.Parallel()

	if !IsConfig(ErrUnboundParam("T")) {
		t.Error("unbound parameter is a configuration error")
	}
	if !IsConfig(ErrUnresolvedRef("Post")) {
		t.Error("unresolved reference is a configuration error")
	}
	if IsConfig(ErrKindMismatch("int", "string")) {
		t.Error("kind mismatch is a data error")
	}
	if IsConfig(ErrFieldMissing("id", "User")) {
		t.Error("missing field is a data error")
	}
	if IsConfig(nil) {
		t.Error("nil is not a configuration error")
	}
}
