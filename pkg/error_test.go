package pkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	errs := []error{
		ErrStall,
		ErrOverrun,
		ErrUnderrun,
		ErrInvalidRequest,
		ErrInvalidAltSetting,
		ErrInvalidEndpoint,
		ErrInvalidState,
		ErrNoMemory,
		ErrBufferTooSmall,
		ErrSetupPacketTooShort,
		ErrNotConfigured,
		ErrClosed,
	}

	for i, err1 := range errs {
		if err1 == nil {
			t.Errorf("sentinel error %d is nil", i)
			continue
		}
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d are not distinct: %v", i, j, err1)
			}
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("set interface 1: %w", ErrInvalidAltSetting)
	if !errors.Is(wrapped, ErrInvalidAltSetting) {
		t.Errorf("errors.Is failed for wrapped sentinel: %v", wrapped)
	}
	if errors.Is(wrapped, ErrStall) {
		t.Errorf("errors.Is matched unrelated sentinel: %v", wrapped)
	}
}
