package audio

import (
	"testing"
)

func TestTransitiveValueExponential(t *testing.T) {
	tv := newTransitiveValue(1000) // 1 ms per sample
	tv.init(0)
	tv.exponential(10, 1, 0.001)
	ended := tv.step()
	expectEqual(t, ended, false)
	expectEqual(t, tv.value, 0.0)
	for i := 0; i < 10; i++ {
		tv.step()
	}
	// 63% closer after one duration
	expectNearlyEqual(t, tv.value, 1-0.36787944117)
	for i := 0; i < 1000 && !ended; i++ {
		ended = tv.step()
	}
	expectEqual(t, ended, true)
	expectEqual(t, tv.value, 1.0)
	expectEqual(t, tv.step(), false)
}

func TestSharedFloat(t *testing.T) {
	var f sharedFloat
	expectEqual(t, f.load(), 0.0)
	f.store(-1.25)
	expectEqual(t, f.load(), -1.25)
}
