package profit

import (
	"sync"
	"testing"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

func BenchmarkCompute_Defaults(b *testing.B) {
	in := entities.DefaultInputs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compute(in)
	}
}

func BenchmarkCompute_Parallel(b *testing.B) {
	engine := NewEngine()
	in := entities.DefaultInputs()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = engine.Compute(in)
		}
	})
}

func TestCompute_ConcurrentCallsAgree(t *testing.T) {
	engine := NewEngine()
	in := entities.DefaultInputs()
	want := engine.Compute(in)

	var wg sync.WaitGroup
	results := make([]entities.Outputs, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Compute(in)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !got.NetProfit.Equal(want.NetProfit) || got.SuccessfulOrders != want.SuccessfulOrders {
			t.Errorf("call %d: expected net profit %s, got %s", i, want.NetProfit, got.NetProfit)
		}
	}
}
