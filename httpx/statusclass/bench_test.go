package statusclass

import (
	"math/rand/v2"
	"testing"
)

var sink Class

func BenchmarkStrategies(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 11))
	codes := make([]int, 1024)
	for i := range codes {
		codes[i] = 100 + rng.IntN(500)
	}
	for _, s := range Strategies() {
		b.Run(s.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sink = s.Classify(codes[i&1023])
			}
		})
	}
}

func BenchmarkClassOfText(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sink = ClassOfText("404")
	}
}
