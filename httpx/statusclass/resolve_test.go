package statusclass

import (
	"math"
	"math/rand/v2"
	"testing"
)

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

func TestBoundaryCodes(t *testing.T) {
	cases := []struct {
		code int
		want Class
	}{
		{99, Unknown},
		{100, Informational},
		{199, Informational},
		{200, Success},
		{299, Success},
		{300, Redirection},
		{399, Redirection},
		{400, ClientError},
		{499, ClientError},
		{500, ServerError},
		{599, ServerError},
		{600, Unknown},
		{-1, Unknown},
		{0, Unknown},
	}
	for _, s := range Strategies() {
		t.Run(s.Name, func(t *testing.T) {
			for _, tc := range cases {
				if got := s.Classify(tc.code); got != tc.want {
					t.Fatalf("%s(%d) = %v, want %v", s.Name, tc.code, got, tc.want)
				}
			}
		})
	}
}

func TestCoverageOfBoundedRange(t *testing.T) {
	for code := MinCode; code < MaxCode; code++ {
		var want Class
		for _, c := range Classes() {
			if c.Contains(code) {
				want = c
			}
		}
		if want == Unknown {
			t.Fatalf("code %d not covered by any bounded class", code)
		}
		for _, s := range Strategies() {
			if got := s.Classify(code); got != want {
				t.Fatalf("%s(%d) = %v, want %v", s.Name, code, got, want)
			}
		}
	}
}

func TestComplementIsUnknown(t *testing.T) {
	codes := []int{
		minInt, maxInt,
		math.MinInt32, math.MaxInt32,
		math.MinInt32 + 1, math.MaxInt32 - 1,
		-600, -599, -500, -199, -150, -100, -99, -50, -1,
		0, 1, 50, 99,
		600, 601, 650, 699, 700, 999, 1000, 10000,
	}
	if wide := int64(maxInt); wide > math.MaxUint32 {
		edge := int64(math.MaxUint32)
		codes = append(codes, int(edge), int(edge+1), int(edge+200), int(edge*100+250))
	}
	for _, s := range Strategies() {
		for _, code := range codes {
			if got := s.Classify(code); got != Unknown {
				t.Fatalf("%s(%d) = %v, want Unknown", s.Name, code, got)
			}
		}
	}
}

func TestStrategiesAgreeOnRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100_000; i++ {
		var code int
		switch i % 3 {
		case 0:
			code = int(rng.Int64())
		case 1:
			code = int(int32(rng.Uint32()))
		default:
			code = rng.IntN(1400) - 400
		}
		assertAgree(t, code)
	}
}

func TestStrategiesAgreeNearTheRange(t *testing.T) {
	for code := -2000; code < 2000; code++ {
		assertAgree(t, code)
	}
}

func assertAgree(t *testing.T, code int) {
	t.Helper()
	want := ClassOfBranch(code)
	for _, s := range Strategies() {
		if got := s.Classify(code); got != want {
			t.Fatalf("%s(%d) = %v, branch chain says %v", s.Name, code, got, want)
		}
	}
	if got := ClassOf(code); got != want {
		t.Fatalf("ClassOf(%d) = %v, want %v", code, got, want)
	}
}

func TestFastDivMatchesDivision(t *testing.T) {
	step := uint32(1)
	if testing.Short() {
		step = 7919
	}
	for n := uint32(0); n < math.MaxInt32; n += step {
		if got, want := fastDiv100(n), n/100; got != want {
			t.Fatalf("fastDiv100(%d) = %d, want %d", n, got, want)
		}
	}
	for _, n := range []uint32{math.MaxInt32, math.MaxInt32 + 1, math.MaxUint32 - 100, math.MaxUint32 - 1, math.MaxUint32} {
		if got, want := fastDiv100(n), n/100; got != want {
			t.Fatalf("fastDiv100(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestFastDivGuardRejectsNegativeInput(t *testing.T) {
	var calls []uint32
	spy := fastDivResolver{div: func(n uint32) uint32 {
		calls = append(calls, n)
		return fastDiv100(n)
	}}

	for _, code := range []int{-1, -50, -100, -599, math.MinInt32, minInt} {
		if got := spy.classify(code); got != Unknown {
			t.Fatalf("classify(%d) = %v, want Unknown", code, got)
		}
	}
	if len(calls) != 0 {
		t.Fatalf("divider invoked for negative input: %v", calls)
	}

	if got := spy.classify(404); got != ClientError {
		t.Fatalf("classify(404) = %v, want ClientError", got)
	}
	if len(calls) != 1 || calls[0] != 404 {
		t.Fatalf("expected a single divider call with 404, got %v", calls)
	}
}

func TestLookup(t *testing.T) {
	for _, s := range Strategies() {
		fn, ok := Lookup(s.Name)
		if !ok || fn(503) != ServerError {
			t.Fatalf("Lookup(%q) failed", s.Name)
		}
	}
	if _, ok := Lookup("modulo"); ok {
		t.Fatalf("unexpected strategy")
	}
}

func TestConcurrentClassification(t *testing.T) {
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(seed uint64) {
			defer func() { done <- struct{}{} }()
			rng := rand.New(rand.NewPCG(seed, seed))
			for i := 0; i < 10_000; i++ {
				code := rng.IntN(800) - 100
				want := ClassOfBranch(code)
				if ClassOfTable(code) != want || ClassOfFastDiv(code) != want {
					t.Errorf("disagreement for %d", code)
					return
				}
			}
		}(uint64(g))
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
