package graphics

import (
	"math"
	"sync"
	"time"

	"github.com/MichaelTJones/pcg"
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

func sinCos(rad float32) (s, c float32) {
	return math32.Sin(rad), math32.Cos(rad)
}

// Clamp returns v limited to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Rescale maps v from [srcMin, srcMax] onto [dstMin, dstMax] linearly.
// Values outside the source range extrapolate. A degenerate source range
// maps everything to dstMin.
func Rescale[T constraints.Float](v, srcMin, srcMax, dstMin, dstMax T) T {
	if srcMax == srcMin {
		return dstMin
	}
	return dstMin + (v-srcMin)*(dstMax-dstMin)/(srcMax-srcMin)
}

// SubsetRescale clamps v into the sub-range [subMin, subMax] and maps that
// sub-range onto [dstMin, dstMax].
func SubsetRescale[T constraints.Float](v, subMin, subMax, dstMin, dstMax T) T {
	lo, hi := subMin, subMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return Rescale(Clamp(v, lo, hi), subMin, subMax, dstMin, dstMax)
}

// pcgSequence selects the PCG stream; any odd constant works.
const pcgSequence = 0xda3e39cb94b95bdb

// Random is a PCG32 generator safe for concurrent use.
type Random struct {
	mu sync.Mutex
	r  *pcg.PCG32
}

// NewRandom returns a generator with a fixed seed, producing the same
// sequence on every run.
func NewRandom(seed uint64) *Random {
	r := &Random{r: pcg.NewPCG32()}
	r.r.Seed(seed, pcgSequence)
	return r
}

// Seed resets the generator state.
func (r *Random) Seed(seed uint64) {
	r.mu.Lock()
	r.r.Seed(seed, pcgSequence)
	r.mu.Unlock()
}

// Float64 returns a uniform value in [0, 1).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	hi := uint64(r.r.Random())
	lo := uint64(r.r.Random())
	r.mu.Unlock()
	// 53 significant bits.
	return float64((hi<<32|lo)>>11) / (1 << 53)
}

// Byte returns a uniform byte.
func (r *Random) Byte() byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return byte(r.r.Bounded(256))
}

// Intn returns a uniform value in [0, n). It returns 0 when n <= 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if uint64(n) > math.MaxUint32 {
		n = math.MaxUint32
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.r.Bounded(uint32(n)))
}

// IntRange returns a uniform value in [min, max). It returns min when
// max <= min.
func (r *Random) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

var (
	defaultRandomMu sync.RWMutex
	defaultRandom   = NewRandom(uint64(time.Now().UnixNano()))
)

// SetDefaultRandom replaces the generator behind RandomDouble, RandomByte and
// RandomInt and returns the previous one.
func SetDefaultRandom(r *Random) *Random {
	defaultRandomMu.Lock()
	defer defaultRandomMu.Unlock()
	prev := defaultRandom
	defaultRandom = r
	return prev
}

func currentRandom() *Random {
	defaultRandomMu.RLock()
	defer defaultRandomMu.RUnlock()
	return defaultRandom
}

// RandomDouble draws a uniform value in [0, 1) from the shared generator.
func RandomDouble() float64 {
	return currentRandom().Float64()
}

// RandomByte draws a uniform byte from the shared generator.
func RandomByte() byte {
	return currentRandom().Byte()
}

// RandomInt draws a uniform value in [min, max) from the shared generator.
func RandomInt(min, max int) int {
	return currentRandom().IntRange(min, max)
}
