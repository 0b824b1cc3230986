package network

// Default construction parameters.
const (
	defaultDistanceScale = 10_000
	distanceDecimals     = 4
	positionDecimals     = 2
	metricDecimals       = 4
)

// BuildOption applies a configuration option to Build.
type BuildOption func(*builder)

// WithDistanceScale sets the numerator of the distance transform
// distance = round(scale / intensity, 4).
func WithDistanceScale(scale float64) BuildOption {
	return func(b *builder) {
		if scale > 0 {
			b.distanceScale = scale
		}
	}
}
