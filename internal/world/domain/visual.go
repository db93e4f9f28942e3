package domain

import "math"

const (
	minHeight = -5000.0
	maxHeight = 5000.0

	// 渲染高度 = 真实高度 / liftScale
	liftScale = 400.0

	tiltFactor  = 0.1
	maxTiltSpan = 0.2
)

// HeightColor 把高度映射成三段线性色带：低处蓝到青，中段青到绿，高处绿到白。
func HeightColor(height float64) RGB {
	n := (height - minHeight) / (maxHeight - minHeight)
	n = math.Max(0, math.Min(1, n))

	switch {
	case n < 0.3:
		return RGB{R: 0.1 + n*0.3, G: 0.1 + n*0.3, B: 0.5 + n*0.3}
	case n < 0.7:
		t := (n - 0.3) / 0.4
		return RGB{R: 0.4 - t*0.2, G: 0.4 + t*0.4, B: 0.8 - t*0.6}
	default:
		t := (n - 0.7) / 0.3
		return RGB{R: 0.2 + t*0.8, G: 0.8 + t*0.2, B: 0.2 + t*0.8}
	}
}

// Tilt 根据坡度（度）算一个有界的随机倾斜，r1/r2 取 [0,1)。
func Tilt(angleDeg, r1, r2 float64) Euler {
	span := math.Min(angleDeg*math.Pi/180*tiltFactor, maxTiltSpan)
	return Euler{
		X: -math.Pi/2 + (r1-0.5)*span,
		Z: (r2 - 0.5) * span,
	}
}

func flat() Euler {
	return Euler{X: -math.Pi / 2}
}
