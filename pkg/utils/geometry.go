package utils

import (
	"math"

	"github.com/decker502/tiltorbs/pkg/components"
)

// CirclesOverlap 检查两个圆形实体是否重叠
// 圆心为 位置 + 直径/2，圆心距离严格小于半径之和时视为碰撞（相切不算）
// 该判定是对称的：CirclesOverlap(a, b) == CirclesOverlap(b, a)
func CirclesOverlap(a, b components.Body) bool {
	ax, ay := Center(a)
	bx, by := Center(b)

	dx := ax - bx
	dy := ay - by
	distance := math.Sqrt(dx*dx + dy*dy)

	return distance < a.Size/2+b.Size/2
}

// Center 返回圆形实体的圆心坐标
func Center(b components.Body) (float64, float64) {
	return b.X + b.Size/2, b.Y + b.Size/2
}

// ClampAxis 将坐标限制在 [0, max] 范围内
// 返回限制后的值，以及是否接触边界（<= 0 或 >= max，与原版判定一致）
func ClampAxis(v, max float64) (float64, bool) {
	if max < 0 {
		max = 0
	}
	hit := false
	if v <= 0 {
		v = 0
		hit = true
	}
	if v >= max {
		v = max
		hit = true
	}
	return v, hit
}
