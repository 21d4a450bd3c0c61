package components

// Body 圆形实体的位置和直径
// X/Y 是外接正方形的左上角（与渲染层的绝对定位一致），圆心为 (X+Size/2, Y+Size/2)
type Body struct {
	X    float64
	Y    float64
	Size float64
}

// Hazard 危险球（紫色），接触即结束本局
type Hazard struct {
	ID string // 唯一标识，用于删除和渲染层的 key
	Body
}

// Bonus 时间奖励球（金色），接触后增加时间和分数并被移除
type Bonus struct {
	ID string
	Body
}
