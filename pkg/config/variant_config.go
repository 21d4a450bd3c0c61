package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// VariantConfig 一个游戏变体的全部可调参数
// 两个变体（classic / floating）的公式形状相同，只有常量不同
type VariantConfig struct {
	Name        string `yaml:"name"`        // 变体名称，如 "classic"
	Description string `yaml:"description"` // 变体描述（可选）

	Tilt          TiltConfig          `yaml:"tilt"`          // 倾斜输入映射
	Avatar        SizeRule            `yaml:"avatar"`        // 玩家小球尺寸规则
	Target        SizeRule            `yaml:"target"`        // 目标orb尺寸规则
	Timer         TimerConfig         `yaml:"timer"`         // 倒计时规则
	Progression   ProgressionConfig   `yaml:"progression"`   // 关卡推进规则
	Hazard        HazardConfig        `yaml:"hazard"`        // 危险球（紫色）
	Bonus         BonusConfig         `yaml:"bonus"`         // 时间奖励球（金色）
	BorderPenalty BorderPenaltyConfig `yaml:"borderPenalty"` // 碰边惩罚
}

// TiltConfig 倾斜传感器到屏幕位移的映射
//
//	dx = -tiltY * Sensitivity
//	dy = VerticalSign * tiltX * Sensitivity
type TiltConfig struct {
	Sensitivity  float64 `yaml:"sensitivity"`  // 灵敏度 K
	VerticalSign float64 `yaml:"verticalSign"` // -1 或 +1，两个原版变体的符号约定不同
}

// SizeRule 随关卡缩小的尺寸规则：max(Base - level*ShrinkPerLevel, Min)
type SizeRule struct {
	Base           float64 `yaml:"base"`
	ShrinkPerLevel float64 `yaml:"shrinkPerLevel"`
	Min            float64 `yaml:"min"`
}

// TimerConfig 每关时间预算：max(Base - level*StepPerLevel, Min)（秒）
type TimerConfig struct {
	Base         int     `yaml:"base"`
	StepPerLevel int     `yaml:"stepPerLevel"`
	Min          int     `yaml:"min"`
	TickInterval float64 `yaml:"tickInterval"` // 倒计时间隔（秒），默认 1
}

// ProgressionConfig 关卡推进
type ProgressionConfig struct {
	OrbsPerLevel    int   `yaml:"orbsPerLevel"`    // orbsNeeded = OrbsPerLevel + level
	PointsPerLevel  int   `yaml:"pointsPerLevel"`  // 每个目标得分 = PointsPerLevel * level
	StartLevels     []int `yaml:"startLevels"`     // 固定起始关卡模式允许的关卡
	MotionTickHertz int   `yaml:"motionTickHertz"` // 运动更新频率，仅供驱动层参考
}

// HazardConfig 危险球配置
type HazardConfig struct {
	UnlockLevel      int     `yaml:"unlockLevel"`      // 解锁关卡，默认 5
	Capacity         int     `yaml:"capacity"`         // 数量上限，默认 5
	CapacityOffset   int     `yaml:"capacityOffset"`   // 当前上限 = min(level - CapacityOffset, Capacity)
	Size             float64 `yaml:"size"`             // 直径
	SpawnInterval    float64 `yaml:"spawnInterval"`    // 基础生成间隔（秒）
	SpawnDecay       float64 `yaml:"spawnDecay"`       // 每关缩短的间隔（秒）
	MinSpawnInterval float64 `yaml:"minSpawnInterval"` // 生成间隔下限（秒）
	FallBase         float64 `yaml:"fallBase"`         // 每次移动的基础下落距离
	FallPerLevel     float64 `yaml:"fallPerLevel"`     // 每关增加的下落距离
	MoveInterval     float64 `yaml:"moveInterval"`     // 移动间隔（秒），默认 0.05
}

// BonusConfig 时间奖励球配置
type BonusConfig struct {
	UnlockLevel   int     `yaml:"unlockLevel"`   // 解锁关卡，默认 8
	Capacity      int     `yaml:"capacity"`      // 数量上限，默认 2
	Size          float64 `yaml:"size"`          // 直径
	SpawnInterval float64 `yaml:"spawnInterval"` // 生成间隔（秒），固定
	FallStep      float64 `yaml:"fallStep"`      // 每次移动的下落距离
	TimeReward    int     `yaml:"timeReward"`    // 奖励秒数
	ScoreReward   int     `yaml:"scoreReward"`   // 奖励分数
}

// BorderPenaltyConfig 碰边惩罚配置
type BorderPenaltyConfig struct {
	UnlockLevel int     `yaml:"unlockLevel"` // 解锁关卡，默认 8
	Seconds     int     `yaml:"seconds"`     // 扣除秒数
	Cooldown    float64 `yaml:"cooldown"`    // 冷却时间（秒）
}

// DefaultVariant 返回 classic 变体（原版主游戏的常量）
// YAML 中缺失的字段用它补齐
func DefaultVariant() *VariantConfig {
	return &VariantConfig{
		Name:        "classic",
		Description: "Collect orbs, dodge purple hazards, grab golden time orbs",
		Tilt:        TiltConfig{Sensitivity: 10, VerticalSign: -1},
		Avatar:      SizeRule{Base: 50, ShrinkPerLevel: 2, Min: 20},
		Target:      SizeRule{Base: 30, ShrinkPerLevel: 1.5, Min: 15},
		Timer:       TimerConfig{Base: 30, StepPerLevel: 2, Min: 10, TickInterval: 1},
		Progression: ProgressionConfig{
			OrbsPerLevel:    5,
			PointsPerLevel:  10,
			StartLevels:     []int{1, 5, 10},
			MotionTickHertz: 60,
		},
		Hazard: HazardConfig{
			UnlockLevel:      5,
			Capacity:         5,
			CapacityOffset:   3,
			Size:             20,
			SpawnInterval:    2.0,
			SpawnDecay:       0.15,
			MinSpawnInterval: 0.3,
			FallBase:         2,
			FallPerLevel:     0.5,
			MoveInterval:     0.05,
		},
		Bonus: BonusConfig{
			UnlockLevel:   8,
			Capacity:      2,
			Size:          25,
			SpawnInterval: 5.0,
			FallStep:      1.5,
			TimeReward:    5,
			ScoreReward:   20,
		},
		BorderPenalty: BorderPenaltyConfig{UnlockLevel: 8, Seconds: 2, Cooldown: 1.0},
	}
}

// AvatarSize 玩家小球直径，随关卡缩小，有下限
func (v *VariantConfig) AvatarSize(level int) float64 {
	return v.Avatar.At(level)
}

// TargetSize 目标orb直径，随关卡缩小，有下限
func (v *VariantConfig) TargetSize(level int) float64 {
	return v.Target.At(level)
}

// At 计算指定关卡的尺寸
func (r SizeRule) At(level int) float64 {
	return math.Max(r.Base-float64(level)*r.ShrinkPerLevel, r.Min)
}

// TimeLimit 指定关卡的时间预算（秒）
func (v *VariantConfig) TimeLimit(level int) int {
	limit := v.Timer.Base - level*v.Timer.StepPerLevel
	if limit < v.Timer.Min {
		return v.Timer.Min
	}
	return limit
}

// OrbsNeeded 升级所需收集的目标数量
func (v *VariantConfig) OrbsNeeded(level int) int {
	return v.Progression.OrbsPerLevel + level
}

// TargetPoints 在指定关卡收集一个目标的得分
func (v *VariantConfig) TargetPoints(level int) int {
	return v.Progression.PointsPerLevel * level
}

// HazardsUnlocked 当前关卡是否出现危险球
func (v *VariantConfig) HazardsUnlocked(level int) bool {
	return level >= v.Hazard.UnlockLevel
}

// BonusesUnlocked 当前关卡是否出现时间奖励球
func (v *VariantConfig) BonusesUnlocked(level int) bool {
	return level >= v.Bonus.UnlockLevel
}

// BorderPenaltyActive 当前关卡是否启用碰边惩罚
func (v *VariantConfig) BorderPenaltyActive(level int) bool {
	return level >= v.BorderPenalty.UnlockLevel
}

// HazardCapacity 当前关卡允许同时存在的危险球数量：min(level - offset, capacity)，不小于 0
func (v *VariantConfig) HazardCapacity(level int) int {
	n := level - v.Hazard.CapacityOffset
	if n > v.Hazard.Capacity {
		n = v.Hazard.Capacity
	}
	if n < 0 {
		return 0
	}
	return n
}

// HazardSpawnInterval 危险球生成间隔（秒），随关卡缩短，有下限
func (v *VariantConfig) HazardSpawnInterval(level int) float64 {
	return math.Max(v.Hazard.SpawnInterval-float64(level)*v.Hazard.SpawnDecay, v.Hazard.MinSpawnInterval)
}

// HazardFallStep 危险球每次移动的下落距离
func (v *VariantConfig) HazardFallStep(level int) float64 {
	return v.Hazard.FallBase + float64(level)*v.Hazard.FallPerLevel
}

// IsStartLevelAllowed 固定起始关卡模式是否允许该关卡
func (v *VariantConfig) IsStartLevelAllowed(level int) bool {
	for _, l := range v.Progression.StartLevels {
		if l == level {
			return true
		}
	}
	return false
}

// VariantSet YAML 文件中的变体集合
type VariantSet struct {
	Default  string          `yaml:"default"`  // 默认变体名称
	Variants []VariantConfig `yaml:"variants"` // 变体列表
}

// LoadVariants 从YAML文件加载变体配置
func LoadVariants(filepath string) (*VariantSet, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read variant config file %s: %w", filepath, err)
	}

	set, err := ParseVariants(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return set, nil
}

// ParseVariants 解析YAML数据，补齐默认值并校验
func ParseVariants(data []byte) (*VariantSet, error) {
	var set VariantSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse variant config YAML: %w", err)
	}

	if len(set.Variants) == 0 {
		return nil, fmt.Errorf("at least one variant is required")
	}

	seen := make(map[string]bool, len(set.Variants))
	for i := range set.Variants {
		v := &set.Variants[i]
		applyVariantDefaults(v)
		if err := validateVariant(v); err != nil {
			return nil, fmt.Errorf("invalid variant %q: %w", v.Name, err)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate variant name %q", v.Name)
		}
		seen[v.Name] = true
	}

	if set.Default == "" {
		set.Default = set.Variants[0].Name
	}
	if !seen[set.Default] {
		return nil, fmt.Errorf("default variant %q is not defined", set.Default)
	}

	return &set, nil
}

// Get 按名称查找变体，name 为空时返回默认变体
func (s *VariantSet) Get(name string) (*VariantConfig, error) {
	if name == "" {
		name = s.Default
	}
	for i := range s.Variants {
		if s.Variants[i].Name == name {
			return &s.Variants[i], nil
		}
	}
	return nil, fmt.Errorf("unknown variant %q", name)
}

// Names 返回所有变体名称（保持文件中的顺序）
func (s *VariantSet) Names() []string {
	names := make([]string, 0, len(s.Variants))
	for _, v := range s.Variants {
		names = append(names, v.Name)
	}
	return names
}

// applyVariantDefaults 为缺失的字段填充 classic 变体的值
// 布尔语义的字段（如 VerticalSign）零值无意义，同样补齐
func applyVariantDefaults(v *VariantConfig) {
	d := DefaultVariant()

	setFloat := func(dst *float64, def float64) {
		if *dst == 0 {
			*dst = def
		}
	}
	setInt := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}

	setFloat(&v.Tilt.Sensitivity, d.Tilt.Sensitivity)
	setFloat(&v.Tilt.VerticalSign, d.Tilt.VerticalSign)

	setFloat(&v.Avatar.Base, d.Avatar.Base)
	setFloat(&v.Avatar.ShrinkPerLevel, d.Avatar.ShrinkPerLevel)
	setFloat(&v.Avatar.Min, d.Avatar.Min)
	setFloat(&v.Target.Base, d.Target.Base)
	setFloat(&v.Target.ShrinkPerLevel, d.Target.ShrinkPerLevel)
	setFloat(&v.Target.Min, d.Target.Min)

	setInt(&v.Timer.Base, d.Timer.Base)
	setInt(&v.Timer.StepPerLevel, d.Timer.StepPerLevel)
	setInt(&v.Timer.Min, d.Timer.Min)
	setFloat(&v.Timer.TickInterval, d.Timer.TickInterval)

	setInt(&v.Progression.OrbsPerLevel, d.Progression.OrbsPerLevel)
	setInt(&v.Progression.PointsPerLevel, d.Progression.PointsPerLevel)
	setInt(&v.Progression.MotionTickHertz, d.Progression.MotionTickHertz)
	if len(v.Progression.StartLevels) == 0 {
		v.Progression.StartLevels = d.Progression.StartLevels
	}

	setInt(&v.Hazard.UnlockLevel, d.Hazard.UnlockLevel)
	setInt(&v.Hazard.Capacity, d.Hazard.Capacity)
	setInt(&v.Hazard.CapacityOffset, d.Hazard.CapacityOffset)
	setFloat(&v.Hazard.Size, d.Hazard.Size)
	setFloat(&v.Hazard.SpawnInterval, d.Hazard.SpawnInterval)
	setFloat(&v.Hazard.SpawnDecay, d.Hazard.SpawnDecay)
	setFloat(&v.Hazard.MinSpawnInterval, d.Hazard.MinSpawnInterval)
	setFloat(&v.Hazard.FallBase, d.Hazard.FallBase)
	setFloat(&v.Hazard.FallPerLevel, d.Hazard.FallPerLevel)
	setFloat(&v.Hazard.MoveInterval, d.Hazard.MoveInterval)

	setInt(&v.Bonus.UnlockLevel, d.Bonus.UnlockLevel)
	setInt(&v.Bonus.Capacity, d.Bonus.Capacity)
	setFloat(&v.Bonus.Size, d.Bonus.Size)
	setFloat(&v.Bonus.SpawnInterval, d.Bonus.SpawnInterval)
	setFloat(&v.Bonus.FallStep, d.Bonus.FallStep)
	setInt(&v.Bonus.TimeReward, d.Bonus.TimeReward)
	setInt(&v.Bonus.ScoreReward, d.Bonus.ScoreReward)

	setInt(&v.BorderPenalty.UnlockLevel, d.BorderPenalty.UnlockLevel)
	setInt(&v.BorderPenalty.Seconds, d.BorderPenalty.Seconds)
	setFloat(&v.BorderPenalty.Cooldown, d.BorderPenalty.Cooldown)
}

// validateVariant 校验变体配置的合法性
// 尺寸下限必须为正数，否则高关卡时碰撞计算会退化
func validateVariant(v *VariantConfig) error {
	if v.Name == "" {
		return fmt.Errorf("variant name is required")
	}

	if v.Tilt.Sensitivity <= 0 {
		return fmt.Errorf("tilt.sensitivity must be positive, got %v", v.Tilt.Sensitivity)
	}
	if v.Tilt.VerticalSign != 1 && v.Tilt.VerticalSign != -1 {
		return fmt.Errorf("tilt.verticalSign must be 1 or -1, got %v", v.Tilt.VerticalSign)
	}

	if err := validateSizeRule("avatar", v.Avatar); err != nil {
		return err
	}
	if err := validateSizeRule("target", v.Target); err != nil {
		return err
	}

	if v.Timer.Min <= 0 {
		return fmt.Errorf("timer.min must be positive, got %d", v.Timer.Min)
	}
	if v.Timer.Base < v.Timer.Min {
		return fmt.Errorf("timer.base (%d) cannot be less than timer.min (%d)", v.Timer.Base, v.Timer.Min)
	}
	if v.Timer.StepPerLevel < 0 {
		return fmt.Errorf("timer.stepPerLevel cannot be negative, got %d", v.Timer.StepPerLevel)
	}
	if v.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tickInterval must be positive, got %v", v.Timer.TickInterval)
	}

	if v.Progression.OrbsPerLevel < 0 {
		return fmt.Errorf("progression.orbsPerLevel cannot be negative, got %d", v.Progression.OrbsPerLevel)
	}
	for i, l := range v.Progression.StartLevels {
		if l < 1 {
			return fmt.Errorf("progression.startLevels[%d]: level must be at least 1, got %d", i, l)
		}
	}

	if v.Hazard.UnlockLevel < 1 || v.Bonus.UnlockLevel < 1 || v.BorderPenalty.UnlockLevel < 1 {
		return fmt.Errorf("unlock levels must be at least 1")
	}
	if v.Hazard.Capacity < 0 || v.Bonus.Capacity < 0 {
		return fmt.Errorf("capacities cannot be negative")
	}
	if v.Hazard.Size <= 0 || v.Bonus.Size <= 0 {
		return fmt.Errorf("hazard and bonus sizes must be positive")
	}
	if v.Hazard.MinSpawnInterval <= 0 || v.Hazard.SpawnInterval < v.Hazard.MinSpawnInterval {
		return fmt.Errorf("hazard spawn interval must be >= minSpawnInterval > 0, got %v/%v",
			v.Hazard.SpawnInterval, v.Hazard.MinSpawnInterval)
	}
	if v.Hazard.MoveInterval <= 0 {
		return fmt.Errorf("hazard.moveInterval must be positive, got %v", v.Hazard.MoveInterval)
	}
	if v.Bonus.SpawnInterval <= 0 {
		return fmt.Errorf("bonus.spawnInterval must be positive, got %v", v.Bonus.SpawnInterval)
	}

	if v.BorderPenalty.Seconds < 0 {
		return fmt.Errorf("borderPenalty.seconds cannot be negative, got %d", v.BorderPenalty.Seconds)
	}
	if v.BorderPenalty.Cooldown <= 0 {
		return fmt.Errorf("borderPenalty.cooldown must be positive, got %v", v.BorderPenalty.Cooldown)
	}

	return nil
}

func validateSizeRule(name string, r SizeRule) error {
	if r.Min <= 0 {
		return fmt.Errorf("%s.min must be positive, got %v", name, r.Min)
	}
	if r.Base < r.Min {
		return fmt.Errorf("%s.base (%v) cannot be less than %s.min (%v)", name, r.Base, name, r.Min)
	}
	if r.ShrinkPerLevel < 0 {
		return fmt.Errorf("%s.shrinkPerLevel cannot be negative, got %v", name, r.ShrinkPerLevel)
	}
	return nil
}
