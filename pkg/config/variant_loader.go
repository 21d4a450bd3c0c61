package config

import (
	"fmt"
	"log"

	"github.com/decker502/tiltorbs/pkg/embedded"
)

// EmbeddedVariantsPath 嵌入的默认变体配置路径
const EmbeddedVariantsPath = "data/variants.yaml"

// ResolveVariant 按优先级加载变体配置：
//  1. path 非空时从文件系统读取（调试/自定义关卡参数）
//  2. 否则从嵌入资源读取
//  3. 嵌入资源不可用时退回内置的 classic 变体
//
// name 为空表示使用文件中声明的默认变体
func ResolveVariant(path, name string) (*VariantConfig, error) {
	var (
		set *VariantSet
		err error
	)

	switch {
	case path != "":
		set, err = LoadVariants(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 加载变体配置: %s", path)
	case embedded.IsInitialized():
		data, readErr := embedded.ReadFile(EmbeddedVariantsPath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read embedded variants: %w", readErr)
		}
		set, err = ParseVariants(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EmbeddedVariantsPath, err)
		}
		log.Printf("[Config] 加载嵌入变体配置: %s", EmbeddedVariantsPath)
	default:
		log.Printf("[Config] 嵌入资源未初始化，使用内置 classic 变体")
		set = &VariantSet{Default: "classic", Variants: []VariantConfig{*DefaultVariant()}}
	}

	variant, err := set.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, set.Names())
	}
	log.Printf("[Config] 使用变体: %s", variant.Name)
	return variant, nil
}
