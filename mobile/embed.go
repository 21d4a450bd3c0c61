//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/variants.yaml 与根目录 data/variants.yaml 保持一致，
// 修改变体参数后需要同步复制一份：
//
//	cp data/variants.yaml mobile/data/
package mobile

import "embed"

//go:embed data/variants.yaml
var dataFS embed.FS
