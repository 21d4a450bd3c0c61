//go:build mobile

package utils

// IsMobile 移动端编译时恒为 true，菜单和 HUD 据此显示倾斜操作提示
func IsMobile() bool {
	return true
}
