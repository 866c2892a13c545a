package store

// Store 设备级键值记录存储，平台所有视图状态都落在这里。
// 语义沿用浏览器 localStorage：Read 不报错，缺失或损坏一律视为 absent；
// Write 无条件覆盖（last-write-wins，无合并）；Remove 对不存在的键是空操作。
type Store interface {
	Read(key string) (string, bool)
	Write(key, value string) error
	Remove(key string)
}
