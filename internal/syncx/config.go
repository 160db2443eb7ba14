package syncx

// ExternalConfig 深链接（魔法连结）可携带的配置：
// ?script=<Apps Script URL>&group=<组别>，分享连结点开后一次性写入本地配置。
type ExternalConfig struct {
	SheetURL string
	Group    string
}

// Apply 把外部传入的配置合并进现有配置。
// 只覆盖 incoming 中非空的字段，返回是否有实际变更，
// 调用方据此决定要不要落库、前端据此决定要不要清理地址栏。
// 幂等：同一份 incoming 应用第二次时 changed 必为 false。
func Apply(current, incoming ExternalConfig) (ExternalConfig, bool) {
	merged := current
	changed := false

	if incoming.SheetURL != "" && incoming.SheetURL != merged.SheetURL {
		merged.SheetURL = incoming.SheetURL
		changed = true
	}
	if incoming.Group != "" && incoming.Group != merged.Group {
		merged.Group = incoming.Group
		changed = true
	}
	return merged, changed
}
