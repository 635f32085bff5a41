package service

import (
	"fmt"
	"regexp"
	"time"
)

// 后端混用两种报警时间戳格式：ISO-8601 与本地模拟器的下划线格式。
// 两种都必须解析为同一 instant 才能正确排序（下划线格式按 UTC 解释）。
const underscoreTimestampLayout = "2006-01-02_15-04-05"

// ParseAlertTimestamp 解析报警时间戳（RFC3339 或 YYYY-MM-DD_HH-MM-SS）
func ParseAlertTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(underscoreTimestampLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized alert timestamp %q", s)
}

// 复合报警 ID 的时间戳后缀。设备 ID 本身可能含下划线，
// 不能简单按第一个/最后一个下划线切分，必须匹配固定的时间戳形态。
var alertIDSuffix = regexp.MustCompile(
	`_(\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?|_\d{2}-\d{2}-\d{2}))$`)

// SplitAlertID 拆分 {deviceId}_{alertTimestamp} 形式的复合报警 ID
func SplitAlertID(alertID string) (deviceID, alertKey string, err error) {
	m := alertIDSuffix.FindStringSubmatchIndex(alertID)
	if m == nil || m[0] == 0 {
		return "", "", fmt.Errorf("malformed alert id %q", alertID)
	}
	return alertID[:m[0]], alertID[m[2]:m[3]], nil
}
