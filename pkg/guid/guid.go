package guid

import (
	"strings"

	"github.com/google/uuid"
)

// 实体 GUID = 类型前缀 + "_" + UUID，如 evt_9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d。
// 前缀校验失败与记录不存在对外不可区分（防止跨类型/跨团队探测）。

const (
	PrefixEvent     = "evt"
	PrefixSeries    = "ser"
	PrefixLocation  = "loc"
	PrefixOrganizer = "org"
	PrefixCategory  = "cat"
	PrefixPerformer = "per"
)

// New 生成带类型前缀的新 GUID
func New(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

// Valid 校验 GUID 是否具有指定前缀且 UUID 部分合法
func Valid(g, prefix string) bool {
	rest, ok := strings.CutPrefix(g, prefix+"_")
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
