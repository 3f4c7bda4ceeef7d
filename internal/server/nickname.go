package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"胆小的", "无畏的", "失眠的", "多疑的", "虔诚的",
		"冷静的", "好奇的", "迷路的", "沉默的", "颤抖的",
		"夜游的", "机警的", "固执的", "乐观的", "嗜睡的",
		"谨慎的", "冲动的", "健忘的", "倔强的", "温吞的",
	}

	nouns = []string{
		"守夜人", "敲钟人", "点灯人", "掘墓人", "抄经人",
		"驱魔人", "占卜师", "游方僧", "唱诗童", "马车夫",
		"旅店主", "面包师", "铁匠", "裁缝", "猎户",
		"药剂师", "渔夫", "牧羊人", "磨坊主", "邮差",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
