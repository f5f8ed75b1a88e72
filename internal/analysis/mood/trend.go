package mood

import (
	"fmt"

	model "github.com/zhouzirui/mindshift/backend/internal/model/mood"
)

const (
	// TrendWindow 是参与趋势判断的最近记录条数。
	TrendWindow = 5

	consecutiveDeclineThreshold = 4
	aggregateDropThreshold      = 3
)

// AnalyzeTrend 对按日期升序排列的心情记录计算下滑信号。
// 少于 TrendWindow 条时不给出任何告警。
func AnalyzeTrend(history []model.Entry) model.Trend {
	if len(history) < TrendWindow {
		return model.Trend{}
	}

	window := history[len(history)-TrendWindow:]

	declines := 0
	maxDeclines := 0
	for i := 1; i < len(window); i++ {
		if window[i].Mood < window[i-1].Mood {
			declines++
		} else {
			declines = 0
		}
		if declines > maxDeclines {
			maxDeclines = declines
		}
	}

	consecutive := maxDeclines >= consecutiveDeclineThreshold
	aggregate := window[0].Mood-window[len(window)-1].Mood >= aggregateDropThreshold

	return model.Trend{
		HasDeclineAlert:    consecutive || aggregate,
		ConsecutiveDecline: consecutive,
		AggregateDrop:      aggregate,
	}
}

// AlertMessage 根据服务端模式检查结果生成提示文案；无需提示时返回空串。
func AlertMessage(pattern *model.Pattern) string {
	if pattern == nil || !pattern.HasConcerningPattern {
		return ""
	}
	if pattern.DaysWithoutEntry > 0 {
		return fmt.Sprintf("We noticed you haven't logged your mood for %d days. Taking a moment to reflect can help you stay mindful of your emotional well-being.", pattern.DaysWithoutEntry)
	}
	return "We noticed you've been experiencing some challenging emotions lately. Remember, it's okay to seek support when you need it."
}
