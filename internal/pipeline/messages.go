package pipeline

import (
	"errors"
	"fmt"

	"wordcharts/internal/extractor"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/metrics"
)

// User-facing messages.
const (
	MsgSuccess     = "文章已成功抓取并处理！"
	MsgUnsupported = "该网页的内容类型不支持或不是UTF-8编码"
	MsgNoChinese   = "未找到有效的中文文本"
	MsgNoWords     = "没有词语达到最低词频"
)

// UserMessage maps a pipeline error to the message shown in the UI.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fetcher.ErrUnsupportedContent):
		return MsgUnsupported
	case errors.Is(err, extractor.ErrNoChineseText):
		return MsgNoChinese
	default:
		return fmt.Sprintf("无法抓取文章：%v", err)
	}
}

// Outcome classifies a pipeline error with the metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, fetcher.ErrUnsupportedContent):
		return metrics.OutcomeUnsupported
	case errors.Is(err, extractor.ErrNoChineseText):
		return metrics.OutcomeNoChinese
	default:
		return metrics.OutcomeNetwork
	}
}
