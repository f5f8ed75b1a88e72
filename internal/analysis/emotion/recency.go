package emotion

// Recency 保存最近发出的助手回复，最多 RecentWindow 条。非并发安全，由会话持有者加锁。
type Recency struct {
	items []string
}

// Push 追加一条回复，超出窗口时丢弃最旧的。
func (r *Recency) Push(text string) {
	r.items = append(r.items, text)
	if len(r.items) > RecentWindow {
		r.items = append(r.items[:0], r.items[len(r.items)-RecentWindow:]...)
	}
}

// Snapshot 返回当前窗口内容的副本，按时间从旧到新。
func (r *Recency) Snapshot() []string {
	return append([]string(nil), r.items...)
}

// Reset 清空窗口。
func (r *Recency) Reset() {
	r.items = r.items[:0]
}
