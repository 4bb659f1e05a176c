package model

// Account carries the per-creator upload counters. Premium accounts bypass
// the quota limits entirely; counters are still maintained for them.
type Account struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	IsPremium bool   `json:"is_premium"`

	FlashUploads int `json:"flash_uploads"`
	HomeUploads  int `json:"home_uploads"`
}

// QuotaLimits bounds the per-kind upload counters for non-premium accounts.
type QuotaLimits struct {
	Home  int
	Flash int
}

func (q QuotaLimits) For(kind VideoKind) int {
	if kind == VideoKindFlash {
		return q.Flash
	}
	return q.Home
}
