package model

// Revenue is a pre-aggregated monthly total, seeded externally. Month is a
// YYYY-MM key so lexical order is chronological order.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

func (Revenue) TableName() string { return "revenue" }
