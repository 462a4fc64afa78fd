package model

// SiteStat is a single global counter row, e.g. the visit counter keyed
// "visits". Incremented with an atomic upsert.
type SiteStat struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value int64  `gorm:"column:value;not null"`
}

func (SiteStat) TableName() string {
	return "site_stats"
}
