// internal/model/month.go
package model

// MonthsInLedger は台帳の月数 (1月〜12月固定)
const MonthsInLedger = 12

// MonthNames は台帳の固定ラベル。順序に意味がある
var MonthNames = [MonthsInLedger]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthRecord は1か月分の授業日の記録
// 不変条件: 0 <= CompletedDays <= AvailableDays
type MonthRecord struct {
	Name          string `json:"name"`
	AvailableDays int    `json:"availableDays"`
	CompletedDays int    `json:"completedDays"`
	Editing       bool   `json:"editing"`
}

// Remaining はその月の残り容量
func (m MonthRecord) Remaining() int {
	return m.AvailableDays - m.CompletedDays
}

// Valid は不変条件を満たしているか
func (m MonthRecord) Valid() bool {
	return m.CompletedDays >= 0 && m.CompletedDays <= m.AvailableDays
}

// Ledger は1月から12月までの MonthRecord
type Ledger [MonthsInLedger]MonthRecord

// DefaultLedger は初期状態の台帳
func DefaultLedger() Ledger {
	available := [MonthsInLedger]int{15, 9, 0, 0, 0, 0, 0, 0, 0, 4, 17, 10}
	var l Ledger
	for i := range l {
		l[i] = MonthRecord{Name: MonthNames[i], AvailableDays: available[i]}
	}
	return l
}

// ValidIndex は月インデックスが範囲内か
func ValidIndex(index int) bool {
	return index >= 0 && index < MonthsInLedger
}

// NonEmpty は AvailableDays > 0 の月だけを返す
func (l Ledger) NonEmpty() []MonthRecord {
	months := make([]MonthRecord, 0, MonthsInLedger)
	for _, m := range l {
		if m.AvailableDays > 0 {
			months = append(months, m)
		}
	}
	return months
}
