package service

import (
	"LoanKeeper/internal/model"
	"time"
)

// LoanBuckets — разбиение займов для дашборда. Разбиение полное и
// непересекающееся: каждый займ попадает ровно в одну корзину.
type LoanBuckets struct {
	Active   []model.Loan `json:"active"`
	Overdue  []model.Loan `json:"overdue"`
	Returned []model.Loan `json:"returned"`
}

// Categorize — чистая функция без I/O. Не мемоизируется: "сейчас" движется,
// поэтому корзины пересчитываются на каждый запрос.
func Categorize(loans []model.Loan, now time.Time) LoanBuckets {
	b := LoanBuckets{
		Active:   []model.Loan{},
		Overdue:  []model.Loan{},
		Returned: []model.Loan{},
	}
	for _, l := range loans {
		l.Derive(now)
		switch {
		case l.Returned():
			b.Returned = append(b.Returned, l)
		case l.IsOverdue(now):
			b.Overdue = append(b.Overdue, l)
		default:
			b.Active = append(b.Active, l)
		}
	}
	return b
}
