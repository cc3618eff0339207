package create_batch_booking

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// ExpandRecurring раскладывает еженедельное бронирование на конкретные слоты.
// Время суток берётся из rep, первая дата: ближайший weekday начиная с даты from.
// Слоты выдаются с шагом 7 дней, пока они строго раньше to.
func ExpandRecurring(userID int64, weekday time.Weekday, rep, from, to time.Time) iter.Seq[domain.BookingDraft] {
	return func(yield func(domain.BookingDraft) bool) {
		if weekday < time.Sunday || weekday > time.Saturday {
			return
		}

		y, m, d := from.Date()
		current := time.Date(y, m, d, rep.Hour(), rep.Minute(), 0, 0, from.Location())
		for current.Weekday() != weekday {
			current = current.AddDate(0, 0, 1)
		}

		for current.Before(to) {
			if !yield(domain.BookingDraft{Unix: current.Unix(), UserID: userID}) {
				return
			}
			current = current.AddDate(0, 0, 7)
		}
	}
}
