package get_schedule

import (
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	getSchedule "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_schedule"
)

// OccupantID владелец слота в том виде, в каком его видит пользователь
type OccupantID struct {
	ID int64 `json:"_id"`
}

// OccupantProfile владелец слота в том виде, в каком его видит администратор
type OccupantProfile struct {
	ID      int64  `json:"_id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// SlotResponse состояние одного слота
type SlotResponse struct {
	Unix     int64       `json:"unix"`
	Time     string      `json:"time"`
	Status   string      `json:"status"`
	Occupant interface{} `json:"occupant"`
}

// DayResponse слоты одного дня
type DayResponse struct {
	Date    string         `json:"date"`
	Weekday int            `json:"weekday"`
	Slots   []SlotResponse `json:"slots"`
}

// projection сериализация владельца слота
type projection func(o *domain.Occupant) interface{}

func projectID(o *domain.Occupant) interface{} {
	if o == nil {
		return nil
	}
	return OccupantID{ID: o.ID}
}

func projectProfile(o *domain.Occupant) interface{} {
	if o == nil {
		return nil
	}
	return OccupantProfile{ID: o.ID, Name: o.Name, Surname: o.Surname, Email: o.Email}
}

// projectionFor выбирается один раз на запрос
func projectionFor(viewer domain.Viewer) projection {
	if viewer.IsAdmin {
		return projectProfile
	}
	return projectID
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getSchedule.Response, viewer domain.Viewer) []DayResponse {
	project := projectionFor(viewer)

	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, SlotResponse{
				Unix:     s.Unix,
				Time:     s.Time,
				Status:   string(s.Status),
				Occupant: project(s.Occupant),
			})
		}
		days = append(days, DayResponse{
			Date:    day.Date.Format(domain.DateFormat),
			Weekday: int(day.Date.Weekday()),
			Slots:   slots,
		})
	}
	return days
}
