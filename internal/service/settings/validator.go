package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/settings/models"
)

const tagSlotsFitDay = "slots_fit_day"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateSlotsFitDay, models.SettingsRequest{})
	return v
}

// validateSlotsFitDay слоты каждого дня недели, включая выходные, должны начинаться не позже 23:55
func validateSlotsFitDay(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.SettingsRequest)
	step := req.SlotDuration + req.Interval

	for i, day := range req.Week {
		if day.SlotNumber > domain.MaxSlotsPerDay(day, step) {
			sl.ReportError(day.SlotNumber, fmt.Sprintf("Week[%d].SlotNumber", i), "SlotNumber", tagSlotsFitDay, fmt.Sprint(i))
		}
	}
}

// validateRequest проверяет диапазоны и вместимость дней.
// Превышение вместимости дня отдаётся отдельной ошибкой ErrTooManySlots.
func validateRequest(v *validator.Validate, req *models.SettingsRequest) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(validationErrs))
	tooMany := make([]string, 0)
	for _, fe := range validationErrs {
		if fe.Tag() == tagSlotsFitDay {
			tooMany = append(tooMany, "weekday "+fe.Param())
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
	}

	if len(messages) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
	}
	return fmt.Errorf("%w: %s", ErrTooManySlots, strings.Join(tooMany, ", "))
}
