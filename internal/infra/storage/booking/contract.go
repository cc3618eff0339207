package booking

import (
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"
