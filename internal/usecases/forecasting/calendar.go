package forecasting

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// ErrInvalidDateRange indica um horizonte em que a data final precede a
// inicial. É a única pré-condição dura do motor: nenhum chamador deve
// construir uma sequência de meses vazia.
var ErrInvalidDateRange = errors.New("data final do horizonte precede a data inicial")

// MonthDescriptor descreve um mês do horizonte do forecast
type MonthDescriptor struct {
	Key   string // yyyy-MM
	Label string // Apr 2026
	Date  time.Time
	Index int
}

// MonthRange gera a sequência ordenada e inclusiva de meses entre as duas
// datas (granularidade mensal). Falha rápido para intervalos invertidos.
func MonthRange(startISO, endISO string) ([]MonthDescriptor, error) {
	start, err := utils.ParseDate(startISO)
	if err != nil {
		return nil, errors.Wrapf(err, "data inicial inválida: %s", startISO)
	}

	end, err := utils.ParseDate(endISO)
	if err != nil {
		return nil, errors.Wrapf(err, "data final inválida: %s", endISO)
	}

	startMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	if endMonth.Before(startMonth) {
		return nil, ErrInvalidDateRange
	}

	totalMonths := (endMonth.Year()-startMonth.Year())*12 + int(endMonth.Month()) - int(startMonth.Month()) + 1

	months := make([]MonthDescriptor, totalMonths)
	for idx := range months {
		date := startMonth.AddDate(0, idx, 0)
		months[idx] = MonthDescriptor{
			Key:   date.Format("2006-01"),
			Label: date.Format("Jan 2006"),
			Date:  date,
			Index: idx,
		}
	}

	return months, nil
}

// NormalizeMonthKey converte uma data arbitrária ("2026-05" ou "2026-05-15")
// na chave de mês yyyy-MM usada pelo horizonte. Valores não reconhecidos são
// devolvidos como estão e nunca casam com um mês do horizonte.
func NormalizeMonthKey(value string) string {
	if date, err := time.Parse("2006-01", value); err == nil {
		return date.Format("2006-01")
	}
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date.Format("2006-01")
	}
	return value
}

func monthKeys(months []MonthDescriptor) []string {
	keys := make([]string, len(months))
	for idx, month := range months {
		keys[idx] = month.Key
	}
	return keys
}
