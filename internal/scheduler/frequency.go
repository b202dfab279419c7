package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Frequências aceitas além de um número de minutos
const (
	FrequencyHourly = "hourly"
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// ParseFrequency converte a frequência de uma tarefa em um agendamento cron.
// daily roda às 02:00 e weekly às segundas às 03:00.
func ParseFrequency(frequency string) (cron.Schedule, error) {
	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case FrequencyHourly:
		return cron.Every(time.Hour), nil
	case FrequencyDaily:
		return cron.ParseStandard("0 2 * * *")
	case FrequencyWeekly:
		return cron.ParseStandard("0 3 * * 1")
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(frequency))
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, frequency)
	}
	return cron.Every(time.Duration(minutes) * time.Minute), nil
}

// ValidFrequency informa se ParseFrequency aceita frequency
func ValidFrequency(frequency string) bool {
	_, err := ParseFrequency(frequency)
	return err == nil
}
