package timer

import (
	"fmt"
	"time"
)

// Clock источник текущего времени. Дедлайны вопросов проверяются лениво, при следующем
// событии пользователя, поэтому фоновых таймеров нет и достаточно спросить время.
type Clock interface {
	Now() time.Time
}

// SystemClock часы на основе time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// RemainingTimeStr возвращает строковое представление оставшегося времени до дедлайна.
// Если время истекло, возвращается "0s".
func RemainingTimeStr(deadline, now time.Time) string {
	remaining := deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining.Round(time.Second).String()
}

// WholeSeconds отбрасывает дробную часть секунд
func WholeSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// FormatMinutes форматирует длительность как "2m 5s"
func FormatMinutes(d time.Duration) string {
	total := WholeSeconds(d)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
