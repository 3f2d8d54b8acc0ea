package agent

import (
	"fmt"
	"unicode"

	"stealth-server/internal/domain"
)

// Step - один шаг маршрута бота
type Step struct {
	Action domain.ActionType
	Dir    domain.Facing
}

var routeDirs = map[rune]domain.Facing{
	'u': domain.FacingUp,
	'd': domain.FacingDown,
	'l': domain.FacingLeft,
	'r': domain.FacingRight,
}

// ParseRoute разбирает маршрут вида "UUULLd.RR".
// Заглавная буква - шаг (MOVE), строчная - взаимодействие (INTERACT)
// с соседней клеткой, точка - пропуск кадра. Пробелы игнорируются.
func ParseRoute(s string) ([]Step, error) {
	steps := make([]Step, 0, len(s))
	for pos, c := range s {
		switch {
		case unicode.IsSpace(c):
			continue
		case c == '.':
			steps = append(steps, Step{Action: domain.ActionWait})
			continue
		}

		dir, ok := routeDirs[unicode.ToLower(c)]
		if !ok {
			return nil, fmt.Errorf("route: unexpected %q at %d", c, pos)
		}
		action := domain.ActionInteract
		if unicode.IsUpper(c) {
			action = domain.ActionMove
		}
		steps = append(steps, Step{Action: action, Dir: dir})
	}
	return steps, nil
}
