package systems

import (
	"stealth-server/internal/domain"
)

// WalkableQuery - комната умеет сказать, где пол.
type WalkableQuery interface {
	IsWalkable(p domain.GridPoint) bool
}

// ResolveRayBase выбирает соседнюю клетку камеры, из которой выходят лучи:
// клетку пола "перед" камерой, а не стену, на которой она висит.
//
// Порядок проверки:
//   - горизонтальный прицел (|x| > |y|): сторона по знаку x, противоположная,
//     затем вертикаль (вверх при y < 0, иначе вниз) и противоположная;
//   - иначе (в том числе при |x| == |y|) вертикаль первой, горизонталь следом.
//
// Если проходимых соседей нет, возвращается клетка снизу, FacingDown
// и ErrNoWalkableNeighbor. Значения при этом валидны.
func ResolveRayBase(position, center domain.GridPoint, walkable WalkableQuery) (domain.GridPoint, domain.Facing, error) {
	for _, f := range facingPriority(center) {
		candidate := position.Add(f.Offset())
		if walkable.IsWalkable(candidate) {
			return candidate, f, nil
		}
	}
	return position.Add(domain.FacingDown.Offset()), domain.FacingDown, domain.ErrNoWalkableNeighbor
}

func facingPriority(v domain.GridPoint) [4]domain.Facing {
	horizontal := [2]domain.Facing{domain.FacingRight, domain.FacingLeft}
	if v.X < 0 {
		horizontal = [2]domain.Facing{domain.FacingLeft, domain.FacingRight}
	}
	vertical := [2]domain.Facing{domain.FacingDown, domain.FacingUp}
	if v.Y < 0 {
		vertical = [2]domain.Facing{domain.FacingUp, domain.FacingDown}
	}

	if abs(v.X) > abs(v.Y) {
		return [4]domain.Facing{horizontal[0], horizontal[1], vertical[0], vertical[1]}
	}
	return [4]domain.Facing{vertical[0], vertical[1], horizontal[0], horizontal[1]}
}
