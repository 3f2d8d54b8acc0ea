package systems

import (
	"math"

	"stealth-server/internal/domain"
	"stealth-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// FanDensity - сколько лучей веера приходится на одну клетку дуги
// на дальнем краю конуса.
const FanDensity = 2.0

// OcclusionQuery - комната умеет сказать, что перекрывает обзор.
// Клетки вне сетки должны считаться перекрывающими.
type OcclusionQuery interface {
	IsOccludingVision(p domain.GridPoint) bool
}

// Fan - геометрия конуса без учета препятствий.
// Пересчитывается только при смене позиции, цели или угла.
type Fan struct {
	Base   domain.GridPoint
	Center domain.GridPoint // конец центрального луча
	EdgeA  domain.GridPoint // конец луча на -spread
	EdgeB  domain.GridPoint // конец луча на +spread
	Rays   [][]domain.GridPoint
}

// RotateVector поворачивает вектор на angle радиан и округляет компоненты
// к ближайшему целому (половины - к четному).
func RotateVector(v domain.GridPoint, angle float64) domain.GridPoint {
	c, s := math.Cos(angle), math.Sin(angle)
	x := float64(v.X)*c - float64(v.Y)*s
	y := float64(v.X)*s + float64(v.Y)*c
	return domain.GridPoint{
		X: int(math.RoundToEven(x)),
		Y: int(math.RoundToEven(y)),
	}
}

// BuildFan строит веер лучей от rayBase в сторону target с полууглом spread.
//
// Берется 2*ceil(spread*|center|*FanDensity)+1 равномерных направлений
// от -spread до +spread. Концы соседних направлений соединяются Rasterize,
// и на каждую клетку этой хорды пускается еще один луч: так у дальнего
// края конуса не остается дыр. Лучи с одинаковым концом не дублируются.
func BuildFan(rayBase, target domain.GridPoint, spread float64) Fan {
	center := target.Sub(rayBase)
	fan := Fan{Base: rayBase, Center: target, EdgeA: target, EdgeB: target}
	if center.IsZero() {
		return fan
	}
	if math.IsNaN(spread) || spread < 0 {
		spread = 0
	}

	length := math.Hypot(float64(center.X), float64(center.Y))
	half := int(math.Ceil(spread * length * FanDensity))

	endpoints := make([]domain.GridPoint, 0, 2*half+1)
	for i := -half; i <= half; i++ {
		vec := center
		if i != 0 {
			vec = RotateVector(center, spread*float64(i)/float64(half))
		}
		endpoints = append(endpoints, rayBase.Add(vec))
	}
	fan.EdgeA = endpoints[0]
	fan.EdgeB = endpoints[len(endpoints)-1]

	seen := mapset.New[domain.GridPoint]()
	cast := func(end domain.GridPoint) {
		if end == rayBase || seen.Has(end) {
			return
		}
		seen.Put(end)
		fan.Rays = append(fan.Rays, CheckRay(rayBase, end.Sub(rayBase)))
	}

	// Сначала основные направления, потом заполнение хорд
	for _, end := range endpoints {
		cast(end)
	}
	for i := 0; i+1 < len(endpoints); i++ {
		for _, end := range Rasterize(endpoints[i], endpoints[i+1]) {
			cast(end)
		}
	}

	return fan
}

// WalkRay возвращает видимую часть луча: клетки до первой перекрывающей.
// Сама перекрывающая клетка не видна.
func WalkRay(ray []domain.GridPoint, occlusion OcclusionQuery) []domain.GridPoint {
	for i, p := range ray {
		if occlusion.IsOccludingVision(p) {
			return ray[:i]
		}
	}
	return ray
}

// WalkFan проходит все лучи веера с учетом текущих препятствий.
func WalkFan(fan Fan, occlusion OcclusionQuery) mapset.Set[domain.GridPoint] {
	watched := mapset.New[domain.GridPoint]()
	for _, ray := range fan.Rays {
		for _, p := range WalkRay(ray, occlusion) {
			if p == fan.Base {
				continue
			}
			watched.Put(p)
		}
	}
	return watched
}

// BuildCone возвращает клетки, которые видит камера с основанием rayBase.
func BuildCone(rayBase, target domain.GridPoint, spread float64, occlusion OcclusionQuery) mapset.Set[domain.GridPoint] {
	coneLogger := logger.Log.WithFields(logrus.Fields{
		"component": "vision_cone",
		"ray_base":  rayBase,
		"target":    target,
		"spread":    spread,
	})

	fan := BuildFan(rayBase, target, spread)
	watched := WalkFan(fan, occlusion)

	coneLogger.WithFields(logrus.Fields{
		"rays":          len(fan.Rays),
		"watched_tiles": watched.Size(),
	}).Debug("Vision cone calculation complete.")

	return watched
}
