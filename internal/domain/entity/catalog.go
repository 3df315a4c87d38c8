package entity

// Intensity уровень нагрузки рекомендуемой тренировки
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// IntensityFor выбирает нагрузку по остатку калорий: чем меньше остаток, тем интенсивнее.
func IntensityFor(balance float64) Intensity {
	switch {
	case balance > 500:
		return IntensityLow
	case balance > 300:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}

// CatalogFood низкокалорийный продукт для рекомендаций
type CatalogFood struct {
	Name     string `yaml:"name"`
	Calories int    `yaml:"calories"`
}

// Catalog списки для рекомендаций
type Catalog struct {
	Foods    []CatalogFood
	Workouts map[Intensity][]string
}

// DefaultCatalog стандартный набор продуктов и тренировок
func DefaultCatalog() Catalog {
	return Catalog{
		Foods: []CatalogFood{
			{Name: "Огурец", Calories: 15},
			{Name: "Помидор", Calories: 18},
			{Name: "Куриная грудка", Calories: 165},
			{Name: "Творог обезжиренный", Calories: 70},
			{Name: "Яблоко", Calories: 52},
		},
		Workouts: map[Intensity][]string{
			IntensityLow:    {"Йога (30 мин) - 150 ккал", "Пешая прогулка (45 мин) - 200 ккал"},
			IntensityMedium: {"Велосипед (30 мин) - 300 ккал", "Плавание (30 мин) - 250 ккал"},
			IntensityHigh:   {"Бег (30 мин) - 400 ккал", "Кроссфит (30 мин) - 500 ккал"},
		},
	}
}

// Valid сообщает, что в каталоге есть хотя бы один продукт и тренировка для каждого уровня
func (c Catalog) Valid() bool {
	if len(c.Foods) == 0 {
		return false
	}
	for _, level := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh} {
		if len(c.Workouts[level]) == 0 {
			return false
		}
	}
	return true
}
