package entity

// FoodInfo результат поиска продукта
type FoodInfo struct {
	Name        string  `json:"name"`
	KcalPer100g float64 `json:"kcal_per_100g"`
}

// CaloriesFor калорийность порции в граммах
func (f FoodInfo) CaloriesFor(grams int) float64 {
	return f.KcalPer100g * float64(grams) / 100
}
