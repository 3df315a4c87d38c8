package entity

import "math"

const (
	waterPerKgMl          = 30
	waterPerActivityMl    = 500
	waterHotWeatherMl     = 500
	hotWeatherThresholdC  = 25.0
	activityBlockMinutes  = 30
	workoutKcalPerMinute  = 8
	workoutWaterPerBlock  = 200
	baseActivityFactor    = 1.2
	activityFactorPerHour = 0.1
)

// WaterGoal дневная норма воды в мл: 30 мл на кг, +500 за каждые 30 минут активности, +500 в жару.
func WaterGoal(u *User) int {
	goal := u.WeightKg*waterPerKgMl + (u.ActivityMinutes/activityBlockMinutes)*waterPerActivityMl
	if u.TemperatureC > hotWeatherThresholdC {
		goal += waterHotWeatherMl
	}
	return goal
}

// BMR базовый обмен по формуле Миффлина-Сан Жеора
func BMR(u *User) float64 {
	bmr := 10*float64(u.WeightKg) + 6.25*float64(u.HeightCm) - 5*float64(u.AgeYears)
	if u.Gender == GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityFactor коэффициент активности: 1.2 плюс 0.1 за каждый час в день
func ActivityFactor(u *User) float64 {
	return baseActivityFactor + (float64(u.ActivityMinutes)/60)*activityFactorPerHour
}

// CalorieGoal дневная норма калорий
func CalorieGoal(u *User) int {
	return int(math.Floor(BMR(u) * ActivityFactor(u)))
}

// WorkoutCalories калории, сожжённые за тренировку
func WorkoutCalories(minutes int) int {
	return minutes * workoutKcalPerMinute
}

// WorkoutWaterBonus прибавка к норме воды за тренировку
func WorkoutWaterBonus(minutes int) int {
	return (minutes / activityBlockMinutes) * workoutWaterPerBlock
}
