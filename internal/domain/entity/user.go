package entity

import "time"

// DialogueState шаг настройки профиля, на котором находится пользователь
type DialogueState string

const (
	StateNone             DialogueState = ""                  // Профиль настроен, диалог не ведётся
	StateAwaitingWeight   DialogueState = "awaiting_weight"   // Ожидание веса
	StateAwaitingHeight   DialogueState = "awaiting_height"   // Ожидание роста
	StateAwaitingAge      DialogueState = "awaiting_age"      // Ожидание возраста
	StateAwaitingActivity DialogueState = "awaiting_activity" // Ожидание минут активности
	StateAwaitingCity     DialogueState = "awaiting_city"     // Ожидание города
)

// Next возвращает следующий шаг настройки. После города диалог завершается.
func (s DialogueState) Next() DialogueState {
	switch s {
	case StateAwaitingWeight:
		return StateAwaitingHeight
	case StateAwaitingHeight:
		return StateAwaitingAge
	case StateAwaitingAge:
		return StateAwaitingActivity
	case StateAwaitingActivity:
		return StateAwaitingCity
	default:
		return StateNone
	}
}

// Gender пол пользователя для расчёта BMR
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// ParseGender разбирает аргумент /set_profile. Всё, кроме male/female, даёт GenderUnknown.
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s)
	default:
		return GenderUnknown
	}
}

// PendingFood продукт, для которого ждём количество грамм
type PendingFood struct {
	Name        string
	KcalPer100g float64
}

// User профиль пользователя бота
type User struct {
	ID     int64         // Telegram User ID
	ChatID int64         // Telegram Chat ID
	State  DialogueState // Текущий шаг настройки профиля

	Gender          Gender
	WeightKg        int
	HeightCm        int
	AgeYears        int
	ActivityMinutes int

	City         string
	TemperatureC float64

	WaterGoalMl     int
	CalorieGoalKcal int

	LoggedWaterMl  int
	LoggedCalories float64
	BurnedCalories int

	PendingFood *PendingFood
	Events      []Event
}

// NewUser создаёт профиль в начале настройки
func NewUser(userID, chatID int64, gender Gender) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateAwaitingWeight,
		Gender: gender,
		Events: []Event{},
	}
}

// SetState обновляет шаг настройки
func (u *User) SetState(state DialogueState) {
	u.State = state
}

// InSetup сообщает, что пользователь ещё проходит настройку профиля
func (u *User) InSetup() bool {
	return u.State != StateNone
}

// Active сообщает, что профиль настроен и цели рассчитаны
func (u *User) Active() bool {
	return !u.InSetup()
}

// CompleteSetup фиксирует город, считает цели и обнуляет накопленные итоги.
func (u *User) CompleteSetup(city string, temperatureC float64) {
	u.City = city
	u.TemperatureC = temperatureC

	u.WaterGoalMl = WaterGoal(u)
	u.CalorieGoalKcal = CalorieGoal(u)

	u.LoggedWaterMl = 0
	u.LoggedCalories = 0
	u.BurnedCalories = 0
	u.PendingFood = nil

	u.SetState(StateNone)
}

// AddWater записывает выпитую воду
func (u *User) AddWater(ml int, at time.Time) {
	u.LoggedWaterMl += ml
	u.appendEvent(at, EventWater, float64(ml))
}

// AddCalories записывает съеденные калории
func (u *User) AddCalories(kcal float64, at time.Time) {
	u.LoggedCalories += kcal
	u.appendEvent(at, EventCaloriesConsumed, kcal)
}

// AddWorkout записывает тренировку: сожжённые калории идут в итог, бонус воды увеличивает цель.
func (u *User) AddWorkout(minutes int, at time.Time) (burned, waterBonus int) {
	burned = WorkoutCalories(minutes)
	waterBonus = WorkoutWaterBonus(minutes)

	u.BurnedCalories += burned
	u.WaterGoalMl += waterBonus
	u.appendEvent(at, EventCaloriesBurned, float64(burned))

	return burned, waterBonus
}

// WaterRemaining сколько воды осталось до цели. Может быть отрицательным.
func (u *User) WaterRemaining() int {
	return u.WaterGoalMl - u.LoggedWaterMl
}

// CalorieBalance баланс калорий с учётом тренировок
func (u *User) CalorieBalance() float64 {
	return float64(u.CalorieGoalKcal) - u.LoggedCalories + float64(u.BurnedCalories)
}

// IntakeBalance остаток калорий без учёта тренировок
func (u *User) IntakeBalance() float64 {
	return float64(u.CalorieGoalKcal) - u.LoggedCalories
}

// Clone возвращает независимую копию профиля
func (u *User) Clone() *User {
	c := *u
	if u.PendingFood != nil {
		p := *u.PendingFood
		c.PendingFood = &p
	}
	c.Events = make([]Event, len(u.Events))
	copy(c.Events, u.Events)
	return &c
}

func (u *User) appendEvent(at time.Time, kind EventKind, amount float64) {
	u.Events = append(u.Events, Event{Date: dateOf(at), Kind: kind, Amount: amount})
}
