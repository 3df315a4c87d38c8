package telegram

import (
	"fmt"
	"html"

	app "fitbalance-bot/internal/application"
	"fitbalance-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я FitBalanceBot 🤖
Я помогу тебе отслеживать:
💧 Потребление воды
🍎 Калорийность питания
🏋️ Активность и тренировки

Начни с настройки профиля: /set_profile`

	msgFAQ = `📚 <b>Доступные команды:</b>

💧 /log_water [объем] - Записать потребление воды (в мл)
🍎 /log_food [продукт] - Записать съеденный продукт
🏋️ /log_workout [тип] [минуты] - Записать тренировку
📊 /check_progress - Текущий прогресс
💡 /recommend - Персональные рекомендации
📁 /export - Выгрузить историю в Excel
⚙️ /set_profile [male|female] - Настройка профиля
✖️ /cancel - Отменить текущий ввод
❓ /faq - Повторный показ справки`

	msgAskWeight   = "📏 Введите ваш вес в килограммах:"
	msgAskHeight   = "📏 Введите ваш рост в сантиметрах:"
	msgAskAge      = "🎂 Введите ваш возраст:"
	msgAskActivity = "🏃 Введите минуты ежедневной активности:"
	msgAskCity     = "🌍 Введите ваш город для учета погоды:"

	msgBadWeight   = "❌ Введите корректный вес в кг (от 1 до 500)"
	msgBadHeight   = "❌ Введите корректный рост в см (от 1 до 300)"
	msgBadAge      = "❌ Введите корректный возраст (от 1 до 150)"
	msgBadActivity = "❌ Введите корректное количество минут (от 0 до 1440)"
	msgBadCity     = "❌ Введите название города"
	msgBadGrams    = "❌ Введите корректное количество грамм (от 1 до 100000)"

	msgBadWater = `❌ Неверный формат!
Пример использования: /log_water 500
Введите положительное число`

	msgBadWorkout = `❌ Неверный формат!
Пример использования: /log_workout бег 30
Доступные типы тренировок: бег, плавание, велосипед и др.`

	msgFoodErrorFormat = `❌ Ошибка: %s
Пример использования: /log_food банан
Попробуйте уточнить название продукта`

	msgNoProduct          = "Не указан продукт"
	msgProductNotFound    = "Продукт не найден"
	msgProductUnavailable = "Сервис поиска продуктов недоступен"

	msgProfileRequired = "⚠ Сначала настройте профиль: /set_profile"
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /faq для справки."
	msgInternalError   = "⚠️ Что-то пошло не так, попробуйте позже."

	msgCancelledSetup  = "❌ Настройка профиля отменена. Начать заново: /set_profile"
	msgCancelledFood   = "❌ Запись продукта отменена."
	msgNothingToCancel = "Нечего отменять."

	msgExportEmpty   = "📭 История пока пуста."
	msgExportCaption = "📁 История записей"
	exportFileName   = "fitbalance_history.xlsx"
)

var setupPrompts = map[entity.DialogueState]string{
	entity.StateAwaitingWeight:   msgAskWeight,
	entity.StateAwaitingHeight:   msgAskHeight,
	entity.StateAwaitingAge:      msgAskAge,
	entity.StateAwaitingActivity: msgAskActivity,
	entity.StateAwaitingCity:     msgAskCity,
}

var setupErrors = map[entity.Field]string{
	entity.FieldWeight:   msgBadWeight,
	entity.FieldHeight:   msgBadHeight,
	entity.FieldAge:      msgBadAge,
	entity.FieldActivity: msgBadActivity,
	entity.FieldCity:     msgBadCity,
}

func formatProfileSaved(u *entity.User) string {
	return fmt.Sprintf(`✅ <b>Профиль сохранен!</b>

💧 Дневная норма воды: %d мл
🍏 Дневная норма калорий: %d ккал

Используйте /faq для списка команд`, u.WaterGoalMl, u.CalorieGoalKcal)
}

func formatWater(res *app.WaterResult) string {
	return fmt.Sprintf(`💧 +%d мл воды!
📊 Прогресс: %d/%d мл
⏳ Осталось: %d мл`, res.Amount, res.User.LoggedWaterMl, res.User.WaterGoalMl, res.User.WaterRemaining())
}

func formatFoodPrompt(p *app.FoodPrompt) string {
	return fmt.Sprintf(`🍎 %s
🔢 Калорийность: %g ккал/100г
📏 Сколько грамм вы съели?`, p.Name, p.KcalPer100g)
}

func formatFoodLogged(res *app.FoodResult) string {
	return fmt.Sprintf(`🍽 Съедено: %dг
🔥 Записано: %.1f ккал
📊 Всего: %.1f/%d ккал`, res.Grams, res.Calories, res.User.LoggedCalories, res.User.CalorieGoalKcal)
}

func formatWorkout(res *app.WorkoutResult) string {
	return fmt.Sprintf(`🏋️ %s %d минут
🔥 Сожжено: %d ккал
💦 Рекомендуется воды: +%d мл
📈 Новая норма воды: %d мл`, res.Type, res.Minutes, res.Burned, res.WaterBonus, res.User.WaterGoalMl)
}

func formatProgress(p *app.Progress) string {
	u := p.User
	return fmt.Sprintf(`📊 <b>Ваш прогресс за %s</b>

💧 Вода:
• Выпито: %d мл из %d мл
• Осталось: %d мл

🍏 Калории:
• Потреблено: %.1f ккал
• Сожжено: %d ккал
• Баланс: %.1f/%d ккал`,
		p.Date.Format("02.01.2006"),
		u.LoggedWaterMl, u.WaterGoalMl,
		p.WaterRemaining,
		u.LoggedCalories,
		u.BurnedCalories,
		p.CalorieBalance, u.CalorieGoalKcal,
	)
}

func formatRecommendation(r *app.Recommendation) string {
	return fmt.Sprintf(`💡 <b>Персональные рекомендации</b>

🍏 Низкокалорийный продукт:
%s (%d ккал/100г)

🏋️ Рекомендуемая тренировка:
%s

⚖️ Текущий баланс: %.1f ккал`,
		html.EscapeString(r.Food.Name), r.Food.Calories,
		html.EscapeString(r.Workout),
		r.Balance,
	)
}

func formatFoodError(reason string) string {
	return fmt.Sprintf(msgFoodErrorFormat, reason)
}
