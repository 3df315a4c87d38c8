package port

// Chooser источник случайности для рекомендаций. Intn возвращает число из [0, n).
type Chooser interface {
	Intn(n int) int
}
