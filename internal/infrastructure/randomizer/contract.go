package randomizer

// Randomizer предоставляет абстракцию для источника случайных чисел.
type Randomizer interface {
	// Intn возвращает равномерно распределённое число в [0, n). Паникует при n <= 0.
	Intn(n int) int
}
