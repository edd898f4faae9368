package create_appointment

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrServiceNotFound возвращается, когда услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSlotClosed возвращается, когда время не входит в сетку слотов
	// этого дня недели (мойка закрыта или время не кратно сетке)
	ErrSlotClosed = errors.New("create_appointment: slot is outside opening hours")

	// ErrSlotTaken возвращается, когда слот занят бронированием или
	// блокировкой, либо проигран гонке за слот
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// (недоступное хранилище и т.п.); никогда не подменяет ErrSlotTaken
	ErrInternal = errors.New("create_appointment: internal error")
)
