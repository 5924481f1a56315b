package email

const (
	subjectOrderPlacedFmt = "Заказ №%d принят"
	subjectOrderStatusFmt = "Статус заказа №%d: %s"
)
