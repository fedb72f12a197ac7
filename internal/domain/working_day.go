package domain

// AddWorkingDayResult результат добавления рабочего дня
type AddWorkingDayResult string

const (
	WorkingDayCreated       AddWorkingDayResult = "created"
	WorkingDayAlreadyExists AddWorkingDayResult = "already_exists"
)
