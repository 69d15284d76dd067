package accept_request

// Request модель запроса на подтверждение заявки
type Request struct {
	RequestID int64 // ID заявки
	DoctorID  int64 // ID врача (из токена)
}

// Response модель ответа с созданной записью
type Response struct {
	RequestID     int64  // ID заявки
	AppointmentID int64  // ID созданной записи
	Status        string // Новый статус заявки (accepted)
}
