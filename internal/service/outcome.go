package service

// OutcomeKind перечисляет возможные исходы пользовательских воркфлоу.
// Сервисы возвращают исход, а не пишут в HTTP-ответ: решение о
// редиректе, forward-е и flash-сообщении принимает маршрутизатор
// исходов в слое HTTP.
type OutcomeKind string

const (
	// Вход.
	OutcomeInputInvalid      OutcomeKind = "input_invalid"
	OutcomeAuthFailed        OutcomeKind = "authentication_failed"
	OutcomeAccountDeleted    OutcomeKind = "account_deleted"
	OutcomeAccountUnverified OutcomeKind = "account_unverified"
	OutcomeAuthenticated     OutcomeKind = "authenticated"

	// Регистрация.
	OutcomeRegistered           OutcomeKind = "registered"
	OutcomeRegistrationConflict OutcomeKind = "registration_conflict"

	// Отправка и подтверждение кода.
	OutcomeCodePending    OutcomeKind = "code_pending"
	OutcomeCodeSent       OutcomeKind = "code_sent"
	OutcomeCodeResent     OutcomeKind = "code_resent"
	OutcomeCodeSendFailed OutcomeKind = "code_send_failed"
	OutcomeCodeInvalid    OutcomeKind = "code_invalid"
	OutcomeCodeValid      OutcomeKind = "code_valid"
)

// Outcome — результат воркфлоу, достаточный для выбора следующей
// страницы. Message — готовое пользовательское сообщение (или пустая
// строка), Username и Email заполняются там, где следующему шагу
// нужны эти данные.
type Outcome struct {
	Kind     OutcomeKind
	Message  string
	Username string
	Email    string
}
